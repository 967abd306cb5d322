package normalize

import (
	"time"

	"github.com/2beens/healthdash/internal/series"
)

// Point is an observation rescaled onto [0, 1] within its own series.
type Point struct {
	series.Observation
	NormalizedValue float64 `json:"normalizedValue"`
	OriginalValue   float64 `json:"originalValue"`
}

// Normalize min-max scales the series onto [0, 1]. For a constant series max-min is
// floored to 1, so every point lands on 0 instead of dividing by zero.
func Normalize(obs []series.Observation) []Point {
	points := make([]Point, 0, len(obs))
	if len(obs) == 0 {
		return points
	}

	lo, hi := obs[0].Value, obs[0].Value
	for _, o := range obs[1:] {
		lo = min(lo, o.Value)
		hi = max(hi, o.Value)
	}

	valueRange := hi - lo
	if valueRange == 0 {
		valueRange = 1
	}

	for _, o := range obs {
		points = append(points, Point{
			Observation:     o,
			NormalizedValue: (o.Value - lo) / valueRange,
			OriginalValue:   o.Value,
		})
	}

	return points
}

// InterpolateAt returns the normalized value at target, interpolated linearly between the
// nearest points at-or-before and at-or-after target by their own timestamps. With a single
// bound the value of that bound is returned; an empty series has no value.
func InterpolateAt(target time.Time, points []Point) (float64, bool) {
	return interpolate(target, points,
		func(p Point) time.Time { return p.Timestamp },
		func(p Point) float64 { return p.NormalizedValue },
	)
}

// InterpolateObservations does the same as InterpolateAt over raw observation values.
func InterpolateObservations(target time.Time, obs []series.Observation) (float64, bool) {
	return interpolate(target, obs,
		func(o series.Observation) time.Time { return o.Timestamp },
		func(o series.Observation) float64 { return o.Value },
	)
}

func interpolate[T any](
	target time.Time,
	items []T,
	at func(T) time.Time,
	value func(T) float64,
) (float64, bool) {
	var before, after *T
	for i := range items {
		item := &items[i]
		t := at(*item)
		if !t.After(target) && (before == nil || t.After(at(*before))) {
			before = item
		}
		if !t.Before(target) && (after == nil || t.Before(at(*after))) {
			after = item
		}
	}

	switch {
	case before == nil && after == nil:
		return 0, false
	case before == nil:
		return value(*after), true
	case after == nil:
		return value(*before), true
	}

	beforeAt, afterAt := at(*before), at(*after)
	if !afterAt.After(beforeAt) {
		return value(*before), true
	}

	ratio := float64(target.Sub(beforeAt)) / float64(afterAt.Sub(beforeAt))
	return value(*before) + (value(*after)-value(*before))*ratio, true
}
