package combined

import (
	"time"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/normalize"
	"github.com/2beens/healthdash/internal/plan"
	"github.com/2beens/healthdash/internal/series"
)

const (
	DefaultDays = 30
	MaxDays     = 365
)

type Input struct {
	Weights        []series.Observation
	SleepDurations []series.Observation
	Steps          []series.Observation
	Ratings        []series.DayRating
	DayTemplates   plan.Catalog[plan.DayTemplate]
	Location       *time.Location
}

// Marker places a day rating on the weight curve.
type Marker struct {
	Date             calendar.Day `json:"date"`
	NormalizedWeight float64      `json:"normalizedWeight"`
	Color            string       `json:"color"`
	Rating           *float64     `json:"rating,omitempty"`
	TemplateName     string       `json:"templateName,omitempty"`
}

type Chart struct {
	Days    int               `json:"days"`
	From    calendar.Day      `json:"from"`
	To      calendar.Day      `json:"to"`
	Weight  []normalize.Point `json:"weight"`
	Sleep   []normalize.Point `json:"sleep"`
	Steps   []normalize.Point `json:"steps"`
	Ratings []Marker          `json:"ratings"`
}

// Build normalizes weight, sleep and steps of the last days days onto a shared [0, 1] scale.
// Rated days are marked at the weight curve height interpolated for that day, so a rating
// without a weight measurement still sits on the curve.
func Build(in Input, today calendar.Day, days int) Chart {
	if days < 1 {
		days = DefaultDays
	}
	days = min(days, MaxDays)
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}

	window := calendar.Trailing(today, days)
	chart := Chart{
		Days:    days,
		From:    window.From,
		To:      window.To,
		Weight:  normalize.Normalize(within(in.Weights, window)),
		Sleep:   normalize.Normalize(within(in.SleepDurations, window)),
		Steps:   normalize.Normalize(within(in.Steps, window)),
		Ratings: []Marker{},
	}

	for _, r := range in.Ratings {
		if !window.Contains(r.Day) {
			continue
		}
		height, ok := normalize.InterpolateAt(r.Day.Midnight(loc), chart.Weight)
		if !ok {
			continue
		}

		marker := Marker{
			Date:             r.Day,
			NormalizedWeight: height,
			Color:            plan.ColorFor(r.TemplateID, r.Rating, in.DayTemplates),
			Rating:           r.Rating,
		}
		if t, ok := in.DayTemplates[r.TemplateID]; ok {
			marker.TemplateName = t.Name
			if marker.Rating == nil {
				marker.Rating = t.Rating
			}
		}
		chart.Ratings = append(chart.Ratings, marker)
	}

	return chart
}

func within(obs []series.Observation, window calendar.Window) []series.Observation {
	filtered := make([]series.Observation, 0, len(obs))
	for _, o := range obs {
		if window.Contains(o.Day) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
