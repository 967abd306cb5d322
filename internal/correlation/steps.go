package correlation

import (
	"math"

	"github.com/2beens/healthdash/internal/calendar"
)

const (
	MinStepsScale = 10000

	kmPerStep   = 0.0007
	kcalPerStep = 0.04
)

type StepsDetail struct {
	Date         calendar.Day `json:"date"`
	Steps        int          `json:"steps"`
	MaxSteps     int          `json:"maxSteps"`
	PercentOfMax float64      `json:"percentOfMax"`
	DistanceKm   float64      `json:"distanceKm"`
	Calories     int          `json:"calories"`
	Color        string       `json:"color"`
}

// MaxSteps is the chart scale for steps: the window maximum, but never below floor.
func MaxSteps(records []Record, floor int) int {
	maxSteps := floor
	for _, r := range records {
		maxSteps = max(maxSteps, r.Steps)
	}
	return maxSteps
}

// DetailFor describes the steps of records[i] relative to the window maximum.
func DetailFor(records []Record, i int) (StepsDetail, bool) {
	if i < 0 || i >= len(records) {
		return StepsDetail{}, false
	}

	r := records[i]
	detail := StepsDetail{
		Date:       r.Date,
		Steps:      r.Steps,
		MaxSteps:   MaxSteps(records, 0),
		DistanceKm: math.Round(float64(r.Steps)*kmPerStep*10) / 10,
		Calories:   int(math.Round(float64(r.Steps) * kcalPerStep)),
	}
	if detail.MaxSteps > 0 {
		detail.PercentOfMax = math.Round(float64(r.Steps)/float64(detail.MaxSteps)*1000) / 10
	}
	detail.Color = stepsColor(detail.PercentOfMax)

	return detail, true
}

func stepsColor(percent float64) string {
	switch {
	case percent >= 75:
		return "#28a745"
	case percent >= 50:
		return "#ffc107"
	case percent >= 25:
		return "#fd7e14"
	default:
		return "#dc3545"
	}
}
