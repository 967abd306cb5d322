package correlation

import (
	"math"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/plan"
	"github.com/2beens/healthdash/internal/series"

	"github.com/shopspring/decimal"
)

const DefaultWindowDays = 90

// Record pairs the inputs of one day with the weight change to the following day.
type Record struct {
	Date                  calendar.Day `json:"date"`
	NutritionRating       *float64     `json:"nutritionRating"`
	NutritionColor        string       `json:"nutritionColor,omitempty"`
	NutritionTemplateName string       `json:"nutritionTemplateName,omitempty"`
	Steps                 int          `json:"steps"`
	// WeightLoss is today's weight minus tomorrow's: positive means weight was lost.
	WeightLoss *float64 `json:"weightLoss"`
	NextWeight *float64 `json:"nextWeight"`
}

type Input struct {
	Weights       []series.Observation
	Steps         []series.Observation
	NutritionPlan plan.Assignments
	DayTemplates  plan.Catalog[plan.DayTemplate]
}

// Build returns one record per day of the trailing window ending today, oldest first.
// The inputs of day d are paired with the weight change from d to d+1; that lag is the point
// of the analysis and must not be shifted.
func Build(in Input, today calendar.Day, windowDays int) []Record {
	if windowDays < 1 {
		windowDays = DefaultWindowDays
	}

	weights := byDay(in.Weights)
	steps := byDay(in.Steps)

	days := calendar.Trailing(today, windowDays).Days()
	records := make([]Record, 0, len(days))
	for _, d := range days {
		record := Record{Date: d}

		if template, ok := plan.ResolveTemplateForDay(d, in.NutritionPlan, in.DayTemplates); ok {
			record.NutritionRating = template.Rating
			record.NutritionColor = template.Color
			record.NutritionTemplateName = template.Name
		}

		if s, ok := steps[d]; ok {
			record.Steps = int(math.Round(s))
		}

		current, hasCurrent := weights[d]
		next, hasNext := weights[d.AddDays(1)]
		if hasNext {
			record.NextWeight = &next
		}
		if hasCurrent && hasNext {
			loss := decimal.NewFromFloat(current).Sub(decimal.NewFromFloat(next)).InexactFloat64()
			record.WeightLoss = &loss
		}

		records = append(records, record)
	}

	return records
}

func byDay(obs []series.Observation) map[calendar.Day]float64 {
	m := make(map[calendar.Day]float64, len(obs))
	for _, o := range obs {
		m[o.Day] = o.Value
	}
	return m
}
