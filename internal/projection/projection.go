package projection

import (
	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/plan"
	"github.com/2beens/healthdash/internal/series"

	"github.com/shopspring/decimal"
)

// step template coefficients are stored in grams
var gramsPerKg = decimal.NewFromInt(1000)

type Point struct {
	Date                  calendar.Day `json:"date"`
	Weight                float64      `json:"weight"`
	IsProjected           bool         `json:"isProjected"`
	WeightChange          float64      `json:"weightChange"`
	NutritionWeightChange float64      `json:"nutritionWeightChange"`
	StepWeightChange      float64      `json:"stepWeightChange"`
	NutritionTemplateName string       `json:"nutritionTemplateName,omitempty"`
	StepTemplateName      string       `json:"stepTemplateName,omitempty"`
}

type NutritionPlan struct {
	Assignments plan.Assignments
	Templates   plan.Catalog[plan.DayTemplate]
}

type StepPlan struct {
	Assignments plan.Assignments
	Templates   plan.Catalog[plan.StepTemplate]
}

// Project compounds planned per-day weight changes onto seed for days today+1 .. today+horizonDays.
// Point i (0-based) is day offset i+1; today itself is never projected.
func Project(
	seed float64,
	horizonDays int,
	today calendar.Day,
	nutrition NutritionPlan,
	steps StepPlan,
) []Point {
	horizonDays = ClampDays(horizonDays)

	current := decimal.NewFromFloat(seed)
	points := make([]Point, 0, horizonDays)
	for offset := 1; offset <= horizonDays; offset++ {
		day := today.AddDays(offset)

		nutritionChange := decimal.Zero
		nutritionTemplate, hasNutrition := plan.ResolveTemplateForDay(day, nutrition.Assignments, nutrition.Templates)
		if hasNutrition {
			nutritionChange = decimal.NewFromFloat(nutritionTemplate.WeightChangePerDay)
		}

		stepChange := decimal.Zero
		stepTemplate, hasSteps := plan.ResolveTemplateForDay(day, steps.Assignments, steps.Templates)
		if hasSteps {
			stepChange = decimal.NewFromFloat(stepTemplate.WeightChangePerDay).Div(gramsPerKg)
		}

		totalChange := nutritionChange.Add(stepChange)
		current = current.Add(totalChange)

		point := Point{
			Date:                  day,
			Weight:                current.InexactFloat64(),
			IsProjected:           true,
			WeightChange:          totalChange.InexactFloat64(),
			NutritionWeightChange: nutritionChange.InexactFloat64(),
			StepWeightChange:      stepChange.InexactFloat64(),
		}
		if hasNutrition {
			point.NutritionTemplateName = nutritionTemplate.Name
		}
		if hasSteps {
			point.StepTemplateName = stepTemplate.Name
		}
		points = append(points, point)
	}

	return points
}

// ProjectFromHistory seeds the projection with the most recent actual weight.
// Without any history there is nothing to project from, and the result is empty.
func ProjectFromHistory(
	weights []series.Observation,
	horizonDays int,
	today calendar.Day,
	nutrition NutritionPlan,
	steps StepPlan,
) []Point {
	seed, ok := LastWeight(weights)
	if !ok {
		return []Point{}
	}
	return Project(seed, horizonDays, today, nutrition, steps)
}

// LastWeight returns the value of the latest observation.
func LastWeight(weights []series.Observation) (float64, bool) {
	if len(weights) == 0 {
		return 0, false
	}
	latest := weights[0]
	for _, w := range weights[1:] {
		if !w.Day.Before(latest.Day) {
			latest = w
		}
	}
	return latest.Value, true
}

// PointAt returns the projected point daysInFuture days after today.
func PointAt(points []Point, daysInFuture int) (Point, bool) {
	if daysInFuture <= 0 || daysInFuture > len(points) {
		return Point{}, false
	}
	return points[daysInFuture-1], true
}

// WeightAt returns the projected weight on day.
func WeightAt(points []Point, day calendar.Day) (float64, bool) {
	for _, p := range points {
		if p.Date == day {
			return p.Weight, true
		}
	}
	return 0, false
}

type Summary struct {
	CurrentWeight     float64 `json:"currentWeight"`
	ProjectedIn30Days float64 `json:"projectedIn30Days"`
	ProjectedIn90Days float64 `json:"projectedIn90Days"`
	EndWeight         float64 `json:"endWeight"`
	TotalChange       float64 `json:"totalChange"`
	HorizonDays       int     `json:"horizonDays"`
}

// Summarize reports the projected weight at 30 and 90 days; a milestone beyond the horizon is 0.
func Summarize(currentWeight float64, points []Point) Summary {
	summary := Summary{
		CurrentWeight: currentWeight,
		HorizonDays:   len(points),
	}
	if p, ok := PointAt(points, 30); ok {
		summary.ProjectedIn30Days = p.Weight
	}
	if p, ok := PointAt(points, 90); ok {
		summary.ProjectedIn90Days = p.Weight
	}
	if len(points) > 0 {
		summary.EndWeight = points[len(points)-1].Weight
		summary.TotalChange = decimal.NewFromFloat(summary.EndWeight).
			Sub(decimal.NewFromFloat(currentWeight)).
			InexactFloat64()
	}
	return summary
}
