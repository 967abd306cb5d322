package plan

import (
	"github.com/2beens/healthdash/internal/calendar"
)

// DayTemplate is a reusable nutrition plan. WeightChangePerDay is in kg/day.
type DayTemplate struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Color              string   `json:"color,omitempty"`
	WeightChangePerDay float64  `json:"weightChangePerDay"`
	Rating             *float64 `json:"rating,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

// StepTemplate is a reusable activity plan. WeightChangePerDay is in GRAMS/day,
// converted to kg only where it is combined with nutrition changes.
type StepTemplate struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	WeightChangePerDay float64 `json:"weightChangePerDay"`
	TargetSteps        *int    `json:"targetSteps,omitempty"`
}

// Assignments maps a calendar day to the id of the template planned for it.
type Assignments map[calendar.Day]string

// Catalog holds templates keyed by their id.
type Catalog[T DayTemplate | StepTemplate] map[string]T

func NewDayCatalog(templates []DayTemplate) Catalog[DayTemplate] {
	c := make(Catalog[DayTemplate], len(templates))
	for _, t := range templates {
		c[t.ID] = t
	}
	return c
}

func NewStepCatalog(templates []StepTemplate) Catalog[StepTemplate] {
	c := make(Catalog[StepTemplate], len(templates))
	for _, t := range templates {
		c[t.ID] = t
	}
	return c
}

// ResolveTemplateForDay finds the template planned for day. A miss on either the
// assignment or the catalog means no plan for that day.
func ResolveTemplateForDay[T DayTemplate | StepTemplate](
	day calendar.Day,
	assignments Assignments,
	catalog Catalog[T],
) (T, bool) {
	var zero T
	templateID, ok := assignments[day]
	if !ok || templateID == "" {
		return zero, false
	}
	template, ok := catalog[templateID]
	if !ok {
		return zero, false
	}
	return template, true
}
