package session

import (
	"time"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/correlation"
	"github.com/2beens/healthdash/internal/plan"
	"github.com/2beens/healthdash/internal/projection"
	"github.com/2beens/healthdash/internal/series"
)

// Snapshot is everything one reload fetched. It is never mutated after the loader returns it;
// a reload replaces the whole value.
type Snapshot struct {
	Generation uint64
	LoadedAt   time.Time
	Location   *time.Location
	Today      calendar.Day
	Window     calendar.Window

	Weights          []series.Observation
	Steps            []series.Observation
	SleepDurations   []series.Observation
	NutritionRatings []series.Observation
	Sleep            []series.SleepEntry
	Ratings          []series.DayRating

	DayTemplates  plan.Catalog[plan.DayTemplate]
	StepTemplates plan.Catalog[plan.StepTemplate]
	NutritionPlan plan.Assignments
	StepPlan      plan.Assignments

	// collections whose fetch failed and degraded to empty
	unavailable map[string]bool
}

// Empty is the snapshot served before the first reload finished.
func Empty(loc *time.Location) *Snapshot {
	today := calendar.Today(loc)
	return &Snapshot{
		Location:         loc,
		Today:            today,
		Window:           calendar.Trailing(today, calendar.DefaultWindowDays),
		Weights:          []series.Observation{},
		Steps:            []series.Observation{},
		SleepDurations:   []series.Observation{},
		NutritionRatings: []series.Observation{},
		Sleep:            []series.SleepEntry{},
		Ratings:          []series.DayRating{},
		DayTemplates:     plan.Catalog[plan.DayTemplate]{},
		StepTemplates:    plan.Catalog[plan.StepTemplate]{},
		NutritionPlan:    plan.Assignments{},
		StepPlan:         plan.Assignments{},
		unavailable:      map[string]bool{},
	}
}

// Unavailable reports whether any of the given collections failed to load.
func (s *Snapshot) Unavailable(collections ...string) bool {
	for _, c := range collections {
		if s.unavailable[c] {
			return true
		}
	}
	return false
}

func (s *Snapshot) UnavailableCollections() []string {
	collections := make([]string, 0, len(s.unavailable))
	for c := range s.unavailable {
		collections = append(collections, c)
	}
	return collections
}

func (s *Snapshot) NutritionProjectionPlan() projection.NutritionPlan {
	return projection.NutritionPlan{
		Assignments: s.NutritionPlan,
		Templates:   s.DayTemplates,
	}
}

func (s *Snapshot) StepProjectionPlan() projection.StepPlan {
	return projection.StepPlan{
		Assignments: s.StepPlan,
		Templates:   s.StepTemplates,
	}
}

// Project runs the projection from the latest known weight.
func (s *Snapshot) Project(horizonDays int) []projection.Point {
	return projection.ProjectFromHistory(s.Weights, horizonDays, s.Today, s.NutritionProjectionPlan(), s.StepProjectionPlan())
}

func (s *Snapshot) CorrelationInput() correlation.Input {
	return correlation.Input{
		Weights:       s.Weights,
		Steps:         s.Steps,
		NutritionPlan: s.NutritionPlan,
		DayTemplates:  s.DayTemplates,
	}
}

// WindowDays is the number of days the snapshot's series were fetched for.
func (s *Snapshot) WindowDays() int {
	return s.Window.From.DaysUntil(s.Window.To) + 1
}

// ClampDays limits a requested view length to the fetched window.
func (s *Snapshot) ClampDays(days int) int {
	return min(days, s.WindowDays())
}

// Correlation builds the correlation window ending on the snapshot's day.
// Days before the fetched window are never included.
func (s *Snapshot) Correlation(windowDays int) []correlation.Record {
	return correlation.Build(s.CorrelationInput(), s.Today, s.ClampDays(windowDays))
}
