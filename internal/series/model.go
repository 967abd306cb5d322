package series

import (
	"fmt"
	"time"

	"github.com/2beens/healthdash/internal/calendar"
)

const (
	CollectionWeights       = "weights"
	CollectionSleep         = "sleep"
	CollectionSteps         = "steps"
	CollectionDayRatings    = "dayRatings"
	CollectionDayTemplates  = "dayTemplates"
	CollectionStepTemplates = "stepTemplates"
	CollectionPlannedDays   = "plannedDays"
	CollectionStepGoals     = "stepGoals"
)

type Kind int

const (
	KindWeight Kind = iota
	KindSleepDuration
	KindSteps
	KindNutritionRating
)

func (k Kind) String() string {
	switch k {
	case KindWeight:
		return "weight"
	case KindSleepDuration:
		return "sleepDuration"
	case KindSteps:
		return "steps"
	case KindNutritionRating:
		return "nutritionRating"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{KindWeight, KindSleepDuration, KindSteps, KindNutritionRating} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown series kind [%s]", text)
}

// PlanKind selects which planned-assignment collection to read.
type PlanKind string

const (
	PlanNutrition PlanKind = CollectionPlannedDays
	PlanSteps     PlanKind = CollectionStepGoals
)

// Observation is a single daily value of one metric. Weight is in kg,
// sleep duration in hours, steps as a count.
type Observation struct {
	Day       calendar.Day `json:"date"`
	Timestamp time.Time    `json:"timestamp"`
	Value     float64      `json:"value"`
	Kind      Kind         `json:"kind"`
}

type SleepEntry struct {
	Day         calendar.Day `json:"date"`
	Timestamp   time.Time    `json:"timestamp"`
	BedTime     string       `json:"bedTime"`
	WakeTime    string       `json:"wakeTime"`
	Duration    int          `json:"duration"` // minutes
	Quality     int          `json:"quality"`
	Notes       string       `json:"notes,omitempty"`
	IsConfirmed bool         `json:"isConfirmed"`
	IsManual    bool         `json:"isManual"`
}

// Hours is the sleep duration in hours.
func (s SleepEntry) Hours() float64 {
	return float64(s.Duration) / 60
}

// DayRating is a nutrition rating of a day, either bound to a day template or a plain 1..5 number.
type DayRating struct {
	Day        calendar.Day `json:"date"`
	Timestamp  time.Time    `json:"timestamp"`
	TemplateID string       `json:"templateId,omitempty"`
	Rating     *float64     `json:"rating,omitempty"`
}

// SleepObservations turns sleep entries with a known duration into hour observations.
func SleepObservations(entries []SleepEntry) []Observation {
	obs := make([]Observation, 0, len(entries))
	for _, e := range entries {
		if e.Duration <= 0 {
			continue
		}
		obs = append(obs, Observation{Day: e.Day, Timestamp: e.Timestamp, Value: e.Hours(), Kind: KindSleepDuration})
	}
	return obs
}

// RatingObservations keeps the numeric ratings. Template-only ratings carry no number.
func RatingObservations(ratings []DayRating) []Observation {
	obs := make([]Observation, 0, len(ratings))
	for _, r := range ratings {
		if r.Rating == nil {
			continue
		}
		obs = append(obs, Observation{Day: r.Day, Timestamp: r.Timestamp, Value: *r.Rating, Kind: KindNutritionRating})
	}
	return obs
}
