package projection

import (
	"errors"
	"fmt"

	"github.com/2beens/healthdash/internal/calendar"
)

const (
	MinHorizonDays     = 1
	MaxHorizonDays     = 365
	DefaultHorizonDays = 90
)

var (
	ErrInvalidHorizon = errors.New("invalid planning horizon")
	ErrInvalidEndDate = errors.New("invalid planning end date")
)

// Horizon is how far ahead to project. Either Days was set directly, or it was
// derived from EndDate; never both independently.
type Horizon struct {
	Days    int           `json:"days"`
	EndDate *calendar.Day `json:"endDate,omitempty"`
}

func NewHorizon(days int) Horizon {
	return Horizon{Days: ClampDays(days)}
}

func ClampDays(days int) int {
	if days < MinHorizonDays {
		return MinHorizonDays
	}
	if days > MaxHorizonDays {
		return MaxHorizonDays
	}
	return days
}

// ValidateDays rejects a day count outside [MinHorizonDays, MaxHorizonDays].
func ValidateDays(days int) error {
	if days < MinHorizonDays || days > MaxHorizonDays {
		return fmt.Errorf("%w: %d days not in [%d, %d]", ErrInvalidHorizon, days, MinHorizonDays, MaxHorizonDays)
	}
	return nil
}

// SetDays makes the day count authoritative and drops the end date.
func (h *Horizon) SetDays(days int) {
	h.Days = ClampDays(days)
	h.EndDate = nil
}

// SetEndDate derives the day count from end. An end date that is not in the future, or
// lies more than MaxHorizonDays ahead, is rejected and the horizon is left unchanged.
func (h *Horizon) SetEndDate(end, today calendar.Day) error {
	days, err := DaysUntilEnd(end, today)
	if err != nil {
		return err
	}
	h.Days = days
	h.EndDate = &end
	return nil
}

// ClearEndDate drops the end date and keeps the derived day count.
func (h *Horizon) ClearEndDate() {
	h.EndDate = nil
}

func DaysUntilEnd(end, today calendar.Day) (int, error) {
	if end.IsZero() {
		return 0, fmt.Errorf("%w: empty date", ErrInvalidEndDate)
	}
	days := today.DaysUntil(end)
	if days <= 0 {
		return 0, fmt.Errorf("%w: %s is not after %s", ErrInvalidEndDate, end, today)
	}
	if days > MaxHorizonDays {
		return 0, fmt.Errorf("%w: %s is more than %d days ahead", ErrInvalidEndDate, end, MaxHorizonDays)
	}
	return days, nil
}
