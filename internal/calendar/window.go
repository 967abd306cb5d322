package calendar

import "time"

const DefaultWindowDays = 90

// Window is an inclusive range of calendar days.
type Window struct {
	From Day
	To   Day
}

// Trailing returns [today-(days-1), today]. Non-positive days fall back to DefaultWindowDays.
func Trailing(today Day, days int) Window {
	if days < 1 {
		days = DefaultWindowDays
	}
	return Window{
		From: today.AddDays(-(days - 1)),
		To:   today,
	}
}

func (w Window) Contains(d Day) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// Days returns every day in the window, oldest first.
func (w Window) Days() []Day {
	n := w.From.DaysUntil(w.To) + 1
	if n <= 0 {
		return nil
	}
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, w.From.AddDays(i))
	}
	return days
}

// Bounds returns the instants [from-midnight, to-midnight+1day) in loc, for range queries.
func (w Window) Bounds(loc *time.Location) (time.Time, time.Time) {
	return w.From.Midnight(loc), w.To.AddDays(1).Midnight(loc)
}
