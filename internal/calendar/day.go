package calendar

import (
	"fmt"
	"math"
	"time"
)

const keyLayout = "2006-01-02"

// Day is a calendar date without time of day. Two instants that fall on the same
// local date always produce the same Day, and Day values are usable as map keys.
type Day struct {
	year  int
	month time.Month
	day   int
}

func NewDay(year int, month time.Month, day int) Day {
	// normalize overflow, e.g. Jan 32 -> Feb 1
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DayOf returns the calendar day of t as seen in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}
	return Day{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Today returns the current day in loc.
func Today(loc *time.Location) Day {
	return DayOf(time.Now(), loc)
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(keyLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day [%s]: %w", s, err)
	}
	return Day{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// Key is the canonical YYYY-MM-DD representation.
func (d Day) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Day) String() string {
	return d.Key()
}

// Midnight returns the start of the day in loc.
func (d Day) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Day) AddDays(n int) Day {
	return NewDay(d.year, d.month, d.day+n)
}

func (d Day) Before(other Day) bool {
	return d.ordinal() < other.ordinal()
}

func (d Day) After(other Day) bool {
	return d.ordinal() > other.ordinal()
}

// DaysUntil returns the number of whole days from d to other (negative if other is earlier).
func (d Day) DaysUntil(other Day) int {
	return other.ordinal() - d.ordinal()
}

// ordinal counts days since the unix epoch; calendar days are independent of DST.
func (d Day) ordinal() int {
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
	return int(math.Floor(float64(t.Unix()) / 86400))
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.Key()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
