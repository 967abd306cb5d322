package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/series"

	"github.com/shopspring/decimal"
)

const (
	SleepStatsDays = 30

	// placeholder shown when there is nothing to average
	NoValue = "-"

	minutesPerDay = 24 * 60
)

type WeightStats struct {
	Current    float64 `json:"current"`
	Start      float64 `json:"start"`
	Difference float64 `json:"difference"`
	Entries    int     `json:"entries"`
}

// Weight reports the latest and the earliest weight of the series and their difference.
// The series is expected oldest first, as the adapter returns it.
func Weight(weights []series.Observation) WeightStats {
	if len(weights) == 0 {
		return WeightStats{}
	}

	current := weights[len(weights)-1].Value
	start := weights[0].Value
	return WeightStats{
		Current:    current,
		Start:      start,
		Difference: decimal.NewFromFloat(current).Sub(decimal.NewFromFloat(start)).InexactFloat64(),
		Entries:    len(weights),
	}
}

type SleepStats struct {
	AvgDuration string `json:"avgDuration"`
	AvgQuality  string `json:"avgQuality"`
	AvgBedTime  string `json:"avgBedTime"`
	AvgWakeTime string `json:"avgWakeTime"`
	Entries     int    `json:"entries"`
}

// Sleep averages the entries of the last SleepStatsDays days up to today.
func Sleep(entries []series.SleepEntry, today calendar.Day) SleepStats {
	window := calendar.Trailing(today, SleepStatsDays)

	var (
		recent          int
		totalDuration   int
		totalQuality    int
		bedTimes, wakes []string
	)
	for _, e := range entries {
		if !window.Contains(e.Day) {
			continue
		}
		recent++
		totalDuration += e.Duration
		totalQuality += e.Quality
		bedTimes = append(bedTimes, e.BedTime)
		wakes = append(wakes, e.WakeTime)
	}

	if recent == 0 {
		return SleepStats{
			AvgDuration: NoValue,
			AvgQuality:  NoValue,
			AvgBedTime:  NoValue,
			AvgWakeTime: NoValue,
		}
	}

	return SleepStats{
		AvgDuration: FormatDuration(float64(totalDuration) / float64(recent)),
		AvgQuality:  fmt.Sprintf("%.1f/5", float64(totalQuality)/float64(recent)),
		AvgBedTime:  AverageClock(bedTimes),
		AvgWakeTime: AverageClock(wakes),
		Entries:     recent,
	}
}

// FormatDuration renders minutes as "7h 45min".
func FormatDuration(minutes float64) string {
	total := int(math.Round(minutes))
	return fmt.Sprintf("%dh %dmin", total/60, total%60)
}

// AverageClock averages "HH:MM" times around midnight: times before noon count as
// the following day, so 23:00 and 01:00 average to 00:00 rather than 12:00.
func AverageClock(times []string) string {
	var total, count int
	for _, t := range times {
		hh, mm, found := strings.Cut(strings.TrimSpace(t), ":")
		if !found {
			continue
		}
		h, errH := strconv.Atoi(hh)
		m, errM := strconv.Atoi(mm)
		if errH != nil || errM != nil {
			continue
		}

		minutes := h*60 + m
		if h < 12 {
			minutes += minutesPerDay
		}
		total += minutes
		count++
	}
	if count == 0 {
		return NoValue
	}

	avg := int(math.Round(float64(total)/float64(count))) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", avg/60, avg%60)
}
