package series

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// number reads a numeric field. JSON numbers and numeric strings are accepted.
func number(data map[string]any, field string) (float64, bool) {
	switch v := data[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, ",", ".")), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func optionalNumber(data map[string]any, field string) *float64 {
	n, ok := number(data, field)
	if !ok {
		return nil
	}
	return &n
}

func text(data map[string]any, field string) string {
	switch v := data[field].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func flag(data map[string]any, field string) bool {
	b, _ := data[field].(bool)
	return b
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// SleepDuration returns the minutes between bedTime and wakeTime ("HH:MM"),
// wrapping past midnight. Missing or malformed times give 0.
func SleepDuration(bedTime, wakeTime string) int {
	bed, ok := parseClock(bedTime)
	if !ok {
		return 0
	}
	wake, ok := parseClock(wakeTime)
	if !ok {
		return 0
	}

	duration := wake - bed
	if duration < 0 {
		duration += 24 * 60
	}
	return duration
}
