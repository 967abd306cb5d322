package calendar

import (
	"encoding/json"
	"strings"
	"time"
)

// Coerced is the result of turning a raw store date field into a Day.
// When OK is false the record must be skipped.
type Coerced struct {
	Day       Day
	Timestamp time.Time
	OK        bool
}

func skip() Coerced {
	return Coerced{}
}

func ok(t time.Time, loc *time.Location) Coerced {
	return Coerced{
		Day:       DayOf(t, loc),
		Timestamp: t,
		OK:        true,
	}
}

// Coerce accepts the three date representations found in store documents:
//   - a store timestamp object: {"seconds": .., "nanoseconds": ..} (or the "_seconds" variant)
//   - an ISO-8601 string, either date-only (2024-01-10) or a full RFC 3339 instant
//   - a native time.Time
//
// Date-only strings are taken as that calendar day in loc, never shifted through UTC.
func Coerce(raw any, loc *time.Location) Coerced {
	if loc == nil {
		loc = time.Local
	}

	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return skip()
		}
		return ok(v, loc)
	case *time.Time:
		if v == nil || v.IsZero() {
			return skip()
		}
		return ok(*v, loc)
	case string:
		return coerceString(v, loc)
	case map[string]any:
		return coerceTimestampObject(v, loc)
	default:
		return skip()
	}
}

func coerceString(s string, loc *time.Location) Coerced {
	s = strings.TrimSpace(s)
	if s == "" {
		return skip()
	}

	if len(s) == len(keyLayout) {
		t, err := time.ParseInLocation(keyLayout, s, loc)
		if err != nil {
			return skip()
		}
		return ok(t, loc)
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ok(t, loc)
		}
	}

	return skip()
}

func coerceTimestampObject(m map[string]any, loc *time.Location) Coerced {
	secs, found := numberField(m, "seconds", "_seconds")
	if !found {
		return skip()
	}
	nanos, _ := numberField(m, "nanoseconds", "_nanoseconds")
	return ok(time.Unix(int64(secs), int64(nanos)), loc)
}

func numberField(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, found := m[k]
		if !found {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int64:
			return float64(n), true
		case int:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
