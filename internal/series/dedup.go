package series

import (
	"sort"
	"time"

	"github.com/2beens/healthdash/internal/calendar"
)

type record[T any] struct {
	day       calendar.Day
	docID     string
	updatedAt time.Time
	value     T
}

// newer reports whether r wins over other for the same day: the latest store
// update wins, ties go to the larger document id. Fetch order never matters.
func (r record[T]) newer(other record[T]) bool {
	if !r.updatedAt.Equal(other.updatedAt) {
		return r.updatedAt.After(other.updatedAt)
	}
	return r.docID > other.docID
}

// latestPerDay keeps one record per day and returns them oldest first.
func latestPerDay[T any](records []record[T]) []record[T] {
	byDay := make(map[calendar.Day]record[T], len(records))
	for _, r := range records {
		current, exists := byDay[r.day]
		if !exists || r.newer(current) {
			byDay[r.day] = r
		}
	}

	deduped := make([]record[T], 0, len(byDay))
	for _, r := range byDay {
		deduped = append(deduped, r)
	}
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].day.Before(deduped[j].day)
	})

	return deduped
}

func values[T any](records []record[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		out = append(out, r.value)
	}
	return out
}
