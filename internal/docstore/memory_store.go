package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps collections in memory. Used in tests and for local development.
// Its range query only understands RFC 3339 / date-only strings and native times, and
// fails otherwise, just like the Postgres implementation.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	failing     map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
		failing:     make(map[string]error),
	}
}

// FailCollection makes every read of collection return err (nil clears it).
func (m *MemoryStore) FailCollection(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failing, collection)
		return
	}
	m.failing[collection] = err
}

func (m *MemoryStore) QueryRange(
	_ context.Context,
	collection, dateField string,
	from, to time.Time,
) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failing[collection]; err != nil {
		return nil, err
	}

	type keyed struct {
		doc Document
		at  time.Time
	}

	var matched []keyed
	for _, doc := range m.collections[collection] {
		at, err := rangeComparable(doc.Data[dateField], from.Location())
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		if !at.Before(from) && at.Before(to) {
			matched = append(matched, keyed{doc: doc, at: at})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].at.Equal(matched[j].at) {
			return matched[i].doc.ID < matched[j].doc.ID
		}
		return matched[i].at.Before(matched[j].at)
	})

	docs := make([]Document, 0, len(matched))
	for _, k := range matched {
		docs = append(docs, k.doc)
	}
	return docs, nil
}

func (m *MemoryStore) All(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failing[collection]; err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(m.collections[collection]))
	for _, doc := range m.collections[collection] {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].UpdatedAt.Equal(docs[j].UpdatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].UpdatedAt.Before(docs[j].UpdatedAt)
	})
	return docs, nil
}

func (m *MemoryStore) Put(_ context.Context, collection string, doc Document) (*Document, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}

	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = make(map[string]Document)
	}
	m.collections[collection][doc.ID] = doc

	return &doc, nil
}

// rangeComparable reads dateField like a timestamptz cast does; date-only strings are
// midnight in loc, the session zone of the query.
func rangeComparable(raw any, loc *time.Location) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t, nil
		}
		if t, err := time.ParseInLocation("2006-01-02", v, loc); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("invalid input syntax for timestamp: %q", v)
	default:
		return time.Time{}, fmt.Errorf("cannot cast %T to timestamp", raw)
	}
}
