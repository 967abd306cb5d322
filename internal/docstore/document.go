package docstore

import (
	"context"
	"time"
)

// Document is a single schemaless record of a collection.
type Document struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Store is the generic document-store client the series adapter reads from.
type Store interface {
	// QueryRange returns the documents of collection whose dateField lies in [from, to),
	// ordered by that field. Stores may refuse the query (e.g. the field is not range-comparable
	// for some documents); callers are expected to fall back to All.
	QueryRange(ctx context.Context, collection, dateField string, from, to time.Time) ([]Document, error)
	// All returns a snapshot read of the whole collection.
	All(ctx context.Context, collection string) ([]Document, error)
	Put(ctx context.Context, collection string, doc Document) (*Document, error)
}
