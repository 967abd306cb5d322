package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/healthdash/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
)

// querier is the part of *pgxpool.Pool the store needs (pgxmock satisfies it as well)
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PsqlStore struct {
	db querier
}

func NewPsqlStore(db querier) *PsqlStore {
	return &PsqlStore{
		db: db,
	}
}

func (s *PsqlStore) QueryRange(
	ctx context.Context,
	collection, dateField string,
	from, to time.Time,
) (_ []Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.queryRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))
	span.SetAttributes(attribute.String("date_field", dateField))
	span.SetAttributes(attribute.String("from", from.String()))
	span.SetAttributes(attribute.String("to", to.String()))

	// the cast fails for documents whose date field is not a timestamp string
	// (e.g. a {seconds, nanoseconds} object), which makes the whole query fail
	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, data, updated_at
			FROM documents
			WHERE collection = $1
				AND (data->>$2)::timestamptz >= $3
				AND (data->>$2)::timestamptz < $4
			ORDER BY (data->>$2)::timestamptz ASC;`,
		collection, dateField, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}
	defer rows.Close()

	docs, err := rows2documents(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2documents: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(docs)))
	return docs, nil
}

func (s *PsqlStore) All(ctx context.Context, collection string) (_ []Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))

	rows, err := s.db.Query(
		ctx,
		`SELECT id, data, updated_at FROM documents WHERE collection = $1 ORDER BY updated_at ASC, id ASC;`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	defer rows.Close()

	docs, err := rows2documents(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2documents: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(docs)))
	return docs, nil
}

func (s *PsqlStore) Put(ctx context.Context, collection string, doc Document) (_ *Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if collection == "" {
		return nil, errors.New("collection empty")
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}
	span.SetAttributes(attribute.String("collection", collection))
	span.SetAttributes(attribute.String("id", doc.ID))

	dataJson, err := json.Marshal(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}

	if _, err := s.db.Exec(
		ctx,
		`INSERT INTO documents (collection, id, data, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at;`,
		collection, doc.ID, dataJson, doc.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert document: %w", err)
	}

	return &doc, nil
}

func rows2documents(rows pgx.Rows) ([]Document, error) {
	docs := make([]Document, 0)
	for rows.Next() {
		var id string
		var dataBytes []byte
		var updatedAt time.Time
		if err := rows.Scan(&id, &dataBytes, &updatedAt); err != nil {
			return nil, err
		}

		doc := Document{
			ID:        id,
			UpdatedAt: updatedAt,
			Data:      make(map[string]any),
		}
		if len(dataBytes) > 0 {
			if err := json.Unmarshal(dataBytes, &doc.Data); err != nil {
				return nil, fmt.Errorf("unmarshal data for document %s: %w", id, err)
			}
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
