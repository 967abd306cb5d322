package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPsqlStore_QueryRange(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPsqlStore(mockPool)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 90)
	updatedAt := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery("SELECT id, data, updated_at FROM documents").
		WithArgs("weights", "datum", from, to).
		WillReturnRows(pgxmock.NewRows([]string{"id", "data", "updated_at"}).
			AddRow("w1", []byte(`{"datum":"2024-01-10","gewicht":80.2}`), updatedAt).
			AddRow("w2", []byte(`{"datum":"2024-01-11","gewicht":79.9}`), updatedAt))

	docs, err := store.QueryRange(context.Background(), "weights", "datum", from, to)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "w1", docs[0].ID)
	assert.Equal(t, "2024-01-10", docs[0].Data["datum"])
	assert.Equal(t, 80.2, docs[0].Data["gewicht"])
	assert.Equal(t, updatedAt, docs[0].UpdatedAt)
	assert.Equal(t, "w2", docs[1].ID)

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPsqlStore_QueryRange_CastFailure(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPsqlStore(mockPool)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	castErr := errors.New("invalid input syntax for type timestamp with time zone")
	mockPool.ExpectQuery("SELECT id, data, updated_at FROM documents").
		WithArgs("sleep", "date", from, to).
		WillReturnError(castErr)

	docs, err := store.QueryRange(context.Background(), "sleep", "date", from, to)
	require.Error(t, err)
	assert.ErrorIs(t, err, castErr)
	assert.Nil(t, docs)

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPsqlStore_All(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPsqlStore(mockPool)
	updatedAt := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery("SELECT id, data, updated_at FROM documents WHERE collection").
		WithArgs("sleep").
		WillReturnRows(pgxmock.NewRows([]string{"id", "data", "updated_at"}).
			AddRow("s1", []byte(`{"date":{"seconds":1704844800,"nanoseconds":0},"quality":4}`), updatedAt).
			AddRow("s2", []byte(nil), updatedAt))

	docs, err := store.All(context.Background(), "sleep")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	dateObj, ok := docs[0].Data["date"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1704844800), dateObj["seconds"])
	assert.Empty(t, docs[1].Data)
	assert.NotNil(t, docs[1].Data)

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPsqlStore_All_BadJson(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPsqlStore(mockPool)

	mockPool.ExpectQuery("SELECT id, data, updated_at FROM documents WHERE collection").
		WithArgs("steps").
		WillReturnRows(pgxmock.NewRows([]string{"id", "data", "updated_at"}).
			AddRow("st1", []byte(`{not json`), time.Now()))

	docs, err := store.All(context.Background(), "steps")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "st1")
	assert.Nil(t, docs)
}

func TestPsqlStore_Put(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPsqlStore(mockPool)

	mockPool.ExpectExec("INSERT INTO documents").
		WithArgs("steps", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	doc, err := store.Put(context.Background(), "steps", Document{
		Data: map[string]any{"date": "2024-01-10", "steps": 8000},
	})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.UpdatedAt.IsZero())

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPsqlStore_Put_EmptyCollection(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPsqlStore(mockPool)
	doc, err := store.Put(context.Background(), "", Document{ID: "x"})
	assert.Error(t, err)
	assert.Nil(t, doc)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
