package db

import (
	"context"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewDBPoolParams struct {
	DBHost         string
	DBPort         string
	DBName         string
	DBPassword     string
	TracingEnabled bool
	// Location is sent as the session timezone, so date casts in queries match the dashboard's calendar.
	Location *time.Location
}

func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(params))
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if params.Location != nil {
		poolConfig.ConnConfig.RuntimeParams["timezone"] = params.Location.String()
	}

	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return db, nil
}

func ConnString(params NewDBPoolParams) string {
	userInfo := "postgres"
	if params.DBPassword != "" {
		userInfo += ":" + params.DBPassword
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		userInfo, params.DBHost, params.DBPort, params.DBName,
	)
}
