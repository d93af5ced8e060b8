package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// The DDL sticks to types both PostgreSQL and SQLite accept
// (DOUBLE PRECISION maps to REAL affinity in SQLite).
var schemaStatements = []string{
	`
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		cycle_used_hours DOUBLE PRECISION NOT NULL,
		total_distance_miles DOUBLE PRECISION NOT NULL,
		total_driving_hours DOUBLE PRECISION NOT NULL,
		total_duration_hours DOUBLE PRECISION NOT NULL,
		fuel_stops INTEGER NOT NULL,
		breaks INTEGER NOT NULL,
		daily_resets INTEGER NOT NULL,
		remaining_cycle_hours DOUBLE PRECISION NOT NULL,
		plan TEXT,
		created_at BIGINT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS trip_legs (
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		leg_index INTEGER NOT NULL,
		label TEXT NOT NULL,
		role TEXT NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		geometry TEXT,
		PRIMARY KEY (trip_id, leg_index)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS route_cache (
		route_key TEXT PRIMARY KEY,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		geometry TEXT
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at DESC);
	`,
}

// Create the trip and cache tables if they do not exist.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
