package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
)

// SQL-backed implementation of the TripRepository port. Locations and leg
// geometries are stored as their JSON forms; created_at is unix milliseconds.
type TripRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewPostgresTripRepository(conn *sql.DB) *TripRepository {
	return &TripRepository{DB: conn, Dialect: db.Postgres}
}

func NewSqliteTripRepository(conn *sql.DB) *TripRepository {
	return &TripRepository{DB: conn, Dialect: db.SQLite}
}

// Return a comma-separated run of n placeholders starting at 1.
func (r *TripRepository) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = r.Dialect.Placeholder(i + 1)
	}
	return strings.Join(ph, ", ")
}

// Store a trip and its legs in one transaction.
func (r *TripRepository) Save(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.Save")(&err)

	if r.DB == nil {
		return errors.New("trip repository: DB is nil")
	}
	if trip == nil || trip.ID == "" {
		return errors.New("save trip: trip id must not be empty")
	}

	locs := make([][]byte, 0, 3)
	for _, l := range []domain.Location{trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation} {
		b, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("save trip id=%s: encode location: %w", trip.ID, err)
		}
		locs = append(locs, b)
	}

	var plan sql.NullString
	if len(trip.Plan) > 0 {
		plan = sql.NullString{String: string(trip.Plan), Valid: true}
	}

	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip := fmt.Sprintf(`
	INSERT INTO trips (
		id,
		current_location,
		pickup_location,
		dropoff_location,
		cycle_used_hours,
		total_distance_miles,
		total_driving_hours,
		total_duration_hours,
		fuel_stops,
		breaks,
		daily_resets,
		remaining_cycle_hours,
		plan,
		created_at
	)
	VALUES (%s);
	`, r.placeholders(14))

	s := trip.Summary
	if _, err := tx.ExecContext(ctx, insertTrip,
		trip.ID,
		string(locs[0]), string(locs[1]), string(locs[2]),
		trip.CycleUsedHours,
		s.DistanceMiles, s.DrivingHours, s.DutyHours,
		s.FuelStops, s.Breaks, s.DailyResets,
		trip.RemainingCycleHours,
		plan,
		trip.CreatedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("save trip id=%s: insert trip: %w", trip.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO trip_legs (
		trip_id,
		leg_index,
		label,
		role,
		distance_miles,
		duration_hours,
		geometry
	)
	VALUES (%s);
	`, r.placeholders(7)))
	if err != nil {
		return fmt.Errorf("save trip id=%s: prepare leg insert: %w", trip.ID, err)
	}
	defer stmt.Close()

	for i, leg := range trip.Legs {
		var geometry sql.NullString
		if !leg.Geometry.IsEmpty() {
			b, err := json.Marshal(leg.Geometry)
			if err != nil {
				return fmt.Errorf("save trip id=%s: encode leg %d geometry: %w", trip.ID, i+1, err)
			}
			geometry = sql.NullString{String: string(b), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			trip.ID, i, leg.Label, leg.Role.String(), leg.DistanceMiles, leg.DurationHours, geometry,
		); err != nil {
			return fmt.Errorf("save trip id=%s: insert leg %d: %w", trip.ID, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip id=%s: commit tx: %w", trip.ID, err)
	}

	return nil
}

const tripColumns = `
		id,
		current_location,
		pickup_location,
		dropoff_location,
		cycle_used_hours,
		total_distance_miles,
		total_driving_hours,
		total_duration_hours,
		fuel_stops,
		breaks,
		daily_resets,
		remaining_cycle_hours,
		created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Scan the tripColumns of one row; extra receives any trailing columns.
func scanTrip(row rowScanner, extra ...any) (*domain.Trip, error) {
	var t domain.Trip
	var current, pickup, dropoff string
	var createdAt int64

	dest := []any{
		&t.ID,
		&current, &pickup, &dropoff,
		&t.CycleUsedHours,
		&t.Summary.DistanceMiles, &t.Summary.DrivingHours, &t.Summary.DutyHours,
		&t.Summary.FuelStops, &t.Summary.Breaks, &t.Summary.DailyResets,
		&t.RemainingCycleHours,
		&createdAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	for _, l := range []struct {
		raw string
		dst *domain.Location
	}{
		{current, &t.CurrentLocation},
		{pickup, &t.PickupLocation},
		{dropoff, &t.DropoffLocation},
	} {
		if err := json.Unmarshal([]byte(l.raw), l.dst); err != nil {
			return nil, fmt.Errorf("decode location %q: %w", l.raw, err)
		}
	}

	t.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &t, nil
}

// Retrieve a trip with its legs and stored plan.
func (r *TripRepository) Get(ctx context.Context, id string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "trips.Get")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	q := fmt.Sprintf(`
	SELECT %s, plan
	FROM trips
	WHERE id = %s;
	`, tripColumns, r.Dialect.Placeholder(1))

	var plan sql.NullString
	trip, err := scanTrip(r.DB.QueryRowContext(ctx, q, id), &plan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: %w", id, err)
	}
	if plan.Valid {
		trip.Plan = json.RawMessage(plan.String)
	}

	legs, err := r.legs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: %w", id, err)
	}
	trip.Legs = legs

	return trip, nil
}

func (r *TripRepository) legs(ctx context.Context, tripID string) ([]domain.Leg, error) {
	q := fmt.Sprintf(`
	SELECT
		label,
		role,
		distance_miles,
		duration_hours,
		geometry
	FROM trip_legs
	WHERE trip_id = %s
	ORDER BY leg_index;
	`, r.Dialect.Placeholder(1))

	rows, err := r.DB.QueryContext(ctx, q, tripID)
	if err != nil {
		return nil, fmt.Errorf("query trip_legs table: %w", err)
	}
	defer rows.Close()

	legs := make([]domain.Leg, 0, 2)
	for rows.Next() {
		var leg domain.Leg
		var role string
		var geometry sql.NullString
		if err := rows.Scan(&leg.Label, &role, &leg.DistanceMiles, &leg.DurationHours, &geometry); err != nil {
			return nil, fmt.Errorf("scan leg row: %w", err)
		}
		if err := leg.Role.UnmarshalText([]byte(role)); err != nil {
			return nil, fmt.Errorf("scan leg row: %w", err)
		}
		if geometry.Valid {
			_ = json.Unmarshal([]byte(geometry.String), &leg.Geometry)
		}
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leg row iteration: %w", err)
	}

	return legs, nil
}

// Return the most recent trips, newest first, without legs or plan.
func (r *TripRepository) List(ctx context.Context, limit int) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.List")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list trips: limit must be positive, got %d", limit)
	}

	q := fmt.Sprintf(`
	SELECT %s
	FROM trips
	ORDER BY created_at DESC, id
	LIMIT %s;
	`, tripColumns, r.Dialect.Placeholder(1))

	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, limit)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
