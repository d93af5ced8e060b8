package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func sampleTrip(id string, created time.Time) *domain.Trip {
	return &domain.Trip{
		ID:              id,
		CurrentLocation: domain.AddressLocation("Dallas, TX"),
		PickupLocation:  domain.CoordLocation(35.4676, -97.5164),
		DropoffLocation: domain.AddressLocation("Denver, CO"),
		CycleUsedHours:  12.5,
		Summary: domain.TripSummary{
			DistanceMiles: 880.4,
			DrivingHours:  16,
			DutyHours:     28.5,
			Breaks:        1,
			DailyResets:   1,
		},
		RemainingCycleHours: 39.5,
		Legs: []domain.Leg{
			{
				Label:         domain.LabelCurrentToPickup,
				Role:          domain.RoleToPickup,
				DistanceMiles: 206.1,
				DurationHours: 3.25,
				Geometry:      domain.EncodedGeometry("_p~iF~ps|U_ulLnnqC"),
			},
			{
				Label:         domain.LabelPickupToDropoff,
				Role:          domain.RoleToDropoff,
				DistanceMiles: 674.3,
				DurationHours: 12.75,
				Geometry:      domain.CoordinateGeometry([][]float64{{-97.5, 35.4}, {-104.9, 39.7}}),
			},
		},
		Plan:      json.RawMessage(`{"remaining_cycle_hours":39.5}`),
		CreatedAt: created,
	}
}

func TestTripRepository_SaveAndGet(t *testing.T) {
	repo := NewSqliteTripRepository(openTestDB(t))
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, sampleTrip("trip-1", created)))

	got, err := repo.Get(ctx, "trip-1")
	require.NoError(t, err)

	assert.Equal(t, "trip-1", got.ID)
	assert.Equal(t, "Dallas, TX", got.CurrentLocation.Address)
	require.NotNil(t, got.PickupLocation.Coord)
	assert.Equal(t, 35.4676, got.PickupLocation.Coord.Lat)
	assert.Equal(t, 12.5, got.CycleUsedHours)
	assert.Equal(t, 39.5, got.RemainingCycleHours)
	assert.Equal(t, 1, got.Summary.DailyResets)
	assert.Equal(t, created, got.CreatedAt)
	assert.JSONEq(t, `{"remaining_cycle_hours":39.5}`, string(got.Plan))

	require.Len(t, got.Legs, 2)
	assert.Equal(t, domain.RoleToPickup, got.Legs[0].Role)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", got.Legs[0].Geometry.Encoded)
	assert.Equal(t, domain.RoleToDropoff, got.Legs[1].Role)
	assert.Equal(t, [][]float64{{-97.5, 35.4}, {-104.9, 39.7}}, got.Legs[1].Geometry.Coordinates)
}

func TestTripRepository_GetUnknown(t *testing.T) {
	repo := NewSqliteTripRepository(openTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripRepository_ListNewestFirst(t *testing.T) {
	repo := NewSqliteTripRepository(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, sampleTrip(id, base.Add(time.Duration(i)*time.Hour))))
	}

	trips, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "c", trips[0].ID)
	assert.Equal(t, "b", trips[1].ID)
	assert.Empty(t, trips[0].Legs)
	assert.Nil(t, trips[0].Plan)

	_, err = repo.List(ctx, 0)
	assert.Error(t, err)
}

func TestTripRepository_DuplicateIDFails(t *testing.T) {
	repo := NewSqliteTripRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleTrip("dup", time.Now())))
	assert.Error(t, repo.Save(ctx, sampleTrip("dup", time.Now())))
}

func TestTripRepository_NilDB(t *testing.T) {
	repo := &TripRepository{}
	assert.Error(t, repo.Save(context.Background(), sampleTrip("x", time.Now())))
}

func TestSeedGeocodeCacheFromJSON(t *testing.T) {
	conn := openTestDB(t)
	geocodes := cache.NewSqliteGeocodeCache(conn)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"address": "Dallas,  TX", "lat": 32.7767, "lon": -96.797},
		{"address": "Denver, CO", "lat": 39.7392, "lon": -104.9903}
	]`), 0o644))

	n, err := SeedGeocodeCacheFromJSON(ctx, geocodes, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := geocodes.GetMany(ctx, []string{"Dallas, TX"})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 32.7767, Lon: -96.797}, got["Dallas, TX"])
}

func TestSeedGeocodeCacheFromJSON_Invalid(t *testing.T) {
	geocodes := cache.NewSqliteGeocodeCache(openTestDB(t))
	dir := t.TempDir()

	tests := map[string]string{
		"empty address": `[{"address": " ", "lat": 1, "lon": 1}]`,
		"out of range":  `[{"address": "x", "lat": 91, "lon": 1}]`,
		"not json":      `nope`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := SeedGeocodeCacheFromJSON(context.Background(), geocodes, path)
			assert.Error(t, err)
		})
	}

	_, err := SeedGeocodeCacheFromJSON(context.Background(), geocodes, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestTripRepository_ConstructorsSetDialect(t *testing.T) {
	conn := openTestDB(t)

	assert.Equal(t, db.Postgres, NewPostgresTripRepository(conn).Dialect)
	assert.Equal(t, db.SQLite, NewSqliteTripRepository(conn).Dialect)
	assert.Same(t, conn, NewSqliteTripRepository(conn).DB)
}
