package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// RouteCache persists directions results in the route_cache table. The
// geometry is stored as its JSON form.
type RouteCache struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewPostgresRouteCache(conn *sql.DB) *RouteCache {
	return &RouteCache{DB: conn, Dialect: db.Postgres}
}

func NewSqliteRouteCache(conn *sql.DB) *RouteCache {
	return &RouteCache{DB: conn, Dialect: db.SQLite}
}

func (c *RouteCache) Get(ctx context.Context, key string) (_ ports.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.DB == nil {
		return ports.Route{}, false, errors.New("route cache: db is nil")
	}

	if key == "" {
		return ports.Route{}, false, errors.New("get route cache: key must not be empty")
	}

	q := fmt.Sprintf(`
	SELECT distance_miles, duration_hours, geometry
	FROM route_cache
	WHERE route_key = %s;
	`, c.Dialect.Placeholder(1))

	var r ports.Route
	var geometry sql.NullString
	err = c.DB.QueryRowContext(ctx, q, key).Scan(&r.DistanceMiles, &r.DurationHours, &geometry)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Route{}, false, nil
	}
	if err != nil {
		return ports.Route{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	if geometry.Valid {
		// Geometry decoding never fails; unknown shapes come back empty.
		_ = json.Unmarshal([]byte(geometry.String), &r.Geometry)
	}

	return r, true, nil
}

func (c *RouteCache) Put(ctx context.Context, key string, route ports.Route) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	if c.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if key == "" {
		return errors.New("put route cache: key must not be empty")
	}

	var geometry sql.NullString
	if !route.Geometry.IsEmpty() {
		b, err := json.Marshal(route.Geometry)
		if err != nil {
			return fmt.Errorf("put route cache: encode geometry: %w", err)
		}
		geometry = sql.NullString{String: string(b), Valid: true}
	}

	d := c.Dialect
	q := fmt.Sprintf(`
	INSERT INTO route_cache (route_key, distance_miles, duration_hours, geometry)
	VALUES (%s, %s, %s, %s)
	ON CONFLICT (route_key) DO UPDATE
	SET distance_miles = excluded.distance_miles,
		duration_hours = excluded.duration_hours,
		geometry = excluded.geometry;
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4))

	if _, err := c.DB.ExecContext(ctx, q, key, route.DistanceMiles, route.DurationHours, geometry); err != nil {
		return fmt.Errorf("put route cache key=%q: %w", key, err)
	}

	return nil
}

// RouteKey builds the cache key for a directions request.
func RouteKey(profile string, origin, destination domain.Coordinates) string {
	return fmt.Sprintf("%s|%s|%s", profile, origin.Key(), destination.Key())
}
