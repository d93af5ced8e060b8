package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
)

// GeocodeCache persists address -> coordinate lookups in the geocode_cache
// table. Keys are whitespace-normalized before reads and writes.
type GeocodeCache struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewPostgresGeocodeCache(conn *sql.DB) *GeocodeCache {
	return &GeocodeCache{DB: conn, Dialect: db.Postgres}
}

func NewSqliteGeocodeCache(conn *sql.DB) *GeocodeCache {
	return &GeocodeCache{DB: conn, Dialect: db.SQLite}
}

// Fetch cached coordinates for the given addresses. Misses are absent from
// the returned map.
func (c *GeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if c.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	keys := uniqueKeys(addresses)
	if len(keys) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	where, args := c.Dialect.InClause("address", keys)
	q := fmt.Sprintf(`
	SELECT address, lat, lon
	FROM geocode_cache
	WHERE %s;
	`, where)

	rows, err := c.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(keys))
	for rows.Next() {
		var addr string
		var coord domain.Coordinates
		if err := rows.Scan(&addr, &coord.Lat, &coord.Lon); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = coord
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store address -> coordinate mappings, replacing existing entries.
func (c *GeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.PutMany")(&err)

	if c.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	d := c.Dialect
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO geocode_cache (address, lat, lon)
	VALUES (%s, %s, %s)
	ON CONFLICT (address) DO UPDATE
	SET lat = excluded.lat,
		lon = excluded.lon;
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3)))
	if err != nil {
		return fmt.Errorf("put geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, coord := range results {
		key := NormalizeKey(addr)
		if key == "" {
			return errors.New("put geocode cache: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, key, coord.Lat, coord.Lon); err != nil {
			return fmt.Errorf("put geocode cache address=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put geocode cache: commit: %w", err)
	}

	return nil
}
