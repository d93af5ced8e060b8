package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Persistent address -> coordinate cache. Keys are normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// Persistent route cache keyed by a caller-built origin/destination key.
type RouteCache interface {
	// Return the cached route and whether it was found.
	Get(ctx context.Context, key string) (Route, bool, error)
	Put(ctx context.Context, key string, route Route) error
}
