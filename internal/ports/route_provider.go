package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Driving distance, duration and path between two locations.
type Route struct {
	DistanceMiles float64
	DurationHours float64
	Geometry      domain.Geometry
}

// Contract for retrieving a drivable route between two locations.
type RouteProvider interface {
	// Return the route from origin to destination. Address locations are
	// resolved by the provider.
	GetRoute(ctx context.Context, origin, destination domain.Location) (Route, error)
}
