package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for storing and retrieving planned trips.
type TripRepository interface {
	// Store a planned trip together with its legs.
	Save(ctx context.Context, trip *domain.Trip) error
	// Retrieve a trip by ID; domain.ErrTripNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Trip, error)
	// List the most recent trips, newest first. Legs and plan are not loaded.
	List(ctx context.Context, limit int) ([]*domain.Trip, error)
}
