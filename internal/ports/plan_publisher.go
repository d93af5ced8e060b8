package ports

import (
	"context"
	"time"
	"trip-planner-service/internal/domain"
)

// Event emitted after a trip has been planned and stored.
type TripPlanned struct {
	TripID              string             `json:"trip_id"`
	PlannedAt           time.Time          `json:"planned_at"`
	Pickup              domain.Location    `json:"pickup_location"`
	Dropoff             domain.Location    `json:"dropoff_location"`
	RemainingCycleHours float64            `json:"remaining_cycle_hours"`
	Summary             domain.TripSummary `json:"summary"`
}

type PlanPublisher interface {
	PublishTripPlanned(ctx context.Context, ev TripPlanned) error
}
