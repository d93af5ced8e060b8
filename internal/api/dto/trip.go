package dto

import (
	"encoding/json"
	"time"
	"trip-planner-service/internal/domain"
)

type TripResponse struct {
	ID                  string             `json:"id"`
	CurrentLocation     domain.Location    `json:"current_location"`
	PickupLocation      domain.Location    `json:"pickup_location"`
	DropoffLocation     domain.Location    `json:"dropoff_location"`
	CycleUsedHours      float64            `json:"cycle_used"`
	Summary             domain.TripSummary `json:"summary"`
	RemainingCycleHours float64            `json:"remaining_cycle_hours"`
	CreatedAt           time.Time          `json:"created_at"`
	Legs                []domain.Leg       `json:"legs,omitempty"`
	Plan                json.RawMessage    `json:"plan,omitempty"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

func NewTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:                  t.ID,
		CurrentLocation:     t.CurrentLocation,
		PickupLocation:      t.PickupLocation,
		DropoffLocation:     t.DropoffLocation,
		CycleUsedHours:      t.CycleUsedHours,
		Summary:             t.Summary,
		RemainingCycleHours: t.RemainingCycleHours,
		CreatedAt:           t.CreatedAt,
		Legs:                t.Legs,
		Plan:                t.Plan,
	}
}
