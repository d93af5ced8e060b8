package domain

import (
	"encoding/json"
	"time"
)

// Aggregate totals of a planned trip.
type TripSummary struct {
	DistanceMiles float64 `json:"distance_miles"`
	DrivingHours  float64 `json:"driving_hours"`
	DutyHours     float64 `json:"duration_hours"`
	FuelStops     int     `json:"fuel_stops"`
	Breaks        int     `json:"breaks"`
	DailyResets   int     `json:"daily_resets"`
}

// Represents a planned trip as stored after a successful simulation.
// Plan holds the full plan document returned to the client so a stored
// trip can be replayed without re-running the simulation.
type Trip struct {
	ID                  string
	CurrentLocation     Location
	PickupLocation      Location
	DropoffLocation     Location
	CycleUsedHours      float64
	Summary             TripSummary
	RemainingCycleHours float64
	Legs                []Leg
	Plan                json.RawMessage
	CreatedAt           time.Time
}
