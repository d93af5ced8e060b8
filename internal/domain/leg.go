package domain

import "fmt"

// LegRole decides which on-duty work closes a leg.
type LegRole int

const (
	RoleNone LegRole = iota
	RoleToPickup
	RoleToDropoff
)

func (r LegRole) String() string {
	switch r {
	case RoleToPickup:
		return "to_pickup"
	case RoleToDropoff:
		return "to_dropoff"
	}
	return "none"
}

func (r LegRole) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *LegRole) UnmarshalText(b []byte) error {
	switch string(b) {
	case "to_pickup":
		*r = RoleToPickup
	case "to_dropoff":
		*r = RoleToDropoff
	case "none", "":
		*r = RoleNone
	default:
		return fmt.Errorf("unknown leg role %q", b)
	}
	return nil
}

const (
	LabelCurrentToPickup = "Current → Pickup"
	LabelPickupToDropoff = "Pickup → Dropoff"
)

// Represents one origin->destination segment of a trip.
// Legs are produced by a RouteProvider and are not modified afterwards.
type Leg struct {
	Label         string   `json:"label"`
	Role          LegRole  `json:"role"`
	DistanceMiles float64  `json:"distance_miles"`
	DurationHours float64  `json:"duration_hours"`
	Geometry      Geometry `json:"geometry"`
}
