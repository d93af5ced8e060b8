package domain

import "encoding/json"

// DutyStatus is the state a driver is in for one log segment.
type DutyStatus int

const (
	StatusDriving DutyStatus = iota
	StatusBreak
	StatusFuel
	StatusDailyReset
	StatusPickup
	StatusDropoff
)

var dutyStatusLabels = map[DutyStatus]string{
	StatusDriving:    "Driving",
	StatusBreak:      "Break (Off Duty)",
	StatusFuel:       "On Duty (Fuel)",
	StatusDailyReset: "Off Duty (Daily Reset)",
	StatusPickup:     "On Duty (Pickup)",
	StatusDropoff:    "On Duty (Dropoff)",
}

func (s DutyStatus) String() string {
	if l, ok := dutyStatusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

func (s DutyStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// StopType returns the marker type used for stops logged with this status.
func (s DutyStatus) StopType() StopType {
	switch s {
	case StatusBreak:
		return StopBreak
	case StatusFuel:
		return StopFuel
	case StatusDailyReset:
		return StopDailyReset
	case StatusPickup:
		return StopPickup
	case StatusDropoff:
		return StopDropoff
	}
	return StopDriving
}

// One entry of the chronological duty log.
type DutySegment struct {
	Status        DutyStatus `json:"status"`
	DurationHours float64    `json:"duration_hours"`
}

type StopType string

const (
	StopDriving    StopType = "Driving"
	StopBreak      StopType = "Break"
	StopFuel       StopType = "Fuel"
	StopDailyReset StopType = "Daily Reset"
	StopPickup     StopType = "Pickup"
	StopDropoff    StopType = "Dropoff"
)

// FeatureType is the GeoJSON "type" property for the stop's marker.
func (t StopType) FeatureType() string {
	switch t {
	case StopBreak:
		return "break"
	case StopFuel:
		return "fuel"
	case StopDailyReset:
		return "daily_reset"
	case StopPickup:
		return "pickup"
	case StopDropoff:
		return "dropoff"
	}
	return "driving"
}

// A logged event placed on the map.
type Stop struct {
	Type          StopType
	DurationHours float64
	Location      Coordinates
}

func (s Stop) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type          StopType  `json:"type"`
		DurationHours float64   `json:"duration_hours"`
		Location      []float64 `json:"location"`
	}{s.Type, s.DurationHours, s.Location.LatLonList()})
}
