package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Location is a trip endpoint given either as a free-text address or
// as a coordinate pair. Coordinate locations skip geocoding.
type Location struct {
	Address string
	Coord   *Coordinates
}

func AddressLocation(address string) Location {
	return Location{Address: address}
}

func CoordLocation(lat, lon float64) Location {
	return Location{Coord: &Coordinates{Lat: lat, Lon: lon}}
}

func (l Location) IsZero() bool {
	return l.Coord == nil && strings.TrimSpace(l.Address) == ""
}

func (l Location) String() string {
	if l.Coord != nil {
		return l.Coord.Key()
	}
	return strings.Join(strings.Fields(l.Address), " ")
}

// UnmarshalJSON accepts "address" or [lat, lon].
func (l *Location) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = Location{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = AddressLocation(strings.TrimSpace(s))
		return nil
	case '[':
		var pair []float64
		if err := json.Unmarshal(b, &pair); err != nil {
			return errors.New("location must be an address or [lat, lon]")
		}
		if len(pair) != 2 {
			return errors.New("location coordinates must have exactly two values")
		}
		if pair[0] < -90 || pair[0] > 90 || pair[1] < -180 || pair[1] > 180 {
			return errors.New("location coordinates out of range")
		}
		*l = CoordLocation(pair[0], pair[1])
		return nil
	}

	return errors.New("location must be an address or [lat, lon]")
}

func (l Location) MarshalJSON() ([]byte, error) {
	if l.Coord != nil {
		return json.Marshal(l.Coord.LatLonList())
	}
	return json.Marshal(l.Address)
}
