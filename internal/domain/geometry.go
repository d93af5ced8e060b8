package domain

import (
	"bytes"
	"encoding/json"
)

// Geometry is a leg path as returned by the routing service: either an
// encoded polyline or a list of [lon, lat] pairs. Unrecognized JSON
// decodes to an empty Geometry rather than failing.
type Geometry struct {
	Encoded     string
	Coordinates [][]float64
}

func EncodedGeometry(s string) Geometry { return Geometry{Encoded: s} }

func CoordinateGeometry(pairs [][]float64) Geometry { return Geometry{Coordinates: pairs} }

func (g Geometry) IsEmpty() bool {
	return g.Encoded == "" && len(g.Coordinates) == 0
}

func (g *Geometry) UnmarshalJSON(b []byte) error {
	*g = Geometry{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			g.Encoded = s
		}
	case '[':
		var pairs [][]float64
		if err := json.Unmarshal(b, &pairs); err == nil {
			g.Coordinates = pairs
		}
	}

	return nil
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	switch {
	case g.Encoded != "":
		return json.Marshal(g.Encoded)
	case len(g.Coordinates) > 0:
		return json.Marshal(g.Coordinates)
	}
	return []byte("null"), nil
}
