package geo

import (
	"trip-planner-service/internal/domain"

	polyline "github.com/twpayne/go-polyline"
)

// Decode normalizes a leg geometry into ordered (lat, lon) points.
//
// Encoded polylines use the Google algorithm at 1e-5 precision and already
// carry (lat, lon) pairs. Coordinate lists are GeoJSON-ordered [lon, lat]
// and are swapped. Empty or unrecognized input yields an empty slice; a
// list containing a pair with fewer than two values counts as unrecognized.
func Decode(g domain.Geometry) []domain.Coordinates {
	if g.Encoded != "" {
		return decodeEncoded(g.Encoded)
	}
	return decodePairs(g.Coordinates)
}

func decodeEncoded(s string) []domain.Coordinates {
	coords, rest, err := polyline.DecodeCoords([]byte(s))
	if err != nil || len(rest) != 0 {
		return []domain.Coordinates{}
	}

	out := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		out = append(out, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return out
}

func decodePairs(pairs [][]float64) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 {
			return []domain.Coordinates{}
		}
		out = append(out, domain.Coordinates{Lat: p[1], Lon: p[0]})
	}
	return out
}
