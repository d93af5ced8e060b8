package geo

import (
	"math"
	"trip-planner-service/internal/domain"
)

// Interpolate returns the point reached at progress ∈ [0,1] along g.
// See PointAt for the sampling rule.
func Interpolate(g domain.Geometry, progress float64) domain.Coordinates {
	return PointAt(Decode(g), progress)
}

// PointAt picks points[floor(progress*(N-1))]. Points are treated as
// equally spaced; the distance between vertices is ignored. An empty
// path yields the (0,0) sentinel.
func PointAt(points []domain.Coordinates, progress float64) domain.Coordinates {
	if len(points) == 0 {
		return domain.Coordinates{}
	}

	if math.IsNaN(progress) || progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	idx := int(math.Floor(progress * float64(len(points)-1)))
	return points[idx]
}
