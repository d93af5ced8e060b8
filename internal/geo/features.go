package geo

import (
	"trip-planner-service/internal/domain"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/rs/zerolog/log"
)

// FeatureCollection is the map-renderable output of a plan.
// It marshals as a GeoJSON FeatureCollection with [lon, lat] coordinates.
type FeatureCollection = geom.GeoJSONFeatureCollection

const routeFeatureType = "route"

// RouteFeature builds the LineString for one leg from decoded (lat, lon) points.
// A zero-length leg yields one point or repeated points; they are kept as-is.
func RouteFeature(label string, points []domain.Coordinates) geom.GeoJSONFeature {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.Lon, p.Lat)
	}
	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY), geom.DisableAllValidations)
	if err != nil {
		log.Warn().Err(err).Str("label", label).Msg("route line dropped to empty")
		ls = geom.LineString{}
	}

	return geom.GeoJSONFeature{
		Geometry: ls.AsGeometry(),
		Properties: map[string]interface{}{
			"type":  routeFeatureType,
			"label": label,
		},
	}
}

// StopFeature builds the Point marker for a logged stop.
func StopFeature(s domain.Stop) geom.GeoJSONFeature {
	pt, err := geom.XY{X: s.Location.Lon, Y: s.Location.Lat}.AsPoint(geom.DisableAllValidations)
	if err != nil {
		log.Warn().Err(err).Str("stop", string(s.Type)).Msg("stop point dropped to empty")
		pt = geom.Point{}
	}

	return geom.GeoJSONFeature{
		Geometry: pt.AsGeometry(),
		Properties: map[string]interface{}{
			"type": s.Type.FeatureType(),
		},
	}
}

// FeatureType reads back the "type" property of a feature.
func FeatureType(f geom.GeoJSONFeature) string {
	t, _ := f.Properties["type"].(string)
	return t
}
