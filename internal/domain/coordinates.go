package domain

import "fmt"

// Immutable geographic coordinates. Internal order is (lat, lon);
// external formats (GeoJSON, ORS) use [lon, lat].
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Return coordinates as [lat, lon] for map markers.
func (c Coordinates) LatLonList() []float64 { return []float64{c.Lat, c.Lon} }

// Key renders the coordinate at a fixed precision so equal points share cache entries.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
