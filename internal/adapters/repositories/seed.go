package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type GeocodeSeed struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Prime the geocode cache from a JSON array of {address, lat, lon}.
// Returns the number of entries written.
func SeedGeocodeCacheFromJSON(ctx context.Context, cache ports.GeocodeCache, jsonPath string) (int, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed geocode cache: read %q: %w", jsonPath, err)
	}

	var data []GeocodeSeed
	if err := json.Unmarshal(b, &data); err != nil {
		return 0, fmt.Errorf("seed geocode cache: parse json: %w", err)
	}

	entries := make(map[string]domain.Coordinates, len(data))
	for i, item := range data {
		addr := strings.TrimSpace(item.Address)
		if addr == "" {
			return 0, fmt.Errorf("seed geocode cache: item at index %d: address cannot be empty", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lon < -180 || item.Lon > 180 {
			return 0, fmt.Errorf("seed geocode cache: item %q: coordinates out of range", addr)
		}
		entries[addr] = domain.Coordinates{Lat: item.Lat, Lon: item.Lon}
	}

	if err := cache.PutMany(ctx, entries); err != nil {
		return 0, fmt.Errorf("seed geocode cache: %w", err)
	}

	return len(entries), nil
}
