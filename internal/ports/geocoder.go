package ports

import (
	"context"
	"encoding/json"
	"trip-planner-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Optional extension that proxies address suggestions for partial input.
type LocationSearcher interface {
	// Return the upstream suggestion document unchanged.
	Autocomplete(ctx context.Context, text string) (json.RawMessage, error)
}
