package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry domain.Geometry `json:"geometry"`
	} `json:"routes"`
}

// fetchDirections retrieves one origin->destination route from the
// directions endpoint for the configured profile. The requested locations
// are only used to label errors.
func (o *ORSRouteProvider) fetchDirections(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	origin domain.Location,
	destination domain.Location,
) (_ ports.Route, err error) {
	defer obs.Time(ctx, "ors.fetchDirections")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{from.CoordsToList(), to.CoordsToList()},
	})
	if err != nil {
		return ports.Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	req, err := o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.Route{}, fmt.Errorf("directions request: %w", err)
	}

	body, err := o.do("directions", req)
	if err != nil {
		return ports.Route{}, err
	}

	var dr directionsResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return ports.Route{}, &domain.UpstreamError{
			Service: upstreamService,
			Msg:     fmt.Sprintf("decode directions response: %v", err),
			Raw:     body,
		}
	}

	if len(dr.Routes) == 0 {
		return ports.Route{}, &domain.UpstreamError{
			Service: upstreamService,
			Msg:     fmt.Sprintf("No route found between %s and %s", origin, destination),
			Raw:     body,
		}
	}

	r := dr.Routes[0]
	return ports.Route{
		DistanceMiles: roundTo(r.Summary.Distance/metersPerMile, 1),
		DurationHours: roundTo(r.Summary.Duration/secondsPerHour, 2),
		Geometry:      r.Geometry,
	}, nil
}
