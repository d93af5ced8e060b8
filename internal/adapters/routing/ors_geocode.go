package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocodeSearch resolves one address via /geocode/search.
func (o *ORSRouteProvider) geocodeSearch(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocodeSearch")(&err)

	req, err := o.newRequest(ctx, http.MethodGet, o.baseURL+"/geocode/search", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", address)
	if o.country != "" {
		q.Set("boundary.country", o.country)
	}
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	body, err := o.do("geocode", req)
	if err != nil {
		return domain.Coordinates{}, err
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.Coordinates{}, &domain.UpstreamError{
			Service: upstreamService,
			Msg:     fmt.Sprintf("decode geocode response: %v", err),
			Raw:     body,
		}
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, &domain.UpstreamError{
			Service: upstreamService,
			Msg:     fmt.Sprintf("Could not geocode address: %s", address),
			Raw:     body,
		}
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return domain.Coordinates{}, &domain.UpstreamError{
			Service: upstreamService,
			Msg:     fmt.Sprintf("invalid coordinate format for %q", address),
			Raw:     body,
		}
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}

// Autocomplete proxies /geocode/autocomplete and returns the body unchanged.
func (o *ORSRouteProvider) Autocomplete(ctx context.Context, text string) (_ json.RawMessage, err error) {
	defer obs.Time(ctx, "ors.Autocomplete")(&err)

	req, err := o.newRequest(ctx, http.MethodGet, o.baseURL+"/geocode/autocomplete", nil)
	if err != nil {
		return nil, fmt.Errorf("autocomplete request: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", text)
	req.URL.RawQuery = q.Encode()

	body, err := o.do("autocomplete", req)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, &domain.UpstreamError{
			Service: upstreamService,
			Msg:     "autocomplete returned a non-JSON body",
			Raw:     body,
		}
	}

	return json.RawMessage(body), nil
}
