package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/rs/zerolog/log"
)

const (
	metersPerMile  = 1609.34
	secondsPerHour = 3600
)

// ORSRouteProvider implements RouteProvider, Geocoder and LocationSearcher
// using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode and route caching
//   - Directions and geocoding calls (no retries)
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	country      string
	routeCache   ports.RouteCache
	geocodeCache ports.GeocodeCache
	metrics      ports.PlannerMetrics
}

// Both caches and metrics may be nil.
func NewORSRouteProvider(
	apiKey string,
	baseURL string,
	profile string,
	routeCache ports.RouteCache,
	geocodeCache ports.GeocodeCache,
	metrics ports.PlannerMetrics,
) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		return nil, errors.New("ORS base url is empty")
	}
	if profile == "" {
		return nil, errors.New("ORS profile is empty")
	}

	provider := &ORSRouteProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      baseURL,
		profile:      profile,
		routeCache:   routeCache,
		geocodeCache: geocodeCache,
		metrics:      metrics,
	}

	return provider, nil
}

// SetGeocodeCountry limits address search to one ISO country code.
// An empty code searches worldwide.
func (o *ORSRouteProvider) SetGeocodeCountry(code string) {
	o.country = code
}

// Resolve both endpoints, then return the directions result from cache or ORS.
func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Location,
	destination domain.Location,
) (_ ports.Route, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if origin.IsZero() || destination.IsZero() {
		return ports.Route{}, errors.New("get ORS route: origin and destination must be non-empty")
	}

	from, err := o.resolve(ctx, origin)
	if err != nil {
		return ports.Route{}, err
	}
	to, err := o.resolve(ctx, destination)
	if err != nil {
		return ports.Route{}, err
	}

	key := cache.RouteKey(o.profile, from, to)
	if o.routeCache != nil {
		cached, ok, err := o.routeCache.Get(ctx, key)
		if err != nil {
			return ports.Route{}, fmt.Errorf("ORS get route cache: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	route, err := o.fetchDirections(ctx, from, to, origin, destination)
	if err != nil {
		return ports.Route{}, err
	}

	if o.routeCache != nil {
		if err := o.routeCache.Put(ctx, key, route); err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Str("key", key).Msg("route cache write failed")
		}
	}

	return route, nil
}

// Coordinate locations pass through; addresses are geocoded.
func (o *ORSRouteProvider) resolve(ctx context.Context, l domain.Location) (domain.Coordinates, error) {
	if l.Coord != nil {
		return *l.Coord, nil
	}
	return o.Geocode(ctx, l.Address)
}

// Resolve one address to coordinates, consulting the geocode cache first.
func (o *ORSRouteProvider) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	norm := cache.NormalizeKey(address)
	if norm == "" {
		return domain.Coordinates{}, &domain.InputError{Msg: "address must be non-empty"}
	}

	if o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("ORS get geocode cache: %w", err)
		}
		if c, ok := hits[norm]; ok {
			return c, nil
		}
	}

	coord, err := o.geocodeSearch(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Str("address", norm).Msg("geocode cache write failed")
		}
	}

	return coord, nil
}

func (o *ORSRouteProvider) observe(op string, err error, d time.Duration) {
	if o.metrics != nil {
		o.metrics.ObserveUpstream(op, err, d)
	}
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
