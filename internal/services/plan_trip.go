package services

import (
	"context"
	"errors"
	"math"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/hos"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

type PlanTripRequest struct {
	Current        domain.Location
	Pickup         domain.Location
	Dropoff        domain.Location
	CycleUsedHours float64
}

func (r PlanTripRequest) validate() error {
	switch {
	case r.Current.IsZero():
		return &domain.InputError{Field: "current_location", Msg: "is required"}
	case r.Pickup.IsZero():
		return &domain.InputError{Field: "pickup_location", Msg: "is required"}
	case r.Dropoff.IsZero():
		return &domain.InputError{Field: "dropoff_location", Msg: "is required"}
	case math.IsNaN(r.CycleUsedHours) || math.IsInf(r.CycleUsedHours, 0) || r.CycleUsedHours < 0:
		return &domain.InputError{Field: "cycle_used", Msg: "must be a non-negative number of hours"}
	}
	return nil
}

type legRequest struct {
	label       string
	role        domain.LegRole
	origin      domain.Location
	destination domain.Location
}

// PlanTrip fetches the current->pickup and pickup->dropoff legs in order and
// runs the HOS simulation over them. A driver with no cycle left is rejected
// before any route is requested; the first failing leg aborts the plan.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	provider ports.RouteProvider,
) (_ *hos.Result, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.CycleUsedHours >= hos.CycleLimit {
		return nil, domain.ErrCycleExhausted
	}
	if provider == nil {
		return nil, errors.New("plan trip: route provider is nil")
	}

	legReqs := []legRequest{
		{domain.LabelCurrentToPickup, domain.RoleToPickup, req.Current, req.Pickup},
		{domain.LabelPickupToDropoff, domain.RoleToDropoff, req.Pickup, req.Dropoff},
	}

	legs := make([]domain.Leg, 0, len(legReqs))
	for i, lr := range legReqs {
		route, err := provider.GetRoute(ctx, lr.origin, lr.destination)
		if err != nil {
			return nil, &domain.LegError{Index: i + 1, Err: err}
		}

		legs = append(legs, domain.Leg{
			Label:         lr.label,
			Role:          lr.role,
			DistanceMiles: route.DistanceMiles,
			DurationHours: route.DurationHours,
			Geometry:      route.Geometry,
		})
	}

	return hos.Simulate(legs, req.CycleUsedHours)
}

// Outcome classifies a planning error for metrics labels.
func Outcome(err error) string {
	var ie *domain.InputError
	var ue *domain.UpstreamError
	var le *domain.LegError

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ie):
		return "input"
	case errors.Is(err, domain.ErrCycleExhausted), errors.Is(err, domain.ErrCycleExhaustedMidRoute):
		return "cycle_exhausted"
	case errors.As(err, &ue), errors.As(err, &le):
		return "upstream"
	}
	return "error"
}

// ObserveLogs reports the hours of each duty segment.
func ObserveLogs(m ports.PlannerMetrics, logs []domain.DutySegment) {
	if m == nil {
		return
	}
	for _, seg := range logs {
		m.ObserveSegment(seg.Status.String(), seg.DurationHours)
	}
}
