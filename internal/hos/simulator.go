package hos

import (
	"fmt"
	"math"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"
)

// Result is the full plan for a trip.
type Result struct {
	Legs                []domain.Leg          `json:"legs"`
	Logs                []domain.DutySegment  `json:"logs"`
	Stops               []domain.Stop         `json:"stops"`
	GeoJSON             geo.FeatureCollection `json:"geojson"`
	RemainingCycleHours float64               `json:"remaining_cycle_hours"`
	Summary             domain.TripSummary    `json:"summary"`
}

// Simulate walks the legs in order and produces the duty log, stop markers
// and map features for a driver who has already used cycleUsedHours of the
// rolling cycle.
//
// Each pass drives as long as the daily driving cap, the daily on-duty cap,
// the remaining cycle and the leg allow. When nothing can be driven a 10h
// daily reset is taken; resets never restore the cycle. If the cycle itself
// runs dry with driving left, the run fails with ErrCycleExhaustedMidRoute.
// The 30 minute break is granted at most once per trip.
//
// Simulate holds no shared state and is safe for concurrent use.
func Simulate(legs []domain.Leg, cycleUsedHours float64) (*Result, error) {
	if math.IsNaN(cycleUsedHours) || cycleUsedHours < 0 {
		return nil, &domain.InputError{Field: "cycle_used", Msg: "must be a non-negative number of hours"}
	}
	if cycleUsedHours >= CycleLimit {
		return nil, domain.ErrCycleExhausted
	}

	for i, leg := range legs {
		if math.IsNaN(leg.DurationHours) || math.IsInf(leg.DurationHours, 0) || leg.DurationHours < 0 {
			return nil, &domain.InputError{
				Field: fmt.Sprintf("legs[%d].duration_hours", i),
				Msg:   "must be a finite non-negative number",
			}
		}
	}

	s := newState(cycleUsedHours)
	features := make(geo.FeatureCollection, 0, len(legs)*4)

	for _, leg := range legs {
		points := geo.Decode(leg.Geometry)
		features = append(features, geo.RouteFeature(leg.Label, points))

		first := len(s.stops)
		if err := s.runLeg(leg, points); err != nil {
			return nil, err
		}
		for _, stop := range s.stops[first:] {
			features = append(features, geo.StopFeature(stop))
		}
	}

	return &Result{
		Legs:                legs,
		Logs:                s.logs,
		Stops:               s.stops,
		GeoJSON:             features,
		RemainingCycleHours: round2(s.cycleRemaining),
		Summary:             Summarize(legs, s.logs),
	}, nil
}

func (s *state) runLeg(leg domain.Leg, points []domain.Coordinates) error {
	total := leg.DurationHours
	left := total

	for left > tolerance {
		drive := s.driveHeadroom(left)

		if drive <= tolerance {
			if s.cycleRemaining <= tolerance {
				return fmt.Errorf("leg %q with %.2fh left: %w", leg.Label, left, domain.ErrCycleExhaustedMidRoute)
			}
			s.log(domain.StatusDailyReset, OffDutyReset, geo.PointAt(points, 0.5))
			s.resetDay()
			continue
		}

		at := geo.PointAt(points, 1-(left-drive)/total)
		s.log(domain.StatusDriving, drive, at)
		s.drive(drive)
		left -= drive

		if s.dayDriving >= BreakAfter && !s.breakTaken() {
			s.log(domain.StatusBreak, BreakDuration, at)
			s.dayOnDuty += BreakDuration
		}

		if s.milesSinceFuel >= FuelInterval {
			s.log(domain.StatusFuel, FuelDuration, at)
			s.fuel()
		}
	}

	// Pickup and dropoff are logged but not charged to any counter.
	switch leg.Role {
	case domain.RoleToPickup:
		s.log(domain.StatusPickup, StopDuration, geo.PointAt(points, 1))
	case domain.RoleToDropoff:
		s.log(domain.StatusDropoff, StopDuration, geo.PointAt(points, 1))
	}

	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
