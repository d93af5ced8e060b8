package hos

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightGeometry(n int) domain.Geometry {
	pairs := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, []float64{-112 + float64(i)*0.1, 33 + float64(i)*0.1})
	}
	return domain.CoordinateGeometry(pairs)
}

func twoLegs(h1, h2 float64) []domain.Leg {
	return []domain.Leg{
		{Label: domain.LabelCurrentToPickup, Role: domain.RoleToPickup, DistanceMiles: h1 * 50, DurationHours: h1, Geometry: straightGeometry(11)},
		{Label: domain.LabelPickupToDropoff, Role: domain.RoleToDropoff, DistanceMiles: h2 * 50, DurationHours: h2, Geometry: straightGeometry(21)},
	}
}

func statuses(logs []domain.DutySegment) []domain.DutyStatus {
	out := make([]domain.DutyStatus, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Status)
	}
	return out
}

func durations(logs []domain.DutySegment) []float64 {
	out := make([]float64, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.DurationHours)
	}
	return out
}

func TestSimulate_TwoLegsWithBreakAndReset(t *testing.T) {
	res, err := Simulate(twoLegs(5, 9), 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyStatus{
		domain.StatusDriving,
		domain.StatusPickup,
		domain.StatusDriving,
		domain.StatusBreak,
		domain.StatusDailyReset,
		domain.StatusDriving,
		domain.StatusDropoff,
	}, statuses(res.Logs))
	assert.Equal(t, []float64{5, 1, 6, 0.5, 10, 3, 1}, durations(res.Logs))
	assert.Equal(t, 56.0, res.RemainingCycleHours)

	require.Len(t, res.Stops, len(res.Logs))
	assert.Equal(t, domain.StopDailyReset, res.Stops[4].Type)
	assert.Equal(t, domain.StopBreak, res.Stops[3].Type)
	// The break shares the coordinate of the drive that triggered it.
	assert.Equal(t, res.Stops[2].Location, res.Stops[3].Location)

	// Two route lines plus one point per stop.
	assert.Len(t, res.GeoJSON, 2+len(res.Stops))
	assert.Equal(t, "route", geo.FeatureType(res.GeoJSON[0]))
	assert.Equal(t, "driving", geo.FeatureType(res.GeoJSON[1]))
	assert.Equal(t, "pickup", geo.FeatureType(res.GeoJSON[2]))
	assert.Equal(t, "route", geo.FeatureType(res.GeoJSON[3]))
	assert.Equal(t, "dropoff", geo.FeatureType(res.GeoJSON[len(res.GeoJSON)-1]))

	assert.Equal(t, domain.TripSummary{
		DistanceMiles: 700,
		DrivingHours:  14,
		DutyHours:     26.5,
		Breaks:        1,
		DailyResets:   1,
	}, res.Summary)
}

func TestSimulate_StopPlacement(t *testing.T) {
	leg := domain.Leg{Label: "L", Role: domain.RoleToDropoff, DurationHours: 16, Geometry: straightGeometry(17)}
	points := geo.Decode(leg.Geometry)

	res, err := Simulate([]domain.Leg{leg}, 0)
	require.NoError(t, err)

	// Driving 11 of 16 hours ends at progress 0.6875, index 11 of 16.
	assert.Equal(t, points[11], res.Stops[0].Location)
	// Resets are placed at the leg midpoint.
	assert.Equal(t, domain.StopDailyReset, res.Stops[2].Type)
	assert.Equal(t, points[8], res.Stops[2].Location)
	// The dropoff is at the end of the path.
	last := res.Stops[len(res.Stops)-1]
	assert.Equal(t, domain.StopDropoff, last.Type)
	assert.Equal(t, points[16], last.Location)
}

func TestSimulate_FuelStop(t *testing.T) {
	leg := domain.Leg{Label: "long haul", DurationHours: 20, Geometry: straightGeometry(5)}

	res, err := Simulate([]domain.Leg{leg}, 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyStatus{
		domain.StatusDriving,
		domain.StatusBreak,
		domain.StatusDailyReset,
		domain.StatusDriving,
		domain.StatusFuel,
	}, statuses(res.Logs))
	assert.Equal(t, []float64{11, 0.5, 10, 9, 0.5}, durations(res.Logs))
	// 20h driven plus 0.5h of fueling; the break is not charged to the cycle.
	assert.Equal(t, 49.5, res.RemainingCycleHours)
	assert.Equal(t, res.Stops[3].Location, res.Stops[4].Location)
	assert.Equal(t, 1, res.Summary.FuelStops)
}

func TestSimulate_FuelDeductionDoesNotGoNegative(t *testing.T) {
	leg := domain.Leg{Label: "last hours", DurationHours: 18.25}

	res, err := Simulate([]domain.Leg{leg}, 51.75)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFuel, res.Logs[len(res.Logs)-1].Status)
	assert.Equal(t, 0.0, res.RemainingCycleHours)
}

func TestSimulate_CycleExhaustedBeforeStart(t *testing.T) {
	for _, used := range []float64{70, 71.5} {
		res, err := Simulate(twoLegs(1, 1), used)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrCycleExhausted)
	}
}

func TestSimulate_CycleExhaustedMidRoute(t *testing.T) {
	leg := domain.Leg{Label: domain.LabelCurrentToPickup, Role: domain.RoleToPickup, DurationHours: 10}

	res, err := Simulate([]domain.Leg{leg}, 65)

	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCycleExhaustedMidRoute))
	assert.Contains(t, err.Error(), domain.LabelCurrentToPickup)
}

func TestSimulate_CycleEndsExactlyAtLegEnd(t *testing.T) {
	leg := domain.Leg{Label: "L", Role: domain.RoleToDropoff, DurationHours: 5}

	res, err := Simulate([]domain.Leg{leg}, 65)
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyStatus{domain.StatusDriving, domain.StatusDropoff}, statuses(res.Logs))
	assert.Equal(t, 0.0, res.RemainingCycleHours)
}

func TestSimulate_InvalidInput(t *testing.T) {
	_, err := Simulate(twoLegs(1, 1), -1)
	var inputErr *domain.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "cycle_used", inputErr.Field)

	_, err = Simulate(twoLegs(-2, 1), 0)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "legs[0].duration_hours", inputErr.Field)
}

func TestSimulate_ZeroDurationLeg(t *testing.T) {
	res, err := Simulate(twoLegs(0, 2), 10)
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyStatus{
		domain.StatusPickup,
		domain.StatusDriving,
		domain.StatusDropoff,
	}, statuses(res.Logs))
	assert.Equal(t, 58.0, res.RemainingCycleHours)
}

func TestSimulate_EmptyGeometryUsesSentinel(t *testing.T) {
	legs := []domain.Leg{{Label: "no path", Role: domain.RoleToPickup, DurationHours: 2}}

	res, err := Simulate(legs, 0)
	require.NoError(t, err)

	for _, s := range res.Stops {
		assert.Equal(t, domain.Coordinates{}, s.Location)
	}
}

func TestSimulate_ZeroLengthLegGeometry(t *testing.T) {
	for name, geometry := range map[string]domain.Geometry{
		"one point":        domain.CoordinateGeometry([][]float64{{-87.63, 41.88}}),
		"duplicate points": domain.CoordinateGeometry([][]float64{{-87.63, 41.88}, {-87.63, 41.88}}),
	} {
		t.Run(name, func(t *testing.T) {
			legs := []domain.Leg{
				{Label: domain.LabelCurrentToPickup, Role: domain.RoleToPickup, Geometry: geometry},
				{Label: domain.LabelPickupToDropoff, Role: domain.RoleToDropoff, DistanceMiles: 100, DurationHours: 2, Geometry: straightGeometry(5)},
			}

			res, err := Simulate(legs, 0)
			require.NoError(t, err)

			require.NotEmpty(t, res.Stops)
			assert.Equal(t, domain.StopPickup, res.Stops[0].Type)
			assert.Equal(t, domain.Coordinates{Lat: 41.88, Lon: -87.63}, res.Stops[0].Location)

			b, err := json.Marshal(res.GeoJSON)
			require.NoError(t, err)

			var fc struct {
				Features []struct {
					Geometry struct {
						Type        string          `json:"type"`
						Coordinates json.RawMessage `json:"coordinates"`
					} `json:"geometry"`
				} `json:"features"`
			}
			require.NoError(t, json.Unmarshal(b, &fc))
			require.NotEmpty(t, fc.Features)

			first := fc.Features[0].Geometry
			assert.Equal(t, "LineString", first.Type)
			var coords [][]float64
			require.NoError(t, json.Unmarshal(first.Coordinates, &coords))
			assert.Len(t, coords, len(geometry.Coordinates))
		})
	}
}

// replay walks a finished log and checks the rules every plan must satisfy.
func replay(t *testing.T, legs []domain.Leg, cycleUsed float64, res *Result) {
	t.Helper()

	var legHours, overhead, logged, driving float64
	for _, l := range legs {
		legHours += l.DurationHours
	}

	dayDriving, dayOnDuty := 0.0, 0.0
	cycle := CycleLimit - cycleUsed
	prevCycle := cycle
	breaks := 0

	for _, seg := range res.Logs {
		logged += seg.DurationHours
		switch seg.Status {
		case domain.StatusDriving:
			driving += seg.DurationHours
			dayDriving += seg.DurationHours
			dayOnDuty += seg.DurationHours
			cycle -= seg.DurationHours
			assert.LessOrEqual(t, dayDriving, DailyDrivingLimit+tolerance)
			assert.LessOrEqual(t, dayOnDuty, DailyOnDutyLimit+tolerance)
		case domain.StatusBreak:
			breaks++
			dayOnDuty += seg.DurationHours
			overhead += seg.DurationHours
		case domain.StatusFuel:
			dayOnDuty += seg.DurationHours
			cycle = max(cycle-seg.DurationHours, 0)
			overhead += seg.DurationHours
		case domain.StatusDailyReset:
			dayDriving, dayOnDuty = 0, 0
			overhead += seg.DurationHours
		default:
			overhead += seg.DurationHours
		}
		assert.LessOrEqual(t, cycle, prevCycle+tolerance)
		assert.GreaterOrEqual(t, cycle, -tolerance)
		prevCycle = cycle
	}

	assert.InDelta(t, legHours, driving, 1e-6)
	assert.InDelta(t, legHours+overhead, logged, 1e-6)
	assert.LessOrEqual(t, breaks, 1)
	assert.InDelta(t, round2(cycle), res.RemainingCycleHours, 1e-9)
}

func TestSimulate_ReplayedPlansHold(t *testing.T) {
	tests := []struct {
		name      string
		legs      []domain.Leg
		cycleUsed float64
	}{
		{"short", twoLegs(1.25, 2.5), 0},
		{"one day", twoLegs(4.4, 6.6), 12},
		{"multi day", twoLegs(7.33, 25.17), 3},
		{"long haul", twoLegs(13.7, 31.9), 0},
		{"tight cycle", twoLegs(10, 30), 25.5},
		{"fractional", twoLegs(0.01, 17.999), 44.44},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Simulate(tc.legs, tc.cycleUsed)
			require.NoError(t, err)
			replay(t, tc.legs, tc.cycleUsed, res)
		})
	}
}

func TestSimulate_BreakGrantedOncePerTrip(t *testing.T) {
	res, err := Simulate(twoLegs(20, 40), 0)
	require.NoError(t, err)

	breaks := 0
	for _, seg := range res.Logs {
		if seg.Status == domain.StatusBreak {
			breaks++
		}
	}
	assert.Equal(t, 1, breaks)
	assert.Greater(t, res.Summary.DailyResets, 3)
}

func TestSimulate_ConcurrentRunsAreIndependent(t *testing.T) {
	want, err := Simulate(twoLegs(9, 23), 5)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Simulate(twoLegs(9, 23), 5)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Equal(t, want.Logs, got.Logs)
		assert.Equal(t, want.RemainingCycleHours, got.RemainingCycleHours)
	}
}
