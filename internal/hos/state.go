package hos

import "trip-planner-service/internal/domain"

// state is the accumulator set for a single Simulate call.
type state struct {
	cycleRemaining float64
	dayDriving     float64
	dayOnDuty      float64
	milesSinceFuel float64
	logs           []domain.DutySegment
	stops          []domain.Stop
}

func newState(cycleUsed float64) *state {
	return &state{cycleRemaining: CycleLimit - cycleUsed}
}

// driveHeadroom is the longest drive allowed right now, capped by the leg remainder.
func (s *state) driveHeadroom(legHoursLeft float64) float64 {
	return min(
		DailyDrivingLimit-s.dayDriving,
		DailyOnDutyLimit-s.dayOnDuty,
		s.cycleRemaining,
		legHoursLeft,
	)
}

// log appends a duty segment and its map stop.
func (s *state) log(status domain.DutyStatus, hours float64, at domain.Coordinates) {
	s.logs = append(s.logs, domain.DutySegment{Status: status, DurationHours: hours})
	s.stops = append(s.stops, domain.Stop{Type: status.StopType(), DurationHours: hours, Location: at})
}

func (s *state) drive(hours float64) {
	s.dayDriving += hours
	s.dayOnDuty += hours
	s.cycleRemaining -= hours
	s.milesSinceFuel += hoursToMiles(hours)
}

func (s *state) resetDay() {
	s.dayDriving = 0
	s.dayOnDuty = 0
}

// breakTaken scans the whole log: the break is granted once per trip.
func (s *state) breakTaken() bool {
	for _, seg := range s.logs {
		if seg.Status == domain.StatusBreak {
			return true
		}
	}
	return false
}

func (s *state) fuel() {
	s.dayOnDuty += FuelDuration
	s.cycleRemaining = max(s.cycleRemaining-FuelDuration, 0)
	s.milesSinceFuel = 0
}
