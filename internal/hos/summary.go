package hos

import "trip-planner-service/internal/domain"

// Summarize totals a duty log the way trips are reported and stored.
func Summarize(legs []domain.Leg, logs []domain.DutySegment) domain.TripSummary {
	var sum domain.TripSummary

	for _, l := range legs {
		sum.DistanceMiles += l.DistanceMiles
	}

	for _, seg := range logs {
		sum.DutyHours += seg.DurationHours
		switch seg.Status {
		case domain.StatusDriving:
			sum.DrivingHours += seg.DurationHours
		case domain.StatusFuel:
			sum.FuelStops++
		case domain.StatusBreak:
			sum.Breaks++
		case domain.StatusDailyReset:
			sum.DailyResets++
		}
	}

	sum.DistanceMiles = round2(sum.DistanceMiles)
	sum.DrivingHours = round2(sum.DrivingHours)
	sum.DutyHours = round2(sum.DutyHours)

	return sum
}
