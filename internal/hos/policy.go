// Package hos simulates a driver's duty log over a multi-leg trip under
// Hours-of-Service limits.
package hos

// Policy limits, in hours unless noted.
const (
	CycleLimit        = 70.0
	DailyDrivingLimit = 11.0
	DailyOnDutyLimit  = 14.0
	OffDutyReset      = 10.0
	BreakAfter        = 8.0
	BreakDuration     = 0.5
	FuelInterval      = 1000.0 // miles
	FuelDuration      = 0.5
	StopDuration      = 1.0 // pickup or dropoff
	AvgSpeedMPH       = 55.0
)

// Remainders below this many hours count as zero.
const tolerance = 1e-9

func hoursToMiles(hours float64) float64 { return hours * AvgSpeedMPH }
