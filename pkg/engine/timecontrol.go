package engine

import "time"

// TimeControl describes a classical "moves per period" clock, as set
// by the protocol's level command: Period moves must be made within
// SecondsPerPeriod, with Increment added per move.
type TimeControl struct {
	Period           int
	SecondsPerPeriod float64
	Increment        float64
}

// DefaultTimeControl matches the manager's startup default: 40 moves
// in 600 seconds (10 minutes), no increment.
var DefaultTimeControl = TimeControl{Period: 40, SecondsPerPeriod: 600, Increment: 0}

// GuaranteedTimePerMove is the time budget the manager allows itself
// per move under this control: the increment plus an even share of
// the period's time. The manager searches until 95% of this elapses.
func (tc TimeControl) GuaranteedTimePerMove() time.Duration {
	if tc.Period <= 0 {
		return time.Duration(tc.Increment * float64(time.Second))
	}
	seconds := tc.Increment + tc.SecondsPerPeriod/float64(tc.Period)
	return time.Duration(seconds * float64(time.Second))
}
