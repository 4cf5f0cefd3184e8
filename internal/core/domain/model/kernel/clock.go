package kernel

import "time"

// Clock supplies the current time. Handlers take a Clock so tests can pin it.
type Clock func() time.Time

// SystemClock returns UTC wall time truncated to microseconds, the precision
// postgres keeps for timestamptz, so values survive a round trip unchanged.
func SystemClock() Clock {
	return func() time.Time {
		return time.Now().UTC().Truncate(time.Microsecond)
	}
}
