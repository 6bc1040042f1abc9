// Package clock wraps the host's monotonic time source behind the small
// contract the scheduler's timed operations need: "what time is it" and "has
// this deadline passed". It is the one collaborator the coroutine core
// consumes rather than implements (see the top-level package doc).
package clock

import "time"

// Now returns the current monotonic instant.
func Now() time.Time {
	return time.Now()
}

// Passed reports whether deadline is at or before now. A zero deadline never
// reports as passed, so callers can use it to mean "no deadline".
func Passed(deadline time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	return !deadline.After(Now())
}
