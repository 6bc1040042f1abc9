// Package gocoro implements cooperative, stackful coroutines that share a
// single goroutine's worth of scheduling attention per "world", together
// with the mutex, condition variable, and message-queue primitives needed to
// coordinate them.
//
// A world is the set of coroutines created from one goroutine: the goroutine
// itself is the world's "first" coroutine, and every other coroutine it
// creates is scheduled cooperatively underneath it. Coroutines never
// preempt one another and never migrate between worlds; they only change
// hands at an explicit Yield, a blocking Lock/Wait, or a Resume call.
//
// The hard part this package implements is the scheduler core: the
// running/idle coroutine lists, the resume/yield handoff, the recursive and
// timed mutex, the FIFO condition variable, and the per-coroutine message
// queue. Everything else is thin: the core consumes a wall clock rather than
// reimplementing one, and a CLI and a benchmark harness sit on top of it.
package gocoro

import (
	"time"

	"github.com/jamescard/gocoro/internal/clock"
)

// Now returns the current time, for timing a round robin run or computing a
// deadline to pass to TimedLock/TimedWait.
func Now() time.Time {
	return clock.Now()
}
