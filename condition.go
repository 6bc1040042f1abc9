package gocoro

import (
	"time"

	"github.com/jamescard/gocoro/internal/clock"
)

// destroyedSignals is the sentinel numSignals holds after Destroy, so that a
// coroutine still blocked in Wait observes the destruction and returns Error
// instead of spinning forever.
const destroyedSignals = -1

// Condition is a condition variable coordinating coroutines in the same
// world, waking waiters in the order they called Wait/TimedWait.
type Condition struct {
	numWaiters int
	numSignals int

	waitHead *Coroutine
	waitTail *Coroutine

	lastYieldValue any
}

// NewCondition allocates and initializes a Condition.
func NewCondition() *Condition {
	return &Condition{}
}

// Destroy marks cond destroyed: any coroutine currently blocked in Wait or
// TimedWait observes this on its next resumption and returns Error.
func (cond *Condition) Destroy() {
	cond.lastYieldValue = nil
	cond.numWaiters = 0
	cond.numSignals = destroyedSignals
}

// LastYieldValue returns the value most recently passed to a Resume call
// that woke this condition's current blocking wait, or nil if the most
// recent Wait/TimedWait on it has not blocked (or nothing has waited on it
// since it was created or last destroyed).
func (cond *Condition) LastYieldValue() any {
	return cond.lastYieldValue
}

// NumWaiters reports how many coroutines are currently blocked in Wait or
// TimedWait on cond.
func (cond *Condition) NumWaiters() int {
	return cond.numWaiters
}

// NumSignals reports how many pending wakeups cond currently holds, i.e.
// how many of its waiters may proceed without a further Signal or
// Broadcast.
func (cond *Condition) NumSignals() int {
	return cond.numSignals
}

func (cond *Condition) enqueue(c *Coroutine) {
	c.prevToSignal = cond.waitTail
	c.nextToSignal = nil
	if cond.waitTail != nil {
		cond.waitTail.nextToSignal = c
	} else {
		cond.waitHead = c
	}
	cond.waitTail = c
}

func (cond *Condition) dequeue(c *Coroutine) {
	if c.prevToSignal != nil {
		c.prevToSignal.nextToSignal = c.nextToSignal
	} else {
		cond.waitHead = c.nextToSignal
	}
	if c.nextToSignal != nil {
		c.nextToSignal.prevToSignal = c.prevToSignal
	} else {
		cond.waitTail = c.prevToSignal
	}
	c.nextToSignal = nil
	c.prevToSignal = nil
}

// Signal wakes the single longest-waiting coroutine blocked on cond, once it
// is next scheduled. It returns Error if cond is nil.
func (cond *Condition) Signal() Status {
	if cond == nil {
		return Error
	}
	cond.numSignals++
	return Success
}

// Broadcast wakes every coroutine currently blocked on cond, once each is
// next scheduled. Coroutines that call Wait after Broadcast returns are
// fresh waiters and do not consume a signal intended for one of these.  It
// returns Error if cond is nil.
func (cond *Condition) Broadcast() Status {
	if cond == nil {
		return Error
	}
	cond.numSignals = cond.numWaiters
	return Success
}

// Wait releases m, blocks the calling coroutine until cond is signaled and
// it is the oldest remaining waiter, then reacquires m before returning.
// The caller must already own m; Wait does not verify this itself, but the
// subsequent reacquire will misbehave if it did not. It returns Error if
// cond or m is nil, or if cond is destroyed while the caller is waiting.
func (c *Coroutine) Wait(cond *Condition, m *Mutex) Status {
	if cond == nil || m == nil {
		return Error
	}

	cond.lastYieldValue = nil
	c.Unlock(m)

	cond.numWaiters++
	cond.enqueue(c)

	result := Success
	for !cond.ready(c) {
		cond.lastYieldValue = c.Yield(Blocked)
		if cond.numSignals == destroyedSignals {
			break
		}
	}

	if cond.numSignals == destroyedSignals {
		result = Error
	} else {
		cond.numSignals--
		cond.numWaiters--
	}
	cond.dequeue(c)

	c.Lock(m)
	return result
}

// TimedWait behaves like Wait but gives up with TimedOut once deadline has
// passed, still reacquiring m before returning. It returns Error if cond or
// m is nil, or if cond is destroyed while the caller is waiting.
func (c *Coroutine) TimedWait(cond *Condition, m *Mutex, deadline time.Time) Status {
	if cond == nil || m == nil {
		return Error
	}

	cond.lastYieldValue = nil
	c.Unlock(m)

	cond.numWaiters++
	cond.enqueue(c)

	result := Success
	for !cond.ready(c) {
		if clock.Passed(deadline) {
			result = TimedOut
			break
		}
		cond.lastYieldValue = c.Yield(Blocked)
		if cond.numSignals == destroyedSignals {
			break
		}
	}

	switch {
	case cond.numSignals == destroyedSignals:
		result = Error
	case result == Success:
		cond.numSignals--
		cond.numWaiters--
	default:
		// Timed out without a signal ever arriving: still leaving the
		// waiter queue, so numWaiters must drop even though no signal was
		// consumed.
		cond.numWaiters--
	}
	cond.dequeue(c)

	c.Lock(m)
	return result
}

// ready reports whether c may consume a pending signal: a signal is pending
// and c is the waiter queue's head. Gating on queue position rather than the raw numSignals
// count is what keeps wakeups in FIFO order even though signals are just a
// shared counter: a later waiter never steals a signal meant for whoever has
// been queued longest.
func (cond *Condition) ready(c *Coroutine) bool {
	return cond.numSignals > 0 && cond.waitHead == c
}
