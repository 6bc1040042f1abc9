package gocoro

import (
	"time"

	"github.com/jamescard/gocoro/internal/clock"
)

// MutexType is a bitwise-ORed set of behavior flags for a Mutex.
type MutexType int

const (
	// MutexPlain is a non-recursive, non-timed mutex: a second Lock call by
	// its owner blocks forever against itself.
	MutexPlain MutexType = 0
	// MutexRecursive allows the owning coroutine to lock the mutex again,
	// incrementing a recursion count that Unlock must match before the
	// mutex is actually released.
	MutexRecursive MutexType = 1 << iota
	// MutexTimed permits TimedLock against this mutex; TimedLock on a mutex
	// without this flag returns Error.
	MutexTimed
)

// Mutex provides mutual exclusion between coroutines in the same world. It
// is not safe to share a Mutex across worlds.
type Mutex struct {
	owner          *Coroutine
	mutexType      MutexType
	recursionLevel int
	lastYieldValue any
}

// NewMutex allocates and initializes a Mutex of the given type.
func NewMutex(mutexType MutexType) *Mutex {
	return &Mutex{mutexType: mutexType}
}

// Destroy resets the mutex to the zero Mutex: unowned, recursion level zero,
// type MutexPlain, and no last yield value. The caller is
// responsible for ensuring no coroutine still holds or waits on it.
func (m *Mutex) Destroy() {
	m.owner = nil
	m.mutexType = MutexPlain
	m.recursionLevel = 0
	m.lastYieldValue = nil
}

// LastYieldValue returns the value most recently passed to a Resume call
// that woke this mutex's current blocking Lock/TimedLock attempt, or nil if
// the most recent lock attempt on this mutex succeeded without blocking.
func (m *Mutex) LastYieldValue() any {
	return m.lastYieldValue
}

// TryLock makes one attempt to lock m for the calling coroutine, returning
// immediately either way. It returns Success if m was unlocked, or if m is
// recursive and the caller already owns it; Busy if another coroutine owns
// it; and Error if m is nil or if m is not recursive and the caller already
// owns it.
func (c *Coroutine) TryLock(m *Mutex) Status {
	if m == nil {
		return Error
	}

	switch {
	case m.owner == nil:
		m.owner = c
		m.recursionLevel = 1
		return Success
	case m.owner == c && m.mutexType&MutexRecursive != 0:
		m.recursionLevel++
		return Success
	case m.owner != c:
		return Busy
	default:
		return Error
	}
}

// Lock blocks the calling coroutine until m is acquired, yielding Blocked on
// every failed attempt in between. It returns Success once m is acquired, or
// Error immediately if m is nil. On a non-recursive mutex the caller already
// owns, it never acquires m and keeps yielding.
func (c *Coroutine) Lock(m *Mutex) Status {
	if m == nil {
		return Error
	}

	m.lastYieldValue = nil
	for c.TryLock(m) != Success {
		m.lastYieldValue = c.Yield(Blocked)
	}
	return Success
}

// TimedLock behaves like Lock but gives up with TimedOut once deadline has
// passed. It returns Error if m is nil or m was not created with
// MutexTimed.
func (c *Coroutine) TimedLock(m *Mutex, deadline time.Time) Status {
	if m == nil {
		return Error
	}
	if m.mutexType&MutexTimed == 0 {
		return Error
	}

	m.lastYieldValue = nil

	for {
		result := c.TryLock(m)
		if result == Success {
			return Success
		}
		if clock.Passed(deadline) {
			return TimedOut
		}
		m.lastYieldValue = c.Yield(Blocked)
	}
}

// Unlock releases one level of m's recursion count on behalf of the calling
// coroutine, fully releasing the mutex once the count reaches zero. It
// returns Error, and changes nothing, if the calling coroutine does not
// currently own m.
func (c *Coroutine) Unlock(m *Mutex) Status {
	if m == nil || m.owner != c {
		return Error
	}

	m.recursionLevel--
	if m.recursionLevel == 0 {
		m.owner = nil
	}
	return Success
}
