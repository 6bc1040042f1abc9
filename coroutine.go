package gocoro

import "github.com/jamescard/gocoro/internal/task"

// State is the scheduling state of a Coroutine.
type State int

const (
	// NotRunning is the state of a coroutine sitting on the idle list:
	// freshly carved, completed, or terminated.
	NotRunning State = iota
	// Running is the state of the coroutine currently holding the world's
	// CPU, i.e. the head of the running list.
	Running
	// Blocked is the state of a coroutine suspended inside Yield, a
	// contended mutex lock, or a condition-variable wait.
	Blocked
)

func (s State) String() string {
	switch s {
	case NotRunning:
		return "not running"
	case Running:
		return "running"
	case Blocked:
		return "blocked"
	default:
		return "unknown state"
	}
}

// Coroutine is a single cooperatively scheduled unit of execution within a
// World. The zero value is not usable; coroutines are produced by
// World.Create (or, for a world's first coroutine, when the world is set up,
// either on first use or through Configure).
type Coroutine struct {
	world *World
	sem   *task.Semaphore

	id    ID
	state State

	// next links this coroutine onto whichever of the world's running or
	// idle lists it currently belongs to. See (*World).resumable for why a
	// nil next is necessary but not sufficient proof of being on neither
	// list.
	next *Coroutine

	// nextToSignal/prevToSignal form the doubly linked FIFO queue a
	// Condition threads this coroutine through while it waits. They are
	// unused (and nil) whenever the coroutine isn't waiting on a condition.
	nextToSignal *Coroutine
	prevToSignal *Coroutine

	inbox *Message

	first bool // true only for a world's distinguished host-stand-in record
}

// ID returns the coroutine's user-assigned identity, or NotSetID if SetID
// has never been called on it (including after it has run to completion and
// been recycled).
func (c *Coroutine) ID() ID {
	return c.id
}

// SetID assigns the coroutine's user-visible identity.
func (c *Coroutine) SetID(id ID) {
	c.id = id
}

// State reports the coroutine's current scheduling state.
func (c *Coroutine) State() State {
	return c.state
}

// World returns the world this coroutine belongs to.
func (c *Coroutine) World() *World {
	return c.world
}

// resumable reports whether target may legally be the argument to Resume:
// non-nil, not the world's first coroutine, and on neither the running nor
// the idle list. A nil next alone does not prove that: the last element of
// either list also has a nil next. The running list always ends at the
// world's first coroutine, so on that list only its head needs checking;
// the idle list is searched in full.
func (w *World) resumable(target *Coroutine) bool {
	if target == nil || target.first || target.next != nil || target == w.running {
		return false
	}
	for c := w.idle; c != nil; c = c.next {
		if c == target {
			return false
		}
	}
	return true
}

// Resumable reports whether target may legally be passed to Resume right
// now.
func Resumable(target *Coroutine) bool {
	if target == nil {
		return false
	}
	return target.world.resumable(target)
}

// Current returns whichever coroutine currently holds the CPU in the
// calling goroutine's world.
func Current() *Coroutine {
	return currentWorld().running
}
