package gocoro

import (
	"github.com/jamescard/gocoro/internal/task"
	"github.com/petermattis/goid"
)

// Func is a coroutine body. Its argument is whatever was passed to the
// Resume call that woke it; its return value becomes the value the final
// Resume call on that coroutine yields back.
type Func func(arg any) any

// Create makes a new coroutine bound to fn in the calling goroutine's
// world, reusing a parked coroutine from the idle list when one is
// available and carving a fresh one (see carveStack) only when it is not.
// When taking a coroutine empties the idle list, Create carves a spare so
// that the list is not left empty. The coroutine starts suspended: fn does not run until the first Resume
// call against the returned Coroutine. Create returns nil if fn is nil.
func Create(fn Func) *Coroutine {
	return currentWorld().Create(fn)
}

// Create is the World-scoped form of the package-level Create function.
func (w *World) Create(fn Func) *Coroutine {
	if fn == nil {
		return nil
	}

	if w.idle == nil {
		w.carveStack()
	}

	newCoro := w.popIdle()
	if w.idle == nil {
		w.carveStack()
	}
	result := w.resume(newCoro, fn)
	c, _ := result.(*Coroutine)
	return c
}

// carveStack manufactures one fresh, reusable coroutine stack. A real
// stack-carving implementation repeatedly reserves bytes on the host call
// stack; here a goroutine plays that role, since it owns a stack of its own
// that this library never has to allocate or grow by hand. carveStack does
// not return until the new coroutine has parked itself on the idle list, so
// that the single invariant "idle is non-nil except briefly during carving"
// holds for any caller observing the world from outside this call.
func (w *World) carveStack() {
	parked := make(chan struct{})
	c := &Coroutine{world: w, sem: task.NewSemaphore(), id: NotSetID, state: NotRunning}
	go w.coroutineMain(c, parked)
	<-parked
}

// coroutineMain is the body every carved coroutine's goroutine runs for its
// entire lifetime. It parks on idle, waits to be handed a Func, runs bursts
// of that Func between activations, and returns to idle when the Func
// returns — forever, so that the same goroutine (and the same local
// variables at the top of this function) back every reactivation of this
// coroutine slot.
func (w *World) coroutineMain(self *Coroutine, parked chan struct{}) {
	if threadingSupportEnabled.Load() {
		// Register this goroutine under w so that Current, Create and the
		// other package-level calls made from the coroutine's body resolve
		// to the world that scheduled it.
		registryMu.Lock()
		registry[goid.Get()] = w
		registryMu.Unlock()
	}

	w.pushIdle(self)
	close(parked)

	fn := self.awaitActivation().(Func)

	// frameMarker lives in this frame for the coroutine slot's whole
	// lifetime: reactivation re-enters this same loop rather than calling
	// this function again, so every activation runs above the same frame of
	// the same goroutine. The Go runtime may still relocate that goroutine's
	// stack when it grows or shrinks.
	var frameMarker int
	_ = &frameMarker

	for {
		callingArg := self.Yield(self)
		result := fn(callingArg)

		w.popRunning()
		self.id = NotSetID
		self.state = NotRunning
		w.pushIdle(self)
		w.scratch = result
		w.running.sem.Post()

		fn = self.awaitActivation().(Func)
	}
}

// awaitActivation blocks until this coroutine is handed control (either its
// first Func from Create, or its next Func from a later Create that reuses
// this coroutine's slot), and returns whatever was placed in the world's
// scratch slot for it.
func (c *Coroutine) awaitActivation() any {
	c.sem.Wait()
	c.state = Running
	return c.world.scratch
}

// Resume transfers control to target, passing arg, and blocks the calling
// coroutine until target next yields or returns. It returns NotResumable if
// target is nil, already running, or not resumable for any other reason.
func Resume(target *Coroutine, arg any) any {
	return currentWorld().resume(target, arg)
}

// Resume is the World-scoped form of the package-level Resume function. The
// caller must be the world's currently running coroutine.
func (w *World) Resume(target *Coroutine, arg any) any {
	return w.resume(target, arg)
}

func (w *World) resume(target *Coroutine, arg any) any {
	if !w.resumable(target) {
		scheduleLogCoro("resume of unresumable target", target)
		return NotResumable
	}

	w.anyCreated = true
	caller := w.running
	w.pushRunning(target)
	w.scratch = arg
	target.state = Running
	target.sem.Post()
	caller.sem.Wait()
	return w.scratch
}

// Yield suspends the calling coroutine, handing arg back to whichever
// coroutine resumed it, and blocks until it is itself resumed again, at
// which point it returns the value that later Resume call passed. Calling
// Yield from a world's first coroutine is a no-op that returns nil, since
// there is no one above it on the running list to hand control to.
func (c *Coroutine) Yield(arg any) any {
	w := c.world
	if c == w.first {
		scheduleLogCoro("yield from first coroutine ignored", c)
		return nil
	}

	w.popRunning()
	c.state = Blocked
	w.scratch = arg
	newHead := w.running
	newHead.sem.Post()
	c.sem.Wait()
	c.state = Running
	return w.scratch
}

// Terminate forcibly ends target, a coroutine other than the one currently
// running. For each mutex in mutexes that target owns, ownership is
// force-released; target is then spliced out of whatever list it is on and
// parked on the idle list. The caller is responsible for listing every
// mutex target might hold — any left out stays owned by a coroutine that
// will never unlock it.
//
// Terminate returns Error, and changes nothing, if target is nil, is the
// world's first coroutine, or is the currently running coroutine: a
// coroutine cannot terminate itself, and terminating the host stand-in
// would leave the world without a place to resume into.
//
// Unlike a plain Yield-suspended coroutine, a terminated one is abandoned
// mid-function: its goroutine never reaches the point in coroutineMain
// where it would accept a new Func. Simply relisting it on idle would let a
// later Create hand it a function that never actually runs, silently
// resuming the abandoned one instead. Terminate avoids that by detaching
// target from its current goroutine (which stays parked forever, waiting
// on a semaphore nothing will ever post again) and carving a replacement
// goroutine for the same *Coroutine record, exactly as a fresh Create
// would. The abandoned goroutine is a deliberate, bounded leak: one
// blocked-forever goroutine per Terminate call, the price of making the
// record safely reusable afterward.
func Terminate(target *Coroutine, mutexes []*Mutex) Status {
	return currentWorld().Terminate(target, mutexes)
}

// Terminate is the World-scoped form of the package-level Terminate
// function.
func (w *World) Terminate(target *Coroutine, mutexes []*Mutex) Status {
	if target == nil || target == w.first || target == w.running {
		return Error
	}

	for _, m := range mutexes {
		if m != nil && m.owner == target {
			m.owner = nil
			m.recursionLevel = 0
		}
	}

	w.spliceOut(target)
	target.id = NotSetID
	target.state = NotRunning
	target.nextToSignal = nil
	target.prevToSignal = nil
	target.inbox = nil

	target.sem = task.NewSemaphore()
	parked := make(chan struct{})
	go w.coroutineMain(target, parked)
	<-parked
	return Success
}
