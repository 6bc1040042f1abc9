// Package task holds the low-level primitive the coroutine scheduler is
// built on: a single-slot gate used to pause and resume the goroutine that
// backs each coroutine.
//
// A stackful-coroutine runtime normally captures and restores CPU register
// state directly (setjmp/longjmp, or a futex-backed pause/resume pair as in
// a cooperative scheduler's task bookkeeping). Portable Go code cannot touch
// registers or raw OS futexes without cgo or platform assembly, so here the
// "context switch" is a goroutine already parked on a channel receive: Post
// is the wakeup half, Wait is the pause half. Exactly one Post is ever
// outstanding for a given Semaphore at a time, because the scheduler only
// ever has one coroutine resuming another.
package task

// Semaphore is a binary gate: Post wakes whichever goroutine is blocked in
// Wait, or primes the gate so the next Wait call returns immediately.
type Semaphore struct {
	gate chan struct{}
}

// NewSemaphore returns a Semaphore with an empty (unposted) gate.
func NewSemaphore() *Semaphore {
	return &Semaphore{gate: make(chan struct{}, 1)}
}

// Post opens the gate. It never blocks.
func (s *Semaphore) Post() {
	select {
	case s.gate <- struct{}{}:
	default:
		// A second Post before the matching Wait would mean two resumes were
		// in flight for the same coroutine at once, which the scheduler's
		// running-list discipline never allows.
	}
}

// Wait blocks until the gate has been posted, then closes it again.
func (s *Semaphore) Wait() {
	<-s.gate
}
