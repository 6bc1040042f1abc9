package gocoro

import (
	"sync"
	"sync/atomic"

	"github.com/jamescard/gocoro/internal/task"
	"github.com/petermattis/goid"
)

// DefaultStackSize is the stack budget reserved for each coroutine when no
// explicit size is configured, in bytes.
const DefaultStackSize = 16384

// stackSizeGranularity is the rounding unit and floor for a configured stack
// size.
const stackSizeGranularity = 1024

func clampStackSize(size int) int {
	if size < stackSizeGranularity {
		return stackSizeGranularity
	}
	rem := size % stackSizeGranularity
	if rem == 0 {
		return size
	}
	return size + (stackSizeGranularity - rem)
}

// World is the set of coroutines that share one scheduling domain: one
// running list, one idle list, and one value-passing scratch slot. A world
// belongs to exactly one host goroutine for its entire lifetime; nothing in
// World is safe to touch concurrently from a second goroutine.
type World struct {
	first   *Coroutine
	running *Coroutine
	idle    *Coroutine

	// scratch carries the single value passed across whichever context
	// switch is currently in flight. Every write is paired with a
	// task.Semaphore.Post and every read is paired with a matching Wait, so
	// the handoff is safe despite scratch being an unsynchronized field.
	scratch any

	stackSize  int
	configured bool
	anyCreated bool
}

func newWorld(stackSize int) *World {
	w := &World{stackSize: clampStackSize(stackSize)}
	w.first = &Coroutine{world: w, sem: task.NewSemaphore(), id: NotSetID, state: Running, first: true}
	w.running = w.first
	return w
}

// newWorldWithFirst builds a world around a caller-supplied first-coroutine
// record, avoiding the one heap allocation the thread-safe build would
// otherwise need per non-primary host thread.
func newWorldWithFirst(first *Coroutine, stackSize int) *World {
	w := &World{stackSize: clampStackSize(stackSize)}
	*first = Coroutine{world: w, sem: task.NewSemaphore(), id: NotSetID, state: Running, first: true}
	w.first = first
	w.running = first
	return w
}

// First returns the world's distinguished first coroutine, standing in for
// the host goroutine that owns the world.
func (w *World) First() *Coroutine {
	return w.first
}

// Current returns whichever coroutine currently holds the world's CPU.
func (w *World) Current() *Coroutine {
	return w.running
}

func (w *World) pushRunning(c *Coroutine) {
	c.next = w.running
	w.running = c
}

func (w *World) popRunning() *Coroutine {
	c := w.running
	w.running = c.next
	c.next = nil
	return c
}

func (w *World) pushIdle(c *Coroutine) {
	c.next = w.idle
	w.idle = c
}

func (w *World) popIdle() *Coroutine {
	c := w.idle
	w.idle = c.next
	c.next = nil
	return c
}

// spliceOut removes target from whichever of the running or idle list it is
// currently threaded through, wherever in the list it sits. It is a no-op if
// target is on neither list.
func (w *World) spliceOut(target *Coroutine) {
	for _, head := range [...]**Coroutine{&w.running, &w.idle} {
		if *head == target {
			*head = target.next
			target.next = nil
			return
		}
		for cur := *head; cur != nil; cur = cur.next {
			if cur.next == target {
				cur.next = target.next
				target.next = nil
				return
			}
		}
	}
}

// threadingSupportEnabled selects between a single process-global world
// (SingleCore) and one world per host goroutine kept in a registry keyed by
// goroutine id (ThreadSafe, the default). It must be set before the first
// coroutine is created on any goroutine; changing it afterward does not
// retroactively move existing worlds.
var threadingSupportEnabled atomic.Bool

func init() {
	threadingSupportEnabled.Store(true)
}

// SetThreadingSupportEnabled toggles between the ThreadSafe (per-goroutine
// world, the default) and SingleCore (one process-global world) storage
// strategies. The switch is process-wide and should be set once at startup,
// before any coroutine exists.
func SetThreadingSupportEnabled(enabled bool) {
	threadingSupportEnabled.Store(enabled)
}

var (
	registryMu  sync.RWMutex
	registry    = map[int64]*World{}
	globalMu    sync.Mutex
	globalWorld *World
)

// currentWorld resolves the world for the calling goroutine, creating one
// with default settings on first use.
func currentWorld() *World {
	if !threadingSupportEnabled.Load() {
		globalMu.Lock()
		defer globalMu.Unlock()
		if globalWorld == nil {
			globalWorld = newWorld(DefaultStackSize)
		}
		return globalWorld
	}

	gid := goid.Get()

	registryMu.RLock()
	w, ok := registry[gid]
	registryMu.RUnlock()
	if ok {
		return w
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if w, ok = registry[gid]; ok {
		return w
	}
	w = newWorld(DefaultStackSize)
	registry[gid] = w
	return w
}

// Configure sets up the calling goroutine's world explicitly: firstRecord
// supplies caller-owned storage for the world's first coroutine (required
// whenever threading support is enabled, so a non-primary host thread never
// forces a heap allocation), and stackSize sets the per-coroutine stack
// budget, clamped to a multiple of 1024 bytes with a 1024-byte floor.
//
// Configure must be called before any coroutine is created on this
// goroutine. It returns Busy if a coroutine already exists here, or Error if
// firstRecord is nil while threading support is enabled.
func Configure(firstRecord *Coroutine, stackSize int) Status {
	threadSafe := threadingSupportEnabled.Load()
	if threadSafe && firstRecord == nil {
		return Error
	}

	if !threadSafe {
		globalMu.Lock()
		defer globalMu.Unlock()
		if globalWorld != nil && globalWorld.anyCreated {
			return Busy
		}
		if firstRecord != nil {
			globalWorld = newWorldWithFirst(firstRecord, stackSize)
		} else {
			globalWorld = newWorld(stackSize)
		}
		globalWorld.configured = true
		return Success
	}

	gid := goid.Get()
	registryMu.Lock()
	defer registryMu.Unlock()
	if existing, ok := registry[gid]; ok && existing.anyCreated {
		return Busy
	}
	registry[gid] = newWorldWithFirst(firstRecord, stackSize)
	registry[gid].configured = true
	return Success
}
