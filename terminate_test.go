package gocoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminateReleasesHeldMutex(t *testing.T) {
	m := NewMutex(MutexPlain)

	a := Create(func(arg any) any {
		c := Current()
		c.Lock(m)
		c.Yield(nil)
		c.Unlock(m)
		return nil
	})
	Resume(a, nil) // A locks M, then blocks in Yield

	assert.Equal(t, Success, Terminate(a, []*Mutex{m}))
	assert.Nil(t, m.owner)
	assert.Equal(t, NotRunning, a.State())

	b := Create(func(arg any) any {
		return Current().Lock(m)
	})
	assert.Equal(t, Success, Resume(b, nil))
}

func TestTerminateRejectsNilFirstOrRunning(t *testing.T) {
	assert.Equal(t, Error, Terminate(nil, nil))

	w := currentWorld()
	assert.Equal(t, Error, w.Terminate(w.First(), nil))
	assert.Equal(t, Error, w.Terminate(w.Current(), nil))
}

func TestTerminatedCoroutineIsRecycledByCreate(t *testing.T) {
	w := newWorld(DefaultStackSize)
	a := w.Create(func(arg any) any {
		Current().Yield(nil)
		return nil
	})
	w.resume(a, nil)

	assert.Equal(t, Success, w.Terminate(a, nil))

	b := w.Create(func(arg any) any { return "new body" })
	assert.Same(t, a, b)
	assert.Equal(t, "new body", w.resume(b, nil))
}
