package gocoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingPong(t *testing.T) {
	var trace []string

	pong := Create(func(arg any) any {
		for i := 0; i < 3; i++ {
			trace = append(trace, arg.(string))
			arg = Current().Yield("pong")
		}
		return "pong done"
	})

	arg := any("ping")
	for i := 0; i < 3; i++ {
		arg = Resume(pong, arg)
		trace = append(trace, "ping saw "+arg.(string))
	}
	final := Resume(pong, arg)

	assert.Equal(t, []string{
		"ping", "ping saw pong",
		"pong", "ping saw pong",
		"pong", "ping saw pong",
	}, trace)
	assert.Equal(t, "pong done", final)
}

func TestResumeUnresumableReturnsSentinel(t *testing.T) {
	co := Create(func(arg any) any { return nil })
	Resume(co, nil)
	result := Resume(co, nil)
	assert.Equal(t, NotResumable, result)
}

func TestCreateRecyclesIdleCoroutines(t *testing.T) {
	w := newWorld(DefaultStackSize)
	first := w.Create(func(arg any) any { return nil })
	w.resume(first, nil)

	second := w.Create(func(arg any) any { return nil })
	assert.Same(t, first, second)
}

func TestSetAndGetID(t *testing.T) {
	co := Create(func(arg any) any {
		Current().Yield(nil)
		return nil
	})
	co.SetID(ID(7))
	assert.Equal(t, ID(7), co.ID())
	Resume(co, nil)
	Resume(co, nil)
}

func TestYieldFromFirstCoroutineIsNoop(t *testing.T) {
	w := newWorld(DefaultStackSize)
	result := w.first.Yield("ignored")
	assert.Nil(t, result)
}
