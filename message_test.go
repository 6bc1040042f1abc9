package gocoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagePushPopIsFIFO(t *testing.T) {
	sender := Current()
	receiver := Create(func(arg any) any { return nil })

	m1 := NewMessage(MessageType(1), "first")
	m2 := NewMessage(MessageType(1), "second")
	m3 := NewMessage(MessageType(2), "third")

	assert.Equal(t, Success, sender.Push(receiver, m1))
	assert.Equal(t, Success, sender.Push(receiver, m2))
	assert.Equal(t, Success, sender.Push(receiver, m3))

	assert.Same(t, m1, receiver.Peek())

	got := receiver.Pop()
	assert.Same(t, m1, got)
	assert.Equal(t, "first", got.Data())
	assert.Same(t, sender, got.From())
	assert.True(t, got.InUse())

	got = receiver.Pop()
	assert.Same(t, m2, got)

	got = receiver.Pop()
	assert.Same(t, m3, got)

	assert.Nil(t, receiver.Pop())
}

func TestMessagePopTypeSkipsOthers(t *testing.T) {
	sender := Current()
	receiver := Create(func(arg any) any { return nil })

	m1 := NewMessage(MessageType(1), "a")
	m2 := NewMessage(MessageType(2), "b")
	m3 := NewMessage(MessageType(1), "c")

	sender.Push(receiver, m1)
	sender.Push(receiver, m2)
	sender.Push(receiver, m3)

	got := receiver.PopType(MessageType(2))
	assert.Same(t, m2, got)

	// Order of the remaining type-1 messages is preserved.
	assert.Same(t, m1, receiver.Pop())
	assert.Same(t, m3, receiver.Pop())
}

func TestMessageHandledAndRelease(t *testing.T) {
	msg := NewMessage(MessageType(0), 42)
	assert.True(t, msg.InUse())
	assert.False(t, msg.Handled())

	msg.MarkHandled()
	assert.True(t, msg.Handled())

	msg.Release()
	assert.False(t, msg.InUse())
	assert.False(t, msg.Handled())
}

func TestMessagePushRejectsNil(t *testing.T) {
	sender := Current()
	receiver := Create(func(arg any) any { return nil })
	assert.Equal(t, Error, sender.Push(receiver, nil))
	assert.Equal(t, Error, sender.Push(nil, NewMessage(MessageType(0), nil)))
}
