package gocoro

// MessageType is a user-defined tag distinguishing messages in an inbox.
// The library imposes no meaning on it beyond equality comparison in
// PopType.
type MessageType int

// Message is one entry in a coroutine's inbox: a typed, singly linked FIFO
// queue. A Message is pushed exactly once and travels the inbox it was
// pushed to until popped; it is the pusher's to allocate and the popper's to
// release once handled.
type Message struct {
	msgType MessageType
	data    any
	from    *Coroutine

	next *Message

	inUse   bool
	handled bool
}

// NewMessage allocates a Message carrying msgType and data, ready to Push
// onto a coroutine's inbox.
func NewMessage(msgType MessageType, data any) *Message {
	return &Message{msgType: msgType, data: data, inUse: true}
}

// Type returns the message's type tag.
func (msg *Message) Type() MessageType {
	return msg.msgType
}

// Data returns the message's payload.
func (msg *Message) Data() any {
	return msg.data
}

// From returns the coroutine that pushed msg, or nil if msg has never been
// pushed.
func (msg *Message) From() *Coroutine {
	return msg.from
}

// InUse reports whether msg is still live: true from NewMessage or Push
// until Release.
func (msg *Message) InUse() bool {
	return msg.inUse
}

// Handled reports whether the message's recipient has called MarkHandled on
// it.
func (msg *Message) Handled() bool {
	return msg.handled
}

// MarkHandled records that the message's recipient is done acting on it,
// without removing it from the inbox. Combined with Peek, this lets a
// coroutine inspect a message across more than one resumption before
// popping it.
func (msg *Message) MarkHandled() {
	msg.handled = true
}

// Release clears msg back to unused, so the pusher's side can recognize it
// is free to reuse or discard.
func (msg *Message) Release() {
	msg.inUse = false
	msg.handled = false
	msg.next = nil
}

// Push sends msg to target's inbox on behalf of the calling coroutine c,
// appending it to the tail so that Pop sees messages in the order they were
// pushed. It stamps msg with inUse = true, handled = false, and from = c
// before linking it in. It returns Error if target or msg is nil.
func (c *Coroutine) Push(target *Coroutine, msg *Message) Status {
	if target == nil || msg == nil {
		return Error
	}

	msg.from = c
	msg.inUse = true
	msg.handled = false
	msg.next = nil

	if target.inbox == nil {
		target.inbox = msg
		return Success
	}

	tail := target.inbox
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = msg
	return Success
}

// Peek returns the coroutine's oldest pending message without removing it,
// or nil if the inbox is empty.
func (c *Coroutine) Peek() *Message {
	return c.inbox
}

// Pop removes and returns the coroutine's oldest pending message, or nil if
// the inbox is empty.
func (c *Coroutine) Pop() *Message {
	msg := c.inbox
	if msg == nil {
		return nil
	}
	c.inbox = msg.next
	msg.next = nil
	return msg
}

// PopType removes and returns the oldest pending message of the given type,
// skipping over (without removing) any messages of other types ahead of it,
// or returns nil if no message of that type is pending.
func (c *Coroutine) PopType(msgType MessageType) *Message {
	var prev *Message
	for cur := c.inbox; cur != nil; cur = cur.next {
		if cur.msgType == msgType {
			if prev == nil {
				c.inbox = cur.next
			} else {
				prev.next = cur.next
			}
			cur.next = nil
			return cur
		}
		prev = cur
	}
	return nil
}
