package runtime

import "sync/atomic"

// wakeup posts one message into the loop and holds off further posts until
// the loop acknowledges it.
type wakeup struct {
	msg    Message
	post   func(Message) bool
	armed  atomic.Bool
	posted atomic.Int64
}

func (w *wakeup) fire() {
	if w.post == nil || !w.armed.CompareAndSwap(false, true) {
		return
	}
	if w.post(w.msg) {
		w.posted.Add(1)
		return
	}
	// Mailbox full: the next caller tries again.
	w.armed.Store(false)
}

func (w *wakeup) ack() {
	w.armed.Store(false)
}

// Invalidator coalesces render requests into one pending InvalidateMsg.
type Invalidator struct {
	w wakeup
}

// NewInvalidator creates an invalidator that posts through post.
func NewInvalidator(post func(Message) bool) *Invalidator {
	return &Invalidator{w: wakeup{msg: InvalidateMsg{}, post: post}}
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i == nil {
		return
	}
	i.w.fire()
}

// Posted returns how many InvalidateMsg values reached the loop.
func (i *Invalidator) Posted() int64 {
	if i == nil {
		return 0
	}
	return i.w.posted.Load()
}

func (i *Invalidator) ack() {
	if i == nil {
		return
	}
	i.w.ack()
}
