package runtime

import (
	"fmt"
	"strings"

	"github.com/odvcencio/furry-store/state"
)

// FlushPolicy selects the loop messages that drain deferred deliveries.
// A QueueFlushMsg always drains.
type FlushPolicy int

const (
	// FlushAlways drains after every message and tick.
	FlushAlways FlushPolicy = iota
	// FlushOnMessage drains after every message except TickMsg.
	FlushOnMessage
	// FlushOnTick drains only on TickMsg.
	FlushOnTick
	// FlushManual drains only on QueueFlushMsg.
	FlushManual
)

var flushPolicyNames = map[FlushPolicy]string{
	FlushAlways:    "always",
	FlushOnMessage: "message",
	FlushOnTick:    "tick",
	FlushManual:    "manual",
}

func (p FlushPolicy) String() string {
	if name, ok := flushPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("FlushPolicy(%d)", int(p))
}

// ParseFlushPolicy maps a name printed by String back to its policy.
func ParseFlushPolicy(name string) (FlushPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range flushPolicyNames {
		if n == name {
			return p, nil
		}
	}
	return FlushAlways, fmt.Errorf("unknown flush policy %q", name)
}

// Flushes reports whether msg should drain the delivery queue.
func (p FlushPolicy) Flushes(msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	_, tick := msg.(TickMsg)
	switch p {
	case FlushManual:
		return false
	case FlushOnMessage:
		return !tick
	case FlushOnTick:
		return tick
	default:
		return true
	}
}

// QueueScheduler parks store deliveries in a state.Queue so they run on the
// app loop. The first delivery after a drain posts one QueueFlushMsg; later
// ones ride along until Drain runs.
type QueueScheduler struct {
	queue *state.Queue
	w     wakeup
}

// NewQueueScheduler creates a scheduler over queue that wakes the loop with post.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{queue: queue, w: wakeup{msg: QueueFlushMsg{}, post: post}}
}

// Schedule parks fn and wakes the loop if it is not already awake.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.w.fire()
}

// Pending returns the number of parked deliveries.
func (s *QueueScheduler) Pending() int {
	if s == nil {
		return 0
	}
	return s.queue.Len()
}

// Wakeups returns how many flush messages reached the loop.
func (s *QueueScheduler) Wakeups() int64 {
	if s == nil {
		return 0
	}
	return s.w.posted.Load()
}

// Drain runs every parked delivery and returns how many ran.
func (s *QueueScheduler) Drain() int {
	if s == nil {
		return 0
	}
	s.w.ack()
	return s.queue.Flush()
}
