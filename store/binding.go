package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-store/state"
)

// Binding ties one store key to a component's local render state.
//
// The local value is captured once by Bind. Mount takes the observer slot and
// Unmount gives it back; between the two every change is pushed into the
// local value, through the scheduler when one is set, and the invalidate func
// is called so the host can schedule a render. Value may lag the store until
// the scheduler runs.
type Binding[K comparable, V any] struct {
	store *Store[K, V]
	key   K
	cell  *state.Subject[V]

	mu         sync.Mutex
	value      V
	observer   *state.Observer[V]
	scheduler  state.Scheduler
	invalidate func()
	mounted    bool
	generation uint64
}

// Bind creates a binding for key holding the key's current value.
// For an unknown key the returned binding is inert: Mount does nothing and
// Value keeps reporting the key.
func (s *Store[K, V]) Bind(key K) (*Binding[K, V], error) {
	b := &Binding[K, V]{store: s, key: key}
	cell, err := s.cell(key)
	if err != nil {
		return b, err
	}
	b.cell = cell
	b.value = cell.Get()
	b.observer = state.NewObserver(b.receive)
	return b, nil
}

// Key returns the bound key.
func (b *Binding[K, V]) Key() K {
	return b.key
}

// SetScheduler routes deliveries through scheduler. Nil delivers inline.
func (b *Binding[K, V]) SetScheduler(scheduler state.Scheduler) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.scheduler = scheduler
	b.mu.Unlock()
}

// OnChange sets the func called after the local value changes.
func (b *Binding[K, V]) OnChange(fn func()) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.invalidate = fn
	b.mu.Unlock()
}

// Value returns the local render state, validating the key on every call.
func (b *Binding[K, V]) Value() V {
	var zero V
	if b == nil {
		return zero
	}
	if _, err := b.store.cell(b.key); err != nil {
		return zero
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Mounted reports whether the binding holds its observer slot.
func (b *Binding[K, V]) Mounted() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

// Mount subscribes the binding. The cell sends its current value right away.
// Mounting twice is a no-op.
func (b *Binding[K, V]) Mount() {
	if b == nil || b.cell == nil {
		return
	}
	b.mu.Lock()
	if b.mounted {
		b.mu.Unlock()
		return
	}
	b.mounted = true
	b.generation++
	b.mu.Unlock()

	b.store.logger.Debug("store binding mounted",
		zap.String("key", b.cell.Name()),
		zap.Stringer("observer", b.observer.ID()))
	b.cell.Subscribe(b.observer)
}

// Unmount unsubscribes the binding. Deliveries still queued in the scheduler
// are dropped when they run.
func (b *Binding[K, V]) Unmount() {
	if b == nil || b.cell == nil {
		return
	}
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	b.mounted = false
	b.generation++
	b.mu.Unlock()

	b.cell.Unsubscribe(b.observer)
	b.store.logger.Debug("store binding unmounted",
		zap.String("key", b.cell.Name()),
		zap.Stringer("observer", b.observer.ID()))
}

// Release is Unmount, for use with defer.
func (b *Binding[K, V]) Release() {
	b.Unmount()
}

func (b *Binding[K, V]) receive(value V) {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	generation := b.generation
	scheduler := b.scheduler
	b.mu.Unlock()

	apply := func() { b.apply(generation, value) }
	if scheduler == nil {
		apply()
		return
	}
	scheduler.Schedule(apply)
}

func (b *Binding[K, V]) apply(generation uint64, value V) {
	b.mu.Lock()
	if !b.mounted || b.generation != generation {
		b.mu.Unlock()
		return
	}
	b.value = value
	invalidate := b.invalidate
	b.mu.Unlock()

	if invalidate != nil {
		invalidate()
	}
}
