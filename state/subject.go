// Package state provides minimal observable primitives for terminal UIs.
package state

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// Observer receives the current value of a subject.
// Identity is the handle pointer: subscribing the same handle twice keeps one registration.
type Observer[T any] struct {
	id ulid.ULID
	fn func(T)
}

// NewObserver wraps fn in an observer handle.
func NewObserver[T any](fn func(T)) *Observer[T] {
	return &Observer[T]{id: ulid.Make(), fn: fn}
}

// ID returns the observer's registration id.
func (o *Observer[T]) ID() ulid.ULID {
	if o == nil {
		return ulid.ULID{}
	}
	return o.id
}

func (o *Observer[T]) call(value T) {
	if o == nil || o.fn == nil {
		return
	}
	o.fn(value)
}

// Listener receives the subject name and new value on change.
type Listener[T any] struct {
	id ulid.ULID
	fn func(name string, value T)
}

// NewListener wraps fn in a listener handle.
func NewListener[T any](fn func(name string, value T)) *Listener[T] {
	return &Listener[T]{id: ulid.Make(), fn: fn}
}

// ID returns the listener's registration id.
func (l *Listener[T]) ID() ulid.ULID {
	if l == nil {
		return ulid.ULID{}
	}
	return l.id
}

func (l *Listener[T]) call(name string, value T) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(name, value)
}

// Subject holds a named value with two notification groups.
// Observers are render hooks and receive a snapshot on subscribe.
// Listeners are side-effect callbacks and only run on change.
type Subject[T any] struct {
	mu        sync.Mutex
	name      string
	value     T
	observers map[*Observer[T]]struct{}
	listeners map[*Listener[T]]struct{}
	equal     EqualFunc[T]
}

// NewSubject creates a subject using EqualStrict for change detection.
func NewSubject[T any](name string, initial T) *Subject[T] {
	return &Subject[T]{
		name:      name,
		value:     initial,
		observers: make(map[*Observer[T]]struct{}),
		listeners: make(map[*Listener[T]]struct{}),
		equal:     EqualStrict[T],
	}
}

// Name returns the name passed to listeners.
func (s *Subject[T]) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// SetEqualFunc configures the equality check used to suppress redundant updates.
// A nil fn restores EqualStrict.
func (s *Subject[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	if fn == nil {
		fn = EqualStrict[T]
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Subject[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	value := s.value
	s.mu.Unlock()
	return value
}

// Subscribe registers o and immediately calls it with the current value.
func (s *Subject[T]) Subscribe(o *Observer[T]) {
	if s == nil || o == nil {
		return
	}
	s.mu.Lock()
	s.observers[o] = struct{}{}
	value := s.value
	s.mu.Unlock()
	o.call(value)
}

// Unsubscribe removes o. Unknown observers are ignored.
func (s *Subject[T]) Unsubscribe(o *Observer[T]) {
	if s == nil || o == nil {
		return
	}
	s.mu.Lock()
	delete(s.observers, o)
	s.mu.Unlock()
}

// AddListener registers l for change notifications.
func (s *Subject[T]) AddListener(l *Listener[T]) {
	if s == nil || l == nil {
		return
	}
	s.mu.Lock()
	s.listeners[l] = struct{}{}
	s.mu.Unlock()
}

// RemoveListener removes l. Unknown listeners are ignored.
func (s *Subject[T]) RemoveListener(l *Listener[T]) {
	if s == nil || l == nil {
		return
	}
	s.mu.Lock()
	delete(s.listeners, l)
	s.mu.Unlock()
}

// Observe subscribes fn and returns a func that unsubscribes it.
func (s *Subject[T]) Observe(fn func(T)) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	o := NewObserver(fn)
	s.Subscribe(o)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.Unsubscribe(o)
		})
	}
}

// Watch registers fn to run after every change.
// Unlike Observe, fn is not called on registration.
func (s *Subject[T]) Watch(fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	o := NewObserver(func(T) { fn() })
	s.mu.Lock()
	s.observers[o] = struct{}{}
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.Unsubscribe(o)
		})
	}
}

// Update stores value and fans out notifications.
// It returns false without notifying anyone when value equals the current value.
// Listeners run only when runListeners is set, and always before observers.
func (s *Subject[T]) Update(value T, runListeners bool) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, value) {
		s.mu.Unlock()
		return false
	}
	s.value = value
	var listeners []*Listener[T]
	if runListeners {
		listeners = s.copyListenersLocked()
	}
	observers := s.copyObserversLocked()
	s.mu.Unlock()

	for _, l := range listeners {
		l.call(s.name, value)
	}
	for _, o := range observers {
		o.call(value)
	}
	return true
}

// ObserverCount returns the number of registered observers.
func (s *Subject[T]) ObserverCount() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// ListenerCount returns the number of registered listeners.
func (s *Subject[T]) ListenerCount() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Subject[T]) copyObserversLocked() []*Observer[T] {
	if len(s.observers) == 0 {
		return nil
	}
	observers := make([]*Observer[T], 0, len(s.observers))
	for o := range s.observers {
		observers = append(observers, o)
	}
	return observers
}

func (s *Subject[T]) copyListenersLocked() []*Listener[T] {
	if len(s.listeners) == 0 {
		return nil
	}
	listeners := make([]*Listener[T], 0, len(s.listeners))
	for l := range s.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}
