// Package store maps a fixed set of keys to observable values.
//
// A Store is built once from an initial map and never gains or loses keys.
// Every key-taking method checks membership first; an unknown key is passed
// to the configured Reporter as an *UnknownKeyError, the operation is
// skipped, and the same error is returned.
//
//	s := store.New(map[string]int{"count": 0})
//	s.Set("count", 1)
//	v, _ := s.Get("count")
package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-store/state"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	reporter Reporter
}

// WithLogger sets the logger used for debug output and the default reporter.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithReporter sets the collaborator that receives validation failures.
func WithReporter(reporter Reporter) Option {
	return func(o *options) {
		o.reporter = reporter
	}
}

// Store owns one state.Subject per key.
type Store[K comparable, V any] struct {
	cells    map[K]*state.Subject[V]
	order    []K
	logger   *zap.Logger
	reporter Reporter
}

// New creates a store with one cell per key in initial.
// An empty map yields a store on which every key is unknown.
func New[K comparable, V any](initial map[K]V, opts ...Option) *Store[K, V] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.reporter == nil {
		o.reporter = LogReporter{Logger: o.logger}
	}
	s := &Store[K, V]{
		cells:    make(map[K]*state.Subject[V], len(initial)),
		order:    make([]K, 0, len(initial)),
		logger:   o.logger,
		reporter: o.reporter,
	}
	for key, value := range initial {
		s.cells[key] = state.NewSubject(keyName(key), value)
		s.order = append(s.order, key)
	}
	s.logger.Debug("store created", zap.Int("keys", len(s.cells)))
	return s
}

// Has reports whether key was part of the initial map. It never reports.
func (s *Store[K, V]) Has(key K) bool {
	if s == nil {
		return false
	}
	_, ok := s.cells[key]
	return ok
}

// Keys returns the store keys in unspecified order.
func (s *Store[K, V]) Keys() []K {
	if s == nil {
		return nil
	}
	keys := make([]K, len(s.order))
	copy(keys, s.order)
	return keys
}

// Len returns the number of keys.
func (s *Store[K, V]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cells)
}

// SetEqualFunc replaces change detection on every cell.
func (s *Store[K, V]) SetEqualFunc(fn state.EqualFunc[V]) {
	if s == nil {
		return
	}
	for _, cell := range s.cells {
		cell.SetEqualFunc(fn)
	}
}

// Get returns the current value for key.
func (s *Store[K, V]) Get(key K) (V, error) {
	cell, err := s.cell(key)
	if err != nil {
		var zero V
		return zero, err
	}
	return cell.Get(), nil
}

// Set writes value and notifies listeners, then observers.
// Writing the current value is a no-op.
func (s *Store[K, V]) Set(key K, value V) error {
	return s.set(key, value, true)
}

// SetQuiet writes value and notifies observers only.
func (s *Store[K, V]) SetQuiet(key K, value V) error {
	return s.set(key, value, false)
}

func (s *Store[K, V]) set(key K, value V, runListeners bool) error {
	cell, err := s.cell(key)
	if err != nil {
		return err
	}
	if cell.Update(value, runListeners) {
		s.logger.Debug("store value changed",
			zap.String("key", cell.Name()),
			zap.Bool("listeners", runListeners))
	}
	return nil
}

// AddListener registers l on key.
func (s *Store[K, V]) AddListener(key K, l *state.Listener[V]) error {
	cell, err := s.cell(key)
	if err != nil {
		return err
	}
	cell.AddListener(l)
	return nil
}

// RemoveListener removes l from key.
func (s *Store[K, V]) RemoveListener(key K, l *state.Listener[V]) error {
	cell, err := s.cell(key)
	if err != nil {
		return err
	}
	cell.RemoveListener(l)
	return nil
}

// Listen registers fn on key and returns a func that removes it.
func (s *Store[K, V]) Listen(key K, fn func(name string, value V)) (func(), error) {
	cell, err := s.cell(key)
	if err != nil {
		return func() {}, err
	}
	l := state.NewListener(fn)
	cell.AddListener(l)
	var once sync.Once
	return func() {
		once.Do(func() {
			cell.RemoveListener(l)
		})
	}, nil
}

// cell resolves key, reporting once when it is unknown.
func (s *Store[K, V]) cell(key K) (*state.Subject[V], error) {
	if s == nil {
		return nil, &UnknownKeyError{Key: key}
	}
	if cell, ok := s.cells[key]; ok {
		return cell, nil
	}
	err := &UnknownKeyError{Key: key}
	if s.reporter != nil {
		s.reporter.Report(err)
	}
	return nil, err
}
