package state

import "sync"

// Subscriptions collects release funcs so an owner can drop them together.
type Subscriptions struct {
	mu       sync.Mutex
	releases []func()
	sched    Scheduler
}

// NewSubscriptions creates a Subscriptions with a default scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{sched: scheduler}
}

// SetScheduler updates the default scheduler.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
}

// Scheduler returns the default scheduler.
func (s *Subscriptions) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()
	return scheduler
}

// Add tracks a release func.
func (s *Subscriptions) Add(release func()) {
	if s == nil || release == nil {
		return
	}
	s.mu.Lock()
	s.releases = append(s.releases, release)
	s.mu.Unlock()
}

// Len returns the number of tracked release funcs.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.releases)
}

// Watch registers fn on w and tracks the release.
// fn runs through the default scheduler when one is set.
func (s *Subscriptions) Watch(w Watchable, fn func()) {
	if s == nil || w == nil || fn == nil {
		return
	}
	scheduler := s.Scheduler()
	callback := fn
	if scheduler != nil {
		callback = func() { scheduler.Schedule(fn) }
	}
	s.Add(w.Watch(callback))
}

// Clear runs every tracked release func once.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()
	for _, release := range releases {
		if release != nil {
			release()
		}
	}
}
