package widgets

import (
	"github.com/odvcencio/furry-store/runtime"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

// Component is a base widget with bound services and subscriptions.
type Component struct {
	Base
	Services runtime.Services
	Subs     state.Subscriptions
}

// Bind attaches app services to the component.
func (c *Component) Bind(services runtime.Services) {
	c.Services = services
	c.Subs.SetScheduler(services.Scheduler())
}

// Unbind releases app services and every tracked subscription.
func (c *Component) Unbind() {
	c.Subs.Clear()
	c.Services = runtime.Services{}
}

// Invalidate marks the component dirty and requests a render pass.
func (c *Component) Invalidate() {
	c.MarkDirty()
	c.Services.Invalidate()
}

// Watch registers fn on w using the component scheduler.
func (c *Component) Watch(w state.Watchable, fn func()) {
	c.Subs.Watch(w, fn)
}

// UseStore binds key to c until c is unbound.
// Call it after Component.Bind so deliveries use the app scheduler; each
// change invalidates c.
func UseStore[K comparable, V any](c *Component, s *store.Store[K, V], key K) (*store.Binding[K, V], error) {
	b, err := s.Bind(key)
	if err != nil {
		return b, err
	}
	b.SetScheduler(c.Subs.Scheduler())
	b.OnChange(c.Invalidate)
	b.Mount()
	c.Subs.Add(b.Release)
	return b, nil
}
