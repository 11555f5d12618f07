package widgets

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-store/backend"
	"github.com/odvcencio/furry-store/runtime"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

// StoreLabel renders one store key as a single line of text.
// The binding is held between Mount and Unmount.
type StoreLabel[K comparable, V any] struct {
	Base
	binding    *store.Binding[K, V]
	format     func(V) string
	services   runtime.Services
	style      backend.Style
	alignment  Alignment
	bindingErr error
}

// NewStoreLabel creates a label for key. A nil format uses fmt.Sprint.
// An unknown key is reported by the store and the label renders empty.
func NewStoreLabel[K comparable, V any](s *store.Store[K, V], key K, format func(V) string) *StoreLabel[K, V] {
	if format == nil {
		format = func(v V) string { return fmt.Sprint(v) }
	}
	binding, err := s.Bind(key)
	label := &StoreLabel[K, V]{
		binding:    binding,
		format:     format,
		style:      backend.DefaultStyle(),
		alignment:  AlignLeft,
		bindingErr: err,
	}
	binding.OnChange(label.onChange)
	return label
}

// Err returns the error from binding the key, if any.
func (l *StoreLabel[K, V]) Err() error {
	return l.bindingErr
}

// SetScheduler routes store deliveries through scheduler.
func (l *StoreLabel[K, V]) SetScheduler(scheduler state.Scheduler) {
	l.binding.SetScheduler(scheduler)
}

// SetStyle sets the label style.
func (l *StoreLabel[K, V]) SetStyle(style backend.Style) {
	l.style = style
}

// SetAlignment sets text alignment.
func (l *StoreLabel[K, V]) SetAlignment(align Alignment) {
	l.alignment = align
}

// Text returns the text for the current render state.
func (l *StoreLabel[K, V]) Text() string {
	if l.bindingErr != nil {
		return ""
	}
	return l.format(l.binding.Value())
}

// Measure returns the size needed for the label.
func (l *StoreLabel[K, V]) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(l.Text()),
		Height: 1,
	})
}

// Render draws the label.
func (l *StoreLabel[K, V]) Render(ctx runtime.RenderContext) {
	bounds := l.bounds
	if bounds.Width == 0 || bounds.Height == 0 {
		return
	}
	text := truncateString(l.Text(), bounds.Width)
	x := alignedX(bounds, runewidth.StringWidth(text), l.alignment)
	ctx.Buffer.SetString(x, bounds.Y, text, l.style)
	l.ClearInvalidation()
}

// Bind routes deliveries through the app scheduler.
func (l *StoreLabel[K, V]) Bind(services runtime.Services) {
	l.services = services
	l.binding.SetScheduler(services.Scheduler())
}

// Unbind drops app services.
func (l *StoreLabel[K, V]) Unbind() {
	l.binding.SetScheduler(nil)
	l.services = runtime.Services{}
}

// Mount subscribes to the store key.
func (l *StoreLabel[K, V]) Mount() {
	l.binding.Mount()
}

// Unmount unsubscribes from the store key.
func (l *StoreLabel[K, V]) Unmount() {
	l.binding.Unmount()
}

func (l *StoreLabel[K, V]) onChange() {
	l.MarkDirty()
	l.services.Invalidate()
}
