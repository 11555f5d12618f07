package widgets

import (
	"testing"

	"github.com/odvcencio/furry-store/runtime"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

func TestUseStore_ReleasedOnUnbind(t *testing.T) {
	s := store.New(map[string]int{"count": 0})
	var c Component
	c.Bind(runtime.Services{})

	b, err := UseStore(&c, s, "count")
	if err != nil {
		t.Fatalf("use store failed: %v", err)
	}
	s.Set("count", 1)
	if b.Value() != 1 {
		t.Fatalf("expected binding at 1, got %d", b.Value())
	}
	if !c.NeedsRender() {
		t.Fatalf("expected change to invalidate the component")
	}

	c.Unbind()
	s.Set("count", 2)
	if b.Value() != 1 || b.Mounted() {
		t.Fatalf("expected released binding to stay at 1, got %d", b.Value())
	}
}

func TestUseStore_UsesComponentScheduler(t *testing.T) {
	s := store.New(map[string]int{"count": 0})
	queue := state.NewQueue()
	var c Component
	c.Subs.SetScheduler(queue)

	b, _ := UseStore(&c, s, "count")
	queue.Flush()
	c.ClearInvalidation()

	s.Set("count", 3)
	if b.Value() != 0 || c.NeedsRender() {
		t.Fatalf("expected delivery to wait for the queue")
	}
	queue.Flush()
	if b.Value() != 3 || !c.NeedsRender() {
		t.Fatalf("expected queued delivery to apply")
	}
	c.Unbind()
}

func TestComponent_Watch(t *testing.T) {
	subj := state.NewSubject("count", 0)
	var c Component
	calls := 0
	c.Watch(subj, func() { calls++ })
	subj.Update(1, true)
	c.Unbind()
	subj.Update(2, true)
	if calls != 1 {
		t.Fatalf("expected 1 watch call, got %d", calls)
	}
}

func TestStack_LayoutAndRender(t *testing.T) {
	s := store.New(map[string]string{"a": "first", "b": "second"})
	top := NewStoreLabel(s, "a", nil)
	bottom := NewStoreLabel(s, "b", nil)
	stack := NewStack(top, bottom)

	size := stack.Measure(runtime.Constraints{MaxWidth: 10, MaxHeight: 5})
	if size.Height != 2 || size.Width != 6 {
		t.Fatalf("unexpected measure %+v", size)
	}

	buf := runtime.NewBuffer(10, 3)
	bounds := runtime.Rect{Width: 10, Height: 3}
	stack.Layout(bounds)
	stack.Render(runtime.RenderContext{Buffer: buf, Bounds: bounds})
	if got := buf.Text(0); got != "first     " {
		t.Fatalf("unexpected row 0 %q", got)
	}
	if got := buf.Text(1); got != "second    " {
		t.Fatalf("unexpected row 1 %q", got)
	}
	if len(stack.ChildWidgets()) != 2 {
		t.Fatalf("expected 2 children")
	}
}
