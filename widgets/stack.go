package widgets

import "github.com/odvcencio/furry-store/runtime"

// Stack lays children out top to bottom, one measured height each.
type Stack struct {
	Base
	children []runtime.Widget
}

// NewStack creates a vertical stack.
func NewStack(children ...runtime.Widget) *Stack {
	return &Stack{children: children}
}

// ChildWidgets returns the stacked children.
func (s *Stack) ChildWidgets() []runtime.Widget {
	return s.children
}

// Measure sums child heights and keeps the widest child.
func (s *Stack) Measure(constraints runtime.Constraints) runtime.Size {
	var size runtime.Size
	for _, child := range s.children {
		cs := child.Measure(runtime.Constraints{MaxWidth: constraints.MaxWidth})
		size.Height += cs.Height
		size.Width = max(size.Width, cs.Width)
	}
	return constraints.Constrain(size)
}

// Layout assigns each child a full-width row band.
func (s *Stack) Layout(bounds runtime.Rect) {
	s.Base.Layout(bounds)
	y := bounds.Y
	for _, child := range s.children {
		h := child.Measure(runtime.Constraints{MaxWidth: bounds.Width}).Height
		if y+h > bounds.Y+bounds.Height {
			h = max(0, bounds.Y+bounds.Height-y)
		}
		child.Layout(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: h})
		y += h
	}
}

// Render draws every child.
func (s *Stack) Render(ctx runtime.RenderContext) {
	for _, child := range s.children {
		child.Render(ctx)
	}
}

// HandleMessage offers msg to each child until one handles it.
func (s *Stack) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range s.children {
		if res := child.HandleMessage(msg); res.Handled {
			return res
		}
	}
	return runtime.Unhandled()
}
