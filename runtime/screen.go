package runtime

import "github.com/odvcencio/furry-store/backend"

// Screen owns the root widget and the render buffer.
type Screen struct {
	width, height int
	root          Widget
	buffer        *Buffer
	services      Services
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
	}
}

// SetServices configures app services for bindable widgets.
// It applies to roots attached afterwards.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// SetRoot detaches the current root and attaches root.
func (s *Screen) SetRoot(root Widget) {
	if s.root != nil {
		DetachTree(s.root)
	}
	s.root = root
	if root != nil {
		AttachTree(root, s.services)
	}
	s.buffer.MarkAllDirty()
}

// Root returns the attached root widget.
func (s *Screen) Root() Widget {
	return s.root
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
}

// Buffer returns the render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// Render lays out and draws the root into the buffer.
func (s *Screen) Render() {
	if s.root == nil {
		s.buffer.Clear()
		return
	}
	bounds := Rect{Width: s.width, Height: s.height}
	s.root.Measure(Tight(Size{Width: s.width, Height: s.height}))
	s.root.Layout(bounds)
	ctx := RenderContext{Buffer: s.buffer, Bounds: bounds}
	ctx.Clear(backend.DefaultStyle())
	s.root.Render(ctx)
}

// HandleMessage routes msg to the root widget.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	if s.root == nil {
		return Unhandled()
	}
	return s.root.HandleMessage(msg)
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer *Buffer
	Bounds Rect // Widget's allocated bounds
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer: ctx.Buffer,
		Bounds: bounds,
	}
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}
