package runtime

// Widget is a node in the UI tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider exposes child widgets for tree walks.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Constraints bound a widget's measured size.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that only allow size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size Size) Size {
	return Size{
		Width:  clamp(size.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(size.Height, c.MinHeight, c.MaxHeight),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}

// HandleResult reports whether a message was consumed and which commands it produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Unhandled lets the message continue.
func Unhandled() HandleResult {
	return HandleResult{}
}

// Handled consumes the message.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// WithCommand consumes the message and emits cmds.
func WithCommand(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}
