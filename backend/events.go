package backend

import "github.com/gdamore/tcell/v2"

// Key identifies a non-rune key.
type Key = tcell.Key

// Event is an input event produced by a Backend.
type Event interface {
	isEvent()
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}
