// Package backend defines the terminal surface the runtime draws on.
package backend

import "github.com/gdamore/tcell/v2"

// Style is the cell style shared with tcell.
type Style = tcell.Style

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// Cell is one character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a terminal the app renders to and reads events from.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	HideCursor()
	// PollEvent blocks until an event arrives. It returns nil after Fini.
	PollEvent() Event
}

// RowWriter is implemented by backends that can take a whole row at once.
type RowWriter interface {
	SetRow(y int, startX int, cells []Cell)
}
