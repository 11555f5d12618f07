// Package tcell adapts a tcell.Screen to backend.Backend.
package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-store/backend"
)

// Backend draws to a tcell screen.
type Backend struct {
	screen tcell.Screen
}

// New wraps screen.
func New(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen), nil
}

// Screen returns the wrapped screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

func (b *Backend) Init() error {
	return b.screen.Init()
}

func (b *Backend) Fini() {
	b.screen.Fini()
}

func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, style)
}

// SetRow writes a run of cells on row y. Zero runes mark the trailing half
// of a wide rune and are skipped.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		if cell.Rune == 0 {
			continue
		}
		b.screen.SetContent(startX+i, y, cell.Rune, nil, cell.Style)
	}
}

func (b *Backend) Show() {
	b.screen.Show()
}

func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent translates tcell events. Events without a translation are
// skipped; nil is returned once the screen is finalized.
func (b *Backend) PollEvent() backend.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out := translate(ev); out != nil {
			return out
		}
	}
}

func translate(ev tcell.Event) backend.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		mods := e.Modifiers()
		return backend.KeyEvent{
			Key:   e.Key(),
			Rune:  e.Rune(),
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return backend.ResizeEvent{Width: w, Height: h}
	default:
		return nil
	}
}
