package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-store/backend"
)

// Cell represents a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is a 2D grid of cells widgets render into.
// The app flushes it to the backend when it is dirty.
type Buffer struct {
	cells  []Cell
	width  int
	height int
	dirty  bool
}

// NewBuffer creates a buffer filled with blank cells.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the dimensions, keeping the overlapping content.
func (b *Buffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == b.width && h == b.height && b.cells != nil {
		return
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	minW := min(w, b.width)
	minH := min(h, b.height)
	for y := 0; y < minH; y++ {
		copy(cells[y*w:y*w+minW], b.cells[y*b.width:y*b.width+minW])
	}
	b.cells = cells
	b.width = w
	b.height = h
	b.dirty = true
}

// Clear fills the buffer with spaces in the default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{Width: b.width, Height: b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at (x, y), or a blank cell when out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune at (x, y). Out of bounds writes are dropped.
func (b *Buffer) Set(x, y int, r rune, style backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	if b.cells[idx].Rune == r && b.cells[idx].Style == style {
		return
	}
	b.cells[idx] = Cell{Rune: r, Style: style}
	b.dirty = true
}

// SetString writes s from (x, y), advancing by each rune's display width.
// It returns the column after the last written rune.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.Set(x, y, r, style)
		for i := 1; i < w; i++ {
			b.Set(x+i, y, 0, style)
		}
		x += w
		if x >= b.width {
			break
		}
	}
	return x
}

// Fill sets every cell of r to ch.
func (b *Buffer) Fill(r Rect, ch rune, style backend.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.Set(x, y, ch, style)
		}
	}
}

// Row returns the cells of row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width : (y+1)*b.width]
}

// Text returns row y as a string, skipping wide-rune continuation cells.
func (b *Buffer) Text(y int) string {
	row := b.Row(y)
	runes := make([]rune, 0, len(row))
	for _, cell := range row {
		if cell.Rune != 0 {
			runes = append(runes, cell.Rune)
		}
	}
	return string(runes)
}

// MarkAllDirty forces the next flush.
func (b *Buffer) MarkAllDirty() {
	b.dirty = true
}

// IsDirty reports whether the buffer changed since ClearDirty.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// ClearDirty resets the dirty flag after a flush.
func (b *Buffer) ClearDirty() {
	b.dirty = false
}
