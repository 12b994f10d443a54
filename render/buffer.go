package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
	Bold bool
}

var emptyCell = Cell{Rune: ' ', Fg: RGBText, Bg: RGBBackground}

// RenderBuffer is a compositor over a flat cell array
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Bounds returns the buffer dimensions
func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x,y; out of bounds reads as empty
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Set composites a cell; a zero rune keeps the existing glyph
func (b *RenderBuffer) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	if r != 0 {
		dst.Rune = r
	}
	switch mode {
	case BlendAlpha:
		dst.Fg = dst.Fg.Blend(fg, alpha)
		dst.Bg = dst.Bg.Blend(bg, alpha)
	default:
		dst.Fg = fg
		dst.Bg = bg
	}
}

// SetFgOnly writes rune and foreground while preserving the background
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB, bold bool) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Bold = bold
}

// SetBgOnly updates the background color while preserving rune and foreground
func (b *RenderBuffer) SetBgOnly(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Bg = bg
}

// Text writes s left to right from x,y, clipped to the buffer, and returns the next free column
func (b *RenderBuffer) Text(x, y int, s string, fg RGB) int {
	for _, r := range s {
		b.SetFgOnly(x, y, r, fg, false)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

// Darken blends every cell toward black by alpha
func (b *RenderBuffer) Darken(alpha float64) {
	if alpha <= 0 {
		return
	}
	for i := range b.cells {
		b.cells[i].Fg = b.cells[i].Fg.Blend(RGBBlack, alpha)
		b.cells[i].Bg = b.cells[i].Bg.Blend(RGBBlack, alpha)
	}
}

// Flush writes every cell to the screen; the caller shows it
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			style := tcell.StyleDefault.Foreground(c.Fg.Color()).Background(c.Bg.Color()).Bold(c.Bold)
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}
