package render

import "math"

// Class selects the style a cell is drawn with.
type Class int

const (
	ClassEmpty Class = iota
	ClassStar
	ClassOrbit
	ClassHub
	ClassHubVertex
	ClassMarker
	ClassMarkerHover
	ClassBorder
	ClassBorderHover
	ClassLabel
	ClassLabelHover
	ClassStarBright
)

type cell struct {
	r     rune
	depth float64
	class Class
}

// Canvas is a rune grid with a per-cell depth buffer.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas returns a blank canvas.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{w: w, h: h, cells: make([]cell, w*h)}
	c.Clear()
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// Clear blanks every cell and resets depth.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', depth: math.Inf(1)}
	}
}

// Plot draws r at (col, row) if it is nearer than what is there.
func (c *Canvas) Plot(col, row int, r rune, depth float64, class Class) bool {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return false
	}
	i := row*c.w + col
	if depth >= c.cells[i].depth {
		return false
	}
	c.cells[i] = cell{r: r, depth: depth, class: class}
	return true
}

// Overlay draws r at (col, row) regardless of depth.
func (c *Canvas) Overlay(col, row int, r rune, class Class) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	i := row*c.w + col
	c.cells[i] = cell{r: r, depth: math.Inf(-1), class: class}
}

// At returns the rune and class at (col, row).
func (c *Canvas) At(col, row int) (rune, Class) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return ' ', ClassEmpty
	}
	cl := c.cells[row*c.w+col]
	return cl.r, cl.class
}

// Row returns one row of runes as a string.
func (c *Canvas) Row(row int) string {
	if row < 0 || row >= c.h {
		return ""
	}
	rs := make([]rune, c.w)
	for x := 0; x < c.w; x++ {
		rs[x] = c.cells[row*c.w+x].r
	}
	return string(rs)
}
