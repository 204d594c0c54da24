package render

import (
	"math"

	"github.com/lixenwraith/flipcard/engine"
)

// Viewport maps a window of world space onto a grid of terminal cells
// The window spans the full world width and the card grid's rows plus one gap of margin
type Viewport struct {
	Cols, Rows int

	Left, Top     float64
	Width, Height float64
}

// NewViewport fits the layout's card grid into cols x rows terminal cells
func NewViewport(l engine.Layout, cols, rows int) Viewport {
	top := l.StartY - l.Gap
	bottom := l.StartY + float64(l.Rows)*(l.CellHeight+l.Gap)
	return Viewport{
		Cols:   max(cols, 1),
		Rows:   max(rows, 1),
		Left:   0,
		Top:    top,
		Width:  l.WorldWidth,
		Height: bottom - top,
	}
}

// ToScreen returns the terminal cell containing a world point
func (v Viewport) ToScreen(x, y float64) (col, row int) {
	col = int(math.Floor((x - v.Left) / v.Width * float64(v.Cols)))
	row = int(math.Floor((y - v.Top) / v.Height * float64(v.Rows)))
	return col, row
}

// ToWorld returns the world point at the middle of a terminal cell
func (v Viewport) ToWorld(col, row int) (x, y float64) {
	x = v.Left + (float64(col)+0.5)*v.Width/float64(v.Cols)
	y = v.Top + (float64(row)+0.5)*v.Height/float64(v.Rows)
	return x, y
}
