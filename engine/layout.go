package engine

import (
	"math"

	"github.com/lixenwraith/flipcard/constant"
)

// Layout places the card grid in world coordinates and resolves taps to cells
type Layout struct {
	Rows, Cols int

	StartX, StartY        float64
	CellWidth, CellHeight float64
	Gap                   float64

	WorldWidth, WorldHeight float64
}

// NewLayout fits rows x cols cards into the reference world, cards keep the art's aspect ratio
func NewLayout(rows, cols int) Layout {
	gap := constant.LayoutGap
	width := (constant.WorldWidth - 2*constant.LayoutStartX - gap*float64(cols+1)) / float64(cols)
	return Layout{
		Rows:        rows,
		Cols:        cols,
		StartX:      constant.LayoutStartX,
		StartY:      constant.LayoutStartY,
		CellWidth:   width,
		CellHeight:  width / constant.CardAspectWidth * constant.CardAspectHeight,
		Gap:         gap,
		WorldWidth:  constant.WorldWidth,
		WorldHeight: constant.WorldHeight,
	}
}

// Fits reports whether every card has positive size and the last row ends inside the world
func (l Layout) Fits() bool {
	if l.CellWidth <= 0 || l.CellHeight <= 0 {
		return false
	}
	bottom := l.StartY + float64(l.Rows)*(l.CellHeight+l.Gap) - l.Gap
	return bottom <= l.WorldHeight
}

// CellAt resolves a world-space point to a cell index
// Points left of or above the grid, or beyond its last row/column, report false
func (l Layout) CellAt(x, y float64) (int, bool) {
	col := int(math.Floor((x - l.StartX) / (l.CellWidth + l.Gap)))
	row := int(math.Floor((y - l.StartY) / (l.CellHeight + l.Gap)))
	if col < 0 || col >= l.Cols || row < 0 || row >= l.Rows {
		return -1, false
	}
	return row*l.Cols + col, true
}

// Origin returns the top-left world position of the cell at index
func (l Layout) Origin(index int) (x, y float64) {
	row, col := index/l.Cols, index%l.Cols
	return l.StartX + float64(col)*(l.CellWidth+l.Gap), l.StartY + float64(row)*(l.CellHeight+l.Gap)
}

// Center returns the world position of the middle of the cell at index
func (l Layout) Center(index int) (x, y float64) {
	x, y = l.Origin(index)
	return x + l.CellWidth/2, y + l.CellHeight/2
}
