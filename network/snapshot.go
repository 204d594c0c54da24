package network

import (
	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/render"
	"github.com/lixenwraith/flipcard/status"
)

// CellView is the client-visible projection of one cell
// Type is only present while a face is being drawn
type CellView struct {
	Index   int     `json:"index"`
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Region  int     `json:"region"`
	Type    *int    `json:"type,omitempty"`
	ScaleX  float64 `json:"scale_x"`
	ScaleY  float64 `json:"scale_y"`
	Visible bool    `json:"visible"`
}

// Snapshot is the full board as seen by a remote client
type Snapshot struct {
	Session     string         `json:"session"`
	Generation  uint64         `json:"generation"`
	Initialized bool           `json:"initialized"`
	Won         bool           `json:"won"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	Remaining   int            `json:"remaining"`
	Active      int64          `json:"active"`
	Cells       []CellView     `json:"cells"`
	Metrics     map[string]any `json:"metrics"`
}

// BuildSnapshot projects the game state, must run on the game loop
func BuildSnapshot(g *engine.Game) *Snapshot {
	b := g.Board
	s := &Snapshot{
		Session:     g.Session(),
		Generation:  b.Generation(),
		Initialized: b.Initialized(),
		Won:         g.Won(),
		Rows:        b.Rows(),
		Cols:        b.Cols(),
		Remaining:   b.Remaining(),
		Active:      g.Status.Ints.Get(status.KeyActive).Load(),
		Cells:       make([]CellView, b.Len()),
		Metrics:     g.Status.Snapshot(),
	}

	for i, c := range b.Cells() {
		row, col := b.Position(i)
		view := CellView{
			Index:  i,
			Row:    row,
			Col:    col,
			Region: int(render.RegionBack),
		}
		if proj, visible := render.Project(c); visible {
			view.Visible = true
			view.Region = int(proj.Region)
			view.ScaleX = proj.ScaleX
			view.ScaleY = proj.ScaleY
			if !proj.Region.IsBack() {
				t := c.Type
				view.Type = &t
			}
		}
		s.Cells[i] = view
	}
	return s
}
