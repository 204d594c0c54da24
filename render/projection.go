package render

import "github.com/lixenwraith/flipcard/component"

// Region selects the artwork drawn for a cell: a card face index or the shared back
type Region int

// RegionBack is the card back shared by every cell
const RegionBack Region = -1

// FaceRegion returns the region of a card type
func FaceRegion(cardType int) Region {
	return Region(cardType)
}

// IsBack reports whether r is the card back
func (r Region) IsBack() bool {
	return r == RegionBack
}

// Projection is what a renderer needs to draw one cell
type Projection struct {
	Region Region
	ScaleX float64
	ScaleY float64
}

// Project maps a cell and its running transition to a drawable region and scale
// Hidden cells report false and must not be drawn
//
// A flip shows the outgoing side shrinking horizontally over the first half of the
// duration and the incoming side growing over the second half. A fade shrinks the
// resting side uniformly
func Project(c *component.Cell) (Projection, bool) {
	if c == nil || c.Hidden {
		return Projection{}, false
	}

	resting := RegionBack
	if c.Flipped {
		resting = FaceRegion(c.Type)
	}

	t := c.Transition
	if t == nil || t.Duration <= 0 {
		return Projection{Region: resting, ScaleX: 1, ScaleY: 1}, true
	}

	p := t.Progress()
	switch t.Kind {
	case component.TransitionFlipUp:
		return flip(RegionBack, FaceRegion(c.Type), p), true
	case component.TransitionFlipDown:
		return flip(FaceRegion(c.Type), RegionBack, p), true
	case component.TransitionFade:
		s := 1 - p
		return Projection{Region: resting, ScaleX: s, ScaleY: s}, true
	default:
		return Projection{Region: resting, ScaleX: 1, ScaleY: 1}, true
	}
}

func flip(from, to Region, p float64) Projection {
	if p < 0.5 {
		return Projection{Region: from, ScaleX: 1 - p/0.5, ScaleY: 1}
	}
	return Projection{Region: to, ScaleX: (p - 0.5) / 0.5, ScaleY: 1}
}
