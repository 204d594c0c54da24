package render

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidAtlas  = errors.New("invalid atlas")
	ErrMissingRegion = errors.New("missing atlas region")
)

// Glyph is a drawable region: the rune painted in the middle of the card and its style
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

// glyphSpec is the YAML form of a Glyph
type glyphSpec struct {
	Glyph string `yaml:"glyph"`
	Fg    string `yaml:"fg"`
	Bg    string `yaml:"bg"`
}

type atlasSpec struct {
	Background string      `yaml:"background"`
	Back       glyphSpec   `yaml:"back"`
	Faces      []glyphSpec `yaml:"faces"`
}

// Atlas resolves regions to glyphs
type Atlas struct {
	Background tcell.Style
	back       Glyph
	faces      []Glyph
}

// LoadAtlas parses a YAML atlas
func LoadAtlas(data []byte) (*Atlas, error) {
	var spec atlasSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAtlas, err)
	}

	back, err := spec.Back.glyph()
	if err != nil {
		return nil, fmt.Errorf("%w: back: %v", ErrInvalidAtlas, err)
	}

	a := &Atlas{
		Background: tcell.StyleDefault.Background(tcell.GetColor(spec.Background)),
		back:       back,
		faces:      make([]Glyph, 0, len(spec.Faces)),
	}
	for i, f := range spec.Faces {
		g, err := f.glyph()
		if err != nil {
			return nil, fmt.Errorf("%w: face %d: %v", ErrInvalidAtlas, i, err)
		}
		a.faces = append(a.faces, g)
	}
	return a, nil
}

func (s glyphSpec) glyph() (Glyph, error) {
	runes := []rune(s.Glyph)
	if len(runes) != 1 {
		return Glyph{}, fmt.Errorf("glyph %q must be a single rune", s.Glyph)
	}
	style := tcell.StyleDefault
	if s.Fg != "" {
		style = style.Foreground(tcell.GetColor(s.Fg))
	}
	if s.Bg != "" {
		style = style.Background(tcell.GetColor(s.Bg))
	}
	return Glyph{Rune: runes[0], Style: style}, nil
}

// Back returns the card back glyph
func (a *Atlas) Back() Glyph {
	return a.back
}

// Faces returns the number of face regions
func (a *Atlas) Faces() int {
	return len(a.faces)
}

// Region returns the glyph for r
func (a *Atlas) Region(r Region) (Glyph, error) {
	if r.IsBack() {
		return a.back, nil
	}
	if r < 0 || int(r) >= len(a.faces) {
		return Glyph{}, fmt.Errorf("%w: face %d", ErrMissingRegion, r)
	}
	return a.faces[r], nil
}

// Require fails unless every card type below pairs has a face
func (a *Atlas) Require(pairs int) error {
	if pairs > len(a.faces) {
		return fmt.Errorf("%w: %d card types, %d faces", ErrMissingRegion, pairs, len(a.faces))
	}
	return nil
}
