package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/flipcard/constant"
)

var (
	// ErrInvalidGrid is returned for non-positive board dimensions or pair counts
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrPairsNotDivisible is returned when the cell count is not a multiple of the pair count
	ErrPairsNotDivisible = errors.New("cell count not divisible by pair count")

	// ErrInvalidDuration is returned for non-positive animation durations or negative delays
	ErrInvalidDuration = errors.New("invalid duration")
)

// Config holds board geometry and the timing of every scheduled step
type Config struct {
	Rows  int
	Cols  int
	Pairs int

	FlipUpDuration   time.Duration
	FlipDownDuration time.Duration
	FadeDuration     time.Duration
	FadeDelay        time.Duration
	HideLead         time.Duration

	ShowAllDuration time.Duration
	MismatchDelay   time.Duration
	WinDelay        time.Duration
}

// DefaultConfig returns the 4x3 board with six pairs and reference timings
func DefaultConfig() Config {
	return Config{
		Rows:             constant.GridRows,
		Cols:             constant.GridCols,
		Pairs:            constant.PairCount,
		FlipUpDuration:   constant.FlipUpDuration,
		FlipDownDuration: constant.FlipDownDuration,
		FadeDuration:     constant.FadeDuration,
		FadeDelay:        constant.FadeDelay,
		HideLead:         constant.HideLead,
		ShowAllDuration:  constant.ShowAllDuration,
		MismatchDelay:    constant.MismatchDelay,
		WinDelay:         constant.WinDelay,
	}
}

// Cells returns the number of grid slots
func (c Config) Cells() int {
	return c.Rows * c.Cols
}

// FadeStart is the delay from the second tap of a matched pair to its fade
func (c Config) FadeStart() time.Duration {
	return c.FlipUpDuration + c.FadeDelay
}

// HideAt is the delay from the second tap of a matched pair to its removal
func (c Config) HideAt() time.Duration {
	d := c.FlipUpDuration + c.FadeDuration + c.FadeDelay - c.HideLead
	if d < c.FadeStart() {
		return c.FadeStart()
	}
	return d
}

// Validate reports the first configuration problem, nil if the board can be built
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, c.Rows, c.Cols)
	}
	if c.Pairs <= 0 || c.Pairs > c.Cells() {
		return fmt.Errorf("%w: %d pairs for %d cells", ErrInvalidGrid, c.Pairs, c.Cells())
	}
	if c.Cells()%c.Pairs != 0 {
		return fmt.Errorf("%w: %d cells, %d pairs", ErrPairsNotDivisible, c.Cells(), c.Pairs)
	}
	if l := NewLayout(c.Rows, c.Cols); !l.Fits() {
		return fmt.Errorf("%w: %dx%d cards of %.1fx%.1f do not fit the %.0fx%.0f world",
			ErrInvalidGrid, c.Rows, c.Cols, l.CellWidth, l.CellHeight, l.WorldWidth, l.WorldHeight)
	}
	// Faces are cleared two at a time, an odd copy count leaves one unmatched forever
	if copies := c.Cells() / c.Pairs; copies%2 != 0 {
		return fmt.Errorf("%w: %d copies of each face", ErrInvalidGrid, copies)
	}

	animations := map[string]time.Duration{
		"flip-up":   c.FlipUpDuration,
		"flip-down": c.FlipDownDuration,
		"fade":      c.FadeDuration,
	}
	for name, d := range animations {
		if d <= 0 {
			return fmt.Errorf("%w: %s duration %v", ErrInvalidDuration, name, d)
		}
	}

	delays := map[string]time.Duration{
		"fade delay":     c.FadeDelay,
		"hide lead":      c.HideLead,
		"show all":       c.ShowAllDuration,
		"mismatch delay": c.MismatchDelay,
		"win delay":      c.WinDelay,
	}
	for name, d := range delays {
		if d < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidDuration, name, d)
		}
	}
	return nil
}
