package engine

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/flipcard/component"
)

// Board owns the ordered cell grid of one game
// Cells are replaced wholesale on Reset, never reordered in place, so pointers
// captured by deferred tasks stay bound to the deal they came from
type Board struct {
	rows  int
	cols  int
	pairs int

	cells []*component.Cell
	rng   *rand.Rand

	// generation increments on every Reset
	generation uint64

	// initialized gates input until the reveal-then-hide sequence completes
	initialized bool
}

// NewBoard validates the geometry and returns an empty board, call Reset to deal
// A nil rng uses a randomly seeded source
func NewBoard(cfg Config, rng *rand.Rand) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Board{
		rows:  cfg.Rows,
		cols:  cfg.Cols,
		pairs: cfg.Pairs,
		rng:   rng,
	}, nil
}

// Reset deals a fresh face-up board: every identity N/K times, uniformly shuffled
func (b *Board) Reset() {
	n := b.rows * b.cols
	cells := make([]*component.Cell, n)
	for i := range cells {
		cells[i] = &component.Cell{
			Type:    i % b.pairs,
			Flipped: true,
		}
	}

	// Fisher-Yates
	b.rng.Shuffle(n, func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	b.cells = cells
	b.initialized = false
	b.generation++
}

// Conceal turns every card in play face-down and opens the board for input
func (b *Board) Conceal(flipDown time.Duration) {
	for _, c := range b.cells {
		if c.Hidden {
			continue
		}
		c.FlipDown(flipDown)
	}
	b.initialized = true
}

// IsFullyCleared reports whether every cell has been matched and hidden
func (b *Board) IsFullyCleared() bool {
	for _, c := range b.cells {
		if !c.Hidden {
			return false
		}
	}
	return len(b.cells) > 0
}

// ActiveExcept returns the face-up cell in play other than c, nil if none
func (b *Board) ActiveExcept(c *component.Cell) *component.Cell {
	for _, other := range b.cells {
		if other != c && other.Active() {
			return other
		}
	}
	return nil
}

// Remaining returns the number of cells still in play
func (b *Board) Remaining() int {
	n := 0
	for _, c := range b.cells {
		if !c.Hidden {
			n++
		}
	}
	return n
}

// Cell returns the cell at index, nil when out of range
func (b *Board) Cell(index int) *component.Cell {
	if index < 0 || index >= len(b.cells) {
		return nil
	}
	return b.cells[index]
}

// Cells returns the current deal in grid order
func (b *Board) Cells() []*component.Cell {
	return b.cells
}

// Index maps a grid position to a cell index, -1 when out of range
func (b *Board) Index(row, col int) int {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return -1
	}
	return row*b.cols + col
}

// Position maps a cell index to its grid row and column
func (b *Board) Position(index int) (row, col int) {
	return index / b.cols, index % b.cols
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }
func (b *Board) Pairs() int { return b.pairs }
func (b *Board) Len() int { return len(b.cells) }
func (b *Board) Generation() uint64 { return b.generation }
func (b *Board) Initialized() bool { return b.initialized }
