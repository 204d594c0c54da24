package system

import (
	"time"

	"github.com/lixenwraith/flipcard/constant"
	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/event"
)

// TransitionSystem advances every cell's animation once per frame
// Completed transitions are dropped; cell flags were already set when the animation started
type TransitionSystem struct {
	board *engine.Board
}

// NewTransitionSystem creates a new transition system
func NewTransitionSystem(game *engine.Game) engine.System {
	return &TransitionSystem{
		board: game.Board,
	}
}

// Init is a no-op, transitions live on the cells and are rebuilt with them
func (s *TransitionSystem) Init() {}

// Name returns system's name
func (s *TransitionSystem) Name() string {
	return "transition"
}

// Priority returns the system's priority (runs after turn logic)
func (s *TransitionSystem) Priority() int {
	return constant.PriorityTransition
}

// EventTypes returns nil, the system is purely time driven
func (s *TransitionSystem) EventTypes() []event.EventType {
	return nil
}

func (s *TransitionSystem) HandleEvent(event.GameEvent) {}

// Update advances transitions by dt
func (s *TransitionSystem) Update(dt time.Duration) {
	for _, c := range s.board.Cells() {
		c.Tick(dt)
	}
}
