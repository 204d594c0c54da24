package engine

import (
	"time"

	"github.com/lixenwraith/flipcard/event"
)

// System is a unit of game logic run by the Game each frame
type System interface {
	// Name returns the system's name for logs
	Name() string

	// Priority orders Update calls, lower values run first
	Priority() int

	// Init resets session state for a new board
	Init()

	// EventTypes lists the events routed to HandleEvent
	EventTypes() []event.EventType

	// HandleEvent processes one queued event
	HandleEvent(ev event.GameEvent)

	// Update advances the system by the frame delta
	Update(dt time.Duration)
}

// Notifier receives the single "player has won" signal
// Called on the game loop; implementations must not block
type Notifier interface {
	Won(ev WinEvent)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(WinEvent)

func (f NotifierFunc) Won(ev WinEvent) { f(ev) }

// WinEvent describes a cleared board
type WinEvent struct {
	Session    string
	Generation uint64
	Elapsed    time.Duration // Logical time from deal to win
}

// FrameSink consumes the game state once per frame after the update
// Called on the game loop goroutine; sinks read the board and must not mutate it
type FrameSink interface {
	Render(g *Game)
}
