package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flipcard/component"
	"github.com/lixenwraith/flipcard/constant"
	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/event"
	"github.com/lixenwraith/flipcard/status"
)

// TurnSystem is the turn controller: it admits taps, pairs the two face-up cards
// and schedules their match or mismatch resolution
//
// The active counter is the only turn state. It reaches MaxActiveCells on the
// second tap and drops to zero in the last scheduled step of that turn, so a new
// turn cannot open while a resolution is pending
type TurnSystem struct {
	game  *engine.Game
	board *engine.Board
	cfg   engine.Config

	active int

	// Cached metric pointers
	statTaps       *atomic.Int64
	statIgnored    *atomic.Int64
	statMatches    *atomic.Int64
	statMismatches *atomic.Int64
	statActive     *atomic.Int64
}

// NewTurnSystem creates a turn controller bound to the game's board
func NewTurnSystem(game *engine.Game) *TurnSystem {
	s := &TurnSystem{
		game:           game,
		board:          game.Board,
		cfg:            game.Config,
		statTaps:       game.Status.Ints.Get(status.KeyTaps),
		statIgnored:    game.Status.Ints.Get(status.KeyIgnored),
		statMatches:    game.Status.Ints.Get(status.KeyMatches),
		statMismatches: game.Status.Ints.Get(status.KeyMismatches),
		statActive:     game.Status.Ints.Get(status.KeyActive),
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *TurnSystem) Init() {
	s.setActive(0)
}

// Name returns system's name
func (s *TurnSystem) Name() string {
	return "turn"
}

// Priority returns the system's priority
func (s *TurnSystem) Priority() int {
	return constant.PriorityTurn
}

// EventTypes returns the event types TurnSystem handles
func (s *TurnSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTap,
		event.EventTapCell,
	}
}

// HandleEvent resolves tap events to cells
func (s *TurnSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventTap:
		if payload, ok := ev.Payload.(*event.TapPayload); ok {
			index, inside := s.game.Layout.CellAt(payload.X, payload.Y)
			if !inside {
				s.ignore(-1, "outside grid")
				return
			}
			s.Tap(index)
		}

	case event.EventTapCell:
		if payload, ok := ev.Payload.(*event.TapCellPayload); ok {
			s.Tap(payload.Index)
		}
	}
}

// Update is a no-op, every turn step runs from the game's scheduler
func (s *TurnSystem) Update(time.Duration) {}

// Active returns the number of face-up cells in the open turn
func (s *TurnSystem) Active() int {
	return s.active
}

// Tap flips the cell at index if the turn admits it and reports whether it did
// Rejected taps leave every flag and counter untouched
func (s *TurnSystem) Tap(index int) bool {
	if !s.board.Initialized() {
		return s.ignore(index, "board not ready")
	}
	if s.active >= constant.MaxActiveCells {
		return s.ignore(index, "turn resolving")
	}
	cell := s.board.Cell(index)
	if cell == nil {
		return s.ignore(index, "out of range")
	}
	if cell.Flipped || cell.Hidden {
		return s.ignore(index, "not face-down")
	}

	other := s.board.ActiveExcept(cell)

	cell.FlipUp(s.cfg.FlipUpDuration)
	s.setActive(s.active + 1)
	s.statTaps.Add(1)

	if other == nil {
		return true
	}

	if other.Type == cell.Type {
		s.resolveMatch(cell, other)
	} else {
		s.resolveMismatch(cell, other)
	}
	return true
}

// resolveMatch fades both cards once the flip completes, then removes them
// Removal ends the turn and, on an empty board, schedules the win and a fresh deal
func (s *TurnSystem) resolveMatch(a, b *component.Cell) {
	s.game.Logger().Debug().Int("type", a.Type).Msg("pair matched")

	s.game.After(s.cfg.FadeStart(), func() {
		a.Animate(component.TransitionFade, s.cfg.FadeDuration)
		b.Animate(component.TransitionFade, s.cfg.FadeDuration)
	})

	s.game.After(s.cfg.HideAt(), func() {
		a.Hidden = true
		b.Hidden = true
		s.setActive(0)
		s.statMatches.Add(1)

		if !s.board.IsFullyCleared() {
			return
		}
		s.game.After(s.cfg.WinDelay, func() {
			s.game.Win()
			s.game.Reset()
		})
	})
}

// resolveMismatch turns both cards back face-down after a pause
func (s *TurnSystem) resolveMismatch(a, b *component.Cell) {
	s.game.Logger().Debug().Int("first", b.Type).Int("second", a.Type).Msg("pair mismatched")

	s.game.After(s.cfg.MismatchDelay, func() {
		a.FlipDown(s.cfg.FlipDownDuration)
		b.FlipDown(s.cfg.FlipDownDuration)
		s.setActive(0)
		s.statMismatches.Add(1)
	})
}

func (s *TurnSystem) ignore(index int, reason string) bool {
	s.statIgnored.Add(1)
	s.game.Logger().Trace().Int("index", index).Str("reason", reason).Msg("tap ignored")
	return false
}

func (s *TurnSystem) setActive(n int) {
	s.active = n
	s.statActive.Store(int64(n))
}
