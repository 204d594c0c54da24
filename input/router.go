package input

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/event"
	"github.com/lixenwraith/flipcard/render"
)

// Router forwards intents to the game from the input goroutine
// It only pushes events, the game loop applies them
type Router struct {
	game     *engine.Game
	machine  *Machine
	viewport func() render.Viewport
	sync     func()
	quit     func()
}

// NewRouter creates a router; viewport reports the current board area, sync redraws
// the whole screen after a resize and quit stops the game
func NewRouter(game *engine.Game, viewport func() render.Viewport, sync, quit func()) *Router {
	return &Router{
		game:     game,
		machine:  NewMachine(),
		viewport: viewport,
		sync:     sync,
		quit:     quit,
	}
}

// Handle processes one terminal event
func (r *Router) Handle(ev tcell.Event) {
	if in := r.machine.Process(ev, r.viewport()); in != nil {
		r.Route(in)
	}
}

// Route applies an intent
func (r *Router) Route(in *Intent) {
	switch in.Type {
	case IntentTap:
		r.game.Push(event.GameEvent{
			Type:    event.EventTap,
			Payload: &event.TapPayload{X: in.X, Y: in.Y},
		})
	case IntentRestart:
		r.game.Push(event.GameEvent{Type: event.EventGameReset})
	case IntentResize:
		if r.sync != nil {
			r.sync()
		}
	case IntentQuit:
		if r.quit != nil {
			r.quit()
		}
	}
}

// Poll reads screen events until ctx is done or the screen is finalized
func (r *Router) Poll(ctx context.Context, screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		r.Handle(ev)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
