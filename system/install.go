package system

import "github.com/lixenwraith/flipcard/engine"

// Install registers the game's systems and returns the turn controller
func Install(game *engine.Game) *TurnSystem {
	turn := NewTurnSystem(game)
	game.AddSystem(turn)
	game.AddSystem(NewTransitionSystem(game))
	return turn
}
