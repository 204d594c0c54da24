package component

import "time"

// Cell is one grid slot: a card identity, its resting orientation and an optional animation
type Cell struct {
	Type int

	// Flipped is the resting orientation, face-up when true
	// Set at the moment a transition starts, not when it completes
	Flipped bool

	// Hidden marks a cleared cell, never reverts until the board is rebuilt
	Hidden bool

	Transition *Transition
}

// Active reports whether the cell is face-up and still in play
func (c *Cell) Active() bool {
	return c.Flipped && !c.Hidden
}

// Animate attaches a fresh transition, replacing any running one
// A non-positive duration completes immediately and leaves no transition
func (c *Cell) Animate(kind TransitionKind, duration time.Duration) {
	if duration <= 0 {
		c.Transition = nil
		return
	}
	c.Transition = &Transition{Kind: kind, Duration: duration}
}

// FlipUp turns the card face-up with a flip-up animation
func (c *Cell) FlipUp(duration time.Duration) {
	c.Flipped = true
	c.Animate(TransitionFlipUp, duration)
}

// FlipDown turns the card face-down with a flip-down animation
func (c *Cell) FlipDown(duration time.Duration) {
	c.Flipped = false
	c.Animate(TransitionFlipDown, duration)
}

// Tick advances the running transition by dt and drops it once complete
func (c *Cell) Tick(dt time.Duration) {
	if c.Transition == nil {
		return
	}
	if c.Transition.Advance(dt) {
		c.Transition = nil
	}
}
