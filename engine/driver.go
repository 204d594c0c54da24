package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/flipcard/constant"
)

// Driver is the frame loop: it measures elapsed time, updates the game and renders every sink
type Driver struct {
	game     *Game
	clock    TimeProvider
	interval time.Duration
	sinks    []FrameSink

	last   time.Time
	frames uint64
}

// NewDriver creates a frame driver, interval <= 0 uses constant.FrameUpdateInterval
func NewDriver(game *Game, clock TimeProvider, interval time.Duration, sinks ...FrameSink) *Driver {
	if interval <= 0 {
		interval = constant.FrameUpdateInterval
	}
	return &Driver{
		game:     game,
		clock:    clock,
		interval: interval,
		sinks:    sinks,
	}
}

// AddSink registers a renderer, must be called before Run
func (d *Driver) AddSink(s FrameSink) {
	d.sinks = append(d.sinks, s)
}

// Step runs one frame and returns the delta it applied
// The first step applies zero; deltas are capped at constant.MaxFrameDelta
func (d *Driver) Step() time.Duration {
	now := d.clock.Now()
	var dt time.Duration
	if !d.last.IsZero() {
		dt = now.Sub(d.last)
	}
	d.last = now

	if dt < 0 {
		dt = 0
	}
	if dt > constant.MaxFrameDelta {
		dt = constant.MaxFrameDelta
	}

	d.game.Update(dt)
	for _, s := range d.sinks {
		s.Render(d.game)
	}
	d.frames++
	return dt
}

// Frames returns the number of frames stepped
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Run steps frames on a ticker until ctx is cancelled
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.Step()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Step()
		}
	}
}
