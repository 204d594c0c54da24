package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flipcard/constant"
)

type countingSink struct {
	frames int
}

func (s *countingSink) Render(*Game) { s.frames++ }

func TestDriverStepMeasuresDelta(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sink := &countingSink{}
	d := NewDriver(g, clock, 0, sink)

	assert.Equal(t, time.Duration(0), d.Step(), "first frame has no delta")

	clock.Advance(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, d.Step())

	clock.Advance(10 * time.Second)
	assert.Equal(t, constant.MaxFrameDelta, d.Step(), "stalls are capped")

	assert.Equal(t, 3, sink.frames)
	assert.Equal(t, uint64(3), d.Frames())
	assert.Equal(t, 16*time.Millisecond+constant.MaxFrameDelta, g.Scheduler.Now())
}

func TestDriverStepsUntilCancelled(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	sink := &countingSink{}
	d := NewDriver(g, NewMonotonicTimeProvider(), time.Millisecond)
	d.AddSink(sink)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := d.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, sink.frames, 1)
}
