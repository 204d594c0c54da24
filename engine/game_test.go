package engine

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flipcard/constant"
	"github.com/lixenwraith/flipcard/event"
	"github.com/lixenwraith/flipcard/status"
)

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	n := 0
	base := []Option{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithSessionIDs(func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		}),
	}
	g, err := NewGame(DefaultConfig(), append(base, opts...)...)
	require.NoError(t, err)
	return g
}

// recordingSystem captures routed events and init calls
type recordingSystem struct {
	name     string
	priority int
	inits    int
	events   []event.GameEvent
	updates  []time.Duration
	trace    *[]string
}

func (s *recordingSystem) Name() string { return s.name }
func (s *recordingSystem) Priority() int { return s.priority }
func (s *recordingSystem) Init() { s.inits++ }
func (s *recordingSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventTapCell}
}
func (s *recordingSystem) HandleEvent(ev event.GameEvent) { s.events = append(s.events, ev) }
func (s *recordingSystem) Update(dt time.Duration) {
	s.updates = append(s.updates, dt)
	if s.trace != nil {
		*s.trace = append(*s.trace, s.name)
	}
}

func TestGameRevealThenHide(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	require.Equal(t, "session-1", g.Session())
	assert.False(t, g.Board.Initialized())
	for _, c := range g.Board.Cells() {
		assert.True(t, c.Flipped)
	}

	g.Update(2900 * time.Millisecond)
	assert.False(t, g.Board.Initialized(), "reveal lasts the full show-all duration")

	g.Update(100 * time.Millisecond)
	assert.True(t, g.Board.Initialized())
	for _, c := range g.Board.Cells() {
		assert.False(t, c.Flipped)
		require.NotNil(t, c.Transition)
		assert.Equal(t, "flip-down", c.Transition.Kind.String())
	}
	assert.True(t, g.Status.Bools.Get(status.KeyReady).Load())
}

func TestGameResetCancelsPendingTasks(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	fired := false
	g.After(time.Second, func() { fired = true })

	g.Reset()
	assert.Equal(t, 1, g.Scheduler.Pending(), "only the new hide-all remains")
	g.Update(5 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, int64(2), g.Status.Ints.Get(status.KeyResets).Load())
}

func TestGameTaskGenerationGuard(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	fired := false
	g.After(time.Second, func() { fired = true })

	// Bypass Game.Reset so the task survives in the queue with a stale generation
	g.Board.Reset()
	g.Update(2 * time.Second)
	assert.False(t, fired, "task from an older board must not run")
}

func TestGameRoutesEventsAndInitsSystems(t *testing.T) {
	g := newTestGame(t)
	var trace []string
	late := &recordingSystem{name: "late", priority: 50, trace: &trace}
	early := &recordingSystem{name: "early", priority: 5, trace: &trace}
	g.AddSystem(late)
	g.AddSystem(early)
	g.Start()

	assert.Equal(t, 1, late.inits)
	assert.Equal(t, 1, early.inits)

	g.Push(event.GameEvent{Type: event.EventTapCell, Payload: &event.TapCellPayload{Index: 3}})
	g.Push(event.GameEvent{Type: event.EventTap, Payload: &event.TapPayload{}})
	g.Update(16 * time.Millisecond)

	assert.Len(t, late.events, 1, "only subscribed events are routed")
	assert.Equal(t, []string{"early", "late"}, trace)
	assert.Equal(t, []time.Duration{16 * time.Millisecond}, early.updates)

	g.Push(event.GameEvent{Type: event.EventGameReset})
	g.Update(0)
	assert.Equal(t, 2, late.inits)
	assert.Equal(t, "session-2", g.Session())
}

func TestGamePushReportsFullQueue(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	for i := 0; i < constant.EventQueueSize; i++ {
		require.True(t, g.Push(event.GameEvent{Type: event.EventTapCell, Payload: &event.TapCellPayload{Index: 0}}))
	}
	assert.False(t, g.Push(event.GameEvent{Type: event.EventGameReset}), "full queue rejects")
	assert.EqualValues(t, 1, g.Status.Ints.Get(status.KeyDropped).Load())
	assert.Equal(t, "session-1", g.Session())

	// Draining makes room, a reset pushed afterwards is applied
	g.Update(0)
	require.True(t, g.Push(event.GameEvent{Type: event.EventGameReset}))
	g.Update(0)
	assert.Equal(t, "session-2", g.Session())
	assert.EqualValues(t, 1, g.Status.Snapshot()[status.KeyDropped])
}

func TestGameWinNotifiesOnce(t *testing.T) {
	var wins []WinEvent
	g := newTestGame(t, WithNotifier(NotifierFunc(func(ev WinEvent) {
		wins = append(wins, ev)
	})))
	g.Start()
	g.Update(time.Second)

	g.Win()
	g.Win()

	require.Len(t, wins, 1)
	assert.Equal(t, "session-1", wins[0].Session)
	assert.Equal(t, time.Second, wins[0].Elapsed)
	assert.True(t, g.Won())

	g.Reset()
	assert.False(t, g.Won())
	g.Win()
	assert.Len(t, wins, 2)
	assert.Equal(t, int64(2), g.Status.Ints.Get(status.KeyWins).Load())
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 0
	_, err := NewGame(cfg)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}
