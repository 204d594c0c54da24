package system_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flipcard/component"
	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/event"
	"github.com/lixenwraith/flipcard/status"
	"github.com/lixenwraith/flipcard/system"
)

const frame = 10 * time.Millisecond

type harness struct {
	game *engine.Game
	turn *system.TurnSystem
	wins []engine.WinEvent
}

func newHarness(t *testing.T, seed uint64) *harness {
	t.Helper()
	h := &harness{}
	g, err := engine.NewGame(engine.DefaultConfig(),
		engine.WithRand(rand.New(rand.NewPCG(seed, seed+1))),
		engine.WithNotifier(engine.NotifierFunc(func(ev engine.WinEvent) {
			h.wins = append(h.wins, ev)
		})),
	)
	require.NoError(t, err)
	h.game = g
	h.turn = system.Install(g)
	g.Start()
	return h
}

// run steps whole frames until d has elapsed
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		h.game.Update(frame)
	}
}

// ready plays through the initial reveal
func (h *harness) ready() {
	h.run(h.game.Config.ShowAllDuration)
}

func (h *harness) cell(i int) *component.Cell {
	return h.game.Board.Cell(i)
}

// partnerOf returns the other index holding the same face as i
func (h *harness) partnerOf(t *testing.T, i int) int {
	t.Helper()
	for j, c := range h.game.Board.Cells() {
		if j != i && c.Type == h.cell(i).Type {
			return j
		}
	}
	t.Fatalf("no partner for %d", i)
	return -1
}

// strangerOf returns the first index holding a different face than i
func (h *harness) strangerOf(t *testing.T, i int) int {
	t.Helper()
	for j, c := range h.game.Board.Cells() {
		if c.Type != h.cell(i).Type {
			return j
		}
	}
	t.Fatalf("no stranger for %d", i)
	return -1
}

func TestTapIgnoredDuringReveal(t *testing.T) {
	h := newHarness(t, 1)

	assert.False(t, h.turn.Tap(0))
	h.run(time.Second)
	assert.False(t, h.turn.Tap(0))
	assert.Equal(t, 0, h.turn.Active())
	assert.Equal(t, int64(2), h.game.Status.Ints.Get(status.KeyIgnored).Load())
}

func TestScenarioMatch(t *testing.T) {
	h := newHarness(t, 2)
	h.ready()

	first := 0
	second := h.partnerOf(t, first)
	a, b := h.cell(first), h.cell(second)

	require.True(t, h.turn.Tap(first))
	assert.True(t, a.Flipped)
	require.NotNil(t, a.Transition)
	assert.Equal(t, component.TransitionFlipUp, a.Transition.Kind)
	assert.Equal(t, 1, h.turn.Active())

	require.True(t, h.turn.Tap(second))
	assert.Equal(t, 2, h.turn.Active())

	h.run(h.game.Config.FadeStart())
	require.NotNil(t, a.Transition)
	require.NotNil(t, b.Transition)
	assert.Equal(t, component.TransitionFade, a.Transition.Kind)
	assert.Equal(t, component.TransitionFade, b.Transition.Kind)
	assert.False(t, a.Hidden)
	assert.Equal(t, 2, h.turn.Active(), "turn stays closed while the pair fades")

	h.run(h.game.Config.HideAt() - h.game.Config.FadeStart())
	assert.True(t, a.Hidden)
	assert.True(t, b.Hidden)
	assert.Equal(t, 0, h.turn.Active())
	assert.Equal(t, int64(1), h.game.Status.Ints.Get(status.KeyMatches).Load())
	assert.Equal(t, 10, h.game.Board.Remaining())
}

func TestScenarioMismatch(t *testing.T) {
	h := newHarness(t, 3)
	h.ready()

	first := 0
	second := h.strangerOf(t, first)
	a, b := h.cell(first), h.cell(second)

	require.True(t, h.turn.Tap(first))
	require.True(t, h.turn.Tap(second))

	h.run(h.game.Config.MismatchDelay - frame)
	assert.True(t, a.Flipped, "cards stay face-up until the delay passes")
	assert.Equal(t, 2, h.turn.Active())

	h.run(frame)
	for _, c := range []*component.Cell{a, b} {
		assert.False(t, c.Flipped)
		assert.False(t, c.Hidden)
		require.NotNil(t, c.Transition)
		assert.Equal(t, component.TransitionFlipDown, c.Transition.Kind)
	}
	assert.Equal(t, 0, h.turn.Active())
	assert.Equal(t, int64(1), h.game.Status.Ints.Get(status.KeyMismatches).Load())
}

func TestScenarioTapWhileResolving(t *testing.T) {
	h := newHarness(t, 4)
	h.ready()

	first := 0
	second := h.strangerOf(t, first)
	require.True(t, h.turn.Tap(first))
	require.True(t, h.turn.Tap(second))

	var third int
	for i := range h.game.Board.Cells() {
		if i != first && i != second {
			third = i
			break
		}
	}
	before := *h.cell(third)

	assert.False(t, h.turn.Tap(third))
	assert.Equal(t, 2, h.turn.Active())
	assert.Equal(t, before.Flipped, h.cell(third).Flipped)
	assert.Equal(t, before.Hidden, h.cell(third).Hidden)
	assert.Equal(t, before.Transition, h.cell(third).Transition)
}

func TestTapOnFaceUpCellIgnored(t *testing.T) {
	h := newHarness(t, 5)
	h.ready()

	require.True(t, h.turn.Tap(3))
	assert.False(t, h.turn.Tap(3), "second tap on the same card")
	assert.Equal(t, 1, h.turn.Active())

	assert.False(t, h.turn.Tap(12))
	assert.False(t, h.turn.Tap(-1))
	assert.Equal(t, 1, h.turn.Active())
}

func TestMatchedPairStaysHidden(t *testing.T) {
	h := newHarness(t, 6)
	h.ready()

	first := 0
	second := h.partnerOf(t, first)
	h.turn.Tap(first)
	h.turn.Tap(second)
	h.run(time.Second)

	for i := 0; i < 3; i++ {
		assert.False(t, h.turn.Tap(first))
		assert.False(t, h.turn.Tap(second))
		h.run(time.Second)
	}
	assert.True(t, h.cell(first).Hidden)
	assert.True(t, h.cell(second).Hidden)
	assert.Equal(t, 0, h.turn.Active())
}

func TestScenarioWinAndRedeal(t *testing.T) {
	h := newHarness(t, 7)
	h.ready()
	startGen := h.game.Board.Generation()
	startSession := h.game.Session()

	done := map[int]bool{}
	for i := range h.game.Board.Cells() {
		if done[i] {
			continue
		}
		j := h.partnerOf(t, i)
		done[i], done[j] = true, true

		require.True(t, h.turn.Tap(i))
		require.True(t, h.turn.Tap(j))
		h.run(h.game.Config.HideAt())
	}

	assert.True(t, h.game.Board.IsFullyCleared())
	assert.Empty(t, h.wins, "win waits for its delay")

	h.run(h.game.Config.WinDelay)
	require.Len(t, h.wins, 1)
	assert.Equal(t, startSession, h.wins[0].Session)
	assert.Equal(t, startGen, h.wins[0].Generation)

	// Fresh deal: pairing invariant holds and the reveal restarts
	assert.Equal(t, startGen+1, h.game.Board.Generation())
	assert.NotEqual(t, startSession, h.game.Session())
	assert.False(t, h.game.Board.Initialized())
	counts := map[int]int{}
	for _, c := range h.game.Board.Cells() {
		counts[c.Type]++
		assert.True(t, c.Flipped)
		assert.False(t, c.Hidden)
	}
	require.Len(t, counts, 6)
	for _, n := range counts {
		assert.Equal(t, 2, n)
	}

	h.run(5 * time.Second)
	assert.Len(t, h.wins, 1, "win fires exactly once per board")
	assert.True(t, h.game.Board.Initialized())
}

func TestTurnGuardUnderRandomTaps(t *testing.T) {
	h := newHarness(t, 8)
	h.ready()
	rng := rand.New(rand.NewPCG(99, 100))

	for step := 0; step < 5000; step++ {
		if rng.IntN(3) == 0 {
			h.game.Update(time.Duration(rng.IntN(40)) * time.Millisecond)
		}

		activeBefore := h.turn.Active()
		index := rng.IntN(14) - 1
		accepted := h.turn.Tap(index)

		if activeBefore >= 2 {
			require.False(t, accepted, "tap accepted while two cells active")
		}
		require.LessOrEqual(t, h.turn.Active(), 2)

		faceUp := 0
		for _, c := range h.game.Board.Cells() {
			if c.Active() {
				faceUp++
			}
		}
		if h.game.Board.Initialized() {
			require.Equal(t, h.turn.Active(), faceUp, "counter tracks face-up cells in play")
		}
	}
}

func TestResetMidTurnDropsStaleResolution(t *testing.T) {
	h := newHarness(t, 9)
	h.ready()

	first := 0
	second := h.strangerOf(t, first)
	h.turn.Tap(first)
	h.turn.Tap(second)
	old := h.cell(first)

	h.game.Push(event.GameEvent{Type: event.EventGameReset})
	h.run(time.Second)

	assert.Equal(t, 0, h.turn.Active())
	assert.True(t, old.Flipped, "callbacks never touch cells of a discarded board")
	for _, c := range h.game.Board.Cells() {
		assert.True(t, c.Flipped, "new board is still in its reveal")
	}
}

func TestTapEvents(t *testing.T) {
	h := newHarness(t, 10)
	h.ready()

	x, y := h.game.Layout.Center(5)
	h.game.Push(event.GameEvent{Type: event.EventTap, Payload: &event.TapPayload{X: x, Y: y}})
	h.game.Push(event.GameEvent{Type: event.EventTap, Payload: &event.TapPayload{X: 1, Y: 1}})
	h.game.Update(0)

	assert.True(t, h.cell(5).Flipped)
	assert.Equal(t, 1, h.turn.Active())
	assert.Equal(t, int64(1), h.game.Status.Ints.Get(status.KeyIgnored).Load())

	h.game.Push(event.GameEvent{Type: event.EventTapCell, Payload: &event.TapCellPayload{Index: h.partnerOf(t, 5)}})
	h.game.Update(0)
	assert.Equal(t, 2, h.turn.Active())
}
