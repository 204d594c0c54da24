package engine

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	uuid "github.com/satori/go.uuid"

	"github.com/lixenwraith/flipcard/event"
	"github.com/lixenwraith/flipcard/status"
)

// Game is one play session: the board, its systems, the delay queue and the input queue
// Everything except Events is owned by the goroutine calling Update
type Game struct {
	Config    Config
	Board     *Board
	Layout    Layout
	Scheduler *Scheduler
	Events    *event.EventQueue
	Status    *status.Registry

	systems   []System
	handlers  map[event.EventType][]System
	notifiers []Notifier

	baseLogger zerolog.Logger
	logger     zerolog.Logger
	newSession func() string
	rng        *rand.Rand

	session string
	dealtAt time.Duration
	won     bool

	// Cached metric pointers
	statResets    *atomic.Int64
	statWins      *atomic.Int64
	statRemaining *atomic.Int64
	statPending   *atomic.Int64
	statReady     *atomic.Bool
	statSession   *status.AtomicString
}

// Option customizes a Game at construction
type Option func(*Game)

// WithLogger sets the base logger, every reset derives a session-tagged child from it
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.baseLogger = l }
}

// WithRand sets the shuffle source, used for reproducible deals
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithNotifier registers a win notification sink
func WithNotifier(n Notifier) Option {
	return func(g *Game) { g.notifiers = append(g.notifiers, n) }
}

// WithSessionIDs replaces the UUID session identifier generator
func WithSessionIDs(fn func() string) Option {
	return func(g *Game) { g.newSession = fn }
}

// WithStatus shares an existing metrics registry
func WithStatus(r *status.Registry) Option {
	return func(g *Game) { g.Status = r }
}

// NewGame validates cfg and assembles an idle game, call Start to deal the first board
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	g := &Game{
		Config:     cfg,
		Layout:     NewLayout(cfg.Rows, cfg.Cols),
		Scheduler:  NewScheduler(),
		handlers:   make(map[event.EventType][]System),
		baseLogger: zerolog.Nop(),
		newSession: func() string { return uuid.NewV4().String() },
	}
	for _, opt := range opts {
		opt(g)
	}

	board, err := NewBoard(cfg, g.rng)
	if err != nil {
		return nil, err
	}
	g.Board = board
	g.logger = g.baseLogger

	if g.Status == nil {
		g.Status = status.NewRegistry()
	}
	g.statResets = g.Status.Ints.Get(status.KeyResets)
	g.statWins = g.Status.Ints.Get(status.KeyWins)
	g.statRemaining = g.Status.Ints.Get(status.KeyRemaining)
	g.statPending = g.Status.Ints.Get(status.KeyPending)
	g.statReady = g.Status.Bools.Get(status.KeyReady)
	g.statSession = g.Status.Strings.Get(status.KeySession)
	g.Events = event.NewEventQueue(g.Status.Ints.Get(status.KeyDropped))

	return g, nil
}

// AddSystem registers a system and its event routes, keeping priority order
func (g *Game) AddSystem(s System) {
	g.systems = append(g.systems, s)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(g.systems)-1; i++ {
		for j := 0; j < len(g.systems)-i-1; j++ {
			if g.systems[j].Priority() > g.systems[j+1].Priority() {
				g.systems[j], g.systems[j+1] = g.systems[j+1], g.systems[j]
			}
		}
	}

	for _, et := range s.EventTypes() {
		g.handlers[et] = append(g.handlers[et], s)
	}
}

// AddNotifier registers a win notification sink after construction
func (g *Game) AddNotifier(n Notifier) {
	g.notifiers = append(g.notifiers, n)
}

// Start deals the first board
func (g *Game) Start() {
	g.Reset()
}

// Reset discards the current board and every pending task, deals a new face-up board
// and schedules the hide-all that opens it for input
func (g *Game) Reset() {
	dropped := g.Scheduler.CancelAll()

	g.Board.Reset()
	g.session = g.newSession()
	g.dealtAt = g.Scheduler.Now()
	g.won = false
	g.logger = g.baseLogger.With().Str("session", g.session).Logger()

	for _, s := range g.systems {
		s.Init()
	}

	g.After(g.Config.ShowAllDuration, func() {
		g.Board.Conceal(g.Config.FlipDownDuration)
		g.logger.Debug().Msg("board concealed, accepting input")
	})

	g.statResets.Add(1)
	g.statSession.Store(g.session)
	g.publishStatus()

	g.logger.Info().
		Uint64("generation", g.Board.Generation()).
		Int("cancelled", dropped).
		Msg("board dealt")
}

// After schedules fn on the game's logical clock
// The task is bound to the current board generation and does nothing if the board was reset since
func (g *Game) After(delay time.Duration, fn func()) TaskID {
	gen := g.Board.Generation()
	return g.Scheduler.After(delay, func() {
		if g.Board.Generation() != gen {
			return
		}
		fn()
	})
}

// Win signals every notifier once per board
func (g *Game) Win() {
	if g.won {
		return
	}
	g.won = true
	g.statWins.Add(1)

	ev := WinEvent{
		Session:    g.session,
		Generation: g.Board.Generation(),
		Elapsed:    g.Scheduler.Now() - g.dealtAt,
	}
	g.logger.Info().Dur("elapsed", ev.Elapsed).Msg("board cleared")

	for _, n := range g.notifiers {
		n.Won(ev)
	}
}

// Won reports whether the current board has already signalled a win
func (g *Game) Won() bool {
	return g.won
}

// Push enqueues an input event, safe from any goroutine
// Returns false when the input queue is full and the event was discarded
func (g *Game) Push(ev event.GameEvent) bool {
	if g.Events.Push(ev) {
		return true
	}
	g.baseLogger.Warn().
		Str("event", event.GetEventName(ev.Type)).
		Int64("dropped", g.Events.Dropped()).
		Msg("input queue full")
	return false
}

// Update runs one frame: drain input, advance systems, then fire due tasks
// Tasks run after the systems so a transition they start is observed at zero elapsed
func (g *Game) Update(dt time.Duration) {
	for _, ev := range g.Events.Consume() {
		g.dispatch(ev)
	}

	for _, s := range g.systems {
		s.Update(dt)
	}

	g.Scheduler.Advance(dt)
	g.publishStatus()
}

func (g *Game) dispatch(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		g.Reset()
		return
	}
	for _, s := range g.handlers[ev.Type] {
		s.HandleEvent(ev)
	}
}

func (g *Game) publishStatus() {
	g.statRemaining.Store(int64(g.Board.Remaining()))
	g.statPending.Store(int64(g.Scheduler.Pending()))
	g.statReady.Store(g.Board.Initialized())
}

// Session returns the identifier of the current board
func (g *Game) Session() string {
	return g.session
}

// Logger returns the session-tagged logger
func (g *Game) Logger() *zerolog.Logger {
	return &g.logger
}
