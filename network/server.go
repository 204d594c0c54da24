package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/flipcard/asset"
	"github.com/lixenwraith/flipcard/engine"
)

// Server exposes the board over HTTP and a single controlling websocket
// Render and Won run on the game loop; handlers only read the last encoded
// snapshot and push input into the game's event queue
type Server struct {
	cfg      *Config
	game     *engine.Game
	logger   zerolog.Logger
	router   *chi.Mux
	upgrader websocket.Upgrader

	mu         sync.Mutex
	controller *Peer

	// Last encoded state message
	latest atomic.Pointer[[]byte]

	// Loop-owned, suppresses identical frames
	lastSent []byte
}

// NewServer creates a server bound to game; a nil cfg uses DefaultConfig
func NewServer(cfg *Config, game *engine.Game, logger zerolog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		cfg:    cfg,
		game:   game,
		logger: logger.With().Str("component", "network").Logger(),
		router: chi.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/state", s.handleState)
	s.router.Get("/ws", s.handleWS)

	return s
}

// Handler returns the router wrapped with access logging and panic recovery
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(true),
	)
	access := s.logger.With().Str("log", "access").Logger()
	return handlers.CombinedLoggingHandler(access, recovery(s.router))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Address,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Address).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		// Hijacked connections are not tracked by Shutdown
		s.mu.Lock()
		if s.controller != nil {
			s.controller.Close()
		}
		s.mu.Unlock()

		return srv.Shutdown(shutdownCtx)
	}
}

// Connected reports whether a controller is attached
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller != nil
}

// Render publishes the frame's snapshot and forwards it to the controller when it changed
func (s *Server) Render(g *engine.Game) {
	data, err := json.Marshal(Outbound{Type: MsgState, State: BuildSnapshot(g)})
	if err != nil {
		s.logger.Error().Err(err).Msg("snapshot encode failed")
		return
	}
	s.latest.Store(&data)

	if bytes.Equal(data, s.lastSent) {
		return
	}
	s.lastSent = data
	s.send(data)
}

// Won forwards the win notification to the controller
func (s *Server) Won(ev engine.WinEvent) {
	data, err := encodeWin(ev)
	if err != nil {
		s.logger.Error().Err(err).Msg("win encode failed")
		return
	}
	s.send(data)
}

func (s *Server) send(data []byte) {
	s.mu.Lock()
	p := s.controller
	s.mu.Unlock()

	if p != nil && !p.Send(data) {
		p.logger.Debug().Msg("send queue full, frame dropped")
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(asset.IndexHTML))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	data := s.latest.Load()
	if data == nil {
		http.Error(w, `{"error":"no frame rendered yet"}`, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(*data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.Connected() {
		http.Error(w, "board already has a controller", http.StatusConflict)
		return
	}

	// The handshake runs unlocked so a slow client cannot hold up the game loop in send
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("upgrade failed")
		return
	}
	peer := newPeer(conn, s.cfg, s.logger)

	if !s.claim(peer) {
		peer.logger.Info().Str("addr", peer.Addr).Msg("controller slot taken during handshake")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "board already has a controller"),
			time.Now().Add(s.cfg.WriteTimeout))
		conn.Close()
		return
	}

	peer.logger.Info().Str("addr", peer.Addr).Msg("controller connected")

	if latest := s.latest.Load(); latest != nil {
		peer.Send(*latest)
	}

	go peer.writePump()
	go func() {
		peer.readPump(s.onMessage)
		s.release(peer)
	}()
}

// claim makes p the controller unless another peer already holds the slot
func (s *Server) claim(p *Peer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller != nil {
		return false
	}
	s.controller = p
	return true
}

func (s *Server) onMessage(p *Peer, data []byte) {
	ev, err := Decode(data)
	if err != nil {
		p.logger.Debug().Err(err).Msg("rejected message")
		p.Send(encodeError(err))
		return
	}
	if !s.game.Push(ev) {
		p.Send(encodeError(ErrBusy))
	}
}

func (s *Server) release(p *Peer) {
	s.mu.Lock()
	if s.controller == p {
		s.controller = nil
	}
	s.mu.Unlock()
	p.logger.Info().Msg("controller disconnected")
}

// recoveryLogger adapts zerolog to handlers.RecoveryHandlerLogger
type recoveryLogger struct {
	logger zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	for _, item := range v {
		if err, ok := item.(error); ok {
			l.logger.Error().Err(err).Msg("handler panic")
			return
		}
	}
	l.logger.Error().Interface("panic", v).Msg("handler panic")
}
