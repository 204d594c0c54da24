package network

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	uuid "github.com/satori/go.uuid"
)

// Peer is the single controlling websocket client
type Peer struct {
	ID   string
	Addr string

	conn   *websocket.Conn
	cfg    *Config
	logger zerolog.Logger

	// Send queue
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(conn *websocket.Conn, cfg *Config, logger zerolog.Logger) *Peer {
	id := uuid.NewV4().String()
	return &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		cfg:     cfg,
		logger:  logger.With().Str("peer", id).Logger(),
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Send queues a message for transmission
// Returns false if the peer is closed or its queue is full
func (p *Peer) Send(msg []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- msg:
		return true
	default:
		return false
	}
}

// Close signals the write pump to send a close frame and drop the connection
// Safe to call repeatedly
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
	})
}

// Done is closed once the peer is closed
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// readPump decodes client messages until the connection fails
func (p *Peer) readPump(onMessage func(*Peer, []byte)) {
	defer p.Close()

	p.conn.SetReadLimit(p.cfg.MaxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(p.cfg.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(p.cfg.PongTimeout))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn().Err(err).Msg("read failed")
			}
			return
		}
		onMessage(p, data)
	}
}

// writePump drains the send queue and keeps the connection alive with pings
func (p *Peer) writePump() {
	ticker := time.NewTicker(p.cfg.HeartbeatInterval)

	defer func() {
		ticker.Stop()
		p.Close()
		p.conn.Close()
	}()

	for {
		select {
		case <-p.closeCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			p.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				p.logger.Debug().Err(err).Msg("write failed")
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
