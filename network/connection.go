package network

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// outbound is one queued websocket frame
type outbound struct {
	kind int // websocket.BinaryMessage or websocket.TextMessage
	data []byte
}

// Peer is one connected spectator
type Peer struct {
	ID   uint64
	Addr string

	// commands is false for cross-origin browser peers, which only watch
	commands bool

	conn   *websocket.Conn
	sendCh chan outbound
	cfg    *Config
	log    zerolog.Logger

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id uint64, conn *websocket.Conn, cfg *Config, log zerolog.Logger) *Peer {
	return &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		sendCh:  make(chan outbound, cfg.SendQueueSize),
		cfg:     cfg,
		log:     log.With().Uint64("peer", id).Logger(),
		closeCh: make(chan struct{}),
	}
}

// Send queues a frame without blocking
// Returns false if the peer is closed or its queue is full
func (p *Peer) Send(kind int, data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- outbound{kind: kind, data: data}:
		return true
	default:
		return false
	}
}

// Close asks the write loop to send a close frame and drop the connection
// Safe to call repeatedly
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
	})
}

// readLoop delivers text frames to onText until the connection fails
func (p *Peer) readLoop(onText func(p *Peer, data []byte)) {
	defer p.Close()

	p.conn.SetReadLimit(p.cfg.ReadLimit)
	_ = p.conn.SetReadDeadline(time.Now().Add(p.cfg.ReadTimeout))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(p.cfg.ReadTimeout))
	})

	for {
		kind, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.Debug().Err(err).Msg("read failed")
			}
			return
		}
		if kind == websocket.TextMessage {
			onText(p, data)
		}
	}
}

// writeLoop drains the send queue and keeps the connection alive with pings
// Owns all writes to the connection
func (p *Peer) writeLoop() {
	ticker := time.NewTicker(p.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		p.Close()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.sendCh:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(msg.kind, msg.data); err != nil {
				p.log.Debug().Err(err).Msg("write failed")
				return
			}

		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.closeCh:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			_ = p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
