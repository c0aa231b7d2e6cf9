package network

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/planetfall/core"
	"github.com/lixenwraith/planetfall/engine"
	"github.com/lixenwraith/planetfall/event"
	"github.com/lixenwraith/planetfall/status"
)

// SnapshotSource publishes engine snapshots; *engine.Engine satisfies it
type SnapshotSource interface {
	Snapshot() *engine.Snapshot
}

// CommandSink accepts commands from any goroutine; *engine.Engine satisfies it
type CommandSink interface {
	Submit(ev event.GameEvent) bool
}

// Server is the spectator feed
//
// Endpoints:
//   - /ws: websocket, snapshots out, commands in
//   - /status: json telemetry
//
// Thread model: the broadcast loop and per-peer goroutines never touch engine
// state directly; they read published snapshots and Submit commands
type Server struct {
	cfg    *Config
	source SnapshotSource
	sink   CommandSink
	status *status.Registry
	log    zerolog.Logger

	upgrader websocket.Upgrader

	mu     sync.RWMutex
	peers  map[uint64]*Peer
	nextID uint64

	lastFrame int64

	statPeers *atomic.Int64
}

// NewServer creates a spectator feed; sink may be nil for a read-only feed
func NewServer(cfg *Config, source SnapshotSource, sink CommandSink, reg *status.Registry, log zerolog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Server{
		cfg:    cfg,
		source: source,
		sink:   sink,
		status: reg,
		log:    log.With().Str("component", "spectator").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16 * 1024,
			// Any page may watch; commands are gated per peer by sameOrigin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		peers:     make(map[uint64]*Peer),
		lastFrame: -1,
		statPeers: reg.Ints.Get(status.KeySpectators),
	}
}

// Handler returns the http routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// ListenAndServe runs the http server and the broadcast loop until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs on an existing listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("spectator feed listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.Run(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.closePeers()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Run pushes snapshots every BroadcastInterval until ctx is cancelled
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Broadcast()
		}
	}
}

// Broadcast sends the current snapshot to every peer if it changed since the last push
func (s *Server) Broadcast() {
	if s.PeerCount() == 0 {
		return
	}
	snap := s.source.Snapshot()
	if snap == nil || snap.Frame == s.lastFrame {
		return
	}
	data, err := EncodeSnapshot(snap)
	if err != nil {
		s.log.Warn().Err(err).Msg("snapshot encode failed")
		return
	}
	s.lastFrame = snap.Frame
	s.sendAll(websocket.BinaryMessage, data)
}

// PeerCount returns connected spectators
func (s *Server) PeerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

// --- event.Handler ---

// EventTypes returns the notifications forwarded to spectators
func (s *Server) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameStarted,
		event.EventGameReset,
		event.EventGameOver,
		event.EventEnemyKilled,
		event.EventHighScoreSaved,
		event.EventLeaderboardUpdated,
	}
}

// HandleEvent forwards a notification as a text frame; never blocks the simulation thread
func (s *Server) HandleEvent(ev event.GameEvent) {
	if s.PeerCount() == 0 {
		return
	}
	data, err := EncodeEvent(ev)
	if err != nil {
		s.log.Warn().Err(err).Msg("event encode failed")
		return
	}
	s.sendAll(websocket.TextMessage, data)
}

// --- Internals ---

func (s *Server) sendAll(kind int, data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.peers {
		if !p.Send(kind, data) {
			s.log.Debug().Uint64("peer", p.ID).Msg("peer queue full, frame dropped")
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.PeerCount() >= s.cfg.MaxPeers {
		http.Error(w, "too many spectators", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("upgrade failed")
		return
	}

	// Concurrent upgrades all pass the check above; the insert decides
	s.mu.Lock()
	if len(s.peers) >= s.cfg.MaxPeers {
		s.mu.Unlock()
		s.log.Debug().Str("addr", conn.RemoteAddr().String()).Msg("spectator refused, feed full")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many spectators"),
			time.Now().Add(s.cfg.WriteTimeout))
		conn.Close()
		return
	}
	s.nextID++
	p := newPeer(s.nextID, conn, s.cfg, s.log)
	p.commands = sameOrigin(r)
	s.peers[p.ID] = p
	s.statPeers.Store(int64(len(s.peers)))
	s.mu.Unlock()

	s.log.Info().Uint64("peer", p.ID).Str("addr", p.Addr).Bool("commands", p.commands).Msg("spectator connected")

	// Fresh peers get the current state immediately
	if snap := s.source.Snapshot(); snap != nil {
		if data, err := EncodeSnapshot(snap); err == nil {
			p.Send(websocket.BinaryMessage, data)
		}
	}

	core.Go(p.writeLoop)
	p.readLoop(s.onText)

	s.mu.Lock()
	delete(s.peers, p.ID)
	s.statPeers.Store(int64(len(s.peers)))
	s.mu.Unlock()

	s.log.Info().Uint64("peer", p.ID).Msg("spectator disconnected")
}

func (s *Server) onText(p *Peer, data []byte) {
	if !s.cfg.AcceptCommands || s.sink == nil || !p.commands {
		return
	}
	ev, err := DecodeCommandFrame(data)
	if err != nil {
		p.log.Debug().Err(err).Msg("command ignored")
		return
	}
	s.sink.Submit(ev)
}

// sameOrigin reports whether a browser Origin, if any, matches the request host
// Tools without an Origin header are trusted
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.status.Snapshot()); err != nil {
		s.log.Debug().Err(err).Msg("status write failed")
	}
}

func (s *Server) closePeers() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.peers {
		p.Close()
	}
}
