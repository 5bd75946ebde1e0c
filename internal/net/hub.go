package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"LocalBoard/internal/board"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	peerSendBuffer = 64
	writeWait      = 5 * time.Second
)

// Peer is one websocket connection accepted by the host.
type Peer struct {
	conn *websocket.Conn
	send chan Message
	addr string
}

// Addr returns the peer's remote address.
func (p *Peer) Addr() string { return p.addr }

// Hub is run by the HOST. It accepts peers, relays every board message a
// peer sends to all the others, and hands it to OnMessage so the host's own
// board stays in step.
type Hub struct {
	// OnMessage is called for each message read from a peer, before the
	// message is relayed.
	OnMessage func(p *Peer, m Message)
	// Snapshot supplies the strokes sent to a peer right after it joins.
	Snapshot func() []board.ObjectJSON

	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[*Peer]struct{}
}

var _ Outbox = (*Hub)(nil)

// NewHub returns a hub with no peers.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Peers are on the same LAN and join through a share link.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*Peer]struct{}),
	}
}

// Handler returns the HTTP handler serving the websocket endpoint.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(WSPath, h)
	return mux
}

// Run serves peers on addr until ctx is done.
func (h *Hub) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net: listen %s: %w", addr, err)
	}
	return h.Serve(ctx, ln)
}

// Serve serves peers on ln until ctx is done.
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		h.closeAll()
	}()

	h.logger.Info("host listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("net: serve: %w", err)
	}
	return nil
}

// ServeHTTP upgrades the request and runs the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	p := &Peer{conn: conn, send: make(chan Message, peerSendBuffer), addr: conn.RemoteAddr().String()}
	go h.writeLoop(p)

	h.add(p)
	defer h.remove(p)
	if h.Snapshot != nil {
		h.deliver(p, Message{Type: MsgSync, Objects: h.Snapshot()})
	}

	h.readLoop(p)
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	h.peers[p] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("peer connected", "remote", p.addr)
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
	h.mu.Unlock()
	h.logger.Info("peer removed", "remote", p.addr)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		delete(h.peers, p)
		close(p.send)
	}
}

func (h *Hub) readLoop(p *Peer) {
	for {
		var m Message
		if err := p.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("peer read failed", "remote", p.addr, "err", err)
			}
			return
		}

		h.logger.Debug("received", "type", m.Type, "remote", p.addr)
		switch m.Type {
		case MsgAdd, MsgClear:
			if h.OnMessage != nil {
				h.OnMessage(p, m)
			}
			h.Broadcast(m, p)
		case MsgHello:
			if h.OnMessage != nil {
				h.OnMessage(p, m)
			}
		default:
			h.logger.Warn("dropping unknown message", "type", m.Type, "remote", p.addr)
		}
	}
}

func (h *Hub) writeLoop(p *Peer) {
	defer p.conn.Close()
	for m := range p.send {
		_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteJSON(m); err != nil {
			h.logger.Warn("send failed", "remote", p.addr, "err", err)
			return
		}
	}
	_ = p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Broadcast queues m for every peer except exclude. A peer whose queue is
// full misses the message rather than stalling the others.
func (h *Hub) Broadcast(m Message, exclude *Peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p != exclude {
			h.enqueueLocked(p, m)
		}
	}
}

// deliver queues m for a single peer if it is still connected.
func (h *Hub) deliver(p *Peer, m Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.peers[p]; ok {
		h.enqueueLocked(p, m)
	}
}

func (h *Hub) enqueueLocked(p *Peer, m Message) {
	select {
	case p.send <- m:
	default:
		h.logger.Warn("peer queue full, dropping message", "remote", p.addr, "type", m.Type)
	}
}

// Send broadcasts m to all peers.
func (h *Hub) Send(m Message) error {
	h.Broadcast(m, nil)
	return nil
}

// PeerCount returns the number of connected peers.
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}
