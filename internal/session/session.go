// Package session ties one board together: it takes the strokes tools
// produce, names and records them, paints what peers send, and pushes local
// changes to whoever is listening on the other end of the outbox.
package session

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"LocalBoard/internal/board"
	lbnet "LocalBoard/internal/net"
	"LocalBoard/internal/state"
	"LocalBoard/internal/tools"

	"github.com/charmbracelet/log"
)

// Session is the glue between canvas, tools, store and network for one
// board.
type Session struct {
	canvas *board.Canvas
	store  *state.Store
	tools  *tools.Manager
	logger *log.Logger

	mu  sync.RWMutex
	out lbnet.Outbox
}

// New wires m's updates into a new session. The canvas owner is set to the
// store's site id so local strokes can be told apart from remote ones.
func New(c *board.Canvas, store *state.Store, m *tools.Manager, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{canvas: c, store: store, tools: m, logger: logger}
	c.SetOwner(store.Site())
	if m != nil {
		m.OnUpdate = s.HandleUpdate
	}
	return s
}

// Canvas returns the session's canvas.
func (s *Session) Canvas() *board.Canvas { return s.canvas }

// Tools returns the session's tool manager.
func (s *Session) Tools() *tools.Manager { return s.tools }

// Owner returns the id stamped on strokes drawn here.
func (s *Session) Owner() string { return s.store.Site() }

// SetOutbox sets where local changes are sent. nil keeps the board offline.
func (s *Session) SetOutbox(o lbnet.Outbox) {
	s.mu.Lock()
	s.out = o
	s.mu.Unlock()
}

func (s *Session) send(m lbnet.Message) {
	s.mu.RLock()
	out := s.out
	s.mu.RUnlock()
	if out == nil {
		return
	}
	if err := out.Send(m); err != nil {
		s.logger.Warn("failed to send", "type", m.Type, "err", err)
	}
}

// HandleUpdate takes an update from the active tool. A finished stroke is
// named, recorded, and sent.
func (s *Session) HandleUpdate(u tools.Update) {
	switch u.Type {
	case tools.UpdateAdd:
		if u.Object == nil {
			return
		}
		stamped := s.store.AddLocal(*u.Object)
		if u.Target != nil && !s.canvas.SetID(u.Target, stamped.ID) {
			s.logger.Warn("could not name canvas object", "id", stamped.ID)
		}
		s.logger.Info("stroke drawn", "id", stamped.ID, "points", len(stamped.Points))
		s.send(lbnet.Message{Type: lbnet.MsgAdd, Object: &stamped})
	case tools.UpdateFreeDrawing:
		// In-progress strokes stay local.
		s.logger.Debug("live path update", "points", len(u.AppendPoints))
	default:
		s.logger.Warn("unknown tool update", "type", u.Type)
	}
}

// HandleRemote applies a message received from the network.
func (s *Session) HandleRemote(m lbnet.Message) {
	switch m.Type {
	case lbnet.MsgAdd:
		if m.Object == nil {
			return
		}
		if s.store.AddRemote(*m.Object) {
			s.canvas.Add(m.Object.Object())
		}
	case lbnet.MsgClear:
		if m.OwnerID == "" {
			return
		}
		s.store.RemoveByOwner(m.OwnerID)
		n := s.canvas.RemoveOwnedBy(m.OwnerID)
		s.logger.Info("remote clear", "owner", m.OwnerID, "removed", n)
	case lbnet.MsgSync:
		added := s.store.Merge(m.Objects)
		for _, o := range added {
			s.canvas.Add(o.Object())
		}
		s.logger.Info("synced with host", "received", len(m.Objects), "new", len(added))
	case lbnet.MsgHello:
		s.logger.Info("peer says hello", "owner", m.OwnerID)
	default:
		s.logger.Warn("unknown message", "type", m.Type)
	}
}

// Hello introduces this board to the host.
func (s *Session) Hello() {
	s.send(lbnet.Message{Type: lbnet.MsgHello, OwnerID: s.Owner()})
}

// ClearLocal removes the strokes drawn on this board and tells peers to do
// the same. Strokes from other people stay.
func (s *Session) ClearLocal() int {
	owner := s.Owner()
	s.store.RemoveByOwner(owner)
	n := s.canvas.RemoveOwnedBy(owner)
	s.send(lbnet.Message{Type: lbnet.MsgClear, OwnerID: owner})
	return n
}

// Snapshot returns every stroke in paint order.
func (s *Session) Snapshot() []board.ObjectJSON {
	return s.store.All()
}

// Load puts strokes from a saved board onto this one and sends them to
// peers. Strokes already present are skipped. Strokes without an id are
// treated as drawn here.
func (s *Session) Load(objs []board.ObjectJSON) int {
	var n int
	for _, o := range objs {
		if o.ID == "" {
			o.OwnerID = s.Owner()
			o = s.store.AddLocal(o)
		} else if !s.store.AddRemote(o) {
			continue
		}
		s.canvas.Add(o.Object())
		s.send(lbnet.Message{Type: lbnet.MsgAdd, Object: &o})
		n++
	}
	return n
}

// Save writes the board as indented JSON.
func (s *Session) Save(w io.Writer) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal board: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("session: write board: %w", err)
	}
	return nil
}

// LoadFrom reads a board written by Save and loads it.
func (s *Session) LoadFrom(r io.Reader) (int, error) {
	objs, err := ReadBoard(r)
	if err != nil {
		return 0, err
	}
	return s.Load(objs), nil
}

// ReadBoard decodes a board file.
func ReadBoard(r io.Reader) ([]board.ObjectJSON, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("session: read board: %w", err)
	}
	var objs []board.ObjectJSON
	if err := json.Unmarshal(data, &objs); err != nil {
		return nil, fmt.Errorf("session: parse board: %w", err)
	}
	return objs, nil
}
