// Package state keeps the replicated set of strokes on the board. Strokes
// are added under globally unique ids and never edited; a peer may remove
// all strokes it owns. Replicas converge because duplicates are dropped by
// id and order is decided by Lamport time.
package state

import (
	"io"
	"sort"
	"sync"
	"time"

	"LocalBoard/internal/board"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Store is the board's stroke set for one site.
type Store struct {
	site   string
	clock  Clock
	logger *log.Logger

	mu      sync.RWMutex
	strokes map[string]board.ObjectJSON
	history []Op
}

// NewStore returns an empty store for site. An empty site gets a random id.
func NewStore(site string, logger *log.Logger) *Store {
	if site == "" {
		site = NewSiteID()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		site:    site,
		logger:  logger,
		strokes: make(map[string]board.ObjectJSON),
	}
}

// Site returns this store's site id.
func (s *Store) Site() string {
	return s.site
}

// AddLocal names a stroke drawn on this site, records it, and returns the
// stamped stroke ready to broadcast. The owner defaults to the site.
func (s *Store) AddLocal(obj board.ObjectJSON) board.ObjectJSON {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj.ID = uuid.NewString()
	if obj.OwnerID == "" {
		obj.OwnerID = s.site
	}
	obj.Lamport = s.clock.Tick()

	s.strokes[obj.ID] = obj
	s.record(Op{Type: OpInsertStroke, Stroke: obj, Owner: obj.OwnerID, Site: s.site, Lamport: obj.Lamport})

	s.logger.Debug("[CRDT] local stroke added", "id", obj.ID, "lamport", obj.Lamport)
	return obj
}

// AddRemote merges a stroke received from a peer. It returns false for
// strokes without an id and for strokes already known.
func (s *Store) AddRemote(obj board.ObjectJSON) bool {
	if obj.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.strokes[obj.ID]; exists {
		s.logger.Debug("[CRDT] stroke already known, ignoring", "id", obj.ID)
		return false
	}
	s.clock.Observe(obj.Lamport)

	s.strokes[obj.ID] = obj
	s.record(Op{Type: OpInsertStroke, Stroke: obj, Owner: obj.OwnerID, Lamport: obj.Lamport})

	s.logger.Debug("[CRDT] remote stroke added", "id", obj.ID, "owner", obj.OwnerID)
	return true
}

// RemoveByOwner drops every stroke owned by owner and returns their ids.
func (s *Store) RemoveByOwner(owner string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for id, st := range s.strokes {
		if st.OwnerID == owner {
			ids = append(ids, id)
			delete(s.strokes, id)
		}
	}
	sort.Strings(ids)
	s.record(Op{Type: OpClearOwner, Owner: owner, Site: s.site, Lamport: s.clock.Tick()})

	s.logger.Debug("[CRDT] cleared owner", "owner", owner, "removed", len(ids))
	return ids
}

// Merge adds every unknown stroke in objs and returns the ones that were
// new, in board order.
func (s *Store) Merge(objs []board.ObjectJSON) []board.ObjectJSON {
	var added []board.ObjectJSON
	for _, o := range objs {
		if s.AddRemote(o) {
			added = append(added, o)
		}
	}
	sortStrokes(added)
	return added
}

// Get returns the stroke with the given id.
func (s *Store) Get(id string) (board.ObjectJSON, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.strokes[id]
	return st, ok
}

// All returns every stroke ordered by Lamport time, ties broken by id, so
// all replicas paint in the same order.
func (s *Store) All() []board.ObjectJSON {
	s.mu.RLock()
	out := make([]board.ObjectJSON, 0, len(s.strokes))
	for _, st := range s.strokes {
		out = append(out, st)
	}
	s.mu.RUnlock()

	sortStrokes(out)
	return out
}

// Len returns the number of strokes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes)
}

// History returns the operations applied so far, oldest first.
func (s *Store) History() []Op {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Op(nil), s.history...)
}

func (s *Store) record(op Op) {
	op.AppliedAt = time.Now()
	s.history = append(s.history, op)
}

func sortStrokes(objs []board.ObjectJSON) {
	sort.Slice(objs, func(i, j int) bool {
		if objs[i].Lamport != objs[j].Lamport {
			return objs[i].Lamport < objs[j].Lamport
		}
		return objs[i].ID < objs[j].ID
	})
}
