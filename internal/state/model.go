package state

import (
	"time"

	"LocalBoard/internal/board"
)

type OpType string

const (
	OpInsertStroke OpType = "insert_stroke"
	OpClearOwner   OpType = "clear_owner"
)

// Op is one entry in the store's history.
type Op struct {
	Type      OpType
	Stroke    board.ObjectJSON
	Owner     string
	Site      string
	Lamport   uint64
	AppliedAt time.Time
}
