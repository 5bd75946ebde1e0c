// Package tools holds the whiteboard's interchangeable drawing tools and the
// manager that switches between them.
//
// A tool is activated on a canvas with ConfigureCanvas, receives pointer
// hooks while active, and is detached with Dispose. Tools report what they
// produced through Update values delivered to subscribers.
package tools

import (
	"io"
	"sync"

	"LocalBoard/internal/board"

	"github.com/charmbracelet/log"
)

// Options are the user-facing settings shared by all tools.
type Options struct {
	LineWidth float32
	Color     string
}

// UpdateType discriminates Update payloads.
type UpdateType string

const (
	// UpdateAdd announces a finished object.
	UpdateAdd UpdateType = "add"
	// UpdateFreeDrawing carries points appended to a stroke in progress.
	UpdateFreeDrawing UpdateType = "free-drawing"
)

// Update is what a tool tells the rest of the editor.
type Update struct {
	Type   UpdateType        `json:"type"`
	Object *board.ObjectJSON `json:"object,omitempty"`

	Color        string        `json:"color,omitempty"`
	Width        float32       `json:"width,omitempty"`
	AppendPoints []board.Point `json:"appendPoints,omitempty"`

	// Target is the live canvas object an UpdateAdd refers to.
	Target *board.Object `json:"-"`
}

// Tool is the contract between the editor and a drawing tool.
type Tool interface {
	ConfigureCanvas(c *board.Canvas)
	Dispose()
	ApplyOptions(o Options)

	OnMouseDown()
	OnMouseUp()
	OnMouseMove()

	Subscribe(fn func(Update)) (unsubscribe func())
}

// Emitter fans updates out to subscribers. Tools embed it to satisfy the
// Subscribe half of Tool. The zero value is ready to use.
type Emitter struct {
	mu   sync.RWMutex
	subs map[uint64]func(Update)
	next uint64
}

// Subscribe registers fn and returns a function that removes it.
func (e *Emitter) Subscribe(fn func(Update)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subs == nil {
		e.subs = make(map[uint64]func(Update))
	}
	e.next++
	id := e.next
	e.subs[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Emit delivers u to every subscriber, synchronously.
func (e *Emitter) Emit(u Update) {
	e.mu.RLock()
	fns := make([]func(Update), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()

	for _, fn := range fns {
		fn(u)
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
