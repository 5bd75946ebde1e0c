// Package board is the drawing surface shared by the whiteboard tools: the
// object list, the native freehand brush, and the object lifecycle events
// tools and the UI listen to.
package board

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// EventName identifies a canvas event.
type EventName string

const (
	EventObjectAdded   EventName = "object:added"
	EventObjectRemoved EventName = "object:removed"
	EventCleared       EventName = "canvas:cleared"
	// EventPathUpdated fires whenever the brush collects a new point.
	EventPathUpdated EventName = "path:updated"
)

// Event is delivered to canvas listeners. Target is nil for events that are
// not about a single object.
type Event struct {
	Name   EventName
	Target *Object
}

// Handler receives canvas events.
type Handler func(Event)

// Canvas holds the objects on the board. It is safe for concurrent use;
// listeners are called without the canvas lock held, so they may call back
// into the canvas.
type Canvas struct {
	// IsDrawingMode turns pointer input into freehand strokes.
	IsDrawingMode bool
	// DefaultCursor is the cursor name the UI shows over the board.
	DefaultCursor string
	// FreeDrawingBrush paints strokes while IsDrawingMode is set.
	FreeDrawingBrush *Brush

	mu        sync.RWMutex
	owner     string
	objects   []*Object
	listeners map[EventName]map[uint64]Handler
	nextID    uint64
	now       func() time.Time
}

// New returns an empty canvas owned by ownerID. Strokes drawn on this canvas
// carry that owner.
func New(ownerID string) *Canvas {
	return &Canvas{
		DefaultCursor:    "default",
		FreeDrawingBrush: newBrush(),
		owner:            ownerID,
		listeners:        make(map[EventName]map[uint64]Handler),
		now:              time.Now,
	}
}

// SetOwner changes the owner stamped on new local strokes.
func (c *Canvas) SetOwner(ownerID string) {
	c.mu.Lock()
	c.owner = ownerID
	c.mu.Unlock()
}

// Owner returns the owner stamped on new local strokes.
func (c *Canvas) Owner() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owner
}

// On registers h for events named name. The returned function removes
// exactly this registration; calling it more than once is harmless.
func (c *Canvas) On(name EventName, h Handler) (off func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	if c.listeners[name] == nil {
		c.listeners[name] = make(map[uint64]Handler)
	}
	c.listeners[name][id] = h

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners[name], id)
	}
}

// ListenerCount returns how many handlers are registered for name.
func (c *Canvas) ListenerCount(name EventName) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners[name])
}

func (c *Canvas) fire(e Event) {
	c.mu.RLock()
	hs := make([]Handler, 0, len(c.listeners[e.Name]))
	for _, h := range c.listeners[e.Name] {
		hs = append(hs, h)
	}
	c.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}

// Add appends obj and fires EventObjectAdded. Objects with an ID that is
// already on the canvas are dropped.
func (c *Canvas) Add(obj *Object) bool {
	if obj == nil {
		return false
	}
	c.mu.Lock()
	if obj.ID != "" && c.indexLocked(obj.ID) >= 0 {
		c.mu.Unlock()
		return false
	}
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = c.now()
	}
	c.objects = append(c.objects, obj)
	c.mu.Unlock()

	c.fire(Event{Name: EventObjectAdded, Target: obj})
	return true
}

// Remove deletes the object with the given id.
func (c *Canvas) Remove(id string) bool {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	obj := c.objects[i]
	c.objects = append(c.objects[:i], c.objects[i+1:]...)
	c.mu.Unlock()

	c.fire(Event{Name: EventObjectRemoved, Target: obj})
	return true
}

// RemoveOwnedBy deletes every object drawn by owner and returns how many
// were removed.
func (c *Canvas) RemoveOwnedBy(owner string) int {
	c.mu.Lock()
	var removed []*Object
	kept := make([]*Object, 0, len(c.objects))
	for _, o := range c.objects {
		if o.OwnerID == owner {
			removed = append(removed, o)
		} else {
			kept = append(kept, o)
		}
	}
	c.objects = kept
	c.mu.Unlock()

	for _, o := range removed {
		c.fire(Event{Name: EventObjectRemoved, Target: o})
	}
	return len(removed)
}

// Clear removes every object.
func (c *Canvas) Clear() {
	c.mu.Lock()
	c.objects = nil
	c.mu.Unlock()
	c.fire(Event{Name: EventCleared})
}

// Objects returns copies of the objects in paint order.
func (c *Canvas) Objects() []*Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Object, len(c.objects))
	for i, o := range c.objects {
		out[i] = o.clone()
	}
	return out
}

// Len returns the number of objects on the canvas.
func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}

// Object returns a copy of the object with the given id.
func (c *Canvas) Object(id string) (*Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.objects[i].clone(), true
	}
	return nil, false
}

// SetID names an object that was added without an ID. It fails if obj is
// not on the canvas, already has an ID, or id is taken.
func (c *Canvas) SetID(obj *Object, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if obj == nil || obj.ID != "" || id == "" || c.indexLocked(id) >= 0 {
		return false
	}
	for _, o := range c.objects {
		if o == obj {
			o.ID = id
			return true
		}
	}
	return false
}

func (c *Canvas) indexLocked(id string) int {
	for i, o := range c.objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// PointerDown starts a freehand stroke when drawing mode is on.
func (c *Canvas) PointerDown(p fyne.Position) {
	if !c.IsDrawingMode {
		return
	}
	c.FreeDrawingBrush.begin(p)
	c.fire(Event{Name: EventPathUpdated})
}

// PointerMove extends the stroke in progress.
func (c *Canvas) PointerMove(p fyne.Position) {
	if !c.IsDrawingMode {
		return
	}
	if c.FreeDrawingBrush.extend(p) {
		c.fire(Event{Name: EventPathUpdated})
	}
}

// PointerUp ends the stroke. A stroke with at least two points becomes a new
// path object without an ID, which fires EventObjectAdded. The committed
// object is returned, or nil if nothing was added.
func (c *Canvas) PointerUp(p fyne.Position) *Object {
	if !c.IsDrawingMode {
		return nil
	}
	brush := c.FreeDrawingBrush
	brush.extend(p)
	pts := brush.finish()
	if len(pts) < 2 {
		c.fire(Event{Name: EventPathUpdated})
		return nil
	}

	obj := &Object{
		Type:    TypePath,
		OwnerID: c.Owner(),
		Points:  pts,
		Color:   brush.Color,
		Width:   brush.Width,
	}
	c.Add(obj)
	return obj
}
