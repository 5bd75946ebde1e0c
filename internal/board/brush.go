package board

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Default brush settings, matching the toolbar defaults.
const (
	DefaultBrushColor = "#000000"
	DefaultBrushWidth = float32(3)
)

// Brush is the canvas's freehand pencil. Width and Color are read when a
// stroke is committed, so tools may change them at any time.
type Brush struct {
	Width float32
	Color string

	mu     sync.RWMutex
	points []fyne.Position
}

func newBrush() *Brush {
	return &Brush{Width: DefaultBrushWidth, Color: DefaultBrushColor}
}

// Points returns a copy of the points collected for the stroke in progress.
func (b *Brush) Points() []fyne.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]fyne.Position(nil), b.points...)
}

// Len returns the number of points in the stroke in progress.
func (b *Brush) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.points)
}

func (b *Brush) begin(p fyne.Position) {
	b.mu.Lock()
	b.points = append(b.points[:0], p)
	b.mu.Unlock()
}

func (b *Brush) extend(p fyne.Position) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.points) == 0 {
		return false
	}
	if last := b.points[len(b.points)-1]; last == p {
		return false
	}
	b.points = append(b.points, p)
	return true
}

// finish hands back the collected points and empties the buffer.
func (b *Brush) finish() []fyne.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	pts := b.points
	b.points = nil
	return pts
}
