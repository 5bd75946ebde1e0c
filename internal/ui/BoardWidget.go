package ui

import (
	"image/color"
	"sync"

	"LocalBoard/internal/board"
	"LocalBoard/internal/session"
	"LocalBoard/internal/tools"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"
)

// BoardWidget shows a board and turns pointer input into canvas brush
// input plus tool pointer hooks.
type BoardWidget struct {
	widget.BaseWidget

	board *board.Canvas
	tools *tools.Manager

	mu         sync.RWMutex
	panX, panY float32
	drawing    bool

	statusBar *widget.Label
	offs      []func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

// NewBoardWidget returns a widget for the session's canvas.
func NewBoardWidget(s *session.Session) *BoardWidget {
	b := &BoardWidget{
		board:     s.Canvas(),
		tools:     s.Tools(),
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)

	for _, ev := range []board.EventName{
		board.EventObjectAdded,
		board.EventObjectRemoved,
		board.EventCleared,
		board.EventPathUpdated,
	} {
		b.offs = append(b.offs, b.board.On(ev, func(board.Event) { b.refreshLater() }))
	}
	return b
}

// refreshLater repaints on the UI goroutine. Canvas events may come from
// the network goroutine.
func (b *BoardWidget) refreshLater() {
	fyne.Do(b.Refresh)
}

// Detach stops listening to the canvas.
func (b *BoardWidget) Detach() {
	for _, off := range b.offs {
		off()
	}
	b.offs = nil
}

// StatusBar is the label SetStatus writes to.
func (b *BoardWidget) StatusBar() *widget.Label {
	return b.statusBar
}

// SetStatus shows text in the status bar. Safe from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() { b.statusBar.SetText(text) })
}

func (b *BoardWidget) toCanvas(p fyne.Position) fyne.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return fyne.NewPos(p.X-b.panX, p.Y-b.panY)
}

func (b *BoardWidget) pan(dx, dy float32) {
	b.mu.Lock()
	b.panX += dx
	b.panY += dy
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) setDrawing(on bool) (was bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	was = b.drawing
	b.drawing = on
	return was
}

func (b *BoardWidget) isDrawing() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.drawing
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.board.IsDrawingMode {
		return
	}
	b.setDrawing(true)
	b.board.PointerDown(b.toCanvas(e.Position))
	b.tools.MouseDown()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.setDrawing(false) {
		return
	}
	b.board.PointerUp(b.toCanvas(e.Position))
	b.tools.MouseUp()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.isDrawing() {
		b.board.PointerMove(b.toCanvas(e.Position))
		b.tools.MouseMove()
		return
	}
	b.pan(e.Dragged.DX, e.Dragged.DY)
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.isDrawing() {
		b.board.PointerMove(b.toCanvas(e.Position))
		b.tools.MouseMove()
	}
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.pan(e.Scrolled.DX, e.Scrolled.DY)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}
func (b *BoardWidget) DragEnd()                    {}

// Cursor follows the canvas's default cursor.
func (b *BoardWidget) Cursor() desktop.Cursor {
	if b.board.DefaultCursor == "crosshair" {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func parseColor(hex string) color.Color {
	return gg.Hex(hex).Color()
}

func (r *boardWidgetRenderer) segments(pts []fyne.Position, c color.Color, width float32, panX, panY float32) []fyne.CanvasObject {
	if len(pts) < 2 {
		return nil
	}
	out := make([]fyne.CanvasObject, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		seg := canvas.NewLine(c)
		seg.StrokeWidth = width
		seg.Position1 = fyne.NewPos(pts[i].X+panX, pts[i].Y+panY)
		seg.Position2 = fyne.NewPos(pts[i+1].X+panX, pts[i+1].Y+panY)
		out = append(out, seg)
	}
	return out
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	b := r.board
	b.mu.RLock()
	panX, panY := b.panX, b.panY
	b.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	for _, o := range b.board.Objects() {
		objects = append(objects, r.segments(o.Points, parseColor(o.Color), o.Width, panX, panY)...)
	}

	brush := b.board.FreeDrawingBrush
	if pts := brush.Points(); len(pts) > 1 {
		objects = append(objects, r.segments(pts, parseColor(brush.Color), brush.Width, panX, panY)...)
	}
	return objects
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
