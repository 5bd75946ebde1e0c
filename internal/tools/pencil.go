package tools

import (
	"sync"

	"LocalBoard/internal/board"
	"LocalBoard/internal/throttle"

	"github.com/charmbracelet/log"
)

// DefaultUpdateRate is how many in-progress path updates per second the
// pencil computes while the pointer moves.
const DefaultUpdateRate = 30

// PencilOption configures a PencilTool.
type PencilOption func(*pencilConfig)

type pencilConfig struct {
	logger *log.Logger
	rate   int
	clock  throttle.Clock
	live   bool
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) PencilOption {
	return func(c *pencilConfig) { c.logger = l }
}

// WithUpdateRate sets the number of path updates per second.
func WithUpdateRate(perSecond int) PencilOption {
	return func(c *pencilConfig) {
		if perSecond > 0 {
			c.rate = perSecond
		}
	}
}

// WithLiveUpdates makes the pencil emit UpdateFreeDrawing deltas while a
// stroke is in progress. It is off by default.
func WithLiveUpdates(on bool) PencilOption {
	return func(c *pencilConfig) { c.live = on }
}

// WithClock replaces the wall clock behind the update throttle.
func WithClock(clock throttle.Clock) PencilOption {
	return func(c *pencilConfig) { c.clock = clock }
}

// PencilTool draws freehand strokes using the canvas's own brush. It turns
// on drawing mode, forwards width and color to the brush, and announces each
// new stroke the canvas commits as an UpdateAdd.
type PencilTool struct {
	Emitter

	logger    *log.Logger
	throttled *throttle.Func
	live      bool

	mu              sync.Mutex
	canvas          *board.Canvas
	release         func()
	isDrawing       bool
	lastUpdateIndex int
}

var _ Tool = (*PencilTool)(nil)

// NewPencilTool returns a pencil that is not attached to any canvas yet.
func NewPencilTool(opts ...PencilOption) *PencilTool {
	cfg := pencilConfig{rate: DefaultUpdateRate}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}

	t := &PencilTool{logger: cfg.logger, live: cfg.live}
	var topts []throttle.Option
	if cfg.clock != nil {
		topts = append(topts, throttle.WithClock(cfg.clock))
	}
	t.throttled = throttle.New(t.onUpdatePath, throttle.PerSecond(cfg.rate), topts...)
	return t
}

// ConfigureCanvas activates the pencil on c. Any listener left from an
// earlier activation is removed first, so at most one is ever registered.
func (t *PencilTool) ConfigureCanvas(c *board.Canvas) {
	c.IsDrawingMode = true
	c.DefaultCursor = "default"

	t.mu.Lock()
	defer t.mu.Unlock()

	t.canvas = c
	t.lastUpdateIndex = 0

	if t.release != nil {
		t.release()
	}
	off := c.On(board.EventObjectAdded, t.onElementAdded)
	t.release = off
}

// Dispose detaches the pencil from its canvas and drops any pending path
// update. Calling it again is a no-op.
func (t *PencilTool) Dispose() {
	t.mu.Lock()
	release := t.release
	t.release = nil
	t.isDrawing = false
	t.mu.Unlock()

	t.throttled.Cancel()
	if release != nil {
		release()
	}
}

// ApplyOptions writes width and color straight into the live brush.
func (t *PencilTool) ApplyOptions(o Options) {
	c := t.getCanvas()
	if c == nil {
		return
	}
	c.FreeDrawingBrush.Width = o.LineWidth
	c.FreeDrawingBrush.Color = o.Color
}

func (t *PencilTool) OnMouseDown() {
	t.mu.Lock()
	t.lastUpdateIndex = 0
	t.isDrawing = true
	t.mu.Unlock()
}

func (t *PencilTool) OnMouseUp() {
	t.mu.Lock()
	t.isDrawing = false
	t.mu.Unlock()
	t.throttled.Cancel()
}

func (t *PencilTool) OnMouseMove() {
	t.throttled.Call()
}

// Drawing reports whether the pointer is held down.
func (t *PencilTool) Drawing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isDrawing
}

func (t *PencilTool) getCanvas() *board.Canvas {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canvas
}

// onUpdatePath works out which brush points are new since the last update.
// Unless live updates are on, the delta stays inside the tool: only
// committed strokes leave it.
func (t *PencilTool) onUpdatePath() {
	t.mu.Lock()
	if !t.isDrawing || t.canvas == nil {
		t.mu.Unlock()
		return
	}
	brush := t.canvas.FreeDrawingBrush
	points := brush.Points()
	from := min(t.lastUpdateIndex, len(points))
	added := points[from:]
	t.lastUpdateIndex = len(points)
	t.mu.Unlock()

	if len(added) == 0 {
		return
	}
	t.logger.Debug("path progress", "new_points", len(added), "total", len(points))
	if !t.live {
		return
	}

	appendPoints := make([]board.Point, len(added))
	for i, p := range added {
		appendPoints[i] = board.Point{X: p.X, Y: p.Y}
	}
	t.Emit(Update{
		Type:         UpdateFreeDrawing,
		Color:        brush.Color,
		Width:        brush.Width,
		AppendPoints: appendPoints,
	})
}

func (t *PencilTool) onElementAdded(e board.Event) {
	if e.Target == nil {
		return
	}
	if e.Target.Type != board.TypePath {
		return
	}
	if e.Target.ID != "" {
		return
	}

	obj := board.ObjectToJSON(e.Target)
	t.Emit(Update{Type: UpdateAdd, Object: &obj, Target: e.Target})
}
