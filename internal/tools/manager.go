package tools

import (
	"errors"
	"fmt"
	"sync"

	"LocalBoard/internal/board"

	"github.com/charmbracelet/log"
)

// Tool names registered by NewDefaultManager.
const (
	NamePencil = "pencil"
	NameEraser = "eraser"
)

// ErrUnknownTool is returned when selecting a tool that was never
// registered.
var ErrUnknownTool = errors.New("tools: unknown tool")

// Manager owns the tool palette for one canvas. Exactly one tool is active
// at a time; switching disposes the old tool before configuring the new one.
type Manager struct {
	// OnUpdate receives every update produced by any registered tool.
	// Set it before tools start emitting.
	OnUpdate func(Update)

	canvas *board.Canvas
	logger *log.Logger

	mu      sync.Mutex
	tools   map[string]Tool
	order   []string
	active  string
	options Options
}

// NewManager returns a manager for c with no tools registered.
func NewManager(c *board.Canvas, logger *log.Logger) *Manager {
	if logger == nil {
		logger = discardLogger()
	}
	return &Manager{
		canvas: c,
		logger: logger,
		tools:  make(map[string]Tool),
		options: Options{
			LineWidth: board.DefaultBrushWidth,
			Color:     board.DefaultBrushColor,
		},
	}
}

// NewDefaultManager registers the pencil and eraser and selects the pencil.
func NewDefaultManager(c *board.Canvas, logger *log.Logger, opts ...PencilOption) *Manager {
	m := NewManager(c, logger)
	opts = append([]PencilOption{WithLogger(m.logger)}, opts...)
	m.Register(NamePencil, NewPencilTool(opts...))
	m.Register(NameEraser, NewEraserTool(opts...))
	// Cannot fail: the name was registered above.
	_ = m.Select(NamePencil)
	return m
}

// Register adds t under name, replacing any tool with the same name.
func (m *Manager) Register(name string, t Tool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tools[name]; !exists {
		m.order = append(m.order, name)
	}
	m.tools[name] = t
	t.Subscribe(m.dispatch)
}

func (m *Manager) dispatch(u Update) {
	if m.OnUpdate != nil {
		m.OnUpdate(u)
	}
}

// Names lists registered tools in registration order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Select activates the named tool on the manager's canvas and applies the
// current options to it.
func (m *Manager) Select(name string) error {
	m.mu.Lock()
	next, ok := m.tools[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	prev := m.tools[m.active]
	m.active = name
	opts := m.options
	m.mu.Unlock()

	if prev != nil {
		prev.Dispose()
	}
	next.ConfigureCanvas(m.canvas)
	next.ApplyOptions(opts)
	m.logger.Debug("tool selected", "tool", name)
	return nil
}

// Active returns the active tool's name, or "" if none is selected.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) current() Tool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tools[m.active]
}

// SetOptions remembers o and applies it to the active tool.
func (m *Manager) SetOptions(o Options) {
	m.mu.Lock()
	m.options = o
	m.mu.Unlock()
	if t := m.current(); t != nil {
		t.ApplyOptions(o)
	}
}

// Options returns the options last set.
func (m *Manager) Options() Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.options
}

func (m *Manager) MouseDown() {
	if t := m.current(); t != nil {
		t.OnMouseDown()
	}
}

func (m *Manager) MouseMove() {
	if t := m.current(); t != nil {
		t.OnMouseMove()
	}
}

func (m *Manager) MouseUp() {
	if t := m.current(); t != nil {
		t.OnMouseUp()
	}
}

// Close disposes the active tool.
func (m *Manager) Close() {
	m.mu.Lock()
	t := m.tools[m.active]
	m.active = ""
	m.mu.Unlock()
	if t != nil {
		t.Dispose()
	}
}
