package ui

import (
	"testing"

	"LocalBoard/internal/board"
	lbnet "LocalBoard/internal/net"
	"LocalBoard/internal/session"
	"LocalBoard/internal/state"
	"LocalBoard/internal/tools"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutbox struct{ sent []lbnet.Message }

func (r *recordingOutbox) Send(m lbnet.Message) error {
	r.sent = append(r.sent, m)
	return nil
}

func newTestSession(t *testing.T) (*session.Session, *recordingOutbox) {
	t.Helper()
	c := board.New("")
	m := tools.NewDefaultManager(c, nil)
	t.Cleanup(m.Close)
	s := session.New(c, state.NewStore("", nil), m, nil)
	out := &recordingOutbox{}
	s.SetOutbox(out)
	return s, out
}

func press(p fyne.Position) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: p}, Button: desktop.MouseButtonPrimary}
}

func drag(p fyne.Position, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: p}, Dragged: fyne.NewDelta(dx, dy)}
}

func TestBoardWidget_StrokeReachesSession(t *testing.T) {
	test.NewTempApp(t)
	s, out := newTestSession(t)
	b := NewBoardWidget(s)
	defer b.Detach()

	b.MouseDown(press(fyne.NewPos(10, 10)))
	b.Dragged(drag(fyne.NewPos(20, 15), 10, 5))
	b.Dragged(drag(fyne.NewPos(30, 25), 10, 10))
	b.MouseUp(press(fyne.NewPos(30, 25)))

	objs := s.Canvas().Objects()
	require.Len(t, objs, 1)
	assert.Len(t, objs[0].Points, 3)
	assert.NotEmpty(t, objs[0].ID)

	require.Len(t, out.sent, 1)
	assert.Equal(t, lbnet.MsgAdd, out.sent[0].Type)
}

func TestBoardWidget_DragWithoutPressPans(t *testing.T) {
	test.NewTempApp(t)
	s, _ := newTestSession(t)
	b := NewBoardWidget(s)
	defer b.Detach()

	b.Dragged(drag(fyne.NewPos(5, 5), 40, -10))
	assert.Equal(t, fyne.NewPos(-40, 10), b.toCanvas(fyne.NewPos(0, 0)))

	b.MouseDown(press(fyne.NewPos(40, 0)))
	b.MouseUp(press(fyne.NewPos(50, 10)))
	objs := s.Canvas().Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, fyne.NewPos(0, 10), objs[0].Points[0], "strokes land in canvas space")
}

func TestBoardWidget_SecondaryButtonIgnored(t *testing.T) {
	test.NewTempApp(t)
	s, _ := newTestSession(t)
	b := NewBoardWidget(s)
	defer b.Detach()

	ev := press(fyne.NewPos(1, 1))
	ev.Button = desktop.MouseButtonSecondary
	b.MouseDown(ev)
	assert.False(t, b.isDrawing())
	assert.Zero(t, s.Canvas().FreeDrawingBrush.Len())
}

func TestBoardWidget_RendersStrokes(t *testing.T) {
	test.NewTempApp(t)
	s, _ := newTestSession(t)
	b := NewBoardWidget(s)
	defer b.Detach()

	s.HandleRemote(lbnet.Message{Type: lbnet.MsgAdd, Object: &board.ObjectJSON{
		ID:     "r1",
		Type:   board.TypePath,
		Points: []board.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 9, Y: 2}},
		Color:  "#ff0000",
		Width:  2,
	}})

	r := test.WidgetRenderer(b)
	assert.Len(t, r.Objects(), 3, "background plus one line per segment")
}

func TestBoardWidget_DetachStopsListening(t *testing.T) {
	test.NewTempApp(t)
	s, _ := newTestSession(t)
	before := s.Canvas().ListenerCount(board.EventObjectAdded)
	b := NewBoardWidget(s)
	assert.Equal(t, before+1, s.Canvas().ListenerCount(board.EventObjectAdded))
	b.Detach()
	assert.Equal(t, before, s.Canvas().ListenerCount(board.EventObjectAdded))
}

func TestToolbar_DrivesManager(t *testing.T) {
	test.NewTempApp(t)
	s, _ := newTestSession(t)
	tb := NewToolbar(s.Tools())

	tb.SetColor("#0000ff")
	tb.SetWidth(8)
	brush := s.Canvas().FreeDrawingBrush
	assert.Equal(t, "#0000ff", brush.Color)
	assert.Equal(t, float32(8), brush.Width)

	require.NoError(t, tb.SelectTool(tools.NameEraser))
	assert.Equal(t, tools.NameEraser, s.Tools().Active())
	assert.Equal(t, tools.DefaultEraserColor, brush.Color)

	assert.ErrorIs(t, tb.SelectTool("spray"), tools.ErrUnknownTool)
	assert.NotNil(t, tb.Object())
}

func TestNewMainWindow(t *testing.T) {
	a := test.NewTempApp(t)
	s, _ := newTestSession(t)

	w, b := NewMainWindow(a, AppOptions{Session: s, ShareLink: "localboard://10.0.0.2:8888"})
	defer w.Close()
	defer b.Detach()

	assert.Equal(t, "Local Whiteboard", w.Title())
	require.NotNil(t, w.MainMenu())
	assert.Equal(t, "File", w.MainMenu().Items[0].Label)
	assert.Len(t, w.MainMenu().Items[0].Items, 5)
}
