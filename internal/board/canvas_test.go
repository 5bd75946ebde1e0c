package board

import (
	"encoding/json"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(c *Canvas, name EventName) (*[]Event, func()) {
	var got []Event
	off := c.On(name, func(e Event) { got = append(got, e) })
	return &got, off
}

func TestCanvas_OnReturnsOffForThatHandlerOnly(t *testing.T) {
	c := New("me")
	first, offFirst := record(c, EventObjectAdded)
	second, _ := record(c, EventObjectAdded)
	require.Equal(t, 2, c.ListenerCount(EventObjectAdded))

	offFirst()
	offFirst()
	assert.Equal(t, 1, c.ListenerCount(EventObjectAdded))

	c.Add(&Object{Type: TypeRect})
	assert.Empty(t, *first)
	assert.Len(t, *second, 1)
}

func TestCanvas_FreehandStrokeCommitsPath(t *testing.T) {
	c := New("me")
	c.IsDrawingMode = true
	c.FreeDrawingBrush.Width = 5
	c.FreeDrawingBrush.Color = "#ff0000"
	added, _ := record(c, EventObjectAdded)

	c.PointerDown(fyne.NewPos(1, 1))
	c.PointerMove(fyne.NewPos(2, 2))
	c.PointerMove(fyne.NewPos(2, 2)) // duplicate, ignored
	c.PointerMove(fyne.NewPos(3, 4))
	assert.Equal(t, 3, c.FreeDrawingBrush.Len())

	obj := c.PointerUp(fyne.NewPos(5, 5))
	require.NotNil(t, obj)
	require.Len(t, *added, 1)

	got := (*added)[0].Target
	assert.Same(t, obj, got)
	assert.Equal(t, TypePath, got.Type)
	assert.Empty(t, got.ID)
	assert.Equal(t, "me", got.OwnerID)
	assert.Equal(t, "#ff0000", got.Color)
	assert.Equal(t, float32(5), got.Width)
	assert.Len(t, got.Points, 4)
	assert.Zero(t, c.FreeDrawingBrush.Len())
}

func TestCanvas_ClickWithoutMovementAddsNothing(t *testing.T) {
	c := New("me")
	c.IsDrawingMode = true
	added, _ := record(c, EventObjectAdded)

	c.PointerDown(fyne.NewPos(1, 1))
	assert.Nil(t, c.PointerUp(fyne.NewPos(1, 1)))
	assert.Empty(t, *added)
}

func TestCanvas_PointerIgnoredOutsideDrawingMode(t *testing.T) {
	c := New("me")
	c.PointerDown(fyne.NewPos(1, 1))
	c.PointerMove(fyne.NewPos(5, 5))
	assert.Nil(t, c.PointerUp(fyne.NewPos(9, 9)))
	assert.Zero(t, c.Len())
}

func TestCanvas_AddDropsDuplicateIDs(t *testing.T) {
	c := New("me")
	assert.True(t, c.Add(&Object{ID: "a", Type: TypePath}))
	assert.False(t, c.Add(&Object{ID: "a", Type: TypePath}))
	assert.True(t, c.Add(&Object{Type: TypePath}))
	assert.True(t, c.Add(&Object{Type: TypePath}))
	assert.False(t, c.Add(nil))
	assert.Equal(t, 3, c.Len())
}

func TestCanvas_SetID(t *testing.T) {
	c := New("me")
	obj := &Object{Type: TypePath}
	c.Add(obj)
	c.Add(&Object{ID: "taken", Type: TypePath})

	assert.False(t, c.SetID(obj, "taken"))
	assert.True(t, c.SetID(obj, "new"))
	assert.False(t, c.SetID(obj, "again"), "already named")
	assert.False(t, c.SetID(&Object{}, "stray"), "not on canvas")

	got, ok := c.Object("new")
	require.True(t, ok)
	assert.Equal(t, TypePath, got.Type)
}

func TestCanvas_RemoveAndClear(t *testing.T) {
	c := New("me")
	removed, _ := record(c, EventObjectRemoved)
	cleared, _ := record(c, EventCleared)

	c.Add(&Object{ID: "a", OwnerID: "me"})
	c.Add(&Object{ID: "b", OwnerID: "you"})
	c.Add(&Object{ID: "c", OwnerID: "me"})

	assert.Equal(t, 2, c.RemoveOwnedBy("me"))
	assert.Len(t, *removed, 2)
	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"))
	assert.Zero(t, c.Len())

	c.Add(&Object{ID: "d"})
	c.Clear()
	assert.Len(t, *cleared, 1)
	assert.Zero(t, c.Len())
}

func TestCanvas_ObjectsAreCopies(t *testing.T) {
	c := New("me")
	c.Add(&Object{ID: "a", Points: []fyne.Position{{X: 1, Y: 1}}})

	objs := c.Objects()
	objs[0].Points[0].X = 99
	got, _ := c.Object("a")
	assert.Equal(t, float32(1), got.Points[0].X)
}

func TestCanvas_HandlerMayCallBack(t *testing.T) {
	c := New("me")
	c.On(EventObjectAdded, func(e Event) {
		if e.Target.ID == "" {
			c.SetID(e.Target, "named")
		}
	})
	c.Add(&Object{Type: TypePath})
	_, ok := c.Object("named")
	assert.True(t, ok)
}

func TestObject_Bounds(t *testing.T) {
	o := &Object{
		Width:  2,
		Points: []fyne.Position{{X: 10, Y: 20}, {X: 30, Y: 5}},
	}
	assert.Equal(t, Area{X: 9, Y: 4, Width: 22, Height: 17}, o.Bounds())
	assert.True(t, (&Object{}).Bounds().Empty())

	u := BoundsOf([]*Object{o, {Points: []fyne.Position{{X: 100, Y: 100}}, Width: 2}})
	assert.Equal(t, Area{X: 9, Y: 4, Width: 92, Height: 97}, u)
}

func TestObjectJSON_Shape(t *testing.T) {
	obj := &Object{
		Type:   TypePath,
		Points: []fyne.Position{{X: 1, Y: 2}},
		Color:  "#123456",
		Width:  4,
	}
	data, err := json.Marshal(ObjectToJSON(obj))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "path", raw["type"])
	assert.NotContains(t, raw, "id")
	assert.Equal(t, []any{map[string]any{"x": 1.0, "y": 2.0}}, raw["points"])

	back := ObjectToJSON(obj).Object()
	assert.Equal(t, obj.Points, back.Points)
	assert.Equal(t, ObjectJSON{}, ObjectToJSON(nil))
}
