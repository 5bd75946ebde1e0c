package board

import (
	"time"

	"fyne.io/fyne/v2"
)

// Object types the canvas knows how to draw.
const (
	TypePath = "path"
	TypeRect = "rect"
)

// Object is anything placed on the canvas. Freehand strokes are objects of
// type "path". ID is empty until the collaboration layer has named the
// object; remote and loaded objects arrive with an ID already set.
type Object struct {
	ID        string
	Type      string
	OwnerID   string
	Points    []fyne.Position
	Color     string
	Width     float32
	CreatedAt time.Time
}

// Area is an axis-aligned rectangle in canvas coordinates.
type Area struct {
	X, Y          float32
	Width, Height float32
}

// Bounds returns the bounding box of the object's points, grown by half the
// stroke width on every side. An object without points has an empty area.
func (o *Object) Bounds() Area {
	if len(o.Points) == 0 {
		return Area{}
	}
	minX, minY := o.Points[0].X, o.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range o.Points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	pad := o.Width / 2
	return Area{
		X:      minX - pad,
		Y:      minY - pad,
		Width:  maxX - minX + 2*pad,
		Height: maxY - minY + 2*pad,
	}
}

// Union returns the smallest area covering both a and b. An empty area is
// the identity.
func (a Area) Union(b Area) Area {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	x := min(a.X, b.X)
	y := min(a.Y, b.Y)
	return Area{
		X:      x,
		Y:      y,
		Width:  max(a.X+a.Width, b.X+b.Width) - x,
		Height: max(a.Y+a.Height, b.Y+b.Height) - y,
	}
}

// Empty reports whether the area covers nothing.
func (a Area) Empty() bool {
	return a.Width <= 0 && a.Height <= 0
}

// BoundsOf returns the union of the bounds of objs.
func BoundsOf(objs []*Object) Area {
	var out Area
	for _, o := range objs {
		out = out.Union(o.Bounds())
	}
	return out
}

func (o *Object) clone() *Object {
	c := *o
	c.Points = append([]fyne.Position(nil), o.Points...)
	return &c
}
