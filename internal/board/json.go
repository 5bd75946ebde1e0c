package board

import (
	"time"

	"fyne.io/fyne/v2"
)

// Point is a JSON-friendly canvas position.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// ObjectJSON is the wire and file form of an Object.
type ObjectJSON struct {
	ID        string    `json:"id,omitempty"`
	Type      string    `json:"type"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Points    []Point   `json:"points"`
	Color     string    `json:"color"`
	Width     float32   `json:"width"`
	CreatedAt time.Time `json:"created_at"`
	Lamport   uint64    `json:"lamport,omitempty"`
}

// ObjectToJSON converts obj into its transmittable form. A nil object maps
// to the zero value.
func ObjectToJSON(obj *Object) ObjectJSON {
	if obj == nil {
		return ObjectJSON{}
	}
	pts := make([]Point, len(obj.Points))
	for i, p := range obj.Points {
		pts[i] = Point{X: p.X, Y: p.Y}
	}
	return ObjectJSON{
		ID:        obj.ID,
		Type:      obj.Type,
		OwnerID:   obj.OwnerID,
		Points:    pts,
		Color:     obj.Color,
		Width:     obj.Width,
		CreatedAt: obj.CreatedAt,
	}
}

// Object builds a canvas object from its transmittable form.
func (j ObjectJSON) Object() *Object {
	pts := make([]fyne.Position, len(j.Points))
	for i, p := range j.Points {
		pts[i] = fyne.NewPos(p.X, p.Y)
	}
	return &Object{
		ID:        j.ID,
		Type:      j.Type,
		OwnerID:   j.OwnerID,
		Points:    pts,
		Color:     j.Color,
		Width:     j.Width,
		CreatedAt: j.CreatedAt,
	}
}
