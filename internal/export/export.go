// Package export renders a board to PDF and PNG.
package export

import (
	"LocalBoard/internal/board"

	"github.com/gogpu/gg"
)

// fit maps canvas coordinates into a target box, keeping the aspect ratio
// and never scaling up past maxScale.
type fit struct {
	scale  float64
	dx, dy float64
}

func newFit(area board.Area, x, y, w, h, maxScale float64) fit {
	if area.Empty() {
		return fit{scale: maxScale, dx: x, dy: y}
	}
	scale := min(w/float64(area.Width), h/float64(area.Height), maxScale)
	return fit{
		scale: scale,
		dx:    x - float64(area.X)*scale,
		dy:    y - float64(area.Y)*scale,
	}
}

func (f fit) point(p board.Point) (float64, float64) {
	return float64(p.X)*f.scale + f.dx, float64(p.Y)*f.scale + f.dy
}

func bounds(objs []board.ObjectJSON) board.Area {
	var area board.Area
	for _, o := range objs {
		area = area.Union(o.Object().Bounds())
	}
	return area
}

// rgb255 parses a hex stroke color into 0-255 components.
func rgb255(color string) (int, int, int) {
	c := gg.Hex(color)
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}
