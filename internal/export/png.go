package export

import (
	"fmt"
	"io"

	"LocalBoard/internal/board"

	"github.com/gogpu/gg"
)

const (
	pngMargin   = 20.0
	maxPNGScale = 4.0
	background  = "#ffffff"
)

// PNG rasterises the strokes into a width x height image at path.
func PNG(path string, objs []board.ObjectJSON, width, height int) error {
	dc, err := render(objs, width, height)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("export: png %s: %w", path, err)
	}
	return nil
}

// WritePNG rasterises the strokes and encodes the image to w.
func WritePNG(w io.Writer, objs []board.ObjectJSON, width, height int) error {
	dc, err := render(objs, width, height)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("export: png: %w", err)
	}
	return nil
}

func render(objs []board.ObjectJSON, width, height int) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: png size %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.Hex(background))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	f := newFit(bounds(objs), pngMargin, pngMargin, float64(width)-2*pngMargin, float64(height)-2*pngMargin, maxPNGScale)
	for _, o := range objs {
		if len(o.Points) == 0 {
			continue
		}
		dc.SetColor(gg.Hex(o.Color).Color())
		lw := max(float64(o.Width)*f.scale, 1)

		if len(o.Points) == 1 {
			x, y := f.point(o.Points[0])
			dc.DrawCircle(x, y, lw/2)
			if err := dc.Fill(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("export: fill: %w", err)
			}
			continue
		}

		dc.SetLineWidth(lw)
		x, y := f.point(o.Points[0])
		dc.MoveTo(x, y)
		for _, pt := range o.Points[1:] {
			x, y = f.point(pt)
			dc.LineTo(x, y)
		}
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("export: stroke: %w", err)
		}
	}
	return dc, nil
}
