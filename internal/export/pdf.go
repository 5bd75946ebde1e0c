package export

import (
	"fmt"
	"io"

	"LocalBoard/internal/board"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW, pageH = 210.0, 297.0 // A4, mm
	pageMargin   = 10.0
	// One canvas pixel is at most a third of a millimetre on paper.
	maxPDFScale = 1.0 / 3
)

// PDF writes the strokes to an A4 PDF at path.
func PDF(path string, objs []board.ObjectJSON) error {
	p := buildPDF(objs)
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: pdf %s: %w", path, err)
	}
	return nil
}

// WritePDF writes the strokes as an A4 PDF to w.
func WritePDF(w io.Writer, objs []board.ObjectJSON) error {
	p := buildPDF(objs)
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: pdf: %w", err)
	}
	return nil
}

func buildPDF(objs []board.ObjectJSON) *gofpdf.Fpdf {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("LocalBoard", true)
	p.SetCreator("LocalBoard", true)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	f := newFit(bounds(objs), pageMargin, pageMargin, pageW-2*pageMargin, pageH-2*pageMargin, maxPDFScale)
	for _, o := range objs {
		if len(o.Points) == 0 {
			continue
		}
		r, g, b := rgb255(o.Color)
		width := float64(o.Width) * f.scale

		if len(o.Points) == 1 {
			x, y := f.point(o.Points[0])
			p.SetFillColor(r, g, b)
			p.Circle(x, y, width/2, "F")
			continue
		}

		p.SetDrawColor(r, g, b)
		p.SetLineWidth(width)
		x, y := f.point(o.Points[0])
		p.MoveTo(x, y)
		for _, pt := range o.Points[1:] {
			x, y = f.point(pt)
			p.LineTo(x, y)
		}
		p.DrawPath("D")
	}
	return p
}
