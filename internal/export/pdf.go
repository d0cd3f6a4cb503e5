package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"SketchBoard/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// Layer is an image placed on the page at a given area, e.g. a background.
type Layer struct {
	Image image.Image
	Area  state.Area
}

// PaperColor is the colour of an opaque page; eraser strokes are painted with it.
const PaperColor = "#FFFFFF"

// PDF writes paths as vector strokes on a single page of size points.
// Layers below are drawn first, layers above after the strokes.
func PDF(w io.Writer, size state.Size, paths []state.PathData, below, above []Layer, opaque bool) error {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(size.Width), Ht: float64(size.Height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	if opaque {
		bg := state.TokenColor(PaperColor)
		p.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		p.Rect(0, 0, float64(size.Width), float64(size.Height), "F")
	}

	for i, l := range below {
		if err := placeImage(p, fmt.Sprintf("below-%d", i), l); err != nil {
			return err
		}
	}

	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	for _, d := range paths {
		token := d.Path.Color
		if token == state.EraseColor {
			token = PaperColor
		}
		c := state.TokenColor(token)
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.SetAlpha(float64(c.A)/255, "Normal")
		p.SetLineWidth(float64(d.Path.Width))

		pts := d.Path.Points
		if len(pts) == 1 {
			p.Circle(float64(pts[0].X), float64(pts[0].Y), float64(d.Path.Width)/2, "F")
			continue
		}
		for i := 1; i < len(pts); i++ {
			p.Line(
				float64(pts[i-1].X), float64(pts[i-1].Y),
				float64(pts[i].X), float64(pts[i].Y),
			)
		}
	}
	p.SetAlpha(1, "Normal")

	for i, l := range above {
		if err := placeImage(p, fmt.Sprintf("above-%d", i), l); err != nil {
			return err
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func placeImage(p *gofpdf.Fpdf, name string, l Layer) error {
	if l.Image == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, l.Image); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(name, opt, &buf)
	if err := p.Error(); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	p.ImageOptions(name, float64(l.Area.X), float64(l.Area.Y), float64(l.Area.Width), float64(l.Area.Height), false, opt, 0, "")
	return nil
}
