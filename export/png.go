package export

import (
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"github.com/phanxgames/mindpaper"
)

type pngRenderer struct {
	dc    *gg.Context
	f     frame
	theme mindpaper.Theme
}

func (r *pngRenderer) DrawEdge(l mindpaper.Line) {
	x1, y1 := r.f.point(l.X1, l.Y1)
	x2, y2 := r.f.point(l.X2, l.Y2)
	r.dc.SetColor(r.theme.Edge.RGBA())
	r.dc.SetLineWidth(1.5 * r.f.scale)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

func (r *pngRenderer) DrawNode(n mindpaper.NodeView) {
	b := r.f.rect(n.Box)
	radius := 4 * r.f.scale

	r.dc.SetColor(r.theme.NodeFill.RGBA())
	r.dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, radius)
	r.dc.Fill()

	stroke := r.theme.NodeStroke
	if n.Selected {
		stroke = r.theme.Selected
	}
	r.dc.SetColor(stroke.RGBA())
	r.dc.SetLineWidth(r.f.scale)
	r.dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, radius)
	r.dc.Stroke()

	cx, cy := r.f.point(n.X, n.Y)
	r.dc.SetColor(r.theme.Text.RGBA())
	r.dc.DrawStringAnchored(n.Label, cx, cy, 0.5, 0.35)

	if n.HasChildren {
		gx, gy := r.f.point(glyphCenter(n))
		r.dc.DrawStringAnchored(glyph(n), gx, gy, 0.5, 0.35)
	}
}

// Image renders t into a new image.
func Image(t mindpaper.FlatTree, o Options) (image.Image, error) {
	o = o.withDefaults()
	face, err := newFace(o.FontSize)
	if err != nil {
		return nil, err
	}
	m := &FaceMeasurer{face: face}
	f := newFrame(t, m, o)

	dc := gg.NewContext(f.width, f.height)
	dc.SetColor(o.Theme.Background.RGBA())
	dc.Clear()
	if o.Scale == 1 {
		dc.SetFontFace(face)
	} else if scaled, err := newFace(o.FontSize * o.Scale); err == nil {
		dc.SetFontFace(scaled)
	}

	compose(t, m, &pngRenderer{dc: dc, f: f, theme: o.Theme}, o)
	return dc.Image(), nil
}

// PNG encodes t as a PNG image on w.
func PNG(w io.Writer, t mindpaper.FlatTree, o Options) error {
	img, err := Image(t, o)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
