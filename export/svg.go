package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/phanxgames/mindpaper"
)

type svgRenderer struct {
	canvas   *svg.SVG
	f        frame
	theme    mindpaper.Theme
	fontSize float64
}

func px(v float64) int { return int(math.Round(v)) }

func hex(c mindpaper.Color) string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func (r *svgRenderer) DrawEdge(l mindpaper.Line) {
	x1, y1 := r.f.point(l.X1, l.Y1)
	x2, y2 := r.f.point(l.X2, l.Y2)
	r.canvas.Line(px(x1), px(y1), px(x2), px(y2),
		fmt.Sprintf(`id="%s" stroke="%s" stroke-width="%.1f"`, l.ID, hex(r.theme.Edge), 1.5*r.f.scale))
}

func (r *svgRenderer) DrawNode(n mindpaper.NodeView) {
	b := r.f.rect(n.Box)
	stroke := r.theme.NodeStroke
	if n.Selected {
		stroke = r.theme.Selected
	}
	rad := px(4 * r.f.scale)

	r.canvas.Gid(fmt.Sprintf("node-%d", n.ID))
	r.canvas.Roundrect(px(b.X), px(b.Y), px(b.Width), px(b.Height), rad, rad,
		fmt.Sprintf(`fill="%s" stroke="%s"`, hex(r.theme.NodeFill), hex(stroke)))

	textStyle := fmt.Sprintf(`fill="%s" font-family="Go, sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central"`,
		hex(r.theme.Text), r.fontSize*r.f.scale)
	cx, cy := r.f.point(n.X, n.Y)
	r.canvas.Text(px(cx), px(cy), n.Label, textStyle)
	if n.HasChildren {
		gx, gy := r.f.point(glyphCenter(n))
		r.canvas.Text(px(gx), px(gy), glyph(n), textStyle)
	}
	r.canvas.Gend()
}

// SVG writes t as an SVG document on w.
func SVG(w io.Writer, t mindpaper.FlatTree, o Options) error {
	o = o.withDefaults()
	m, err := NewFaceMeasurer(o.FontSize)
	if err != nil {
		return err
	}
	f := newFrame(t, m, o)

	canvas := svg.New(w)
	canvas.Start(f.width, f.height)
	canvas.Rect(0, 0, f.width, f.height, fmt.Sprintf(`fill="%s"`, hex(o.Theme.Background)))
	compose(t, m, &svgRenderer{canvas: canvas, f: f, theme: o.Theme, fontSize: o.FontSize}, o)
	canvas.End()
	return nil
}
