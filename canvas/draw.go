package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/mindpaper"
)

const (
	edgeWidth  = 1.5
	glyphSize  = 10.0
	glyphGap   = 4.0
	nodeStroke = 1.0
)

// screenRenderer draws the drawable layer onto the screen through the
// viewport.
type screenRenderer struct {
	dst   *ebiten.Image
	vp    mindpaper.Viewport
	font  *labelFont
	theme mindpaper.Theme
	clip  mindpaper.Rect
}

func newScreenRenderer(dst *ebiten.Image, vp mindpaper.Viewport, font *labelFont, theme mindpaper.Theme) *screenRenderer {
	b := dst.Bounds()
	return &screenRenderer{
		dst:   dst,
		vp:    vp,
		font:  font,
		theme: theme,
		clip:  mindpaper.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())},
	}
}

func (r *screenRenderer) DrawEdge(l mindpaper.Line) {
	x1, y1 := r.vp.WorldToScreen(l.X1, l.Y1)
	x2, y2 := r.vp.WorldToScreen(l.X2, l.Y2)
	span := mindpaper.Rect{X: min(x1, x2), Y: min(y1, y2), Width: abs(x2 - x1), Height: abs(y2 - y1)}
	if !span.Intersects(r.clip) {
		return
	}
	vector.StrokeLine(r.dst, float32(x1), float32(y1), float32(x2), float32(y2), edgeWidth, r.theme.Edge.RGBA(), true)
}

func (r *screenRenderer) DrawNode(n mindpaper.NodeView) {
	box := r.vp.WorldRectToScreen(n.Box)
	if !box.Intersects(r.clip) {
		return
	}
	vector.DrawFilledRect(r.dst, float32(box.X), float32(box.Y), float32(box.Width), float32(box.Height), r.theme.NodeFill.RGBA(), true)

	stroke, width := r.theme.NodeStroke, float32(nodeStroke)
	if n.Selected {
		stroke, width = r.theme.Selected, 2
	}
	vector.StrokeRect(r.dst, float32(box.X), float32(box.Y), float32(box.Width), float32(box.Height), width, stroke.RGBA(), true)

	face := r.font.faceAt(1 / r.vp.Zoom)
	sx, sy := r.vp.WorldToScreen(n.X, n.Y)
	drawCentered(r.dst, n.Label, face, sx, sy, r.theme.Text.RGBA())

	if n.HasChildren {
		gx, gy := r.vp.WorldToScreen(n.X, n.Box.Y-glyphGap-glyphSize/2)
		g := "-"
		if !n.Expanded {
			g = "+"
		}
		drawCentered(r.dst, g, face, gx, gy, r.theme.Text.RGBA())
	}
}

func drawCentered(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func drawLeft(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func fillRect(dst *ebiten.Image, r mindpaper.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, true)
}

func strokeRect(dst *ebiten.Image, r mindpaper.Rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), width, clr, true)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var (
	colorOverlay = color.RGBA{0, 0, 0, 140}
	colorToastBg = color.RGBA{0, 0, 0, 200}
)

func (g *Game) drawButton(dst *ebiten.Image, c control, active bool) {
	th := g.cfg.Theme
	fillRect(dst, c.rect, th.NodeFill.RGBA())
	stroke := th.NodeStroke
	if active {
		stroke = th.Selected
	}
	strokeRect(dst, c.rect, 1, stroke.RGBA())
	ctr := c.rect.Center()
	drawCentered(dst, c.label, g.font.face, ctr.X, ctr.Y, th.Text.RGBA())
}

func (g *Game) drawChrome(dst *ebiten.Image) {
	th := g.cfg.Theme
	for _, c := range g.toolbar() {
		g.drawButton(dst, c, g.hasPress && c.label == g.pressed)
	}
	if g.editor.ChoosingParent() {
		bar := g.toolbar()
		last := bar[len(bar)-1].rect
		drawLeft(dst, "tap the new parent", g.font.face, last.Right()+buttonGap, last.Center().Y, th.Selected.RGBA())
	}

	if items := g.menuItems(); len(items) > 0 {
		box := items[0].rect
		box.Height = float64(len(items)) * menuItemH
		fillRect(dst, box, th.NodeFill.RGBA())
		strokeRect(dst, box, 1, th.NodeStroke.RGBA())
		for _, c := range items {
			drawLeft(dst, c.label, g.font.face, c.rect.X+buttonPadX, c.rect.Center().Y, th.Text.RGBA())
		}
	}

	if g.dialog.open() {
		g.drawDialog(dst)
	}
	g.drawToasts(dst)
}

func (g *Game) drawDialog(dst *ebiten.Image) {
	th := g.cfg.Theme
	fillRect(dst, mindpaper.Rect{Width: float64(g.screenW), Height: float64(g.screenH)}, colorOverlay)
	box := g.dialogRect()
	fillRect(dst, box, th.Background.RGBA())
	strokeRect(dst, box, 1, th.Selected.RGBA())
	drawLeft(dst, g.dialog.kind.title(), g.font.face, box.X+12, box.Y+20, th.Text.RGBA())

	in := g.dialogInputRect()
	fillRect(dst, in, th.NodeFill.RGBA())
	strokeRect(dst, in, 1, th.NodeStroke.RGBA())
	value := string(g.dialog.value)
	drawLeft(dst, value, g.font.face, in.X+6, in.Center().Y, th.Text.RGBA())
	w, _ := g.font.MeasureString(value)
	caretX := float32(in.X + 7 + w)
	vector.StrokeLine(dst, caretX, float32(in.Y+6), caretX, float32(in.Y+in.Height-6), 1, th.Text.RGBA(), false)

	for _, c := range g.dialogButtons() {
		g.drawButton(dst, c, c.label == "confirm")
	}
}

func (g *Game) drawToasts(dst *ebiten.Image) {
	y := float64(g.screenH) - 40
	for i := len(g.toasts) - 1; i >= 0; i-- {
		t := g.toasts[i]
		w, h := g.font.MeasureString(t.text)
		r := mindpaper.Rect{X: (float64(g.screenW)-w)/2 - 10, Y: y - h/2 - 6, Width: w + 20, Height: h + 12}
		fillRect(dst, r, colorToastBg)
		drawCentered(dst, t.text, g.font.face, float64(g.screenW)/2, y, g.cfg.Theme.Text.RGBA())
		y -= h + 18
	}
}
