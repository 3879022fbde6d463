// Package export renders the drawable layer of a mind map to PNG or SVG
// without a window. Both renderers measure labels with the same Go Regular
// face, so a map exported to either format has the same layout.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/phanxgames/mindpaper"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Options controls an export.
type Options struct {
	// Padding around the bounds of the drawable layer, in canvas units.
	Padding float64
	// Scale multiplies every coordinate. Zero means 1.
	Scale float64
	// FontSize is the label size in points. Zero means 13.
	FontSize float64
	Theme    mindpaper.Theme
	// Selected, when HasSelected is set, is drawn highlighted.
	Selected    mindpaper.NodeID
	HasSelected bool
}

// DefaultOptions returns the options used by the export command.
func DefaultOptions() Options {
	return Options{Padding: 24, Scale: 1, FontSize: 13, Theme: mindpaper.DefaultTheme()}
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.FontSize <= 0 {
		o.FontSize = 13
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	return o
}

// FaceMeasurer measures labels with a TrueType face.
type FaceMeasurer struct {
	face font.Face
}

// NewFaceMeasurer parses the embedded Go Regular font at size points.
func NewFaceMeasurer(size float64) (*FaceMeasurer, error) {
	face, err := newFace(size)
	if err != nil {
		return nil, err
	}
	return &FaceMeasurer{face: face}, nil
}

func newFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Face returns the underlying font face.
func (m *FaceMeasurer) Face() font.Face { return m.face }

// MeasureString implements mindpaper.Measurer.
func (m *FaceMeasurer) MeasureString(s string) (float64, float64) {
	w := font.MeasureString(m.face, s)
	h := m.face.Metrics().Height
	return float64(w) / 64, float64(h) / 64
}

// frame maps canvas coordinates into the exported image.
type frame struct {
	offX, offY float64
	scale      float64
	width      int
	height     int
}

func newFrame(t mindpaper.FlatTree, m mindpaper.Measurer, o Options) frame {
	b, ok := mindpaper.Bounds(t, m)
	if !ok {
		b = mindpaper.Rect{}
	}
	// The expand glyph sits above the box.
	b.Y -= glyphSize + glyphGap
	b.Height += glyphSize + glyphGap
	w := (b.Width + 2*o.Padding) * o.Scale
	h := (b.Height + 2*o.Padding) * o.Scale
	return frame{
		offX:   o.Padding - b.X,
		offY:   o.Padding - b.Y,
		scale:  o.Scale,
		width:  max(1, int(w+0.5)),
		height: max(1, int(h+0.5)),
	}
}

func (f frame) point(x, y float64) (float64, float64) {
	return (x + f.offX) * f.scale, (y + f.offY) * f.scale
}

func (f frame) rect(r mindpaper.Rect) mindpaper.Rect {
	x, y := f.point(r.X, r.Y)
	return mindpaper.Rect{X: x, Y: y, Width: r.Width * f.scale, Height: r.Height * f.scale}
}

const (
	glyphSize = 10.0
	glyphGap  = 4.0
)

// glyphCenter returns the canvas position of the expand/collapse glyph
// drawn above a node that has children.
func glyphCenter(n mindpaper.NodeView) (float64, float64) {
	return n.X, n.Box.Y - glyphGap - glyphSize/2
}

func glyph(n mindpaper.NodeView) string {
	if n.Expanded {
		return "-"
	}
	return "+"
}

// WriteFile exports t to path. The format follows the extension: .png or
// .svg.
func WriteFile(path string, t mindpaper.FlatTree, o Options) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".svg" {
		return fmt.Errorf("export: unsupported format %q (want .png or .svg)", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == ".png" {
		err = PNG(f, t, o)
	} else {
		err = SVG(f, t, o)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

type selectingRenderer struct {
	mindpaper.Renderer
	id mindpaper.NodeID
}

func (s selectingRenderer) DrawNode(n mindpaper.NodeView) {
	n.Selected = n.ID == s.id
	s.Renderer.DrawNode(n)
}

func compose(t mindpaper.FlatTree, m mindpaper.Measurer, r mindpaper.Renderer, o Options) {
	if o.HasSelected {
		r = selectingRenderer{Renderer: r, id: o.Selected}
	}
	mindpaper.Compose(t, m, r)
}
