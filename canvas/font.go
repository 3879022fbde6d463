package canvas

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// labelFont wraps Ebitengine's text/v2 for node labels. Measurements are in
// canvas units at the base size; faces for other zoom levels are derived
// from the same source.
type labelFont struct {
	source *text.GoTextFaceSource
	face   *text.GoTextFace
	size   float64
	lh     float64

	scaled     *text.GoTextFace
	scaledSize float64
}

func loadLabelFont(ttfData []byte, size float64) (*labelFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("canvas: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &labelFont{
		source: source,
		face:   face,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// MeasureString implements mindpaper.Measurer.
func (f *labelFont) MeasureString(s string) (width, height float64) {
	w, h := text.Measure(s, f.face, f.lh)
	if s == "" {
		h = f.lh
	}
	return w, h
}

// faceAt returns a face for drawing at the given scale. The last face is
// cached since the scale only changes while zooming.
func (f *labelFont) faceAt(scale float64) *text.GoTextFace {
	size := f.size * scale
	if size < 1 {
		size = 1
	}
	if f.scaled == nil || f.scaledSize != size {
		f.scaled = &text.GoTextFace{Source: f.source, Size: size}
		f.scaledSize = size
	}
	return f.scaled
}
