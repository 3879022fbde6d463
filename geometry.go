package mindpaper

import (
	"fmt"
	"math"
)

// LabelPadding is the space added around a measured label to size its box.
const LabelPadding = 8.0

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec2) Vec2 {
	return Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Line describes an edge from a parent node (X1, Y1) to a child node (X2, Y2).
type Line struct {
	ID     string
	Parent NodeID
	Child  NodeID
	X1, Y1 float64
	X2, Y2 float64
}

// EdgeID returns the stable identifier of the edge between parent and child.
func EdgeID(parent, child NodeID) string {
	return fmt.Sprintf("line-%d-%d", parent, child)
}

// Measurer reports the rendered size of a label. Implementations wrap a font
// face; the core never measures text itself.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// LabelBox returns the rectangle drawn behind a label centered at (x, y):
// the measured text size plus LabelPadding on each axis.
func LabelBox(m Measurer, label string, x, y float64) Rect {
	var w, h float64
	if m != nil {
		w, h = m.MeasureString(label)
	}
	w += LabelPadding
	h += LabelPadding
	return Rect{X: x - w/2, Y: y - h/2, Width: w, Height: h}
}

// FixedMeasurer measures every rune as a cell of the same size. Used for
// headless layout and tests.
type FixedMeasurer struct {
	CharWidth, LineHeight float64
}

// MeasureString implements Measurer.
func (f FixedMeasurer) MeasureString(s string) (float64, float64) {
	n := 0
	for range s {
		n++
	}
	return float64(n) * f.CharWidth, f.LineHeight
}
