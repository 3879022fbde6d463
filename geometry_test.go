package mindpaper

import "testing"

func TestDistanceAndMidpoint(t *testing.T) {
	a, b := Vec2{X: 1, Y: 2}, Vec2{X: 4, Y: 6}
	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Distance(a, a); got != 0 {
		t.Errorf("Distance to self = %v", got)
	}
	if got := Midpoint(a, b); got != (Vec2{X: 2.5, Y: 4}) {
		t.Errorf("Midpoint = %+v", got)
	}
}

func TestEdgeID(t *testing.T) {
	if got := EdgeID(2, 17); got != "line-2-17" {
		t.Errorf("EdgeID = %q", got)
	}
}

func TestLabelBox(t *testing.T) {
	r := LabelBox(testMeasurer, "game", 300, 100)
	// 4 runes * 7 + 8 padding, 13 + 8 padding.
	want := Rect{X: 300 - 18, Y: 100 - 10.5, Width: 36, Height: 21}
	if r != want {
		t.Errorf("LabelBox = %+v, want %+v", r, want)
	}
	if c := r.Center(); c.X != 300 || c.Y != 100 {
		t.Errorf("box center = %+v, want the node position", c)
	}
}

func TestLabelBoxWithoutMeasurer(t *testing.T) {
	r := LabelBox(nil, "anything", 0, 0)
	if r.Width != LabelPadding || r.Height != LabelPadding {
		t.Errorf("LabelBox(nil) = %+v, want padding only", r)
	}
}

func TestFixedMeasurerCountsRunes(t *testing.T) {
	w, h := testMeasurer.MeasureString("héllo")
	if w != 35 || h != 13 {
		t.Errorf("MeasureString = (%v, %v), want (35, 13)", w, h)
	}
}
