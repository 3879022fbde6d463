package mindpaper

import "math"

// Viewport defaults.
const (
	DefaultZoomStep = 1.1
	DefaultMinZoom  = 0.05
	DefaultMaxZoom  = 20.0

	// minPinchDistance is the smallest finger spread that still produces a
	// zoom change.
	minPinchDistance = 1e-6
)

// Viewport is the visible window into canvas space.
//
// X and Y are the canvas point shown at the center of the screen. Width and
// Height are the canvas-space size of the visible region and always equal
// the screen size times Zoom once an operation returns. Zoom is canvas units
// per screen pixel: 1 is the identity, values above 1 show more of the canvas
// (zoomed out) and values below 1 show less (zoomed in).
//
// Viewport is a value. Every operation returns the updated viewport; a no-op
// returns the receiver unchanged.
type Viewport struct {
	X, Y          float64
	Width, Height float64
	Zoom          float64

	// ScreenW and ScreenH are the physical pixel size of the screen.
	ScreenW, ScreenH float64

	// ZoomStep is the per-tick wheel factor. MinZoom and MaxZoom bound Zoom.
	ZoomStep         float64
	MinZoom, MaxZoom float64
}

// NewViewport returns an identity viewport sized to the screen and centered
// on the canvas point (screenW/2, screenH/2), so canvas and screen
// coordinates coincide.
func NewViewport(screenW, screenH float64) Viewport {
	v := Viewport{
		Zoom:     1,
		ZoomStep: DefaultZoomStep,
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
	}
	v = v.Resize(screenW, screenH)
	v.X = v.Width / 2
	v.Y = v.Height / 2
	return v
}

// Resize records a new screen size, keeping zoom and center.
func (v Viewport) Resize(screenW, screenH float64) Viewport {
	if screenW < 0 || screenH < 0 || !finite(screenW, screenH) {
		return v
	}
	v.ScreenW = screenW
	v.ScreenH = screenH
	return v.settle()
}

// settle recomputes Width and Height from the screen size and Zoom.
func (v Viewport) settle() Viewport {
	v.Width = v.ScreenW * v.Zoom
	v.Height = v.ScreenH * v.Zoom
	return v
}

// Reset restores zoom 1 and the screen-sized region. The canvas point at the
// screen center stays fixed; the top-left corner of the visible region moves.
func (v Viewport) Reset() Viewport {
	v.Zoom = 1
	return v.settle()
}

// Pan moves the viewport by a screen-space pointer delta. The delta is
// scaled by Zoom so the canvas tracks the pointer 1:1 at every zoom level.
func (v Viewport) Pan(dx, dy float64) Viewport {
	if !finite(dx, dy) {
		return v
	}
	v.X -= dx * v.Zoom
	v.Y -= dy * v.Zoom
	return v
}

// WheelZoom applies one wheel tick anchored at the screen point (px, py).
// Negative deltaY zooms in (Zoom / step); positive zooms out (Zoom * step).
func (v Viewport) WheelZoom(deltaY, px, py float64) Viewport {
	step := v.ZoomStep
	if step <= 1 || !finite(step) {
		step = DefaultZoomStep
	}
	switch {
	case deltaY < 0:
		return v.ZoomAt(v.Zoom/step, px, py)
	case deltaY > 0:
		return v.ZoomAt(v.Zoom*step, px, py)
	}
	return v
}

// ZoomAt sets Zoom to newZoom while keeping the canvas point under the screen
// point (ax, ay) fixed. Expressed on the top-left origin, the shift is
// screenW * -(newZoom - oldZoom) * ax/screenW on X, and likewise on Y.
// A zero-size screen or a non-finite result leaves v unchanged.
func (v Viewport) ZoomAt(newZoom, ax, ay float64) Viewport {
	if v.ScreenW <= 0 || v.ScreenH <= 0 {
		return v
	}
	newZoom = v.clampZoom(newZoom)
	if !finite(newZoom, ax, ay) || newZoom <= 0 {
		return v
	}
	dz := newZoom - v.Zoom
	out := v
	out.X -= dz * (ax - v.ScreenW/2)
	out.Y -= dz * (ay - v.ScreenH/2)
	out.Zoom = newZoom
	out = out.settle()
	if !finite(out.X, out.Y, out.Width, out.Height) {
		return v
	}
	return out
}

func (v Viewport) clampZoom(z float64) float64 {
	lo, hi := v.MinZoom, v.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi <= 0 || hi < lo {
		hi = DefaultMaxZoom
	}
	return math.Max(lo, math.Min(z, hi))
}

// Origin returns the canvas point shown at the top-left of the screen.
func (v Viewport) Origin() Vec2 {
	return Vec2{X: v.X - v.Width/2, Y: v.Y - v.Height/2}
}

// VisibleBounds returns the canvas-space rectangle currently on screen.
func (v Viewport) VisibleBounds() Rect {
	o := v.Origin()
	return Rect{X: o.X, Y: o.Y, Width: v.Width, Height: v.Height}
}

// ViewMatrix returns the affine matrix mapping canvas coordinates to screen
// pixels.
//
//	viewMatrix = Scale(1/zoom) * Translate(-origin)
func (v Viewport) ViewMatrix() [6]float64 {
	if v.Zoom <= 0 || !finite(v.Zoom) {
		return identityTransform
	}
	o := v.Origin()
	return scaleTranslate(1/v.Zoom, -o.X, -o.Y)
}

// WorldToScreen converts canvas coordinates to screen coordinates.
func (v Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(v.ViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to canvas coordinates.
func (v Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(invertAffine(v.ViewMatrix()), sx, sy)
}

// WorldRectToScreen maps a canvas-space rectangle to screen space.
func (v Viewport) WorldRectToScreen(r Rect) Rect {
	x0, y0 := v.WorldToScreen(r.X, r.Y)
	x1, y1 := v.WorldToScreen(r.X+r.Width, r.Y+r.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// CenterOn moves the viewport so (x, y) is at the center of the screen.
func (v Viewport) CenterOn(x, y float64) Viewport {
	if !finite(x, y) {
		return v
	}
	v.X = x
	v.Y = y
	return v
}

// withZoom sets Zoom around the current center.
func (v Viewport) withZoom(z float64) Viewport {
	z = v.clampZoom(z)
	if !finite(z) {
		return v
	}
	v.Zoom = z
	return v.settle()
}

// --- Pinch ---

// PinchSession is the snapshot taken when the second pointer goes down.
// Zoom is always computed from this snapshot, never incrementally, so the
// gesture does not drift.
type PinchSession struct {
	StartDistance float64
	Start         Viewport
	// Center is the screen-space midpoint of the two pointers at gesture
	// start. It stays fixed for the whole gesture.
	Center Vec2
}

// BeginPinch snapshots v and the two pointer positions.
func BeginPinch(v Viewport, p0, p1 Vec2) PinchSession {
	return PinchSession{
		StartDistance: Distance(p0, p1),
		Start:         v,
		Center:        Midpoint(p0, p1),
	}
}

// Apply returns the viewport for the current pointer positions. Zoom scales
// inversely with the finger spread and is anchored at the frozen center.
// A degenerate start or current distance returns current unchanged.
func (s PinchSession) Apply(current Viewport, p0, p1 Vec2) Viewport {
	if s.StartDistance < minPinchDistance || !finite(s.StartDistance) {
		return current
	}
	d := Distance(p0, p1)
	if d < minPinchDistance || !finite(d) {
		return current
	}
	newZoom := s.StartDistance / d * s.Start.Zoom
	out := s.Start.ZoomAt(newZoom, s.Center.X, s.Center.Y)
	// Keep any resize that happened mid-gesture.
	if current.ScreenW != s.Start.ScreenW || current.ScreenH != s.Start.ScreenH {
		out = out.Resize(current.ScreenW, current.ScreenH)
	}
	return out
}
