package mindpaper

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Palette colors used by the canvas and the exporters.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Theme is the palette a renderer draws the layer with.
type Theme struct {
	Background Color
	Edge       Color
	NodeFill   Color
	NodeStroke Color
	Selected   Color
	Text       Color
}

// DefaultTheme returns light edges and labels on a dark paper.
func DefaultTheme() Theme {
	return Theme{
		Background: Color{0.12, 0.12, 0.13, 1},
		Edge:       ColorWhite,
		NodeFill:   Color{0.2, 0.2, 0.22, 1},
		NodeStroke: Color{0.55, 0.55, 0.6, 1},
		Selected:   Color{0.36, 0.84, 0.53, 1},
		Text:       ColorWhite,
	}
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("mindpaper: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("mindpaper: invalid hex color %q", s)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// RGBA converts c to a color.RGBA, clamping each component to [0, 1].
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets and pointer coordinates.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// PointerType identifies the device that produced a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota // mouse or trackpad
	PointerTouch                    // finger on a touch screen
	PointerPen                      // stylus
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// PointerEventKind identifies a raw input event delivered to the dispatcher.
type PointerEventKind uint8

const (
	PointerDown        PointerEventKind = iota // a button or finger went down
	PointerMove                                // the pointer moved
	PointerUp                                  // a button or finger was released
	PointerCancel                              // the platform aborted the pointer sequence
	PointerWheel                               // a wheel tick; DeltaY carries the direction
	PointerContextMenu                         // desktop right-click
	PointerDoubleClick                         // desktop double-click
)

// TargetKind classifies what a pointer-down landed on.
type TargetKind uint8

const (
	TargetBackground TargetKind = iota // empty canvas
	TargetNode                         // a mind-map node
	TargetChrome                       // UI chrome (buttons, menus); ignored by the dispatcher
)

// GestureKind is the classification of the current gesture session.
type GestureKind uint8

const (
	GestureNone       GestureKind = iota // no active interaction
	GesturePanning                       // dragging the canvas background
	GesturePinchZoom                     // two pointers zooming the viewport
	GestureNodeDrag                      // dragging a node and its descendants
	GestureTapPending                    // touch held on a node, outcome not yet known
)

var gestureNames = [...]string{"none", "panning", "pinchZoom", "nodeDrag", "tapPending"}

func (k GestureKind) String() string {
	if int(k) < len(gestureNames) {
		return gestureNames[k]
	}
	return "unknown"
}

// EventType identifies a semantic event emitted by the dispatcher.
type EventType uint8

const (
	EventTap           EventType = iota // fires on a plain tap or click on a node
	EventDoubleTap                      // fires on double-tap or double-click on a node
	EventLongPress                      // fires when a touch is held on a node in edit mode
	EventContextMenu                    // fires on right-click on a node in edit mode
	EventNodeDragStart                  // fires when a node drag begins
	EventNodeDragEnd                    // fires when a node drag ends
	EventGestureChange                  // fires when the session kind changes
)

// MenuSource records what opened the node menu.
type MenuSource uint8

const (
	MenuFromContextMenu MenuSource = iota // desktop right-click
	MenuFromLongPress                     // touch long-press
)

func (s MenuSource) String() string {
	if s == MenuFromLongPress {
		return "longtap"
	}
	return "contextmenu"
}
