package canvas

import (
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/mindpaper"
)

const (
	mousePointerID = 0
	// Touches take pointer slots 1..maxTouchSlot; extra fingers are ignored.
	maxTouchSlot = 9

	doubleClickWindow = 400 * time.Millisecond
	doubleClickSlop   = 4.0
)

// touchPoint is one finger as seen in a single tick.
type touchPoint struct {
	ID   int
	X, Y float64
}

// frameInput is the raw device state sampled once per tick.
type frameInput struct {
	Now          time.Time
	MouseX       float64
	MouseY       float64
	Left         bool
	RightPressed bool // went down this tick
	WheelY       float64
	Touches      []touchPoint
}

// readFrame samples Ebitengine's input state.
func readFrame(now time.Time, touchBuf []ebiten.TouchID) (frameInput, []ebiten.TouchID) {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in := frameInput{
		Now:          now,
		MouseX:       float64(mx),
		MouseY:       float64(my),
		Left:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		RightPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		WheelY:       wy,
	}
	touchBuf = ebiten.AppendTouchIDs(touchBuf[:0])
	for _, id := range touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		in.Touches = append(in.Touches, touchPoint{ID: int(id), X: float64(tx), Y: float64(ty)})
	}
	return in, touchBuf
}

type activeTouch struct {
	slot    int
	x, y    float64
	primary bool
}

// translator turns per-tick device state into pointer events. It tracks the
// previous tick to find presses, moves and releases, and pairs mouse clicks
// into double clicks.
type translator struct {
	leftDown     bool
	lastX, lastY float64
	touches      map[int]activeTouch
	lastClick    time.Time
	lastClickX   float64
	lastClickY   float64
	events       []mindpaper.PointerEvent
}

func newTranslator() *translator {
	return &translator{touches: make(map[int]activeTouch)}
}

// translate returns the events for this tick. Targets are left for the
// caller to resolve. The returned slice is reused on the next call.
func (t *translator) translate(in frameInput) []mindpaper.PointerEvent {
	t.events = t.events[:0]
	t.mouse(in)
	t.touch(in)
	return t.events
}

func (t *translator) mouseEvent(kind mindpaper.PointerEventKind, x, y float64) mindpaper.PointerEvent {
	return mindpaper.PointerEvent{
		Kind:        kind,
		PointerID:   mousePointerID,
		PointerType: mindpaper.PointerMouse,
		Primary:     true,
		Button:      mindpaper.MouseButtonLeft,
		X:           x,
		Y:           y,
	}
}

func (t *translator) mouse(in frameInput) {
	x, y := in.MouseX, in.MouseY
	// Touch screens also report a cursor; ignore it while fingers are down.
	if len(in.Touches) > 0 || len(t.touches) > 0 {
		t.lastX, t.lastY = x, y
		return
	}

	moved := x != t.lastX || y != t.lastY
	switch {
	case in.Left && !t.leftDown:
		t.events = append(t.events, t.mouseEvent(mindpaper.PointerDown, x, y))
	case in.Left && moved:
		t.events = append(t.events, t.mouseEvent(mindpaper.PointerMove, x, y))
	case !in.Left && t.leftDown:
		t.events = append(t.events, t.mouseEvent(mindpaper.PointerUp, x, y))
		t.click(in.Now, x, y)
	}
	t.leftDown = in.Left
	t.lastX, t.lastY = x, y

	if in.RightPressed {
		ev := t.mouseEvent(mindpaper.PointerContextMenu, x, y)
		ev.Button = mindpaper.MouseButtonRight
		t.events = append(t.events, ev)
	}
	if in.WheelY != 0 {
		// Ebitengine reports scrolling up as positive; wheel zoom expects
		// the browser sign, where scrolling down is positive.
		ev := t.mouseEvent(mindpaper.PointerWheel, x, y)
		ev.DeltaY = -in.WheelY
		t.events = append(t.events, ev)
	}
}

func (t *translator) click(now time.Time, x, y float64) {
	if !t.lastClick.IsZero() && now.Sub(t.lastClick) <= doubleClickWindow &&
		math.Abs(x-t.lastClickX) <= doubleClickSlop && math.Abs(y-t.lastClickY) <= doubleClickSlop {
		t.events = append(t.events, t.mouseEvent(mindpaper.PointerDoubleClick, x, y))
		t.lastClick = time.Time{}
		return
	}
	t.lastClick = now
	t.lastClickX, t.lastClickY = x, y
}

func (t *translator) touch(in frameInput) {
	seen := make(map[int]bool, len(in.Touches))
	for _, p := range in.Touches {
		seen[p.ID] = true
		prev, ok := t.touches[p.ID]
		if !ok {
			slot := t.freeSlot()
			if slot == 0 {
				continue
			}
			primary := len(t.touches) == 0
			t.touches[p.ID] = activeTouch{slot: slot, x: p.X, y: p.Y, primary: primary}
			t.events = append(t.events, touchEvent(mindpaper.PointerDown, slot, p.X, p.Y, primary))
			continue
		}
		if prev.x != p.X || prev.y != p.Y {
			prev.x, prev.y = p.X, p.Y
			t.touches[p.ID] = prev
			t.events = append(t.events, touchEvent(mindpaper.PointerMove, prev.slot, p.X, p.Y, prev.primary))
		}
	}
	var lifted []int
	for id := range t.touches {
		if !seen[id] {
			lifted = append(lifted, id)
		}
	}
	slices.Sort(lifted)
	for _, id := range lifted {
		prev := t.touches[id]
		delete(t.touches, id)
		t.events = append(t.events, touchEvent(mindpaper.PointerUp, prev.slot, prev.x, prev.y, prev.primary))
	}
}

// freeSlot returns the lowest unused touch slot, or 0 when all are taken.
func (t *translator) freeSlot() int {
	used := make([]bool, maxTouchSlot+1)
	for _, a := range t.touches {
		used[a.slot] = true
	}
	for slot := 1; slot <= maxTouchSlot; slot++ {
		if !used[slot] {
			return slot
		}
	}
	return 0
}

func touchEvent(kind mindpaper.PointerEventKind, slot int, x, y float64, primary bool) mindpaper.PointerEvent {
	return mindpaper.PointerEvent{
		Kind:        kind,
		PointerID:   slot,
		PointerType: mindpaper.PointerTouch,
		Primary:     primary,
		Button:      mindpaper.MouseButtonLeft,
		X:           x,
		Y:           y,
	}
}
