package canvas

import (
	"testing"
	"time"

	"github.com/phanxgames/mindpaper"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func kinds(evs []mindpaper.PointerEvent) []mindpaper.PointerEventKind {
	out := make([]mindpaper.PointerEventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func sameKinds(a, b []mindpaper.PointerEventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTranslateMousePressMoveRelease(t *testing.T) {
	tr := newTranslator()
	frames := []struct {
		in   frameInput
		want []mindpaper.PointerEventKind
	}{
		{frameInput{Now: t0, MouseX: 10, MouseY: 10}, nil},
		{frameInput{Now: t0, MouseX: 10, MouseY: 10, Left: true}, []mindpaper.PointerEventKind{mindpaper.PointerDown}},
		{frameInput{Now: t0, MouseX: 10, MouseY: 10, Left: true}, nil},
		{frameInput{Now: t0, MouseX: 30, MouseY: 12, Left: true}, []mindpaper.PointerEventKind{mindpaper.PointerMove}},
		{frameInput{Now: t0, MouseX: 30, MouseY: 12}, []mindpaper.PointerEventKind{mindpaper.PointerUp}},
		{frameInput{Now: t0, MouseX: 50, MouseY: 50}, nil},
	}
	for i, f := range frames {
		got := tr.translate(f.in)
		if !sameKinds(kinds(got), f.want) {
			t.Errorf("frame %d: kinds = %v, want %v", i, kinds(got), f.want)
		}
		for _, ev := range got {
			if ev.PointerType != mindpaper.PointerMouse || !ev.Primary || ev.PointerID != mousePointerID {
				t.Errorf("frame %d: event %+v is not a primary mouse event", i, ev)
			}
		}
	}
}

func click(tr *translator, at time.Time, x, y float64) []mindpaper.PointerEvent {
	tr.translate(frameInput{Now: at, MouseX: x, MouseY: y, Left: true})
	return append([]mindpaper.PointerEvent(nil), tr.translate(frameInput{Now: at, MouseX: x, MouseY: y})...)
}

func TestTranslateDoubleClick(t *testing.T) {
	tests := []struct {
		name   string
		gap    time.Duration
		dx     float64
		double bool
	}{
		{"quick and still", 150 * time.Millisecond, 0, true},
		{"small jitter", 150 * time.Millisecond, 3, true},
		{"too slow", 500 * time.Millisecond, 0, false},
		{"moved away", 150 * time.Millisecond, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTranslator()
			click(tr, t0, 100, 100)
			evs := click(tr, t0.Add(tt.gap), 100+tt.dx, 100)
			got := len(evs) == 2 && evs[1].Kind == mindpaper.PointerDoubleClick
			if got != tt.double {
				t.Errorf("second click events = %v, double = %v, want %v", kinds(evs), got, tt.double)
			}
		})
	}
}

func TestTranslateTripleClickIsOneDouble(t *testing.T) {
	tr := newTranslator()
	click(tr, t0, 5, 5)
	click(tr, t0.Add(100*time.Millisecond), 5, 5)
	evs := click(tr, t0.Add(200*time.Millisecond), 5, 5)
	if len(evs) != 1 {
		t.Errorf("third click events = %v, want only the release", kinds(evs))
	}
}

func TestTranslateRightClickAndWheel(t *testing.T) {
	tr := newTranslator()
	evs := tr.translate(frameInput{Now: t0, MouseX: 40, MouseY: 60, RightPressed: true, WheelY: 1})
	if !sameKinds(kinds(evs), []mindpaper.PointerEventKind{mindpaper.PointerContextMenu, mindpaper.PointerWheel}) {
		t.Fatalf("kinds = %v", kinds(evs))
	}
	if evs[0].Button != mindpaper.MouseButtonRight {
		t.Errorf("context menu button = %v, want right", evs[0].Button)
	}
	if evs[1].DeltaY != -1 {
		t.Errorf("wheel DeltaY = %v, want -1 for scrolling up", evs[1].DeltaY)
	}
}

func TestTranslateTouches(t *testing.T) {
	tr := newTranslator()

	evs := tr.translate(frameInput{Now: t0, Touches: []touchPoint{{ID: 7, X: 100, Y: 100}}})
	if len(evs) != 1 || evs[0].Kind != mindpaper.PointerDown || !evs[0].Primary {
		t.Fatalf("first finger = %+v", evs)
	}
	if evs[0].PointerID != 1 || evs[0].PointerType != mindpaper.PointerTouch {
		t.Errorf("first finger id/type = %d/%v, want slot 1", evs[0].PointerID, evs[0].PointerType)
	}

	evs = tr.translate(frameInput{Now: t0, Touches: []touchPoint{{ID: 7, X: 100, Y: 100}, {ID: 8, X: 200, Y: 100}}})
	if len(evs) != 1 || evs[0].Kind != mindpaper.PointerDown || evs[0].Primary || evs[0].PointerID != 2 {
		t.Fatalf("second finger = %+v, want a non-primary down in slot 2", evs)
	}

	evs = tr.translate(frameInput{Now: t0, Touches: []touchPoint{{ID: 7, X: 100, Y: 100}, {ID: 8, X: 250, Y: 100}}})
	if len(evs) != 1 || evs[0].Kind != mindpaper.PointerMove || evs[0].X != 250 {
		t.Fatalf("move = %+v", evs)
	}

	evs = tr.translate(frameInput{Now: t0})
	if !sameKinds(kinds(evs), []mindpaper.PointerEventKind{mindpaper.PointerUp, mindpaper.PointerUp}) {
		t.Fatalf("lift = %v", kinds(evs))
	}
	if evs[0].PointerID != 1 || evs[1].PointerID != 2 || evs[1].X != 250 {
		t.Errorf("ups = %+v, want id order and last positions", evs)
	}
}

func TestTranslateIgnoresCursorDuringTouch(t *testing.T) {
	tr := newTranslator()
	evs := tr.translate(frameInput{Now: t0, MouseX: 100, MouseY: 100, Left: true, Touches: []touchPoint{{ID: 1, X: 100, Y: 100}}})
	for _, ev := range evs {
		if ev.PointerType == mindpaper.PointerMouse {
			t.Errorf("mouse event %+v emitted during touch", ev)
		}
	}
}

func TestTranslateTouchSlots(t *testing.T) {
	tr := newTranslator()
	var fingers []touchPoint
	for i := 0; i < maxTouchSlot+2; i++ {
		fingers = append(fingers, touchPoint{ID: 50 + i, X: float64(i), Y: 0})
	}
	evs := tr.translate(frameInput{Now: t0, Touches: fingers})
	if len(evs) != maxTouchSlot {
		t.Fatalf("downs = %d, want %d", len(evs), maxTouchSlot)
	}
	for i, ev := range evs {
		if ev.PointerID != i+1 {
			t.Errorf("finger %d slot = %d, want %d", i, ev.PointerID, i+1)
		}
	}

	// Lifting the first finger frees slot 1 for the next new one.
	tr.translate(frameInput{Now: t0, Touches: fingers[1:maxTouchSlot]})
	evs = tr.translate(frameInput{Now: t0, Touches: append(fingers[1:maxTouchSlot:maxTouchSlot], touchPoint{ID: 99})})
	if len(evs) != 1 || evs[0].PointerID != 1 {
		t.Errorf("reused slot events = %+v, want one down in slot 1", evs)
	}
}
