package mindpaper

// inject queues one pointer event. Screen coordinates are used and the
// target is hit-tested when the event is consumed, like real input, so
// earlier injected events can change what a later one lands on.
func (e *Editor) inject(ev PointerEvent) {
	e.injectQueue = append(e.injectQueue, ev)
}

// InjectPress queues a primary press at the given screen coordinates. The
// event is consumed on the next Update.
func (e *Editor) InjectPress(ptype PointerType, x, y float64) {
	e.inject(PointerEvent{Kind: PointerDown, PointerType: ptype, Primary: true, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectMove queues a move of the primary pointer.
func (e *Editor) InjectMove(ptype PointerType, x, y float64) {
	e.inject(PointerEvent{Kind: PointerMove, PointerType: ptype, Primary: true, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectRelease queues a release of the primary pointer.
func (e *Editor) InjectRelease(ptype PointerType, x, y float64) {
	e.inject(PointerEvent{Kind: PointerUp, PointerType: ptype, Primary: true, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectTap queues a press followed by a release at the same point. Consumes
// two frames.
func (e *Editor) InjectTap(ptype PointerType, x, y float64) {
	e.InjectPress(ptype, x, y)
	e.InjectRelease(ptype, x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// ending on (toX, toY), and a release there. With fewer than 3 frames a
// single move is queued, so the sequence is never shorter than 3 events.
func (e *Editor) InjectDrag(ptype PointerType, fromX, fromY, toX, toY float64, frames int) {
	steps := frames - 2
	if steps < 1 {
		steps = 1
	}
	e.InjectPress(ptype, fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		e.InjectMove(ptype, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(ptype, toX, toY)
}

// InjectPinch queues a two-finger pinch centered on (cx, cy). The fingers
// start startDist apart on a horizontal line and end endDist apart after
// frames interpolated moves of the second finger.
func (e *Editor) InjectPinch(cx, cy, startDist, endDist float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	h := startDist / 2
	e.inject(PointerEvent{Kind: PointerDown, PointerID: 1, PointerType: PointerTouch, Primary: true, X: cx - h, Y: cy})
	e.inject(PointerEvent{Kind: PointerDown, PointerID: 2, PointerType: PointerTouch, X: cx + h, Y: cy})
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		d := startDist + (endDist-startDist)*t
		e.inject(PointerEvent{Kind: PointerMove, PointerID: 2, PointerType: PointerTouch, X: cx - h + d, Y: cy})
	}
	end := cx - h + endDist
	e.inject(PointerEvent{Kind: PointerUp, PointerID: 2, PointerType: PointerTouch, X: end, Y: cy})
	e.inject(PointerEvent{Kind: PointerUp, PointerID: 1, PointerType: PointerTouch, Primary: true, X: cx - h, Y: cy})
}

// InjectWheel queues one wheel step at the given screen point. Negative
// deltaY zooms in.
func (e *Editor) InjectWheel(x, y, deltaY float64) {
	e.inject(PointerEvent{Kind: PointerWheel, PointerType: PointerMouse, Primary: true, X: x, Y: y, DeltaY: deltaY})
}

// InjectDoubleClick queues a mouse double click.
func (e *Editor) InjectDoubleClick(x, y float64) {
	e.inject(PointerEvent{Kind: PointerDoubleClick, PointerType: PointerMouse, Primary: true, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectContextMenu queues a right click.
func (e *Editor) InjectContextMenu(x, y float64) {
	e.inject(PointerEvent{Kind: PointerContextMenu, PointerType: PointerMouse, Primary: true, Button: MouseButtonRight, X: x, Y: y})
}

// PendingInjections returns the number of queued synthetic events.
func (e *Editor) PendingInjections() int { return len(e.injectQueue) }

// processInjectedInput pops one event, hit-tests it and feeds it through
// HandlePointer. Returns true if an event was consumed.
func (e *Editor) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	ev.Target = e.HitTest(ev.X, ev.Y)
	e.HandlePointer(ev)
	return true
}
