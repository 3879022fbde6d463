package mindpaper

import (
	"math"
	"time"
)

// --- Constants ---

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

	DefaultDoubleTapWindow = 200 * time.Millisecond
	DefaultLongPressDelay  = 500 * time.Millisecond
	DefaultMoveThreshold   = 10.0 // pixels, per axis
	defaultDragDeadZone    = 4.0  // pixels
)

// GestureConfig holds the dispatcher thresholds.
type GestureConfig struct {
	// DoubleTapWindow is how long after a first tap a second tap on the same
	// node counts as a double tap.
	DoubleTapWindow time.Duration
	// LongPressDelay is how long a touch must be held on a node before the
	// node menu opens.
	LongPressDelay time.Duration
	// MoveThreshold is the per-axis movement in screen pixels that cancels a
	// pending long press.
	MoveThreshold float64
	// DragDeadZone is the movement in screen pixels before a press on a node
	// becomes a drag instead of a tap.
	DragDeadZone float64
}

// DefaultGestureConfig returns the stock thresholds.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		DoubleTapWindow: DefaultDoubleTapWindow,
		LongPressDelay:  DefaultLongPressDelay,
		MoveThreshold:   DefaultMoveThreshold,
		DragDeadZone:    defaultDragDeadZone,
	}
}

func (c GestureConfig) withDefaults() GestureConfig {
	d := DefaultGestureConfig()
	if c.DoubleTapWindow <= 0 {
		c.DoubleTapWindow = d.DoubleTapWindow
	}
	if c.LongPressDelay <= 0 {
		c.LongPressDelay = d.LongPressDelay
	}
	if c.MoveThreshold <= 0 {
		c.MoveThreshold = d.MoveThreshold
	}
	if c.DragDeadZone <= 0 {
		c.DragDeadZone = d.DragDeadZone
	}
	return c
}

// --- Events ---

// Target is what a pointer event landed on.
type Target struct {
	Kind TargetKind
	Node NodeID
}

// BackgroundTarget is the empty canvas.
func BackgroundTarget() Target { return Target{Kind: TargetBackground} }

// NodeTarget is the node with the given id.
func NodeTarget(id NodeID) Target { return Target{Kind: TargetNode, Node: id} }

// ChromeTarget is UI chrome drawn over the canvas.
func ChromeTarget() Target { return Target{Kind: TargetChrome} }

// PointerEvent is one raw input event in screen coordinates.
type PointerEvent struct {
	Kind        PointerEventKind
	PointerID   int
	PointerType PointerType
	// Primary is true for the mouse and for the first finger of a touch
	// sequence.
	Primary bool
	Button  MouseButton
	X, Y    float64
	// DeltaY is the wheel direction for PointerWheel events.
	DeltaY float64
	Target Target
}

// Document is the capability set the dispatcher works against. Every event
// reads the latest tree and viewport through it, never a cached copy.
type Document interface {
	Tree() FlatTree
	SetTree(FlatTree)
	Viewport() Viewport
	SetViewport(Viewport)
	EditMode() bool
}

// GestureContext carries the data of a semantic event.
type GestureContext struct {
	Type        EventType
	Node        NodeID
	HasNode     bool
	PointerID   int
	PointerType PointerType
	// X and Y are screen coordinates of the pointer that produced the event.
	X, Y float64
	// Kind and PrevKind are set for EventGestureChange.
	Kind, PrevKind GestureKind
	// Toggled is set for EventDoubleTap when the node's expanded flag flipped.
	Toggled bool
}

// --- Handler registry ---

const eventTypeCount = int(EventGestureChange) + 1

type gestureHandler struct {
	id uint32
	fn func(GestureContext)
}

type handlerRegistry struct {
	lists  [eventTypeCount][]gestureHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.event) >= eventTypeCount {
		return
	}
	s := h.reg.lists[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			h.reg.lists[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(event EventType, fn func(GestureContext)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.lists[event] = append(r.lists[event], gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: event}
}

func (r *handlerRegistry) fire(ctx GestureContext) {
	list := r.lists[ctx.Type]
	if len(list) == 0 {
		return
	}
	// Handlers may remove themselves while firing.
	snapshot := make([]gestureHandler, len(list))
	copy(snapshot, list)
	for _, h := range snapshot {
		h.fn(ctx)
	}
}

// --- Session ---

type pointerState struct {
	id      int
	ptype   PointerType
	primary bool
	button  MouseButton
	start   Vec2
	last    Vec2
}

// Session is the record of one continuous pointer interaction. It is created
// on the first pointer-down and dropped when the last pointer lifts or the
// sequence is cancelled.
type Session struct {
	Kind GestureKind

	pointers []pointerState
	target   Target

	// Node drag: the node and the descendants captured at pointer-down.
	node      NodeID
	carried   []NodeID
	dragArmed bool
	dragging  bool
	moved     bool

	// resolved is set once a long press or double tap consumed the press,
	// so the release is not also reported as a tap.
	resolved bool

	pinch     PinchSession
	longPress TimerHandle
}

func (s *Session) pointer(id int) *pointerState {
	for i := range s.pointers {
		if s.pointers[i].id == id {
			return &s.pointers[i]
		}
	}
	return nil
}

func (s *Session) removePointer(id int) {
	for i := range s.pointers {
		if s.pointers[i].id == id {
			s.pointers = append(s.pointers[:i], s.pointers[i+1:]...)
			return
		}
	}
}

// --- Dispatcher ---

// Dispatcher classifies raw pointer events into pan, pinch-zoom, node drag,
// tap, double tap, long press and context menu, and applies viewport and
// tree updates through its Document.
type Dispatcher struct {
	doc    Document
	timers *TimerQueue
	cfg    GestureConfig

	session *Session

	// The double-tap window outlives the first tap's session.
	firstTapArmed bool
	firstTapNode  NodeID
	firstTapTimer TimerHandle

	handlers handlerRegistry
	closed   bool

	logf func(format string, args ...any)
}

// NewDispatcher creates a dispatcher. Timers are scheduled on timers, which
// the owner advances.
func NewDispatcher(doc Document, timers *TimerQueue, cfg GestureConfig) *Dispatcher {
	return &Dispatcher{
		doc:    doc,
		timers: timers,
		cfg:    cfg.withDefaults(),
		logf:   func(string, ...any) {},
	}
}

// Config returns the thresholds in effect.
func (d *Dispatcher) Config() GestureConfig { return d.cfg }

// State returns the kind of the current session.
func (d *Dispatcher) State() GestureKind {
	if d.session == nil {
		return GestureNone
	}
	return d.session.Kind
}

// CarriedNodes returns the nodes moved by the current drag: the pressed node
// followed by the descendants captured at pointer-down.
func (d *Dispatcher) CarriedNodes() []NodeID {
	s := d.session
	if s == nil || !s.dragArmed {
		return nil
	}
	out := make([]NodeID, 0, len(s.carried)+1)
	out = append(out, s.node)
	return append(out, s.carried...)
}

// LongPressPending reports whether a long-press timer is armed.
func (d *Dispatcher) LongPressPending() bool {
	return d.session != nil && d.session.longPress != 0
}

// DoubleTapArmed reports whether a first tap is waiting for its second.
func (d *Dispatcher) DoubleTapArmed() bool { return d.firstTapArmed }

// On registers fn for the given event type.
func (d *Dispatcher) On(event EventType, fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(event, fn)
}

// OnTap registers a callback for plain taps and clicks on a node.
func (d *Dispatcher) OnTap(fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(EventTap, fn)
}

// OnDoubleTap registers a callback for double taps and double clicks on a node.
func (d *Dispatcher) OnDoubleTap(fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(EventDoubleTap, fn)
}

// OnLongPress registers a callback for touch long presses on a node.
func (d *Dispatcher) OnLongPress(fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(EventLongPress, fn)
}

// OnContextMenu registers a callback for right clicks on a node.
func (d *Dispatcher) OnContextMenu(fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(EventContextMenu, fn)
}

// OnNodeDragStart registers a callback fired when a node drag begins.
func (d *Dispatcher) OnNodeDragStart(fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(EventNodeDragStart, fn)
}

// OnNodeDragEnd registers a callback fired when a node drag ends.
func (d *Dispatcher) OnNodeDragEnd(fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(EventNodeDragEnd, fn)
}

// OnGestureChange registers a callback fired whenever the session kind
// changes.
func (d *Dispatcher) OnGestureChange(fn func(GestureContext)) CallbackHandle {
	return d.handlers.add(EventGestureChange, fn)
}

// Close clears every timer and drops the session. Later events are ignored.
func (d *Dispatcher) Close() {
	if d.session != nil {
		d.cancelLongPress(d.session)
		d.session = nil
	}
	d.clearFirstTap()
	d.closed = true
}

// reset drops the session and its timers without closing the dispatcher.
// Pointers still held from the dropped session are ignored until released.
func (d *Dispatcher) reset() {
	if s := d.session; s != nil {
		d.cancelLongPress(s)
		d.session = nil
	}
	d.clearFirstTap()
}

// Handle processes one raw event.
func (d *Dispatcher) Handle(ev PointerEvent) {
	if d.closed || ev.PointerID < 0 || ev.PointerID >= maxPointers {
		return
	}
	switch ev.Kind {
	case PointerDown:
		d.pointerDown(ev)
	case PointerMove:
		d.pointerMove(ev)
	case PointerUp:
		d.pointerUp(ev)
	case PointerCancel:
		d.pointerCancel(ev)
	case PointerWheel:
		d.wheel(ev)
	case PointerContextMenu:
		d.contextMenu(ev)
	case PointerDoubleClick:
		d.doubleClick(ev)
	}
}

// --- Transitions ---

func (d *Dispatcher) setKind(k GestureKind) {
	s := d.session
	if s == nil || s.Kind == k {
		return
	}
	prev := s.Kind
	s.Kind = k
	d.logf("gesture %s -> %s", prev, k)
	d.handlers.fire(GestureContext{Type: EventGestureChange, Kind: k, PrevKind: prev})
}

func (d *Dispatcher) endSession() {
	s := d.session
	if s == nil {
		return
	}
	d.cancelLongPress(s)
	d.setKind(GestureNone)
	d.session = nil
}

func (d *Dispatcher) pointerDown(ev PointerEvent) {
	pos := Vec2{X: ev.X, Y: ev.Y}
	if s := d.session; s != nil {
		if s.Kind != GestureNone {
			if s.pointer(ev.PointerID) != nil || s.Kind == GesturePinchZoom || ev.Primary || len(s.pointers) != 1 {
				return
			}
			d.beginPinch(s, ev)
			return
		}
		// A finger left over from an ended pinch does not block a fresh
		// gesture.
		d.endSession()
	}

	if ev.Target.Kind == TargetChrome {
		return
	}
	if ev.PointerType == PointerMouse && ev.Button != MouseButtonLeft {
		return
	}

	s := &Session{
		pointers: []pointerState{{
			id: ev.PointerID, ptype: ev.PointerType, primary: ev.Primary,
			button: ev.Button, start: pos, last: pos,
		}},
		target: ev.Target,
	}

	switch ev.Target.Kind {
	case TargetBackground:
		if !ev.Primary {
			return
		}
		d.session = s
		d.setKind(GesturePanning)
	case TargetNode:
		d.nodeDown(s, ev)
	}
}

func (d *Dispatcher) nodeDown(s *Session, ev PointerEvent) {
	id := ev.Target.Node
	tree := d.doc.Tree()
	if !tree.Contains(id) {
		return
	}
	d.session = s
	s.node = id

	edit := d.doc.EditMode()
	if edit {
		// Captured now so the carried set stays fixed for the whole drag.
		s.dragArmed = true
		s.carried = tree.DescendantIDs(id)
	}

	if ev.PointerType == PointerMouse {
		if edit {
			d.setKind(GestureNodeDrag)
		} else {
			d.setKind(GestureTapPending)
		}
		return
	}

	d.setKind(GestureTapPending)
	if d.firstTapArmed && d.firstTapNode == id {
		d.clearFirstTap()
		s.resolved = true
		d.toggle(id, ev)
		return
	}
	d.armFirstTap(id)

	if edit && ev.Primary {
		s.longPress = d.timers.Schedule(d.cfg.LongPressDelay, func() {
			d.fireLongPress(s, ev)
		})
	}
}

func (d *Dispatcher) beginPinch(s *Session, ev PointerEvent) {
	d.cancelLongPress(s)
	d.clearFirstTap()
	if s.dragging {
		s.dragging = false
		d.fireNode(EventNodeDragEnd, s.node, ev)
	}
	s.dragArmed = false
	s.resolved = true

	pos := Vec2{X: ev.X, Y: ev.Y}
	first := s.pointers[0].last
	s.pointers = append(s.pointers, pointerState{
		id: ev.PointerID, ptype: ev.PointerType, primary: ev.Primary,
		button: ev.Button, start: pos, last: pos,
	})
	s.pinch = BeginPinch(d.doc.Viewport(), first, pos)
	d.setKind(GesturePinchZoom)
}

func (d *Dispatcher) pointerMove(ev PointerEvent) {
	s := d.session
	if s == nil {
		return
	}
	ps := s.pointer(ev.PointerID)
	if ps == nil {
		return
	}
	pos := Vec2{X: ev.X, Y: ev.Y}
	prev := ps.last
	ps.last = pos

	switch s.Kind {
	case GesturePanning:
		d.doc.SetViewport(d.doc.Viewport().Pan(pos.X-prev.X, pos.Y-prev.Y))
	case GesturePinchZoom:
		if len(s.pointers) == 2 {
			vp := s.pinch.Apply(d.doc.Viewport(), s.pointers[0].last, s.pointers[1].last)
			d.doc.SetViewport(vp)
		}
	case GestureNodeDrag, GestureTapPending:
		d.nodeMove(s, ps, prev, pos, ev)
	}
}

func (d *Dispatcher) nodeMove(s *Session, ps *pointerState, prev, pos Vec2, ev PointerEvent) {
	if s.longPress != 0 {
		if math.Abs(pos.X-ps.start.X) > d.cfg.MoveThreshold || math.Abs(pos.Y-ps.start.Y) > d.cfg.MoveThreshold {
			d.cancelLongPress(s)
		}
	}

	crossed := false
	if !s.moved && Distance(ps.start, pos) > d.cfg.DragDeadZone {
		s.moved = true
		crossed = true
		if d.firstTapArmed && d.firstTapNode == s.node {
			d.clearFirstTap()
		}
	}
	if !s.moved || !s.dragArmed || !d.doc.EditMode() {
		return
	}

	dx, dy := pos.X-prev.X, pos.Y-prev.Y
	if crossed {
		// Movement inside the dead zone is applied when the drag starts.
		dx, dy = pos.X-ps.start.X, pos.Y-ps.start.Y
	}
	if !s.dragging {
		s.dragging = true
		d.setKind(GestureNodeDrag)
		d.fireNode(EventNodeDragStart, s.node, ev)
	}

	zoom := d.doc.Viewport().Zoom
	ids := make([]NodeID, 0, len(s.carried)+1)
	ids = append(ids, s.node)
	ids = append(ids, s.carried...)
	d.doc.SetTree(d.doc.Tree().MoveNodes(ids, dx*zoom, dy*zoom))
}

func (d *Dispatcher) pointerUp(ev PointerEvent) {
	s := d.session
	if s == nil || s.pointer(ev.PointerID) == nil {
		return
	}
	d.cancelLongPress(s)

	switch s.Kind {
	case GesturePinchZoom:
		// Lifting either finger ends the pinch. The other finger is ignored
		// until it lifts or a new gesture starts.
		s.removePointer(ev.PointerID)
		d.setKind(GestureNone)
		if len(s.pointers) == 0 {
			d.session = nil
		}
		return
	case GestureNodeDrag, GestureTapPending:
		switch {
		case s.dragging:
			s.dragging = false
			d.fireNode(EventNodeDragEnd, s.node, ev)
		case !s.moved && !s.resolved:
			d.fireNode(EventTap, s.node, ev)
		}
	}

	s.removePointer(ev.PointerID)
	if len(s.pointers) == 0 {
		d.endSession()
	}
}

func (d *Dispatcher) pointerCancel(ev PointerEvent) {
	s := d.session
	if s == nil || s.pointer(ev.PointerID) == nil {
		return
	}
	d.cancelLongPress(s)
	d.clearFirstTap()
	if s.dragging {
		s.dragging = false
		d.fireNode(EventNodeDragEnd, s.node, ev)
	}
	d.endSession()
}

func (d *Dispatcher) wheel(ev PointerEvent) {
	if ev.Target.Kind == TargetChrome || ev.DeltaY == 0 {
		return
	}
	d.doc.SetViewport(d.doc.Viewport().WheelZoom(ev.DeltaY, ev.X, ev.Y))
}

func (d *Dispatcher) contextMenu(ev PointerEvent) {
	if ev.Target.Kind != TargetNode || !d.doc.EditMode() {
		return
	}
	if !d.doc.Tree().Contains(ev.Target.Node) {
		return
	}
	d.fireNode(EventContextMenu, ev.Target.Node, ev)
}

func (d *Dispatcher) doubleClick(ev PointerEvent) {
	if ev.Target.Kind != TargetNode {
		return
	}
	d.toggle(ev.Target.Node, ev)
}

// toggle flips a node's expanded flag when it has children and reports the
// double tap.
func (d *Dispatcher) toggle(id NodeID, ev PointerEvent) {
	tree := d.doc.Tree()
	if !tree.Contains(id) {
		return
	}
	toggled := false
	if tree.HasChildren(id) {
		d.doc.SetTree(tree.ToggleExpanded(id))
		toggled = true
	}
	ctx := d.nodeContext(EventDoubleTap, id, ev)
	ctx.Toggled = toggled
	d.handlers.fire(ctx)
}

// --- Timers ---

func (d *Dispatcher) fireLongPress(s *Session, ev PointerEvent) {
	if d.session != s || s.longPress == 0 {
		return
	}
	s.longPress = 0
	if !d.doc.EditMode() || !d.doc.Tree().Contains(s.node) {
		return
	}
	s.resolved = true
	d.logf("long press on node %d", s.node)
	d.fireNode(EventLongPress, s.node, ev)
}

func (d *Dispatcher) cancelLongPress(s *Session) {
	if s.longPress != 0 {
		d.timers.Cancel(s.longPress)
		s.longPress = 0
	}
}

func (d *Dispatcher) armFirstTap(id NodeID) {
	d.clearFirstTap()
	d.firstTapArmed = true
	d.firstTapNode = id
	d.firstTapTimer = d.timers.Schedule(d.cfg.DoubleTapWindow, func() {
		d.firstTapArmed = false
		d.firstTapTimer = 0
	})
}

func (d *Dispatcher) clearFirstTap() {
	if d.firstTapTimer != 0 {
		d.timers.Cancel(d.firstTapTimer)
		d.firstTapTimer = 0
	}
	d.firstTapArmed = false
}

// --- Event dispatch ---

func (d *Dispatcher) nodeContext(t EventType, id NodeID, ev PointerEvent) GestureContext {
	return GestureContext{
		Type:        t,
		Node:        id,
		HasNode:     true,
		PointerID:   ev.PointerID,
		PointerType: ev.PointerType,
		X:           ev.X,
		Y:           ev.Y,
	}
}

func (d *Dispatcher) fireNode(t EventType, id NodeID, ev PointerEvent) {
	d.handlers.fire(d.nodeContext(t, id, ev))
}
