package mindpaper

import (
	"errors"
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// menuOffset is the gap between a node's right edge and its menu.
const menuOffset = 12.0

// EditorConfig configures a new Editor.
type EditorConfig struct {
	ScreenW, ScreenH float64
	Gesture          GestureConfig
	ZoomStep         float64
	MinZoom, MaxZoom float64
	// Measurer sizes label boxes for hit testing and drawing. Defaults to a
	// FixedMeasurer of 7x13 cells.
	Measurer Measurer
	// Now is the start time of the editor's timer queue.
	Now time.Time
}

// MenuState is the node menu as presented to the user.
type MenuState struct {
	Open   bool
	Node   NodeID
	Source MenuSource
	// Origin is the node's label box in screen space.
	Origin Rect
	// Position is the menu's top-left corner in screen space.
	Position Vec2
}

// MenuRequest is delivered to OnMenu callbacks when a node asks for its menu.
type MenuRequest struct {
	Node   NodeID
	Origin Rect
	Source MenuSource
}

// Editor owns one editing session: the tree, the viewport, edit mode, the
// selection and menu, and the gesture dispatcher that feeds them. All
// methods must be called from the same goroutine.
type Editor struct {
	tree     FlatTree
	viewport Viewport
	ids      *IDGenerator
	measurer Measurer

	editMode       bool
	selected       NodeID
	hasSelection   bool
	menu           MenuState
	choosingParent bool

	timers     *TimerQueue
	dispatcher *Dispatcher
	tween      *viewportTween

	injectQueue []PointerEvent
	testRunner  *TestRunner

	messages []string
	onMenu   []func(MenuRequest)
	onChange []func(FlatTree)

	debug bool
}

// NewEditor creates an editor for tree sized to the given screen.
func NewEditor(tree FlatTree, cfg EditorConfig) *Editor {
	if cfg.Measurer == nil {
		cfg.Measurer = FixedMeasurer{CharWidth: 7, LineHeight: 13}
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	vp := NewViewport(cfg.ScreenW, cfg.ScreenH)
	if cfg.ZoomStep > 1 {
		vp.ZoomStep = cfg.ZoomStep
	}
	if cfg.MinZoom > 0 {
		vp.MinZoom = cfg.MinZoom
	}
	if cfg.MaxZoom > 0 {
		vp.MaxZoom = cfg.MaxZoom
	}

	e := &Editor{
		tree:     tree,
		viewport: vp,
		ids:      NewIDGenerator(tree),
		measurer: cfg.Measurer,
		timers:   NewTimerQueue(cfg.Now),
	}
	e.dispatcher = NewDispatcher(e, e.timers, cfg.Gesture)
	e.dispatcher.logf = e.debugf
	e.dispatcher.OnTap(e.handleTap)
	e.dispatcher.OnLongPress(func(ctx GestureContext) {
		e.OpenMenu(ctx.Node, MenuFromLongPress)
	})
	e.dispatcher.OnContextMenu(func(ctx GestureContext) {
		e.OpenMenu(ctx.Node, MenuFromContextMenu)
	})
	return e
}

// --- Document ---

// Tree returns the current tree snapshot.
func (e *Editor) Tree() FlatTree { return e.tree }

// SetTree replaces the tree. A selection pointing at a removed node is
// dropped.
func (e *Editor) SetTree(t FlatTree) {
	e.tree = t
	if e.hasSelection && !t.Contains(e.selected) {
		e.hasSelection = false
		e.menu = MenuState{}
		e.choosingParent = false
	}
	if e.debug {
		debugCheckTree(t)
	}
	for _, fn := range e.onChange {
		fn(t)
	}
}

// Viewport returns the current viewport.
func (e *Editor) Viewport() Viewport { return e.viewport }

// SetViewport replaces the viewport.
func (e *Editor) SetViewport(v Viewport) { e.viewport = v }

// EditMode reports whether editing is enabled.
func (e *Editor) EditMode() bool { return e.editMode }

// --- Accessors ---

// Dispatcher returns the gesture dispatcher.
func (e *Editor) Dispatcher() *Dispatcher { return e.dispatcher }

// Timers returns the timer queue driven by Update.
func (e *Editor) Timers() *TimerQueue { return e.timers }

// Measurer returns the label measurer.
func (e *Editor) Measurer() Measurer { return e.measurer }

// Selected returns the selected node.
func (e *Editor) Selected() (NodeID, bool) { return e.selected, e.hasSelection }

// Menu returns the menu state.
func (e *Editor) Menu() MenuState { return e.menu }

// ChoosingParent reports whether the next tap on a node picks the new parent
// of the selected node.
func (e *Editor) ChoosingParent() bool { return e.choosingParent }

// SetDebugMode enables debug logging and tree consistency checks.
func (e *Editor) SetDebugMode(on bool) { e.debug = on }

// OnMenu registers a callback fired when a node menu opens.
func (e *Editor) OnMenu(fn func(MenuRequest)) { e.onMenu = append(e.onMenu, fn) }

// OnChange registers a callback fired after every tree replacement.
func (e *Editor) OnChange(fn func(FlatTree)) { e.onChange = append(e.onChange, fn) }

// --- Frame loop ---

// Resize updates the screen size.
func (e *Editor) Resize(screenW, screenH float64) {
	e.viewport = e.viewport.Resize(screenW, screenH)
}

// HandlePointer routes one raw event. A press anywhere outside the menu
// closes it first.
func (e *Editor) HandlePointer(ev PointerEvent) {
	if ev.Kind == PointerDown || ev.Kind == PointerWheel {
		e.tween = nil
	}
	if ev.Kind == PointerDown && e.menu.Open && ev.Target.Kind != TargetChrome {
		e.CloseMenu()
	}
	e.dispatcher.Handle(ev)
}

// Update advances one frame: the scripted runner, one injected event, due
// timers, then viewport animation. dt is the frame duration in seconds.
func (e *Editor) Update(now time.Time, dt float32) {
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInjectedInput()
	e.timers.Advance(now)
	if e.tween != nil {
		var done bool
		e.viewport, done = e.tween.update(e.viewport, dt)
		if done {
			e.tween = nil
		}
	}
}

// Close clears every pending timer and stops input handling.
func (e *Editor) Close() {
	e.dispatcher.Close()
	e.timers.Clear()
	e.tween = nil
}

// --- Hit testing ---

// HitTest returns the topmost drawable node whose label box contains the
// screen point, or the background.
func (e *Editor) HitTest(sx, sy float64) Target {
	wx, wy := e.viewport.ScreenToWorld(sx, sy)
	nodes := Resolve(e.tree).Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if LabelBox(e.measurer, n.Label, n.X, n.Y).Contains(wx, wy) {
			return NodeTarget(n.ID)
		}
	}
	return BackgroundTarget()
}

// NodeScreenRect returns the label box of id in screen space.
func (e *Editor) NodeScreenRect(id NodeID) (Rect, bool) {
	n, ok := e.tree.Node(id)
	if !ok {
		return Rect{}, false
	}
	return e.viewport.WorldRectToScreen(LabelBox(e.measurer, n.Label, n.X, n.Y)), true
}

// Draw composes the drawable layer on r, marking the selected node.
func (e *Editor) Draw(r Renderer) {
	composeLayer(e.tree, e.measurer, r, func(id NodeID) bool {
		return e.hasSelection && id == e.selected
	})
}

// --- Selection and menu ---

// Select marks id as the selected node.
func (e *Editor) Select(id NodeID) {
	if !e.tree.Contains(id) {
		return
	}
	e.selected = id
	e.hasSelection = true
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	e.hasSelection = false
}

func (e *Editor) handleTap(ctx GestureContext) {
	if e.choosingParent && e.editMode {
		if err := e.ChooseParent(ctx.Node); err != nil {
			e.report(err)
		}
		return
	}
	e.Select(ctx.Node)
}

// OpenMenu selects id and opens its menu beside the node. Outside edit mode
// it does nothing.
func (e *Editor) OpenMenu(id NodeID, source MenuSource) {
	if !e.editMode {
		return
	}
	origin, ok := e.NodeScreenRect(id)
	if !ok {
		return
	}
	e.Select(id)
	e.choosingParent = false
	e.menu = MenuState{
		Open:     true,
		Node:     id,
		Source:   source,
		Origin:   origin,
		Position: Vec2{X: origin.Right() + menuOffset, Y: origin.Y},
	}
	e.debugf("menu for node %d (%s)", id, source)
	req := MenuRequest{Node: id, Origin: origin, Source: source}
	for _, fn := range e.onMenu {
		fn(req)
	}
}

// CloseMenu hides the menu. The selection is kept.
func (e *Editor) CloseMenu() {
	e.menu = MenuState{}
}

func (e *Editor) target() (NodeID, error) {
	if !e.editMode {
		return 0, ErrReadOnly
	}
	if !e.hasSelection {
		return 0, ErrNoSelection
	}
	if !e.tree.Contains(e.selected) {
		return 0, &NotFoundError{NodeID: e.selected}
	}
	return e.selected, nil
}

// EditLabel renames the selected node and closes the menu.
func (e *Editor) EditLabel(label string) error {
	id, err := e.target()
	if err != nil {
		return e.report(err)
	}
	e.SetTree(e.tree.Rename(id, label))
	e.CloseMenu()
	return nil
}

// AddChild adds a child labelled label under the selected node and closes
// the menu.
func (e *Editor) AddChild(label string) (NodeID, error) {
	id, err := e.target()
	if err != nil {
		return 0, e.report(err)
	}
	t, child, err := e.tree.AddChild(id, label, e.ids)
	if err != nil {
		return 0, e.report(err)
	}
	e.SetTree(t)
	e.CloseMenu()
	e.debugf("added node %d under %d", child, id)
	return child, nil
}

// DeleteSelected removes the selected node and its subtree.
func (e *Editor) DeleteSelected() error {
	id, err := e.target()
	if err != nil {
		return e.report(err)
	}
	if n, _ := e.tree.Node(id); !n.HasParent {
		return e.report(errors.New("the root node cannot be deleted"))
	}
	t, err := e.tree.DeleteSubtree(id)
	if err != nil {
		return e.report(err)
	}
	e.CloseMenu()
	e.SetTree(t)
	return nil
}

// BeginReparent closes the menu and waits for a tap on the new parent.
func (e *Editor) BeginReparent() error {
	if _, err := e.target(); err != nil {
		return e.report(err)
	}
	e.CloseMenu()
	e.choosingParent = true
	return nil
}

// CancelReparent leaves parent-choosing mode.
func (e *Editor) CancelReparent() { e.choosingParent = false }

// ChooseParent moves the selected node under newParent. A cycle is reported
// to the user and leaves the tree unchanged.
func (e *Editor) ChooseParent(newParent NodeID) error {
	id, err := e.target()
	if err != nil {
		return e.report(err)
	}
	e.choosingParent = false
	t, err := e.tree.Reparent(id, newParent)
	if err != nil {
		return e.report(err)
	}
	e.SetTree(t)
	return nil
}

// --- Modes ---

// SetEditMode enables or disables editing. Leaving edit mode closes the menu
// and cancels parent choosing.
func (e *Editor) SetEditMode(on bool) {
	e.editMode = on
	if !on {
		e.CloseMenu()
		e.choosingParent = false
	}
}

// ToggleEditMode flips edit mode.
func (e *Editor) ToggleEditMode() { e.SetEditMode(!e.editMode) }

// Save ends the editing pass. The tree lives only in memory, so this just
// leaves edit mode.
func (e *Editor) Save() { e.SetEditMode(false) }

// ExpandAll expands every node.
func (e *Editor) ExpandAll() { e.SetTree(SetAllExpanded(e.tree, true)) }

// CollapseAll collapses every node.
func (e *Editor) CollapseAll() { e.SetTree(SetAllExpanded(e.tree, false)) }

// ToggleNode flips the expanded flag of id if it has children.
func (e *Editor) ToggleNode(id NodeID) {
	if e.tree.HasChildren(id) {
		e.SetTree(e.tree.ToggleExpanded(id))
	}
}

// LoadTree replaces the whole tree, for example after the source file
// changed. Selection, menu and any gesture in progress are dropped.
func (e *Editor) LoadTree(t FlatTree) {
	e.hasSelection = false
	e.menu = MenuState{}
	e.choosingParent = false
	e.dispatcher.reset()
	for _, n := range t.nodes {
		e.ids.Observe(n.ID)
	}
	e.SetTree(t)
}

// --- Viewport ---

// Zoomed reports whether the viewport is away from zoom 1.
func (e *Editor) Zoomed() bool { return e.viewport.Zoom != 1 }

// ResetZoom restores zoom 1 immediately, keeping the pan offset.
func (e *Editor) ResetZoom() {
	e.tween = nil
	e.viewport = e.viewport.Reset()
}

// AnimateReset eases the zoom back to 1 over duration seconds.
func (e *Editor) AnimateReset(duration float32) {
	e.tween = newViewportTween(e.viewport, e.viewport.X, e.viewport.Y, 1, duration, ease.OutQuad)
}

// FocusNode eases the viewport center onto id over duration seconds.
func (e *Editor) FocusNode(id NodeID, duration float32) bool {
	n, ok := e.tree.Node(id)
	if !ok {
		return false
	}
	e.tween = newViewportTween(e.viewport, n.X, n.Y, e.viewport.Zoom, duration, ease.InOutQuad)
	return true
}

// --- Messages ---

// Messages returns the user-facing messages reported since the last
// ClearMessages.
func (e *Editor) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

// ClearMessages drops all pending messages.
func (e *Editor) ClearMessages() { e.messages = e.messages[:0] }

// report records a user-facing message for err and returns err.
func (e *Editor) report(err error) error {
	e.messages = append(e.messages, userMessage(err))
	e.debugf("action failed: %v", err)
	return err
}

func userMessage(err error) string {
	var ce *CycleError
	var nf *NotFoundError
	switch {
	case errors.As(err, &ce):
		return "A node cannot be moved under itself or one of its descendants."
	case errors.As(err, &nf):
		return fmt.Sprintf("Node %d no longer exists.", nf.NodeID)
	case errors.Is(err, ErrReadOnly):
		return "Switch to edit mode first."
	case errors.Is(err, ErrNoSelection):
		return "Select a node first."
	}
	return err.Error()
}
