package mindpaper

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestEditor(tree FlatTree) *Editor {
	return NewEditor(tree, EditorConfig{ScreenW: 800, ScreenH: 600, Measurer: testMeasurer, Now: epoch})
}

func TestEditorHitTest(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	tests := []struct {
		name string
		x, y float64
		want Target
	}{
		{"root center", 100, 100, NodeTarget(1)},
		{"root box edge", 121, 100, NodeTarget(1)},
		{"empty canvas", 0, 0, BackgroundTarget()},
		{"leaf", 500, 200, NodeTarget(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ed.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%v,%v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	ed.ToggleNode(4)
	if got := ed.HitTest(500, 200); got != BackgroundTarget() {
		t.Errorf("hidden node was hit: %+v", got)
	}
}

func TestEditorHitTestFollowsViewport(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetViewport(ed.Viewport().Pan(50, 0))
	if got := ed.HitTest(150, 100); got != NodeTarget(1) {
		t.Errorf("HitTest after pan = %+v, want node 1", got)
	}
}

func TestEditorContextMenuOpensMenu(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	var reqs []MenuRequest
	ed.OnMenu(func(r MenuRequest) { reqs = append(reqs, r) })

	ed.HandlePointer(PointerEvent{Kind: PointerContextMenu, PointerType: PointerMouse, X: 300, Y: 100, Target: NodeTarget(3)})
	if ed.Menu().Open {
		t.Fatal("menu opened outside edit mode")
	}

	ed.SetEditMode(true)
	ed.HandlePointer(PointerEvent{Kind: PointerContextMenu, PointerType: PointerMouse, X: 300, Y: 100, Target: NodeTarget(3)})
	m := ed.Menu()
	if !m.Open || m.Node != 3 || m.Source != MenuFromContextMenu {
		t.Fatalf("menu = %+v", m)
	}
	box, _ := ed.NodeScreenRect(3)
	if m.Position.X != box.Right()+menuOffset || m.Position.Y != box.Y {
		t.Errorf("menu position = %v, want right of %+v", m.Position, box)
	}
	if id, ok := ed.Selected(); !ok || id != 3 {
		t.Errorf("Selected = (%d, %v), want (3, true)", id, ok)
	}
	if len(reqs) != 1 || reqs[0].Node != 3 || reqs[0].Origin != box {
		t.Errorf("menu requests = %+v", reqs)
	}
}

func TestEditorLongPressOpensMenu(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.HandlePointer(touch(PointerDown, 1, true, 300, 100, NodeTarget(3)))
	ed.Update(at(600*time.Millisecond), 0)
	m := ed.Menu()
	if !m.Open || m.Source != MenuFromLongPress || m.Node != 3 {
		t.Errorf("menu = %+v", m)
	}
	if m.Source.String() != "longtap" {
		t.Errorf("Source = %q", m.Source.String())
	}
}

func TestEditorPressOutsideClosesMenu(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.OpenMenu(3, MenuFromContextMenu)

	ed.HandlePointer(mouse(PointerDown, 5, 5, ChromeTarget()))
	if !ed.Menu().Open {
		t.Fatal("press on chrome closed the menu")
	}
	ed.HandlePointer(mouse(PointerDown, 5, 5, BackgroundTarget()))
	if ed.Menu().Open {
		t.Error("press on the canvas left the menu open")
	}
}

func TestEditorMenuActions(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)

	ed.OpenMenu(3, MenuFromContextMenu)
	if err := ed.EditLabel("chess"); err != nil {
		t.Fatal(err)
	}
	if got := mustNode(t, ed.Tree(), 3).Label; got != "chess" {
		t.Errorf("Label = %q", got)
	}
	if ed.Menu().Open {
		t.Error("menu still open after editing")
	}

	id, err := ed.AddChild("openings")
	if err != nil {
		t.Fatal(err)
	}
	n := mustNode(t, ed.Tree(), id)
	if n.ParentID != 3 || n.X != 400 || n.Y != 200 {
		t.Errorf("new child = %+v", n)
	}

	ed.Select(2)
	if err := ed.DeleteSelected(); err != nil {
		t.Fatal(err)
	}
	for _, gone := range []NodeID{2, 5, 6} {
		if ed.Tree().Contains(gone) {
			t.Errorf("node %d survived DeleteSelected", gone)
		}
	}
	if _, ok := ed.Selected(); ok {
		t.Error("selection kept after its node was deleted")
	}
}

func TestEditorActionsNeedEditMode(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.Select(3)
	before := ed.Tree()
	if err := ed.EditLabel("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("EditLabel err = %v, want ErrReadOnly", err)
	}
	if _, err := ed.AddChild("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("AddChild err = %v, want ErrReadOnly", err)
	}
	if !reflect.DeepEqual(ed.Tree().Nodes(), before.Nodes()) {
		t.Error("tree changed outside edit mode")
	}
	if msgs := ed.Messages(); len(msgs) != 2 || msgs[0] != "Switch to edit mode first." {
		t.Errorf("messages = %q", msgs)
	}
	ed.ClearMessages()
	if len(ed.Messages()) != 0 {
		t.Error("ClearMessages kept messages")
	}
}

func TestEditorCannotDeleteRoot(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.Select(1)
	if err := ed.DeleteSelected(); err == nil {
		t.Fatal("deleting the root succeeded")
	}
	if ed.Tree().Len() != 7 {
		t.Errorf("Len = %d, want 7", ed.Tree().Len())
	}
}

func TestEditorReparentByTap(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.OpenMenu(2, MenuFromContextMenu)
	if err := ed.BeginReparent(); err != nil {
		t.Fatal(err)
	}
	if !ed.ChoosingParent() || ed.Menu().Open {
		t.Fatal("not waiting for a parent")
	}

	ed.HandlePointer(mouse(PointerDown, 500, 200, NodeTarget(7)))
	ed.HandlePointer(mouse(PointerUp, 500, 200, NodeTarget(7)))
	if p, _ := mustNode(t, ed.Tree(), 2).Parent(); p != 7 {
		t.Errorf("parent = %d, want 7", p)
	}
	if ed.ChoosingParent() {
		t.Error("still choosing after a parent was picked")
	}
}

func TestEditorReparentCycleReported(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.Select(2)
	before := ed.Tree()
	err := ed.ChooseParent(5)
	if !IsCycle(err) {
		t.Fatalf("err = %v, want CycleError", err)
	}
	if !reflect.DeepEqual(ed.Tree().Nodes(), before.Nodes()) {
		t.Error("tree changed on a cycle")
	}
	msgs := ed.Messages()
	if len(msgs) != 1 || msgs[0] != "A node cannot be moved under itself or one of its descendants." {
		t.Errorf("messages = %q", msgs)
	}
}

func TestEditorLeavingEditModeClosesMenu(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.ToggleEditMode()
	ed.OpenMenu(3, MenuFromContextMenu)
	_ = ed.BeginReparent()
	ed.Save()
	if ed.EditMode() || ed.Menu().Open || ed.ChoosingParent() {
		t.Error("Save left edit state behind")
	}
}

func TestEditorTapSelects(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.HandlePointer(mouse(PointerDown, 300, 100, NodeTarget(3)))
	ed.HandlePointer(mouse(PointerUp, 300, 100, NodeTarget(3)))
	if id, ok := ed.Selected(); !ok || id != 3 {
		t.Errorf("Selected = (%d, %v), want (3, true)", id, ok)
	}

	r := &recordingRenderer{}
	ed.Draw(r)
	for _, n := range r.nodes {
		if n.Selected != (n.ID == 3) {
			t.Errorf("node %d Selected = %v", n.ID, n.Selected)
		}
	}
}

func TestEditorExpandCollapseAll(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	changes := 0
	ed.OnChange(func(FlatTree) { changes++ })
	ed.CollapseAll()
	if got := len(Resolve(ed.Tree()).Nodes); got != 1 {
		t.Errorf("drawable after CollapseAll = %d, want 1", got)
	}
	ed.ExpandAll()
	if got := len(Resolve(ed.Tree()).Nodes); got != 7 {
		t.Errorf("drawable after ExpandAll = %d, want 7", got)
	}
	if changes != 2 {
		t.Errorf("change callbacks = %d, want 2", changes)
	}
}

func TestEditorResetZoom(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.HandlePointer(PointerEvent{Kind: PointerWheel, DeltaY: 1, X: 100, Y: 100})
	if !ed.Zoomed() {
		t.Fatal("wheel did not zoom")
	}
	x := ed.Viewport().X
	ed.ResetZoom()
	if ed.Zoomed() || ed.Viewport().X != x {
		t.Errorf("after ResetZoom = %+v", ed.Viewport())
	}
}

func TestEditorAnimateReset(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetViewport(ed.Viewport().withZoom(3))
	ed.AnimateReset(0.5)
	ed.Update(at(16*time.Millisecond), 0.25)
	if z := ed.Viewport().Zoom; z <= 1 || z >= 3 {
		t.Errorf("mid-animation Zoom = %v, want between 1 and 3", z)
	}
	ed.Update(at(32*time.Millisecond), 1)
	if z := ed.Viewport().Zoom; !approxEqual(z, 1, 1e-6) {
		t.Errorf("final Zoom = %v, want 1", z)
	}
	if w := ed.Viewport().Width; !approxEqual(w, 800, 1e-3) {
		t.Errorf("final Width = %v, want 800", w)
	}
}

func TestEditorFocusNode(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	if ed.FocusNode(99, 1) {
		t.Error("FocusNode accepted an unknown id")
	}
	ed.FocusNode(7, 0.1)
	ed.Update(at(time.Second), 1)
	v := ed.Viewport()
	if !approxEqual(v.X, 500, 1e-3) || !approxEqual(v.Y, 200, 1e-3) {
		t.Errorf("center = (%v,%v), want (500,200)", v.X, v.Y)
	}
}

func TestEditorLoadTreeDropsSelection(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.OpenMenu(3, MenuFromContextMenu)
	next := Flatten(NestedNode{ID: 40, Label: "fresh"})
	ed.LoadTree(next)
	if _, ok := ed.Selected(); ok || ed.Menu().Open {
		t.Error("LoadTree kept the old selection")
	}
	ed.Select(40)
	id, err := ed.AddChild("child")
	if err != nil {
		t.Fatal(err)
	}
	if id <= 40 {
		t.Errorf("new id %d collides with loaded ids", id)
	}
}

func TestEditorLoadTreeStopsDrag(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	n2 := NodeTarget(2)
	ed.HandlePointer(mouse(PointerDown, 300, 40, n2))
	ed.HandlePointer(mouse(PointerMove, 320, 40, n2))
	if ed.Dispatcher().State() != GestureNodeDrag {
		t.Fatalf("State = %v, want nodeDrag", ed.Dispatcher().State())
	}

	ed.LoadTree(sampleFlat())
	if ed.Dispatcher().State() != GestureNone || len(ed.Dispatcher().CarriedNodes()) != 0 {
		t.Fatalf("drag survived LoadTree: state %v, carried %v", ed.Dispatcher().State(), ed.Dispatcher().CarriedNodes())
	}
	ed.HandlePointer(mouse(PointerMove, 360, 40, n2))
	ed.HandlePointer(mouse(PointerUp, 360, 40, n2))
	if n := mustNode(t, ed.Tree(), 2); n.X != 300 || n.Y != 40 {
		t.Errorf("node 2 at (%v,%v) after reload, want (300,40)", n.X, n.Y)
	}
}

func TestEditorLoadTreeCancelsLongPress(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.HandlePointer(touch(PointerDown, 1, true, 300, 40, NodeTarget(2)))
	ed.LoadTree(sampleFlat())
	if ed.Timers().Len() != 0 {
		t.Errorf("%d timers pending after LoadTree", ed.Timers().Len())
	}
	ed.Update(at(600*time.Millisecond), 0)
	if ed.Menu().Open {
		t.Errorf("long press from the old tree opened a menu: %+v", ed.Menu())
	}
}

func TestEditorCloseClearsTimers(t *testing.T) {
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.HandlePointer(touch(PointerDown, 1, true, 300, 100, NodeTarget(3)))
	if ed.Timers().Len() == 0 {
		t.Fatal("expected pending timers")
	}
	ed.Close()
	if ed.Timers().Len() != 0 {
		t.Errorf("%d timers after Close", ed.Timers().Len())
	}
	ed.Update(at(time.Second), 0)
	if ed.Menu().Open {
		t.Error("long press fired after Close")
	}
}

// root(0,0) -> a(10,10) -> b(20,20): collapse a, then drag the root by
// (5,5). Everything moves, hidden nodes included.
func TestCollapseThenDragScenario(t *testing.T) {
	ed := newTestEditor(chainTree())
	ed.SetViewport(ed.Viewport().CenterOn(400, 300))
	ed.ToggleNode(2)

	tree := ed.Tree()
	if NodeDrawable(tree, 3) || EdgeDrawable(tree, 3) {
		t.Error("node 3 or edge(2,3) still drawable")
	}
	if !NodeDrawable(tree, 2) || !EdgeDrawable(tree, 2) {
		t.Error("node 2 or edge(1,2) not drawable")
	}

	ed.SetEditMode(true)
	ed.InjectDrag(PointerMouse, -2, -2, 3, 3, 2)
	for i := 0; ed.PendingInjections() > 0 && i < 10; i++ {
		ed.Update(at(time.Duration(i)*16*time.Millisecond), 1.0/60)
	}

	want := map[NodeID]Vec2{1: {5, 5}, 2: {15, 15}, 3: {25, 25}}
	for id, p := range want {
		n := mustNode(t, ed.Tree(), id)
		if n.X != p.X || n.Y != p.Y {
			t.Errorf("node %d at (%v,%v), want (%v,%v)", id, n.X, n.Y, p.X, p.Y)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&NotFoundError{NodeID: 4}, "Node 4 no longer exists."},
		{ErrNoSelection, "Select a node first."},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := userMessage(tt.err); got != tt.want {
			t.Errorf("userMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
