package mindpaper

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// genNested draws a random well-formed tree of 1..n nodes with ids 1..n.
// Each node's parent is an earlier node, so the result is always a tree.
func genNested(t *rapid.T, n int) NestedNode {
	size := rapid.IntRange(1, n).Draw(t, "size")
	parents := make([]int, size)
	for i := 1; i < size; i++ {
		parents[i] = rapid.IntRange(0, i-1).Draw(t, "parent")
	}
	nodes := make([]NestedNode, size)
	for i := range nodes {
		nodes[i] = NestedNode{
			ID:    NodeID(i + 1),
			Label: rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "label"),
			X:     float64(rapid.IntRange(-500, 500).Draw(t, "x")),
			Y:     float64(rapid.IntRange(-500, 500).Draw(t, "y")),
		}
		if rapid.IntRange(0, 3).Draw(t, "collapsed") == 0 {
			collapsed := false
			nodes[i].Expanded = &collapsed
		}
	}
	children := make([][]int, size)
	for i := 1; i < size; i++ {
		children[parents[i]] = append(children[parents[i]], i)
	}
	var build func(i int) NestedNode
	build = func(i int) NestedNode {
		out := nodes[i]
		for _, c := range children[i] {
			out.Children = append(out.Children, build(c))
		}
		return out
	}
	return build(0)
}

func genTree(t *rapid.T) FlatTree { return Flatten(genNested(t, 30)) }

func pickID(t *rapid.T, tree FlatTree, label string) NodeID {
	return NodeID(rapid.IntRange(1, tree.Len()).Draw(t, label))
}

func TestPropertyFlattenNestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genNested(t, 30)
		got, err := Flatten(root).Nest()
		if err != nil {
			t.Fatalf("Nest: %v", err)
		}
		if !reflect.DeepEqual(got, root) {
			t.Fatalf("round trip changed the tree:\n got %+v\nwant %+v", got, root)
		}
	})
}

func TestPropertyAncestorsChain(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		root, _ := tree.Root()
		for _, n := range tree.Nodes() {
			anc := tree.Ancestors(n.ID)
			if !n.HasParent {
				if len(anc) != 0 {
					t.Fatalf("root has ancestors %v", ids(anc))
				}
				continue
			}
			if anc[0].ID != n.ParentID {
				t.Fatalf("nearest ancestor of %d = %d, want %d", n.ID, anc[0].ID, n.ParentID)
			}
			if anc[len(anc)-1].ID != root.ID {
				t.Fatalf("ancestors of %d end at %d, not the root", n.ID, anc[len(anc)-1].ID)
			}
			if rest := tree.Ancestors(anc[0].ID); !reflect.DeepEqual(ids(rest), ids(anc[1:])) {
				t.Fatalf("Ancestors(parent of %d) = %v, want %v", n.ID, ids(rest), ids(anc[1:]))
			}
		}
	})
}

func TestPropertyDeleteSubtree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		id := pickID(t, tree, "id")
		removed := idSet(append(tree.DescendantIDs(id), id))

		got, err := tree.DeleteSubtree(id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Len() != tree.Len()-len(removed) {
			t.Fatalf("Len = %d, want %d", got.Len(), tree.Len()-len(removed))
		}
		for _, n := range got.Nodes() {
			if removed[n.ID] {
				t.Fatalf("node %d survived", n.ID)
			}
			if n.HasParent && removed[n.ParentID] {
				t.Fatalf("node %d references deleted parent %d", n.ID, n.ParentID)
			}
		}
		if got.Len() > 0 {
			if err := got.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
		}
	})
}

func TestPropertyReparentRejectsCycles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		id := pickID(t, tree, "id")
		candidates := append([]NodeID{id}, tree.DescendantIDs(id)...)
		target := rapid.SampledFrom(candidates).Draw(t, "target")

		got, err := tree.Reparent(id, target)
		if !IsCycle(err) {
			t.Fatalf("Reparent(%d, %d) err = %v, want CycleError", id, target, err)
		}
		if !reflect.DeepEqual(got.Nodes(), tree.Nodes()) {
			t.Fatal("tree changed on a rejected reparent")
		}
	})
}

func TestPropertyReparentKeepsTreeValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		id := pickID(t, tree, "id")
		target := pickID(t, tree, "target")
		got, err := tree.Reparent(id, target)
		if err != nil {
			return
		}
		if err := got.Validate(); err != nil {
			t.Fatalf("Reparent(%d, %d) broke the tree: %v", id, target, err)
		}
	})
}

func TestPropertyMoveSubtreeExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		id := pickID(t, tree, "id")
		dx := float64(rapid.IntRange(-100, 100).Draw(t, "dx"))
		dy := float64(rapid.IntRange(-100, 100).Draw(t, "dy"))
		moved := idSet(append(tree.DescendantIDs(id), id))

		got := tree.MoveSubtree(id, dx, dy)
		for _, b := range tree.Nodes() {
			a, _ := got.Node(b.ID)
			if moved[b.ID] {
				if a.X != b.X+dx || a.Y != b.Y+dy {
					t.Fatalf("node %d moved to (%v,%v), want (%v,%v)", b.ID, a.X, a.Y, b.X+dx, b.Y+dy)
				}
				continue
			}
			if a != b {
				t.Fatalf("node %d changed: %+v -> %+v", b.ID, b, a)
			}
		}
	})
}

func drawableSet(tree FlatTree) map[NodeID]bool {
	out := make(map[NodeID]bool)
	for _, n := range Resolve(tree).Nodes {
		out[n.ID] = true
	}
	return out
}

func TestPropertyCollapseHidesSubtree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		id := pickID(t, tree, "id")
		orig, _ := tree.Node(id)
		before := drawableSet(tree)

		collapsed := tree.SetExpanded(id, false)
		v := Resolve(collapsed)
		if v.NodeDrawable(id) != before[id] {
			t.Fatalf("collapsing %d changed its own drawability", id)
		}
		for _, d := range collapsed.DescendantIDs(id) {
			if v.NodeDrawable(d) || v.EdgeDrawable(d) {
				t.Fatalf("descendant %d of collapsed %d still drawable", d, id)
			}
		}

		restored := collapsed.SetExpanded(id, orig.Expanded)
		if after := drawableSet(restored); !reflect.DeepEqual(after, before) {
			t.Fatalf("restoring %d gave drawable set %v, want %v", id, after, before)
		}
	})
}

func TestPropertyResolveMatchesPerNodeRule(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		v := Resolve(tree)
		for _, n := range tree.Nodes() {
			if v.NodeDrawable(n.ID) != NodeDrawable(tree, n.ID) {
				t.Fatalf("node %d: Resolve and NodeDrawable disagree", n.ID)
			}
			if v.EdgeDrawable(n.ID) != EdgeDrawable(tree, n.ID) {
				t.Fatalf("edge %d: Resolve and EdgeDrawable disagree", n.ID)
			}
		}
	})
}

func TestPropertyWheelInOutRestoresZoom(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := NewViewport(800, 600)
		ticks := rapid.IntRange(1, 20).Draw(t, "ticks")
		px := rapid.Float64Range(0, 800).Draw(t, "px")
		py := rapid.Float64Range(0, 600).Draw(t, "py")
		dir := 1.0
		if rapid.Bool().Draw(t, "in") {
			dir = -1
		}
		z := v
		for i := 0; i < ticks; i++ {
			z = z.WheelZoom(dir, px, py)
		}
		for i := 0; i < ticks; i++ {
			z = z.WheelZoom(-dir, px, py)
		}
		if !approxEqual(z.Zoom, v.Zoom, 1e-9) {
			t.Fatalf("Zoom = %v after %d ticks each way, want %v", z.Zoom, ticks, v.Zoom)
		}
		if !approxEqual(z.X, v.X, 1e-6) || !approxEqual(z.Y, v.Y, 1e-6) {
			t.Fatalf("center drifted to (%v,%v)", z.X, z.Y)
		}
	})
}

func TestPropertyPinchZeroDistanceIsNoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := NewViewport(800, 600).Pan(
			rapid.Float64Range(-300, 300).Draw(t, "panX"),
			rapid.Float64Range(-300, 300).Draw(t, "panY"),
		)
		p := Vec2{rapid.Float64Range(0, 800).Draw(t, "x"), rapid.Float64Range(0, 600).Draw(t, "y")}
		s := BeginPinch(v, p, p)
		q0 := Vec2{rapid.Float64Range(0, 800).Draw(t, "q0x"), rapid.Float64Range(0, 600).Draw(t, "q0y")}
		q1 := Vec2{rapid.Float64Range(0, 800).Draw(t, "q1x"), rapid.Float64Range(0, 600).Draw(t, "q1y")}
		got := s.Apply(v, q0, q1)
		if got.Zoom != v.Zoom || got.X != v.X || got.Y != v.Y {
			t.Fatalf("zero-distance pinch changed the viewport: %+v", got)
		}
	})
}
