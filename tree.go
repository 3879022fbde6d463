package mindpaper

import "fmt"

// childOffset is the distance, on both axes, between a parent and a child
// created by AddChild.
const childOffset = 100.0

// FlatTree is an ordered list of nodes describing one tree through parent
// pointers. An id index is built on construction so lookups are O(1).
//
// A FlatTree is a value: every operation returns a new tree and leaves the
// receiver untouched, so callers can keep the previous snapshot.
type FlatTree struct {
	nodes []Node
	index map[NodeID]int
}

// NewFlatTree builds a tree from nodes in the given order. The slice is
// copied.
func NewFlatTree(nodes []Node) FlatTree {
	cp := make([]Node, len(nodes))
	copy(cp, nodes)
	return FlatTree{nodes: cp, index: buildIndex(cp)}
}

func buildIndex(nodes []Node) map[NodeID]int {
	idx := make(map[NodeID]int, len(nodes))
	for i, n := range nodes {
		if _, dup := idx[n.ID]; !dup {
			idx[n.ID] = i
		}
	}
	return idx
}

// Flatten converts a nested tree to a FlatTree by depth-first traversal.
// Parents precede their children and siblings keep their source order.
func Flatten(root NestedNode) FlatTree {
	var nodes []Node
	var walk func(n NestedNode, parent NodeID, hasParent bool)
	walk = func(n NestedNode, parent NodeID, hasParent bool) {
		node := newNode(n.ID, n.Label, n.X, n.Y)
		if n.Expanded != nil {
			node.Expanded = *n.Expanded
		}
		node.ParentID = parent
		node.HasParent = hasParent
		nodes = append(nodes, node)
		for _, c := range n.Children {
			walk(c, n.ID, true)
		}
	}
	walk(root, 0, false)
	return FlatTree{nodes: nodes, index: buildIndex(nodes)}
}

// withNodes returns a tree sharing t's index. Only valid when nodes has the
// same ids in the same order as t.
func (t FlatTree) withNodes(nodes []Node) FlatTree {
	return FlatTree{nodes: nodes, index: t.index}
}

func (t FlatTree) cloneNodes() []Node {
	cp := make([]Node, len(t.nodes))
	copy(cp, t.nodes)
	return cp
}

// --- Queries ---

// Len returns the number of nodes.
func (t FlatTree) Len() int { return len(t.nodes) }

// Nodes returns a copy of the nodes in tree order.
func (t FlatTree) Nodes() []Node { return t.cloneNodes() }

// Node returns the node with the given id.
func (t FlatTree) Node(id NodeID) (Node, bool) {
	i, ok := t.index[id]
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// Contains reports whether id is in the tree.
func (t FlatTree) Contains(id NodeID) bool {
	_, ok := t.index[id]
	return ok
}

// Root returns the first node without a parent.
func (t FlatTree) Root() (Node, bool) {
	for _, n := range t.nodes {
		if !n.HasParent {
			return n, true
		}
	}
	return Node{}, false
}

// Children returns the direct children of id in tree order.
func (t FlatTree) Children(id NodeID) []Node {
	var out []Node
	for _, n := range t.nodes {
		if n.HasParent && n.ParentID == id {
			out = append(out, n)
		}
	}
	return out
}

// HasChildren reports whether any node has id as its parent.
func (t FlatTree) HasChildren(id NodeID) bool {
	for _, n := range t.nodes {
		if n.HasParent && n.ParentID == id {
			return true
		}
	}
	return false
}

// Ancestors returns the ancestors of id, nearest first and root last. It
// returns nil when id is absent. Runs in O(depth).
func (t FlatTree) Ancestors(id NodeID) []Node {
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	var out []Node
	cur := t.nodes[i]
	for cur.HasParent && len(out) < len(t.nodes) {
		j, ok := t.index[cur.ParentID]
		if !ok {
			break
		}
		cur = t.nodes[j]
		if cur.ID == id {
			break
		}
		out = append(out, cur)
	}
	return out
}

// Descendants returns every node whose ancestor chain contains id, excluding
// id itself. The result is grouped by depth; order within a level is tree
// order.
func (t FlatTree) Descendants(id NodeID) []Node {
	idx := t.descendantIndexes(id)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Node, len(idx))
	for k, i := range idx {
		out[k] = t.nodes[i]
	}
	return out
}

// DescendantIDs returns the ids of Descendants(id).
func (t FlatTree) DescendantIDs(id NodeID) []NodeID {
	idx := t.descendantIndexes(id)
	if len(idx) == 0 {
		return nil
	}
	out := make([]NodeID, len(idx))
	for k, i := range idx {
		out[k] = t.nodes[i].ID
	}
	return out
}

// IsDescendant reports whether candidate lies in the subtree below id.
func (t FlatTree) IsDescendant(candidate, id NodeID) bool {
	for _, a := range t.Ancestors(candidate) {
		if a.ID == id {
			return true
		}
	}
	return false
}

// childIndex maps each parent id to the positions of its children.
func (t FlatTree) childIndex() map[NodeID][]int {
	children := make(map[NodeID][]int, len(t.nodes))
	for i, n := range t.nodes {
		if n.HasParent {
			children[n.ParentID] = append(children[n.ParentID], i)
		}
	}
	return children
}

// descendantIndexes expands the subtree of id one level at a time.
func (t FlatTree) descendantIndexes(id NodeID) []int {
	if _, ok := t.index[id]; !ok {
		return nil
	}
	children := t.childIndex()
	seen := map[NodeID]bool{id: true}
	frontier := []NodeID{id}
	var out []int
	for len(frontier) > 0 {
		var next []NodeID
		for _, p := range frontier {
			for _, ci := range children[p] {
				c := t.nodes[ci].ID
				if seen[c] {
					continue
				}
				seen[c] = true
				out = append(out, ci)
				next = append(next, c)
			}
		}
		frontier = next
	}
	return out
}

// --- Mutations ---

// MoveSubtree translates id and all of its descendants by (dx, dy). Every
// other node is left untouched. Unknown ids return t unchanged.
func (t FlatTree) MoveSubtree(id NodeID, dx, dy float64) FlatTree {
	i, ok := t.index[id]
	if !ok {
		return t
	}
	nodes := t.cloneNodes()
	nodes[i].X += dx
	nodes[i].Y += dy
	for _, j := range t.descendantIndexes(id) {
		nodes[j].X += dx
		nodes[j].Y += dy
	}
	return t.withNodes(nodes)
}

// MoveNodes translates exactly the listed nodes by (dx, dy). IDs missing from
// the tree are skipped.
func (t FlatTree) MoveNodes(ids []NodeID, dx, dy float64) FlatTree {
	nodes := t.cloneNodes()
	moved := make(map[int]bool, len(ids))
	for _, id := range ids {
		i, ok := t.index[id]
		if !ok || moved[i] {
			continue
		}
		moved[i] = true
		nodes[i].X += dx
		nodes[i].Y += dy
	}
	return t.withNodes(nodes)
}

// Rename replaces the label of id. Unknown ids return t unchanged.
func (t FlatTree) Rename(id NodeID, label string) FlatTree {
	i, ok := t.index[id]
	if !ok {
		return t
	}
	nodes := t.cloneNodes()
	nodes[i].Label = label
	return t.withNodes(nodes)
}

// ToggleExpanded flips the expanded flag of id only. Descendant flags are
// untouched. Unknown ids return t unchanged.
func (t FlatTree) ToggleExpanded(id NodeID) FlatTree {
	i, ok := t.index[id]
	if !ok {
		return t
	}
	return t.SetExpanded(id, !t.nodes[i].Expanded)
}

// SetExpanded sets the expanded flag of id.
func (t FlatTree) SetExpanded(id NodeID, expanded bool) FlatTree {
	i, ok := t.index[id]
	if !ok {
		return t
	}
	nodes := t.cloneNodes()
	nodes[i].Expanded = expanded
	return t.withNodes(nodes)
}

// AddChild appends a node labelled label under parentID, offset from its
// parent by (+100, +100). The id comes from gen and is guaranteed not to
// collide with an existing node.
func (t FlatTree) AddChild(parentID NodeID, label string, gen *IDGenerator) (FlatTree, NodeID, error) {
	i, ok := t.index[parentID]
	if !ok {
		return t, 0, &NotFoundError{NodeID: parentID}
	}
	id := gen.Next()
	for t.Contains(id) {
		id = gen.Next()
	}

	p := t.nodes[i]
	child := newNode(id, label, p.X+childOffset, p.Y+childOffset)
	child.ParentID = parentID
	child.HasParent = true

	nodes := make([]Node, len(t.nodes), len(t.nodes)+1)
	copy(nodes, t.nodes)
	nodes = append(nodes, child)

	index := make(map[NodeID]int, len(nodes))
	for k, v := range t.index {
		index[k] = v
	}
	index[id] = len(nodes) - 1
	return FlatTree{nodes: nodes, index: index}, id, nil
}

// DeleteSubtree removes id and all of its descendants. No remaining node
// references a removed id.
func (t FlatTree) DeleteSubtree(id NodeID) (FlatTree, error) {
	i, ok := t.index[id]
	if !ok {
		return t, &NotFoundError{NodeID: id}
	}
	remove := map[int]bool{i: true}
	for _, j := range t.descendantIndexes(id) {
		remove[j] = true
	}
	nodes := make([]Node, 0, len(t.nodes)-len(remove))
	for j, n := range t.nodes {
		if !remove[j] {
			nodes = append(nodes, n)
		}
	}
	return FlatTree{nodes: nodes, index: buildIndex(nodes)}, nil
}

// Reparent moves id under newParentID. It fails with *CycleError when
// newParentID is id or one of its descendants and with *NotFoundError when
// either id is unknown. On failure t is returned unchanged.
func (t FlatTree) Reparent(id, newParentID NodeID) (FlatTree, error) {
	i, ok := t.index[id]
	if !ok {
		return t, &NotFoundError{NodeID: id}
	}
	if !t.Contains(newParentID) {
		return t, &NotFoundError{NodeID: newParentID}
	}
	if newParentID == id {
		return t, &CycleError{NodeID: id, NewParentID: newParentID}
	}
	for _, j := range t.descendantIndexes(id) {
		if t.nodes[j].ID == newParentID {
			return t, &CycleError{NodeID: id, NewParentID: newParentID}
		}
	}
	nodes := t.cloneNodes()
	nodes[i].ParentID = newParentID
	nodes[i].HasParent = true
	return t.withNodes(nodes), nil
}

// --- Structure ---

// Validate checks the tree invariants: unique ids, exactly one root, every
// parent present, and every node reachable from the root.
func (t FlatTree) Validate() error {
	seen := make(map[NodeID]bool, len(t.nodes))
	var roots []NodeID
	for _, n := range t.nodes {
		if seen[n.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, n.ID)
		}
		seen[n.ID] = true
		if !n.HasParent {
			roots = append(roots, n.ID)
		}
	}
	switch {
	case len(roots) == 0:
		return ErrNoRoot
	case len(roots) > 1:
		return fmt.Errorf("%w: %v", ErrMultipleRoots, roots)
	}
	for _, n := range t.nodes {
		if n.HasParent && !seen[n.ParentID] {
			return fmt.Errorf("%w: node %d references %d", ErrDanglingParent, n.ID, n.ParentID)
		}
	}
	if reach := len(t.descendantIndexes(roots[0])) + 1; reach != len(t.nodes) {
		return fmt.Errorf("%w: %d of %d nodes reachable", ErrUnreachableNode, reach, len(t.nodes))
	}
	return nil
}

// Nest rebuilds the nested form of the tree. Children keep tree order.
func (t FlatTree) Nest() (NestedNode, error) {
	if err := t.Validate(); err != nil {
		return NestedNode{}, err
	}
	root, _ := t.Root()
	children := t.childIndex()

	var build func(i int) NestedNode
	build = func(i int) NestedNode {
		n := t.nodes[i]
		out := NestedNode{ID: n.ID, Label: n.Label, X: n.X, Y: n.Y}
		if !n.Expanded {
			collapsed := false
			out.Expanded = &collapsed
		}
		for _, ci := range children[n.ID] {
			out.Children = append(out.Children, build(ci))
		}
		return out
	}
	return build(t.index[root.ID]), nil
}
