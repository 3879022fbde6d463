package mindpaper

// AllAncestorsExpanded reports whether every ancestor of id is expanded.
// It is vacuously true for the root and false for unknown ids.
func AllAncestorsExpanded(t FlatTree, id NodeID) bool {
	if !t.Contains(id) {
		return false
	}
	for _, a := range t.Ancestors(id) {
		if !a.Expanded {
			return false
		}
	}
	return true
}

// NodeDrawable reports whether id should be rendered: it is the root or all
// of its ancestors are expanded.
func NodeDrawable(t FlatTree, id NodeID) bool {
	n, ok := t.Node(id)
	if !ok {
		return false
	}
	return !n.HasParent || AllAncestorsExpanded(t, id)
}

// EdgeDrawable reports whether the edge from childID to its parent should be
// rendered. Both endpoints must be drawable.
func EdgeDrawable(t FlatTree, childID NodeID) bool {
	n, ok := t.Node(childID)
	if !ok || !n.HasParent || !t.Contains(n.ParentID) {
		return false
	}
	return NodeDrawable(t, childID) && NodeDrawable(t, n.ParentID)
}

// Visibility is the drawable layer derived from one tree snapshot.
type Visibility struct {
	// Nodes are the drawable nodes in tree order.
	Nodes []Node
	// Edges are the drawable edges in tree order of their child node.
	Edges []Line

	nodes map[NodeID]bool
	edges map[NodeID]bool
}

// NodeDrawable reports whether id is in the drawable layer.
func (v Visibility) NodeDrawable(id NodeID) bool { return v.nodes[id] }

// EdgeDrawable reports whether the edge ending at childID is drawable.
func (v Visibility) EdgeDrawable(childID NodeID) bool { return v.edges[childID] }

// Resolve computes the drawable nodes and edges of t in a single pass. Each
// node's result is memoised so the cost is linear in the tree size.
func Resolve(t FlatTree) Visibility {
	memo := make(map[NodeID]bool, len(t.nodes))
	var expandedChain func(i int, depth int) bool
	expandedChain = func(i int, depth int) bool {
		n := t.nodes[i]
		if v, ok := memo[n.ID]; ok {
			return v
		}
		result := true
		if n.HasParent {
			pi, ok := t.index[n.ParentID]
			switch {
			case !ok:
				// Orphans are unreachable from the root.
				result = false
			case depth > len(t.nodes):
				result = false
			default:
				result = t.nodes[pi].Expanded && expandedChain(pi, depth+1)
			}
		}
		memo[n.ID] = result
		return result
	}

	v := Visibility{
		nodes: make(map[NodeID]bool, len(t.nodes)),
		edges: make(map[NodeID]bool, len(t.nodes)),
	}
	for i, n := range t.nodes {
		if expandedChain(i, 0) {
			v.nodes[n.ID] = true
			v.Nodes = append(v.Nodes, n)
		}
	}
	for _, n := range t.nodes {
		if !n.HasParent || !v.nodes[n.ID] {
			continue
		}
		pi, ok := t.index[n.ParentID]
		if !ok || !v.nodes[n.ParentID] {
			continue
		}
		p := t.nodes[pi]
		v.edges[n.ID] = true
		v.Edges = append(v.Edges, Line{
			ID:     EdgeID(p.ID, n.ID),
			Parent: p.ID,
			Child:  n.ID,
			X1:     p.X,
			Y1:     p.Y,
			X2:     n.X,
			Y2:     n.Y,
		})
	}
	return v
}

// SetAllExpanded sets the expanded flag of every node in one pass. The stored
// Visible flag follows: the root stays visible and every other node mirrors
// expanded. IDs, labels, positions and parents are untouched.
func SetAllExpanded(t FlatTree, expanded bool) FlatTree {
	nodes := t.cloneNodes()
	for i := range nodes {
		nodes[i].Expanded = expanded
		nodes[i].Visible = expanded || !nodes[i].HasParent
	}
	return t.withNodes(nodes)
}

// ApplyVisibility stores the derived drawable state in each node's Visible
// flag.
func ApplyVisibility(t FlatTree) FlatTree {
	v := Resolve(t)
	nodes := t.cloneNodes()
	for i := range nodes {
		nodes[i].Visible = v.nodes[nodes[i].ID]
	}
	return t.withNodes(nodes)
}
