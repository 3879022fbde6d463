package mindpaper

// NodeID identifies a node within one tree. IDs are unique and stable for
// the lifetime of an editing session.
type NodeID int64

// Node is one entry of a FlatTree. A single flat struct is used for every
// node; the hierarchy is expressed only through ParentID.
type Node struct {
	ID NodeID
	// ParentID is meaningful only when HasParent is true. The root has no
	// parent.
	ParentID  NodeID
	HasParent bool

	Label string
	X, Y  float64

	// Expanded controls whether descendants are drawn. New nodes start
	// expanded.
	Expanded bool
	// Visible is the stored visibility flag written by SetAllExpanded and
	// ApplyVisibility. Drawability is always derived from Expanded; see
	// Resolve.
	Visible bool
}

// Parent returns the parent id and whether the node has one.
func (n Node) Parent() (NodeID, bool) {
	return n.ParentID, n.HasParent
}

// Position returns the node position as a Vec2.
func (n Node) Position() Vec2 {
	return Vec2{X: n.X, Y: n.Y}
}

// NestedNode is the import shape of a tree: each node carries its children
// inline. It is converted to a FlatTree by Flatten.
type NestedNode struct {
	ID    NodeID  `json:"id" yaml:"id"`
	Label string  `json:"label" yaml:"label"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	// Expanded defaults to true when absent.
	Expanded *bool        `json:"expanded,omitempty" yaml:"expanded,omitempty"`
	Children []NestedNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func newNode(id NodeID, label string, x, y float64) Node {
	return Node{ID: id, Label: label, X: x, Y: y, Expanded: true, Visible: true}
}

// --- ID generator ---

// IDGenerator hands out node IDs for a session. It is a plain counter (no
// atomic); all mutation happens on the input dispatch path.
type IDGenerator struct {
	next NodeID
}

// NewIDGenerator returns a generator whose first ID is greater than every ID
// already present in t.
func NewIDGenerator(t FlatTree) *IDGenerator {
	g := &IDGenerator{next: 1}
	for _, n := range t.nodes {
		g.Observe(n.ID)
	}
	return g
}

// Observe makes sure id is never handed out again.
func (g *IDGenerator) Observe(id NodeID) {
	if id >= g.next {
		g.next = id + 1
	}
}

// Next returns a fresh ID.
func (g *IDGenerator) Next() NodeID {
	id := g.next
	g.next++
	return id
}

// --- Sample data ---

// SampleTree returns the tree shown on first launch.
func SampleTree() NestedNode {
	return NestedNode{
		ID: 1, Label: "today", X: 100, Y: 100,
		Children: []NestedNode{
			{
				ID: 2, Label: "study", X: 300, Y: 40,
				Children: []NestedNode{
					{ID: 5, Label: "js", X: 500, Y: 40},
					{ID: 6, Label: "project", X: 500, Y: 100},
				},
			},
			{ID: 3, Label: "game", X: 300, Y: 100},
			{
				ID: 4, Label: "code", X: 300, Y: 200,
				Children: []NestedNode{
					{ID: 7, Label: "work", X: 500, Y: 200},
				},
			},
		},
	}
}
