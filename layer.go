package mindpaper

// NodeView is everything a renderer needs to draw one node. Coordinates are
// in canvas space; Box is the label background, see LabelBox.
type NodeView struct {
	ID          NodeID
	X, Y        float64
	Label       string
	Expanded    bool
	HasChildren bool
	Selected    bool
	Box         Rect
}

// Renderer draws the visible layer. Edges are always drawn before nodes.
type Renderer interface {
	DrawEdge(l Line)
	DrawNode(n NodeView)
}

// Compose resolves visibility for t and draws the result on r: every
// drawable edge, then every drawable node, both in tree order.
func Compose(t FlatTree, m Measurer, r Renderer) {
	composeLayer(t, m, r, nil)
}

func composeLayer(t FlatTree, m Measurer, r Renderer, selected func(NodeID) bool) {
	v := Resolve(t)
	parents := make(map[NodeID]bool, len(t.nodes))
	for _, n := range t.nodes {
		if n.HasParent {
			parents[n.ParentID] = true
		}
	}
	for _, l := range v.Edges {
		r.DrawEdge(l)
	}
	for _, n := range v.Nodes {
		view := NodeView{
			ID:          n.ID,
			X:           n.X,
			Y:           n.Y,
			Label:       n.Label,
			Expanded:    n.Expanded,
			HasChildren: parents[n.ID],
			Box:         LabelBox(m, n.Label, n.X, n.Y),
		}
		if selected != nil {
			view.Selected = selected(n.ID)
		}
		r.DrawNode(view)
	}
}

// Bounds returns the canvas-space rectangle enclosing every drawable label
// box of t. ok is false for an empty layer.
func Bounds(t FlatTree, m Measurer) (r Rect, ok bool) {
	var minX, minY, maxX, maxY float64
	for _, n := range Resolve(t).Nodes {
		b := LabelBox(m, n.Label, n.X, n.Y)
		if !ok {
			minX, minY, maxX, maxY = b.X, b.Y, b.Right(), b.Y+b.Height
			ok = true
			continue
		}
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.Right())
		maxY = max(maxY, b.Y+b.Height)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, ok
}
