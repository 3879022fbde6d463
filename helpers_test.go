package mindpaper

import (
	"math"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

var testMeasurer = FixedMeasurer{CharWidth: 7, LineHeight: 13}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return epoch.Add(d) }

func sampleFlat() FlatTree { return Flatten(SampleTree()) }

// chainTree is root(0,0) -> a(10,10) -> b(20,20).
func chainTree() FlatTree {
	return Flatten(NestedNode{
		ID: 1, Label: "root",
		Children: []NestedNode{{
			ID: 2, Label: "a", X: 10, Y: 10,
			Children: []NestedNode{{ID: 3, Label: "b", X: 20, Y: 20}},
		}},
	})
}

func ids(nodes []Node) []NodeID {
	out := make([]NodeID, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func idSet(list []NodeID) map[NodeID]bool {
	m := make(map[NodeID]bool, len(list))
	for _, id := range list {
		m[id] = true
	}
	return m
}

func mustNode(t interface{ Fatalf(string, ...any) }, tree FlatTree, id NodeID) Node {
	n, ok := tree.Node(id)
	if !ok {
		t.Fatalf("node %d missing", id)
	}
	return n
}

type recordingRenderer struct {
	edges []Line
	nodes []NodeView
	order []string
}

func (r *recordingRenderer) DrawEdge(l Line) {
	r.edges = append(r.edges, l)
	r.order = append(r.order, "edge")
}

func (r *recordingRenderer) DrawNode(n NodeView) {
	r.nodes = append(r.nodes, n)
	r.order = append(r.order, "node")
}
