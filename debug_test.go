package mindpaper

import (
	"bytes"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(nil) })
	return &buf
}

func deepTree(depth int) FlatTree {
	leaf := NestedNode{ID: NodeID(depth), Label: "leaf"}
	for id := depth - 1; id >= 1; id-- {
		leaf = NestedNode{ID: NodeID(id), Label: "n", Children: []NestedNode{leaf}}
	}
	return Flatten(leaf)
}

func TestDebugModeLogsEdits(t *testing.T) {
	buf := captureLog(t)
	ed := newTestEditor(sampleFlat())
	ed.SetEditMode(true)
	ed.Select(3)

	if _, err := ed.AddChild("quiet"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("logged without debug mode: %q", buf.String())
	}

	ed.SetDebugMode(true)
	ed.Select(3)
	if _, err := ed.AddChild("loud"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[mindpaper] ") || !strings.Contains(buf.String(), "under 3") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestDebugModeLogsFailures(t *testing.T) {
	buf := captureLog(t)
	ed := newTestEditor(sampleFlat())
	ed.SetDebugMode(true)
	if err := ed.DeleteSelected(); err == nil {
		t.Fatal("delete outside edit mode succeeded")
	}
	if !strings.Contains(buf.String(), "action failed") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestDebugCheckTreeWarnsOnDepth(t *testing.T) {
	buf := captureLog(t)
	debugCheckTree(deepTree(debugMaxTreeDepth))
	if buf.Len() != 0 {
		t.Fatalf("warned at the threshold: %q", buf.String())
	}
	debugCheckTree(deepTree(debugMaxTreeDepth + 1))
	if !strings.Contains(buf.String(), "exceeds") {
		t.Errorf("log = %q, want a depth warning", buf.String())
	}
}

func TestDebugCheckTreeWarnsOnInvalid(t *testing.T) {
	buf := captureLog(t)
	debugCheckTree(Flatten(NestedNode{ID: 1, Children: []NestedNode{{ID: 1}}}))
	if !strings.Contains(buf.String(), "invalid tree") {
		t.Errorf("log = %q", buf.String())
	}
}
