package mindpaper

import (
	"fmt"

	"github.com/goccy/go-json"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Pointer string  `json:"pointer,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	From    float64 `json:"from,omitempty"`
	To      float64 `json:"to,omitempty"`
	DeltaY  float64 `json:"deltaY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"tap": true, "doubleClick": true, "contextMenu": true, "drag": true,
	"pinch": true, "wheel": true, "wait": true, "editMode": true,
	"expandAll": true, "collapseAll": true, "resetZoom": true,
}

// TestRunner sequences injected input across frames for scripted
// interaction tests. Attach to an Editor via SetTestRunner.
//
// Timers only advance with the clock passed to Editor.Update, so "wait"
// steps cover long presses and double-tap windows only when the caller's
// clock moves between frames.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Editor via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parsePointerType(st.Pointer); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func parsePointerType(s string) (PointerType, error) {
	switch s {
	case "", "mouse":
		return PointerMouse, nil
	case "touch":
		return PointerTouch, nil
	case "pen":
		return PointerPen, nil
	}
	return PointerMouse, fmt.Errorf("unknown pointer type %q", s)
}

// SetTestRunner attaches a TestRunner to the editor. The runner steps once
// per Update, before injected input is consumed.
func (e *Editor) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Editor.Update.
func (r *TestRunner) step(e *Editor) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	ptype, _ := parsePointerType(st.Pointer)

	switch st.Action {
	case "tap":
		e.InjectTap(ptype, st.X, st.Y)
	case "doubleClick":
		e.InjectDoubleClick(st.X, st.Y)
	case "contextMenu":
		e.InjectContextMenu(st.X, st.Y)
	case "drag":
		e.InjectDrag(ptype, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		e.InjectPinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "wheel":
		e.InjectWheel(st.X, st.Y, st.DeltaY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "editMode":
		if st.Enabled == nil {
			e.ToggleEditMode()
		} else {
			e.SetEditMode(*st.Enabled)
		}
	case "expandAll":
		e.ExpandAll()
	case "collapseAll":
		e.CollapseAll()
	case "resetZoom":
		e.ResetZoom()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
