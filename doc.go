// Package mindpaper is the core of an interactive mind-map canvas.
//
// It holds no rendering or windowing code. The canvas package drives it
// from [Ebitengine]; the export package draws it to PNG and SVG; the notes
// package talks to the remote note service.
//
// # Tree model
//
// A mind map is a [FlatTree]: an ordered list of [Node] values linked by
// parent ids, with exactly one root. Trees are values; every operation
// returns a new tree and leaves the old snapshot intact.
//
//	t := mindpaper.Flatten(mindpaper.SampleTree())
//	t = t.MoveSubtree(2, 10, 0)        // node 2 and its descendants
//	t, err := t.Reparent(7, 2)          // *CycleError if 2 is below 7
//
// Attribute operations ([FlatTree.Rename], [FlatTree.ToggleExpanded],
// [FlatTree.MoveSubtree]) ignore unknown ids. Structural operations
// ([FlatTree.AddChild], [FlatTree.DeleteSubtree], [FlatTree.Reparent])
// report them with [*NotFoundError].
//
// # Visibility
//
// Only the root and nodes whose every ancestor is expanded are drawn. An
// edge is drawn when both endpoints are. [Resolve] computes the whole
// drawable layer in one pass.
//
// # Viewport
//
// [Viewport] maps canvas space to the screen. Zoom is canvas units per
// pixel, so values above 1 are zoomed out. Wheel and pinch zoom keep the
// canvas point under the anchor fixed:
//
//	v := mindpaper.NewViewport(800, 600)
//	v = v.WheelZoom(-1, 400, 300) // zoom in one step at the center
//
// # Gestures
//
// [Dispatcher] turns raw [PointerEvent] values into pans, pinch zooms, node
// drags, taps, double taps, long presses and context menus. Long press and
// double tap are driven by a [TimerQueue] that only advances when the owner
// calls [TimerQueue.Advance], so there are no background goroutines.
//
// [Editor] wires a dispatcher to a tree, a viewport, the selection and the
// node menu:
//
//	ed := mindpaper.NewEditor(t, mindpaper.EditorConfig{ScreenW: 800, ScreenH: 600})
//	ed.SetEditMode(true)
//	ed.HandlePointer(ev)
//	ed.Update(time.Now(), 1.0/60)
//	ed.Draw(renderer)
//
// # Scripted input
//
// [Editor.InjectTap], [Editor.InjectDrag], [Editor.InjectPinch] and friends
// queue synthetic input that is consumed one event per Update. A JSON
// script loaded with [LoadTestScript] sequences the same actions:
//
//	{"steps": [
//	  {"action": "editMode", "enabled": true},
//	  {"action": "drag", "fromX": 300, "fromY": 100, "toX": 340, "toY": 140, "frames": 5},
//	  {"action": "wheel", "x": 400, "y": 300, "deltaY": -1}
//	]}
//
// [Ebitengine]: https://ebitengine.org
package mindpaper
