package canvas

import (
	"strings"

	"github.com/phanxgames/mindpaper"
)

const (
	toolbarX      = 8.0
	toolbarY      = 8.0
	buttonH       = 28.0
	buttonPadX    = 10.0
	buttonGap     = 6.0
	menuItemW     = 120.0
	menuItemH     = 24.0
	dialogW       = 320.0
	dialogH       = 132.0
	dialogButtonW = 80.0
)

// control is a clickable piece of UI chrome. Controls are rebuilt every
// frame from the editor state, so they are matched by label.
type control struct {
	label string
	rect  mindpaper.Rect
	run   func(g *Game)
	// menu marks node menu items.
	menu bool
}

func (g *Game) buttonWidth(label string) float64 {
	w, _ := g.font.MeasureString(label)
	return w + 2*buttonPadX
}

// toolbar returns the buttons along the top edge.
func (g *Game) toolbar() []control {
	var out []control
	x := toolbarX
	add := func(label string, run func(g *Game)) {
		w := g.buttonWidth(label)
		out = append(out, control{label: label, rect: mindpaper.Rect{X: x, Y: toolbarY, Width: w, Height: buttonH}, run: run})
		x += w + buttonGap
	}

	ed := g.editor
	if ed.EditMode() {
		add("save", func(g *Game) { g.editor.Save() })
	} else {
		add("edit", func(g *Game) { g.editor.SetEditMode(true) })
	}
	add("expand all", func(g *Game) { g.editor.ExpandAll() })
	add("collapse all", func(g *Game) { g.editor.CollapseAll() })
	if ed.Zoomed() {
		add("reset zoom", func(g *Game) { g.editor.AnimateReset(resetDuration) })
	}
	if ed.ChoosingParent() {
		add("cancel reparent", func(g *Game) { g.editor.CancelReparent() })
	}
	return out
}

// menuItems returns the node menu entries, or nil when the menu is closed.
func (g *Game) menuItems() []control {
	m := g.editor.Menu()
	if !m.Open {
		return nil
	}
	items := []struct {
		label string
		run   func(g *Game)
	}{
		{"edit", func(g *Game) { g.openDialog(dialogEditLabel) }},
		{"add child", func(g *Game) { g.openDialog(dialogAddChild) }},
		{"reparent", func(g *Game) { g.editor.BeginReparent() }},
		{"delete", func(g *Game) { g.editor.DeleteSelected() }},
		{"copy label", (*Game).copyLabel},
	}
	out := make([]control, len(items))
	for i, it := range items {
		out[i] = control{
			label: it.label,
			rect: mindpaper.Rect{
				X: m.Position.X, Y: m.Position.Y + float64(i)*menuItemH,
				Width: menuItemW, Height: menuItemH,
			},
			run:  it.run,
			menu: true,
		}
	}
	return out
}

// dialogRect returns the dialog box centered on the screen.
func (g *Game) dialogRect() mindpaper.Rect {
	return mindpaper.Rect{
		X:      (float64(g.screenW) - dialogW) / 2,
		Y:      (float64(g.screenH) - dialogH) / 2,
		Width:  dialogW,
		Height: dialogH,
	}
}

func (g *Game) dialogInputRect() mindpaper.Rect {
	d := g.dialogRect()
	return mindpaper.Rect{X: d.X + 12, Y: d.Y + 40, Width: d.Width - 24, Height: 28}
}

func (g *Game) dialogButtons() []control {
	d := g.dialogRect()
	y := d.Y + d.Height - buttonH - 12
	return []control{
		{label: "cancel", rect: mindpaper.Rect{X: d.Right() - 2*dialogButtonW - 18, Y: y, Width: dialogButtonW, Height: buttonH}, run: (*Game).closeDialog},
		{label: "confirm", rect: mindpaper.Rect{X: d.Right() - dialogButtonW - 12, Y: y, Width: dialogButtonW, Height: buttonH}, run: (*Game).submitDialog},
	}
}

// controls returns every active control, topmost first. While a dialog is
// open only its buttons are live.
func (g *Game) controls() []control {
	if g.dialog.open() {
		return g.dialogButtons()
	}
	return append(g.menuItems(), g.toolbar()...)
}

func (g *Game) controlAt(x, y float64) (control, bool) {
	for _, c := range g.controls() {
		if c.rect.Contains(x, y) {
			return c, true
		}
	}
	return control{}, false
}

// overChrome reports whether the screen point is covered by UI chrome.
func (g *Game) overChrome(x, y float64) bool {
	if g.dialog.open() {
		return true
	}
	_, ok := g.controlAt(x, y)
	return ok
}

func (g *Game) copyLabel() {
	id, ok := g.editor.Selected()
	if !ok {
		return
	}
	n, ok := g.editor.Tree().Node(id)
	if !ok {
		return
	}
	if err := clipboardWrite(n.Label); err != nil {
		g.toast("Could not copy: " + err.Error())
		return
	}
	g.toast("Copied \"" + truncate(n.Label, 24) + "\"")
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
