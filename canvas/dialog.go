package canvas

import "unicode"

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogEditLabel
	dialogAddChild
)

func (k dialogKind) title() string {
	switch k {
	case dialogEditLabel:
		return "edit label"
	case dialogAddChild:
		return "add child"
	}
	return ""
}

// dialog is the single-line label prompt.
type dialog struct {
	kind  dialogKind
	value []rune
}

func (d *dialog) open() bool { return d.kind != dialogNone }

func (d *dialog) typeRunes(rs []rune) {
	for _, r := range rs {
		if unicode.IsPrint(r) {
			d.value = append(d.value, r)
		}
	}
}

func (d *dialog) backspace() {
	if len(d.value) > 0 {
		d.value = d.value[:len(d.value)-1]
	}
}

func (g *Game) openDialog(kind dialogKind) {
	g.dialog = dialog{kind: kind}
	if kind == dialogEditLabel {
		if id, ok := g.editor.Selected(); ok {
			if n, ok := g.editor.Tree().Node(id); ok {
				g.dialog.value = []rune(n.Label)
			}
		}
	}
	g.editor.CloseMenu()
}

func (g *Game) closeDialog() {
	g.dialog = dialog{}
}

// submitDialog applies the prompt. On failure the dialog stays open and the
// editor's message is shown.
func (g *Game) submitDialog() {
	label := string(g.dialog.value)
	var err error
	switch g.dialog.kind {
	case dialogEditLabel:
		err = g.editor.EditLabel(label)
	case dialogAddChild:
		_, err = g.editor.AddChild(label)
	}
	if err != nil {
		return
	}
	g.closeDialog()
}

// dialogKeys feeds one tick of keyboard input to the open dialog.
func (g *Game) dialogKeys(chars []rune, enter, escape, backspace bool) {
	switch {
	case escape:
		g.closeDialog()
	case enter:
		g.submitDialog()
	case backspace:
		g.dialog.backspace()
	default:
		g.dialog.typeRunes(chars)
	}
}
