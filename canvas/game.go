// Package canvas is the Ebitengine front end of mindpaper: it opens a
// window, feeds mouse, touch and wheel input to a mindpaper.Editor and draws
// the drawable layer with the toolbar, node menu and label dialog on top.
package canvas

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/mindpaper"
	"github.com/phanxgames/mindpaper/internal/watch"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	resetDuration = 0.3
	focusDuration = 0.4
	toastDuration = 3 * time.Second
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// Config configures the canvas window.
type Config struct {
	Width, Height int
	Title         string
	ShowFPS       bool
	Debug         bool
	Theme         mindpaper.Theme
	Gesture       mindpaper.GestureConfig
	ZoomStep      float64
	MinZoom       float64
	MaxZoom       float64
	// FontSize is the label size in canvas units. Zero means 13.
	FontSize float64
	// EditMode starts the editor in edit mode.
	EditMode bool
	// Script is an optional JSON input script run against the editor.
	Script []byte
	// Reloads, when set, replaces the tree with each successfully reloaded
	// file.
	Reloads <-chan watch.Reload
	// OnChange is called after every tree change.
	OnChange func(mindpaper.FlatTree)
}

type toast struct {
	text  string
	until time.Time
}

// Game implements ebiten.Game around a mindpaper.Editor.
type Game struct {
	cfg    Config
	editor *mindpaper.Editor
	font   *labelFont
	input  *translator
	fps    fpsOverlay
	runner *mindpaper.TestRunner

	dialog   dialog
	pressed  string
	pressID  int
	hasPress bool

	toasts   []toast
	touchBuf []ebiten.TouchID
	screenW  int
	screenH  int
	last     time.Time
	now      func() time.Time
}

// New builds a game for tree. It does not open a window; see Run.
func New(tree mindpaper.FlatTree, cfg Config) (*Game, error) {
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 13
	}
	if cfg.Theme == (mindpaper.Theme{}) {
		cfg.Theme = mindpaper.DefaultTheme()
	}
	font, err := loadLabelFont(goregular.TTF, cfg.FontSize)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		font:    font,
		input:   newTranslator(),
		screenW: cfg.Width,
		screenH: cfg.Height,
		now:     time.Now,
	}
	g.last = g.now()
	g.editor = mindpaper.NewEditor(tree, mindpaper.EditorConfig{
		ScreenW:  float64(cfg.Width),
		ScreenH:  float64(cfg.Height),
		Gesture:  cfg.Gesture,
		ZoomStep: cfg.ZoomStep,
		MinZoom:  cfg.MinZoom,
		MaxZoom:  cfg.MaxZoom,
		Measurer: font,
		Now:      g.last,
	})
	g.editor.SetDebugMode(cfg.Debug)
	g.editor.SetEditMode(cfg.EditMode)
	if cfg.OnChange != nil {
		g.editor.OnChange(cfg.OnChange)
	}
	if len(cfg.Script) > 0 {
		runner, err := mindpaper.LoadTestScript(cfg.Script)
		if err != nil {
			return nil, err
		}
		g.runner = runner
		g.editor.SetTestRunner(runner)
	}
	return g, nil
}

// Editor returns the editor driven by the game.
func (g *Game) Editor() *mindpaper.Editor { return g.editor }

// ScriptDone reports whether the configured input script has finished. It
// is true when no script was given.
func (g *Game) ScriptDone() bool { return g.runner == nil || g.runner.Done() }

// Close releases the editor's timers.
func (g *Game) Close() { g.editor.Close() }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	now := g.now()
	g.keyboard()

	var in frameInput
	in, g.touchBuf = readFrame(now, g.touchBuf)
	g.step(now, in)

	if g.cfg.ShowFPS {
		g.fps.update(float64(now.Sub(g.last)) / float64(time.Second))
	}
	g.last = now
	return nil
}

// step advances one tick with already-sampled input.
func (g *Game) step(now time.Time, in frameInput) {
	g.drainReloads()
	for _, ev := range g.input.translate(in) {
		g.route(ev)
	}
	dt := float32(now.Sub(g.last).Seconds())
	if dt < 0 {
		dt = 0
	}
	g.editor.Update(now, dt)
	g.collectMessages(now)
}

func (g *Game) drainReloads() {
	if g.cfg.Reloads == nil {
		return
	}
	for {
		select {
		case r := <-g.cfg.Reloads:
			if r.Err != nil {
				g.toast("Reload failed: " + r.Err.Error())
				continue
			}
			g.editor.LoadTree(r.Tree)
			g.toast("Reloaded")
		default:
			return
		}
	}
}

// route resolves the event's target and hands it to the editor. Presses on
// chrome are remembered so the matching release can activate the control.
func (g *Game) route(ev mindpaper.PointerEvent) {
	switch {
	case g.overChrome(ev.X, ev.Y):
		ev.Target = mindpaper.ChromeTarget()
	default:
		ev.Target = g.editor.HitTest(ev.X, ev.Y)
	}

	switch ev.Kind {
	case mindpaper.PointerDown:
		if c, ok := g.controlAt(ev.X, ev.Y); ok && !g.hasPress {
			g.pressed, g.pressID, g.hasPress = c.label, ev.PointerID, true
		}
	case mindpaper.PointerUp:
		if g.hasPress && ev.PointerID == g.pressID {
			g.hasPress = false
			if c, ok := g.controlAt(ev.X, ev.Y); ok && c.label == g.pressed {
				c.run(g)
				if c.menu {
					g.editor.CloseMenu()
				}
			}
		}
	case mindpaper.PointerCancel:
		if g.hasPress && ev.PointerID == g.pressID {
			g.hasPress = false
		}
	}
	g.editor.HandlePointer(ev)
}

func (g *Game) keyboard() {
	if g.dialog.open() {
		g.dialogKeys(
			ebiten.AppendInputChars(nil),
			inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
			inpututil.IsKeyJustPressed(ebiten.KeyEscape),
			inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || repeating(ebiten.KeyBackspace),
		)
		return
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	for _, k := range []ebiten.Key{
		ebiten.KeyE, ebiten.KeyS, ebiten.KeyC, ebiten.KeyF, ebiten.Key0,
		ebiten.KeyDelete, ebiten.KeyEscape, ebiten.KeyF3,
	} {
		if inpututil.IsKeyJustPressed(k) {
			g.shortcut(k, ctrl)
		}
	}
}

// repeating reports key repeat after the usual half-second hold.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d > 30 && d%3 == 0
}

func (g *Game) shortcut(k ebiten.Key, ctrl bool) {
	ed := g.editor
	switch {
	case k == ebiten.KeyS && ctrl:
		ed.Save()
	case k == ebiten.KeyC && ctrl:
		g.copyLabel()
	case ctrl:
		return
	case k == ebiten.KeyE:
		ed.ToggleEditMode()
	case k == ebiten.KeyF:
		if id, ok := ed.Selected(); ok {
			ed.FocusNode(id, focusDuration)
		}
	case k == ebiten.Key0:
		ed.AnimateReset(resetDuration)
	case k == ebiten.KeyDelete:
		ed.DeleteSelected()
	case k == ebiten.KeyEscape:
		ed.CloseMenu()
		ed.CancelReparent()
	case k == ebiten.KeyF3:
		g.cfg.ShowFPS = !g.cfg.ShowFPS
	}
}

func (g *Game) toast(s string) {
	g.toasts = append(g.toasts, toast{text: s, until: g.now().Add(toastDuration)})
}

// collectMessages moves editor messages into toasts and drops expired ones.
func (g *Game) collectMessages(now time.Time) {
	for _, m := range g.editor.Messages() {
		g.toasts = append(g.toasts, toast{text: m, until: now.Add(toastDuration)})
	}
	g.editor.ClearMessages()
	kept := g.toasts[:0]
	for _, t := range g.toasts {
		if now.Before(t.until) {
			kept = append(kept, t)
		}
	}
	g.toasts = kept
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Theme.Background.RGBA())
	g.editor.Draw(newScreenRenderer(screen, g.editor.Viewport(), g.font, g.cfg.Theme))
	g.drawChrome(screen)
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The canvas uses the full window at one
// logical pixel per screen pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.editor.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// errScriptDone ends the game loop once a scripted run completes.
var errScriptDone = errors.New("canvas: script finished")

type scriptedGame struct {
	*Game
}

func (s scriptedGame) Update() error {
	if err := s.Game.Update(); err != nil {
		return err
	}
	if s.ScriptDone() {
		return errScriptDone
	}
	return nil
}

// Run opens the window and blocks until it is closed. With a script and
// exitAfterScript set, the window closes once the script finishes.
func Run(tree mindpaper.FlatTree, cfg Config, exitAfterScript bool) error {
	g, err := New(tree, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	title := cfg.Title
	if title == "" {
		title = "mindpaper"
	}
	ebiten.SetWindowSize(g.screenW, g.screenH)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	var game ebiten.Game = g
	if exitAfterScript && g.runner != nil {
		game = scriptedGame{g}
	}
	err = ebiten.RunGame(game)
	if errors.Is(err, errScriptDone) {
		return nil
	}
	return err
}
