package mindpaper

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewportTween animates center and zoom toward a target.
type viewportTween struct {
	tweenX, tweenY, tweenZ *gween.Tween
	doneX, doneY, doneZ    bool
}

func newViewportTween(from Viewport, x, y, zoom float64, duration float32, easeFn ease.TweenFunc) *viewportTween {
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	return &viewportTween{
		tweenX: gween.New(float32(from.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(from.Y), float32(y), duration, easeFn),
		tweenZ: gween.New(float32(from.Zoom), float32(zoom), duration, easeFn),
	}
}

// update advances the tween by dt seconds and reports whether it finished.
func (a *viewportTween) update(v Viewport, dt float32) (Viewport, bool) {
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		v.X = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		v.Y = float64(val)
		a.doneY = done
	}
	if !a.doneZ {
		val, done := a.tweenZ.Update(dt)
		v = v.withZoom(float64(val))
		a.doneZ = done
	}
	return v, a.doneX && a.doneY && a.doneZ
}
