package geom

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Easing names a falloff curve
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseInQuad     Easing = "ease-in-quad"
	EaseOutQuad    Easing = "ease-out-quad"
	EaseInOutQuad  Easing = "ease-in-out-quad"
	EaseInCubic    Easing = "ease-in-cubic"
	EaseOutCubic   Easing = "ease-out-cubic"
	EaseInOutCubic Easing = "ease-in-out-cubic"
	EaseInQuart    Easing = "ease-in-quart"
	EaseOutQuart   Easing = "ease-out-quart"
	EaseInOutQuart Easing = "ease-in-out-quart"
	EaseInQuint    Easing = "ease-in-quint"
	EaseOutQuint   Easing = "ease-out-quint"
	EaseInOutQuint Easing = "ease-in-out-quint"
	EaseInExpo     Easing = "ease-in-expo"
	EaseOutExpo    Easing = "ease-out-expo"
	EaseInOutExpo  Easing = "ease-in-out-expo"
	EaseInSine     Easing = "ease-in-sine"
	EaseOutSine    Easing = "ease-out-sine"
	EaseInOutSine  Easing = "ease-in-out-sine"
	EaseInCirc     Easing = "ease-in-circ"
	EaseOutCirc    Easing = "ease-out-circ"
	EaseInOutCirc  Easing = "ease-in-out-circ"
	EaseInBack     Easing = "ease-in-back"
	EaseOutBack    Easing = "ease-out-back"
	EaseInOutBack  Easing = "ease-in-out-back"
)

var easings = map[Easing]ease.TweenFunc{
	EaseLinear:     ease.Linear,
	EaseInQuad:     ease.InQuad,
	EaseOutQuad:    ease.OutQuad,
	EaseInOutQuad:  ease.InOutQuad,
	EaseInCubic:    ease.InCubic,
	EaseOutCubic:   ease.OutCubic,
	EaseInOutCubic: ease.InOutCubic,
	EaseInQuart:    ease.InQuart,
	EaseOutQuart:   ease.OutQuart,
	EaseInOutQuart: ease.InOutQuart,
	EaseInQuint:    ease.InQuint,
	EaseOutQuint:   ease.OutQuint,
	EaseInOutQuint: ease.InOutQuint,
	EaseInExpo:     ease.InExpo,
	EaseOutExpo:    ease.OutExpo,
	EaseInOutExpo:  ease.InOutExpo,
	EaseInSine:     ease.InSine,
	EaseOutSine:    ease.OutSine,
	EaseInOutSine:  ease.InOutSine,
	EaseInCirc:     ease.InCirc,
	EaseOutCirc:    ease.OutCirc,
	EaseInOutCirc:  ease.InOutCirc,
	EaseInBack:     ease.InBack,
	EaseOutBack:    ease.OutBack,
	EaseInOutBack:  ease.InOutBack,
}

// Known reports whether e names a registered curve
func (e Easing) Known() bool {
	_, ok := easings[e]
	return ok
}

// Ease evaluates the curve at t over a unit tween. Input is clamped to [0,1]
// so the result is always finite; unknown names behave as linear.
func Ease(t float64, e Easing) float64 {
	if math.IsNaN(t) {
		return 0
	}
	t = Clamp(t, 0, 1)
	fn, ok := easings[e]
	if !ok || e == EaseLinear {
		// linear stays exact instead of going through float32
		return t
	}
	return float64(fn(float32(t), 0, 1, 1))
}
