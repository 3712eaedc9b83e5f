// Package palette resolves configured colours to RGB values and the
// "rgba(...)" style strings drawing contexts expect.
package palette

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Random is the colour value that picks a fresh random colour
const Random = "random"

// RGB is an 8-bit colour without alpha
type RGB struct {
	R, G, B uint8
}

// Style is a resolved fill or stroke style
type Style struct {
	RGB
	Alpha float64
}

// String renders the canvas style string
func (s Style) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", s.R, s.G, s.B, formatAlpha(s.Alpha))
}

// RGBA implements color.Color with premultiplied channels
func (s Style) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: s.R, G: s.G, B: s.B, A: uint8(clamp01(s.Alpha)*255 + 0.5)}.RGBA()
}

// StyleFromRGB pairs a colour with an opacity
func StyleFromRGB(c RGB, opacity float64) Style {
	return Style{RGB: c, Alpha: clamp01(opacity)}
}

// Opaque returns the style with full opacity
func Opaque(c RGB) Style {
	return Style{RGB: c, Alpha: 1}
}

// Parse resolves a hex colour ("#rgb" or "#rrggbb") or "random"
func Parse(value string, rng *rand.Rand) (RGB, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return RGB{}, false
	}
	if strings.EqualFold(value, Random) {
		return randomRGB(rng), true
	}
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	if len(value) == 4 {
		value = "#" + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2) + strings.Repeat(value[3:4], 2)
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

// Hue returns a fully saturated colour at angle h (degrees)
func Hue(h float64) RGB {
	r, g, b := colorful.Hsv(h, 1, 1).RGB255()
	return RGB{R: r, G: g, B: b}
}

func randomRGB(rng *rand.Rand) RGB {
	var h float64
	if rng != nil {
		h = rng.Float64() * 360
	} else {
		h = rand.Float64() * 360
	}
	r, g, b := colorful.Hsv(h, 0.7, 0.95).RGB255()
	return RGB{R: r, G: g, B: b}
}

func formatAlpha(a float64) string {
	s := fmt.Sprintf("%.3f", clamp01(a))
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "" {
		return "0"
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
