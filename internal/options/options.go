// Package options holds the already-merged settings consumed by the
// interaction, link and particle code.
package options

import (
	"slices"

	"github.com/olivierh59500/particle-links/internal/geom"
)

// ModeRepulse is the mode name listed in event mode lists
const ModeRepulse = "repulse"

// DivType is the query shape used for element triggers
type DivType string

const (
	DivCircle    DivType = "circle"
	DivRectangle DivType = "rectangle"
)

// Options is the full settings tree
type Options struct {
	Canvas         CanvasOptions         `toml:"canvas" json:"canvas"`
	Particles      ParticlesOptions      `toml:"particles" json:"particles"`
	Interactivity  Interactivity         `toml:"interactivity" json:"interactivity"`
	Links          Links                 `toml:"links" json:"links"`
	BackgroundMask BackgroundMaskOptions `toml:"background_mask" json:"background_mask"`
	Layout         LayoutOptions         `toml:"layout" json:"layout"`
}

// CanvasOptions sizes the drawing surface
type CanvasOptions struct {
	Width      float64 `toml:"width" json:"width"`
	Height     float64 `toml:"height" json:"height"`
	PixelRatio float64 `toml:"pixel_ratio" json:"pixel_ratio"`
	Background string  `toml:"background" json:"background"`
}

// ParticlesOptions drives the demo particle manager
type ParticlesOptions struct {
	Number  int            `toml:"number" json:"number"`
	Size    float64        `toml:"size" json:"size"`
	Speed   float64        `toml:"speed" json:"speed"`
	Color   []string       `toml:"color" json:"color"`
	Seed    int64          `toml:"seed" json:"seed"`
	Noise   NoiseOptions   `toml:"noise" json:"noise"`
	Release ReleaseOptions `toml:"release" json:"release"`
}

// NoiseOptions configures perlin drift
type NoiseOptions struct {
	Enable   bool    `toml:"enable" json:"enable"`
	Scale    float64 `toml:"scale" json:"scale"`
	Strength float64 `toml:"strength" json:"strength"`
}

// ReleaseOptions configures the spring that brings particles back after repulse
type ReleaseOptions struct {
	Enable    bool    `toml:"enable" json:"enable"`
	Frequency float64 `toml:"frequency" json:"frequency"`
	Damping   float64 `toml:"damping" json:"damping"`
}

// Interactivity groups events and modes. Particles may carry their own copy.
type Interactivity struct {
	Events Events `toml:"events" json:"events"`
	Modes  Modes  `toml:"modes" json:"modes"`
}

// Events lists which inputs trigger which modes
type Events struct {
	OnHover ClickEvent `toml:"on_hover" json:"on_hover"`
	OnClick ClickEvent `toml:"on_click" json:"on_click"`
	OnDiv   []DivEvent `toml:"on_div" json:"on_div"`
}

// ClickEvent is shared by hover and click
type ClickEvent struct {
	Enable bool     `toml:"enable" json:"enable"`
	Mode   []string `toml:"mode" json:"mode"`
}

// HasMode reports whether mode is listed
func (e ClickEvent) HasMode(mode string) bool {
	return hasMode(e.Mode, mode)
}

// DivEvent binds CSS selectors to modes
type DivEvent struct {
	Selectors []string `toml:"selectors" json:"selectors"`
	Enable    bool     `toml:"enable" json:"enable"`
	Mode      []string `toml:"mode" json:"mode"`
	Type      DivType  `toml:"type" json:"type"`
}

// HasMode reports whether mode is listed
func (e DivEvent) HasMode(mode string) bool {
	return hasMode(e.Mode, mode)
}

// Modes holds per-mode parameters
type Modes struct {
	Repulse *Repulse `toml:"repulse" json:"repulse,omitempty"`
}

// Repulse parameters. Distance is in CSS pixels before retina scaling.
type Repulse struct {
	Distance float64      `toml:"distance" json:"distance"`
	Duration float64      `toml:"duration" json:"duration"`
	Factor   float64      `toml:"factor" json:"factor"`
	Speed    float64      `toml:"speed" json:"speed"`
	MaxSpeed float64      `toml:"max_speed" json:"max_speed"`
	Easing   geom.Easing  `toml:"easing" json:"easing"`
	Divs     []RepulseDiv `toml:"divs" json:"divs"`
}

// RepulseDiv overrides repulse parameters for matching elements
type RepulseDiv struct {
	Selectors []string `toml:"selectors" json:"selectors"`
	Speed     float64  `toml:"speed" json:"speed"`
}

// Links parameters
type Links struct {
	Enable    bool       `toml:"enable" json:"enable"`
	Distance  float64    `toml:"distance" json:"distance"`
	Width     float64    `toml:"width" json:"width"`
	Color     string     `toml:"color" json:"color"`
	Opacity   float64    `toml:"opacity" json:"opacity"`
	Warp      bool       `toml:"warp" json:"warp"`
	Shadow    LinkShadow `toml:"shadow" json:"shadow"`
	Triangles Triangles  `toml:"triangles" json:"triangles"`
}

// LinkShadow is applied to link strokes when enabled
type LinkShadow struct {
	Enable bool    `toml:"enable" json:"enable"`
	Blur   float64 `toml:"blur" json:"blur"`
	Color  string  `toml:"color" json:"color"`
}

// Triangles fills linked triads. Zero opacity means half the link opacity.
type Triangles struct {
	Enable  bool    `toml:"enable" json:"enable"`
	Color   string  `toml:"color" json:"color"`
	Opacity float64 `toml:"opacity" json:"opacity"`
}

// BackgroundMaskOptions switches the composite operation used for drawing
type BackgroundMaskOptions struct {
	Enable    bool   `toml:"enable" json:"enable"`
	Composite string `toml:"composite" json:"composite"`
}

// LayoutOptions is the element document used by div triggers
type LayoutOptions struct {
	HTML string `toml:"html" json:"html"`
}

// Default returns the default settings
func Default() *Options {
	return &Options{
		Canvas: CanvasOptions{Width: 800, Height: 600, PixelRatio: 1, Background: "#0b0d17"},
		Particles: ParticlesOptions{
			Number:  400,
			Size:    2,
			Speed:   1,
			Color:   []string{"#ff595e", "#ffca3a", "#8ac926", "#1982c4", "#6a4c93"},
			Noise:   NoiseOptions{Enable: true, Scale: 0.005, Strength: 0.4},
			Release: ReleaseOptions{Enable: true, Frequency: 4, Damping: 0.6},
		},
		Interactivity: Interactivity{
			Events: Events{
				OnHover: ClickEvent{Enable: true, Mode: []string{ModeRepulse}},
				OnClick: ClickEvent{Enable: true, Mode: []string{ModeRepulse}},
				OnDiv: []DivEvent{
					{Selectors: []string{".repulse"}, Enable: true, Mode: []string{ModeRepulse}, Type: DivCircle},
					{Selectors: []string{".repulse-box"}, Enable: true, Mode: []string{ModeRepulse}, Type: DivRectangle},
				},
			},
			Modes: Modes{Repulse: DefaultRepulse()},
		},
		Links: Links{
			Enable:   true,
			Distance: 100,
			Width:    1,
			Color:    "#ffffff",
			Opacity:  0.4,
			Shadow:   LinkShadow{Blur: 5, Color: "#00ff00"},
		},
		BackgroundMask: BackgroundMaskOptions{Composite: "destination-out"},
		Layout: LayoutOptions{HTML: `<div id="logo" class="repulse" data-left="120" data-top="80" data-width="120" data-height="60">logo</div>
<div id="panel" class="repulse-box" data-left="520" data-top="400" data-width="160" data-height="90">panel</div>`},
	}
}

// DefaultRepulse mirrors the stock repulse mode
func DefaultRepulse() *Repulse {
	return &Repulse{
		Distance: 200,
		Duration: 0.4,
		Factor:   100,
		Speed:    1,
		MaxSpeed: 50,
		Easing:   geom.EaseOutQuad,
	}
}

func hasMode(modes []string, mode string) bool {
	return slices.Contains(modes, mode)
}
