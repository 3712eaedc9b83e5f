// Package interact applies pointer and element driven forces to particles.
package interact

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/particle"
)

// Status is the pointer tracker state
type Status int

const (
	StatusNone Status = iota
	StatusMove
	StatusLeave
)

// Mouse is the pointer tracker. Positions are in canvas pixels.
type Mouse struct {
	Position      *r2.Vec
	ClickPosition *r2.Vec
	Status        Status
}

// Move records a pointer move inside the canvas
func (m *Mouse) Move(x, y float64) {
	p := geom.Vec(x, y)
	m.Position = &p
	m.Status = StatusMove
}

// Leave records the pointer leaving the canvas
func (m *Mouse) Leave() {
	m.Position = nil
	m.Status = StatusLeave
}

// Click records a click position
func (m *Mouse) Click(x, y float64) {
	p := geom.Vec(x, y)
	m.ClickPosition = &p
}

// Element is a laid out page element. Box is in CSS pixels and must reflect
// live layout on every call.
type Element interface {
	Box() geom.Rectangle
	Matches(selector string) bool
}

// ElementLocator finds elements by CSS selector
type ElementLocator interface {
	QuerySelectorAll(selector string) []Element
}

// Index answers region queries over the current particle positions
type Index interface {
	Query(region geom.Region, pred func(*particle.Particle) bool) []*particle.Particle
}

// Retina holds pixel ratio scaled distances, computed once by Init
type Retina struct {
	PixelRatio          float64
	RepulseModeDistance float64
}

// Container bundles the collaborators an interactor reads each tick
type Container struct {
	Options *options.Options
	Mouse   *Mouse
	Layout  ElementLocator
	Index   Index
	Retina  Retina
}

// NewContainer wires a container; Retina.PixelRatio comes from the canvas options
func NewContainer(o *options.Options, mouse *Mouse, layout ElementLocator, index Index) *Container {
	ratio := o.Canvas.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	if mouse == nil {
		mouse = &Mouse{}
	}
	return &Container{
		Options: o,
		Mouse:   mouse,
		Layout:  layout,
		Index:   index,
		Retina:  Retina{PixelRatio: ratio},
	}
}
