// Package engine runs one headless tick at a time: interaction, particle
// lifecycle, index rebuild and link discovery, then draws onto any surface.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/interact"
	"github.com/olivierh59500/particle-links/internal/layout"
	"github.com/olivierh59500/particle-links/internal/links"
	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/palette"
	"github.com/olivierh59500/particle-links/internal/particle"
	"github.com/olivierh59500/particle-links/internal/render"
	"github.com/olivierh59500/particle-links/internal/spatial"
)

// Stats summarises the last tick
type Stats struct {
	Ticks     int
	Particles int
	Links     int
	Triangles int
}

// Engine owns every collaborator of the particle scene
type Engine struct {
	Options   *options.Options
	Mouse     *interact.Mouse
	Particles *particle.Manager
	Layout    *layout.Document

	grid      *spatial.Grid[*particle.Particle]
	container *interact.Container
	repulser  *interact.Repulser
	finder    *links.Finder

	background palette.RGB
	linkColour palette.RGB
	triColour  palette.RGB

	pairs  []links.Pair
	triads []links.Triad
	stats  Stats
}

// New builds an engine from o and spawns o.Particles.Number particles
func New(o *options.Options) (*Engine, error) {
	e := &Engine{Options: o, Mouse: &interact.Mouse{}}

	if o.Layout.HTML != "" {
		doc, err := layout.Parse(o.Layout.HTML)
		if err != nil {
			return nil, fmt.Errorf("engine layout: %w", err)
		}
		e.Layout = doc
	}

	size := geom.Size{Width: o.Canvas.Width, Height: o.Canvas.Height}
	e.Particles = particle.NewManager(o.Particles, size)
	e.grid = spatial.NewGrid[*particle.Particle](size, 1)

	var locator interact.ElementLocator
	if e.Layout != nil {
		locator = e.Layout
	}
	e.container = interact.NewContainer(o, e.Mouse, locator, e.grid)
	e.repulser = interact.NewRepulser(e.container)
	e.finder = &links.Finder{Index: e.grid, Warp: o.Links.Warp}

	if err := e.resolveColours(); err != nil {
		return nil, err
	}
	e.init()

	e.Particles.Spawn(o.Particles.Number)
	e.grid.Rebuild(e.Particles.Particles)
	return e, nil
}

// init derives everything that depends on the canvas size or pixel ratio
func (e *Engine) init() {
	e.repulser.Init()

	size := e.Particles.Size()
	maxDistance := e.Options.Links.Distance * e.container.Retina.PixelRatio
	e.finder.Size = size
	e.finder.MaxDistance = maxDistance
	e.finder.Warp = e.Options.Links.Warp

	cell := maxDistance
	if cell <= 0 {
		cell = e.container.Retina.RepulseModeDistance
	}
	e.grid.Resize(size, cell)
}

func (e *Engine) resolveColours() error {
	rng := rand.New(rand.NewSource(e.Options.Particles.Seed))

	bg, ok := palette.Parse(e.Options.Canvas.Background, rng)
	if !ok && e.Options.Canvas.Background != "" {
		return fmt.Errorf("engine: invalid background colour %q", e.Options.Canvas.Background)
	}
	e.background = bg

	link, ok := palette.Parse(e.Options.Links.Color, rng)
	if !ok {
		link = palette.RGB{R: 255, G: 255, B: 255}
	}
	e.linkColour = link

	tri, ok := palette.Parse(e.Options.Links.Triangles.Color, rng)
	if !ok {
		tri = link
	}
	e.triColour = tri
	return nil
}

// Resize changes the canvas size and re-bins the particles
func (e *Engine) Resize(width, height float64) {
	e.Options.Canvas.Width, e.Options.Canvas.Height = width, height
	e.Particles.Resize(geom.Size{Width: width, Height: height})
	e.init()
	e.grid.Rebuild(e.Particles.Particles)
}

// SetWarp toggles wrap-around links
func (e *Engine) SetWarp(warp bool) {
	e.Options.Links.Warp = warp
	e.finder.Warp = warp
}

// Click records a click and starts a click episode for every configured click mode
func (e *Engine) Click(x, y float64) {
	e.Mouse.Click(x, y)
	click := e.Options.Interactivity.Events.OnClick
	if !click.Enable {
		return
	}
	for _, mode := range click.Mode {
		e.repulser.HandleClickMode(mode)
	}
}

// Tick advances the scene by delta. Interaction reads the index built at the
// end of the previous tick; the index is rebuilt before links are searched.
// Displacements made during the tick are not re-binned until then, so a later
// trigger may miss a particle an earlier one pushed into another cell.
func (e *Engine) Tick(delta particle.Delta) {
	e.Particles.BeginTick()
	e.repulser.Interact(delta)
	e.Particles.Update(delta, e.repulser)
	e.grid.Rebuild(e.Particles.Particles)

	if e.Options.Links.Enable {
		e.pairs = e.finder.Pairs(e.Particles.Particles)
	} else {
		e.pairs = nil
	}
	if e.Options.Links.Enable && e.Options.Links.Triangles.Enable {
		e.triads = links.Triads(e.pairs)
	} else {
		e.triads = nil
	}

	e.stats.Ticks++
	e.stats.Particles = len(e.Particles.Particles)
	e.stats.Links = len(e.pairs)
	e.stats.Triangles = len(e.triads)
}

// Stats returns counters from the last tick
func (e *Engine) Stats() Stats { return e.stats }

// Pairs returns the links found by the last tick
func (e *Engine) Pairs() []links.Pair { return e.pairs }

// Draw paints background, triangles, links and particles in that order
func (e *Engine) Draw(s render.Surface) {
	o := e.Options
	s.Clear(palette.Opaque(e.background))

	mask := links.Mask{Enable: o.BackgroundMask.Enable, Composite: o.BackgroundMask.Composite}
	size := e.Particles.Size()

	if len(e.triads) > 0 {
		opacity := o.Links.Triangles.Opacity
		if opacity <= 0 {
			opacity = o.Links.Opacity / 2
		}
		for _, t := range e.triads {
			links.DrawLinkTriangle(s, t.A.Position, t.B.Position, t.C.Position, mask, e.triColour, opacity)
		}
	}

	shadow := links.Shadow{Enable: o.Links.Shadow.Enable, Blur: o.Links.Shadow.Blur, Color: o.Links.Shadow.Color}
	for _, p := range e.pairs {
		opacity := links.Opacity(p.Distance, e.finder.MaxDistance, o.Links.Opacity)
		if opacity <= 0 {
			continue
		}
		links.DrawLinkLine(s, o.Links.Width, p.A.Position, p.B.Position, e.finder.MaxDistance,
			size, e.finder.Warp, mask, e.linkColour, opacity, shadow)
	}
	if mask.Enable {
		s.SetGlobalCompositeOperation(render.CompositeSourceOver)
	}
	// shadows only apply to links
	s.SetShadowBlur(0)

	for _, p := range e.Particles.Particles {
		s.FillCircle(p.Position.X, p.Position.Y, p.Radius, palette.Opaque(p.Color))
	}
}
