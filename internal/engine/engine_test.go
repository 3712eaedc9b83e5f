package engine

import (
	"testing"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/particle"
	"github.com/olivierh59500/particle-links/internal/render"
)

// quietOptions is a 200x200 scene with no spawned particles, no drift and no elements
func quietOptions() *options.Options {
	o := options.Default()
	o.Canvas.Width, o.Canvas.Height = 200, 200
	o.Canvas.Background = "#000000"
	o.Particles.Number = 0
	o.Particles.Seed = 1
	o.Particles.Noise.Enable = false
	o.Interactivity.Events.OnDiv = nil
	o.Layout.HTML = ""
	o.Interactivity.Modes.Repulse.Distance = 40
	o.Links.Distance = 30
	return o
}

func newEngine(t *testing.T, o *options.Options) *Engine {
	t.Helper()
	e, err := New(o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func (e *Engine) place(x, y float64) *particle.Particle {
	p := e.Particles.Add(&particle.Particle{Position: geom.Vec(x, y), Radius: 3})
	e.grid.Rebuild(e.Particles.Particles)
	return p
}

func TestNewSpawnsConfiguredParticles(t *testing.T) {
	o := options.Default()
	o.Particles.Seed = 3
	o.Particles.Number = 120
	e := newEngine(t, o)

	if got := len(e.Particles.Particles); got != 120 {
		t.Fatalf("Expected 120 particles, got %d", got)
	}
	if e.Layout == nil || len(e.Layout.Elements()) != 2 {
		t.Error("Expected the default layout to be parsed")
	}

	e.Tick(particle.FrameDelta)
	if s := e.Stats(); s.Ticks != 1 || s.Particles != 120 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestNewRejectsBadBackground(t *testing.T) {
	o := quietOptions()
	o.Canvas.Background = "nope"
	if _, err := New(o); err == nil {
		t.Error("Expected an error for an invalid background colour")
	}
}

func TestClickRepulsesThenReleases(t *testing.T) {
	o := quietOptions()
	o.Interactivity.Events.OnHover.Enable = false
	// short enough that the click is over before the particle springs back
	o.Interactivity.Modes.Repulse.Duration = 0.02
	e := newEngine(t, o)
	p := e.place(60, 50)

	e.Click(50, 50)
	e.Tick(particle.FrameDelta)
	if p.Position.X <= 60 || p.Position.Y != 50 {
		t.Fatalf("Expected push along +x, got %v", p.Position)
	}
	if p.NormalPosition == nil || *p.NormalPosition != geom.Vec(60, 50) {
		t.Fatalf("Expected normal position (60,50), got %v", p.NormalPosition)
	}

	for i := 0; i < 600; i++ {
		e.Tick(particle.FrameDelta)
	}
	if p.Repulse || p.NormalPosition != nil || p.Releasing() {
		t.Errorf("Expected the episode to be over, repulse=%v normal=%v", p.Repulse, p.NormalPosition)
	}
	if geom.Distance(p.Position, geom.Vec(60, 50)) > 1 {
		t.Errorf("Expected particle back near (60,50), got %v", p.Position)
	}
}

func TestHoverLeaveEndsEpisode(t *testing.T) {
	o := quietOptions()
	o.Particles.Release.Enable = false
	e := newEngine(t, o)
	p := e.place(60, 50)

	e.Mouse.Move(50, 50)
	e.Tick(particle.FrameDelta)
	if !p.Repulse {
		t.Fatal("Expected hover to repulse")
	}
	e.Mouse.Leave()
	e.Tick(particle.FrameDelta)
	if p.Repulse || p.NormalPosition != nil {
		t.Error("Expected reset once the pointer left")
	}
}

func TestElementRepulsion(t *testing.T) {
	o := quietOptions()
	o.Interactivity.Events = options.Events{
		OnDiv: []options.DivEvent{{Selectors: []string{".repulse"}, Enable: true, Mode: []string{options.ModeRepulse}}},
	}
	o.Particles.Release.Enable = false
	o.Layout.HTML = `<div class="repulse" data-left="10" data-top="30" data-width="80" data-height="40"></div>`
	e := newEngine(t, o)
	p := e.place(70, 50)

	e.Tick(particle.FrameDelta)
	if p.Position.X <= 70 {
		t.Errorf("Expected push away from the element centre, got %v", p.Position)
	}

	// the box is read live, so moving the element away stops the force
	e.Layout.Elements()[0].MoveTo(150, 150)
	before := p.Position
	e.Tick(particle.FrameDelta)
	if p.Position != before {
		t.Errorf("Expected no force after moving the element, moved to %v", p.Position)
	}
}

func TestTickFindsLinksAndTriangles(t *testing.T) {
	o := quietOptions()
	o.Links.Triangles.Enable = true
	e := newEngine(t, o)
	e.place(10, 10)
	e.place(20, 10)
	e.place(15, 18)
	e.place(150, 150)

	e.Tick(particle.FrameDelta)
	if s := e.Stats(); s.Links != 3 || s.Triangles != 1 {
		t.Errorf("Expected 3 links and 1 triangle, got %+v", s)
	}

	o.Links.Enable = false
	e.Tick(particle.FrameDelta)
	if s := e.Stats(); s.Links != 0 || s.Triangles != 0 {
		t.Errorf("Expected no links when disabled, got %+v", s)
	}
}

func TestWarpLinksAcrossEdges(t *testing.T) {
	o := quietOptions()
	e := newEngine(t, o)
	e.place(5, 100)
	e.place(195, 100)

	e.Tick(particle.FrameDelta)
	if len(e.Pairs()) != 0 {
		t.Fatal("Expected no links without warp")
	}
	e.SetWarp(true)
	e.Tick(particle.FrameDelta)
	if len(e.Pairs()) != 1 {
		t.Errorf("Expected 1 wrapped link, got %d", len(e.Pairs()))
	}
}

func TestDrawOnSoftwareCanvas(t *testing.T) {
	o := quietOptions()
	o.Links.Color = "#00ff00"
	o.Links.Opacity = 1
	o.Links.Width = 3
	e := newEngine(t, o)
	a := e.place(40, 100)
	b := e.place(60, 100)
	a.Color.R, b.Color.R = 255, 255

	e.Tick(particle.FrameDelta)
	c := render.NewCanvas(200, 200)
	e.Draw(c)

	if px := c.Image().RGBAAt(40, 100); px.R < 200 {
		t.Errorf("Expected a red particle at (40,100), got %v", px)
	}
	if px := c.Image().RGBAAt(50, 100); px.G == 0 {
		t.Errorf("Expected the link through (50,100), got %v", px)
	}
	if px := c.Image().RGBAAt(150, 20); px.R != 0 || px.G != 0 || px.B != 0 {
		t.Errorf("Expected black background, got %v", px)
	}
}

func TestResizeKeepsParticlesOnCanvas(t *testing.T) {
	o := quietOptions()
	e := newEngine(t, o)
	p := e.place(180, 180)

	e.Resize(100, 100)
	if !e.Particles.Size().Inside(p.Position) {
		t.Errorf("particle left the canvas after resize: %v", p.Position)
	}
}
