package particle

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/options"
)

type resetRecorder struct {
	calls []*Particle
}

func (r *resetRecorder) Reset(p *Particle) {
	r.calls = append(r.calls, p)
	p.Repulse = false
	p.NormalPosition = nil
}

func testOptions() options.ParticlesOptions {
	o := options.Default().Particles
	o.Seed = 42
	o.Noise.Enable = false
	return o
}

func TestSpawnAssignsUniqueIDs(t *testing.T) {
	m := NewManager(testOptions(), geom.Size{Width: 200, Height: 100})
	m.Spawn(50)

	if len(m.Particles) != 50 {
		t.Fatalf("Expected 50 particles, got %d", len(m.Particles))
	}
	seen := map[int]bool{}
	for _, p := range m.Particles {
		if seen[p.ID] {
			t.Errorf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		if !m.Size().Inside(p.Position) {
			t.Errorf("particle %d spawned outside canvas at %v", p.ID, p.Position)
		}
	}
}

func TestUpdateMovesAndWraps(t *testing.T) {
	m := NewManager(testOptions(), geom.Size{Width: 100, Height: 100})
	p := m.Add(&Particle{Position: geom.Vec(99, 50), Velocity: geom.Vec(2, 0)})

	m.Update(FrameDelta, &resetRecorder{})

	if p.Position.X < 0.99 || p.Position.X > 1.01 || p.Position.Y != 50 {
		t.Errorf("Expected wrap to (1,50), got %v", p.Position)
	}
}

func TestBeginTickClearsFlag(t *testing.T) {
	m := NewManager(testOptions(), geom.Size{Width: 100, Height: 100})
	p := m.Add(&Particle{Repulse: true})
	m.BeginTick()
	if p.Repulse {
		t.Error("Repulse flag should be cleared at tick start")
	}
}

func TestUpdateEndsFinishedEpisodes(t *testing.T) {
	o := testOptions()
	o.Release.Enable = false
	m := NewManager(o, geom.Size{Width: 100, Height: 100})

	np := geom.Vec(10, 10)
	active := m.Add(&Particle{Position: geom.Vec(20, 20), Repulse: true, NormalPosition: &np})
	np2 := geom.Vec(30, 30)
	finished := m.Add(&Particle{Position: geom.Vec(40, 40), NormalPosition: &np2})

	rec := &resetRecorder{}
	m.Update(FrameDelta, rec)

	if len(rec.calls) != 1 || rec.calls[0] != finished {
		t.Fatalf("Expected exactly the finished particle to be reset, got %d calls", len(rec.calls))
	}
	if active.NormalPosition == nil {
		t.Error("active episode lost its normal position")
	}
	if finished.Releasing() {
		t.Error("release disabled but particle is releasing")
	}
}

func TestReleaseSpringsBackToNormalPosition(t *testing.T) {
	m := NewManager(testOptions(), geom.Size{Width: 500, Height: 500})
	np := geom.Vec(100, 100)
	p := m.Add(&Particle{Position: geom.Vec(140, 100), NormalPosition: &np})

	m.Update(FrameDelta, &resetRecorder{})
	if !p.Releasing() {
		t.Fatal("Expected release to start after the episode ended")
	}
	for i := 0; i < 600 && p.Releasing(); i++ {
		m.Update(FrameDelta, &resetRecorder{})
	}
	if p.Releasing() {
		t.Fatal("release never finished")
	}
	if geom.Distance(p.Position, np) > 1 {
		t.Errorf("Expected particle back near %v, got %v", np, p.Position)
	}
}

func TestWrapShiftsNormalPosition(t *testing.T) {
	m := NewManager(testOptions(), geom.Size{Width: 100, Height: 100})
	np := geom.Vec(95, 50)
	p := m.Add(&Particle{Position: geom.Vec(105, 50), NormalPosition: &np, Repulse: true})

	m.Update(Delta{}, &resetRecorder{})

	if p.Position != (r2.Vec{X: 5, Y: 50}) {
		t.Fatalf("Expected (5,50), got %v", p.Position)
	}
	if p.NormalPosition == nil || *p.NormalPosition != (r2.Vec{X: -5, Y: 50}) {
		t.Errorf("normal position not shifted with wrap: %v", p.NormalPosition)
	}
}

func TestNoiseDriftKeepsSpeedBounded(t *testing.T) {
	o := testOptions()
	o.Noise.Enable = true
	m := NewManager(o, geom.Size{Width: 300, Height: 300})
	m.Spawn(20)
	for i := 0; i < 120; i++ {
		m.BeginTick()
		m.Update(FrameDelta, &resetRecorder{})
	}
	for _, p := range m.Particles {
		if s := r2.Norm(p.Velocity); s > o.Speed+1e-6 {
			t.Errorf("particle %d speed %v exceeds %v", p.ID, s, o.Speed)
		}
		if !geom.Finite(p.Position) {
			t.Errorf("particle %d position not finite", p.ID)
		}
	}
}

func TestRepulseCancelsRelease(t *testing.T) {
	m := NewManager(testOptions(), geom.Size{Width: 500, Height: 500})
	np := geom.Vec(100, 100)
	p := m.Add(&Particle{Position: geom.Vec(140, 100), NormalPosition: &np})

	m.Update(FrameDelta, &resetRecorder{})
	if !p.Releasing() {
		t.Fatal("Expected release to start")
	}

	snap := p.Position
	p.NormalPosition = &snap
	p.Repulse = true
	m.Update(FrameDelta, &resetRecorder{})
	if p.Releasing() {
		t.Error("Expected a new displacement to cancel the release")
	}
}
