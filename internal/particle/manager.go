package particle

import (
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/palette"
)

// Perlin noise parameters
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseN     = 3

	// release ends once the particle is this close to its normal position
	releaseEpsilon = 0.5
)

// Resetter ends an interaction episode for a particle
type Resetter interface {
	Reset(p *Particle)
}

type release struct {
	target r2.Vec
	vel    r2.Vec
}

// Manager owns the particle population: spawn, drift, wrap and release
type Manager struct {
	Particles []*Particle

	opts   options.ParticlesOptions
	size   geom.Size
	rng    *rand.Rand
	noise  *perlin.Perlin
	spring harmonica.Spring
	colors []palette.RGB
	clock  float64
	nextID int
}

// NewManager creates an empty manager for a canvas of the given size
func NewManager(opts options.ParticlesOptions, size geom.Size) *Manager {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := &Manager{
		opts:  opts,
		size:  size,
		rng:   rand.New(rand.NewSource(seed)),
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseN, seed),
	}
	freq, damping := opts.Release.Frequency, opts.Release.Damping
	if freq <= 0 {
		freq = 4
	}
	m.spring = harmonica.NewSpring(harmonica.FPS(60), freq, damping)

	for _, c := range opts.Color {
		if rgb, ok := palette.Parse(c, m.rng); ok {
			m.colors = append(m.colors, rgb)
		}
	}
	return m
}

// Size returns the canvas size
func (m *Manager) Size() geom.Size { return m.size }

// Resize changes the canvas and wraps particles into it
func (m *Manager) Resize(size geom.Size) {
	m.size = size
	for _, p := range m.Particles {
		m.wrap(p)
	}
}

// Spawn creates n particles at random positions with random headings
func (m *Manager) Spawn(n int) {
	for i := 0; i < n; i++ {
		angle := m.rng.Float64() * 2 * math.Pi
		m.Add(&Particle{
			Position: geom.Vec(m.rng.Float64()*m.size.Width, m.rng.Float64()*m.size.Height),
			Velocity: geom.Vec(math.Cos(angle)*m.opts.Speed, math.Sin(angle)*m.opts.Speed),
			Radius:   m.opts.Size,
			Color:    m.pickColor(),
		})
	}
}

// Add takes ownership of p and assigns its ID
func (m *Manager) Add(p *Particle) *Particle {
	m.nextID++
	p.ID = m.nextID
	m.Particles = append(m.Particles, p)
	return p
}

// BeginTick clears the per-tick interaction flag before interactions run
func (m *Manager) BeginTick() {
	for _, p := range m.Particles {
		p.Repulse = false
	}
}

// Update ends finished episodes, moves every particle and wraps it.
// Particles still flagged by an interaction keep moving with their velocity.
func (m *Manager) Update(delta Delta, r Resetter) {
	m.clock += delta.Value.Seconds()
	for _, p := range m.Particles {
		if p.Repulse {
			// displaced again mid-release
			p.release = nil
		} else if p.NormalPosition != nil {
			if m.opts.Release.Enable {
				p.release = &release{target: *p.NormalPosition}
			}
			r.Reset(p)
		}

		if m.opts.Noise.Enable {
			m.drift(p, delta)
		}

		if p.release != nil {
			m.stepRelease(p, delta)
		} else {
			p.Position = r2.Add(p.Position, r2.Scale(delta.Factor, p.Velocity))
		}
		m.wrap(p)
	}
}

// drift steers velocity along a perlin flow field
func (m *Manager) drift(p *Particle, delta Delta) {
	scale := m.opts.Noise.Scale
	n := m.noise.Noise3D(p.Position.X*scale, p.Position.Y*scale, m.clock*0.1)
	angle := n * 2 * math.Pi
	want := geom.Vec(math.Cos(angle)*m.opts.Speed, math.Sin(angle)*m.opts.Speed)
	k := geom.Clamp(m.opts.Noise.Strength*delta.Factor*0.1, 0, 1)
	p.Velocity = r2.Add(r2.Scale(1-k, p.Velocity), r2.Scale(k, want))
}

// stepRelease springs the particle toward where it would have drifted
func (m *Manager) stepRelease(p *Particle, delta Delta) {
	rel := p.release
	rel.target = r2.Add(rel.target, r2.Scale(delta.Factor, p.Velocity))
	p.Position.X, rel.vel.X = m.spring.Update(p.Position.X, rel.vel.X, rel.target.X)
	p.Position.Y, rel.vel.Y = m.spring.Update(p.Position.Y, rel.vel.Y, rel.target.Y)
	if geom.Distance(p.Position, rel.target) < releaseEpsilon && r2.Norm(rel.vel) < releaseEpsilon {
		p.Position = rel.target
		p.release = nil
	}
}

// wrap applies the toroidal canvas and shifts the scratch positions with it
func (m *Manager) wrap(p *Particle) {
	wrapped := m.size.Wrap(p.Position)
	shift := r2.Sub(wrapped, p.Position)
	if shift == (r2.Vec{}) {
		return
	}
	p.Position = wrapped
	if p.NormalPosition != nil {
		np := r2.Add(*p.NormalPosition, shift)
		p.NormalPosition = &np
	}
	if p.release != nil {
		p.release.target = r2.Add(p.release.target, shift)
	}
}

func (m *Manager) pickColor() palette.RGB {
	if len(m.colors) == 0 {
		return palette.Hue(m.rng.Float64() * 360)
	}
	return m.colors[m.rng.Intn(len(m.colors))]
}
