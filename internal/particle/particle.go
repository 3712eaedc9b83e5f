// Package particle defines the particle record shared by the interaction and
// link code, and the demo manager that owns particle lifecycles.
package particle

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/palette"
)

// Particle is a single point on the canvas.
// NormalPosition and Repulse are scratch fields owned by the repulse interaction.
type Particle struct {
	ID       int
	Position r2.Vec
	Velocity r2.Vec
	Radius   float64
	Color    palette.RGB

	// NormalPosition is where the particle would be without repulsion,
	// set on the first displacement of an episode and cleared on reset
	NormalPosition *r2.Vec
	// Repulse is true while the particle is displaced this tick
	Repulse bool
	// Interactivity overrides the container interactivity when set
	Interactivity *options.Interactivity

	release *release
}

// Pos implements spatial.Positioned
func (p *Particle) Pos() r2.Vec { return p.Position }

// Releasing reports whether the particle is springing back after an episode
func (p *Particle) Releasing() bool { return p.release != nil }

// Delta is the time elapsed since the previous tick.
// Factor is 1 at 60 ticks per second.
type Delta struct {
	Value  time.Duration
	Factor float64
}

// NewDelta derives the 60 FPS factor from d
func NewDelta(d time.Duration) Delta {
	return Delta{Value: d, Factor: d.Seconds() * 60}
}

// FrameDelta is one tick at 60 ticks per second
var FrameDelta = NewDelta(time.Second / 60)
