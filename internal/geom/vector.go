// Package geom holds the small amount of 2D math shared by the interaction
// and link code: distances, clamping, easing curves and query regions.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec returns a fresh vector owned by the caller
func Vec(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}

// Deltas is the result of DistanceAndDeltas
type Deltas struct {
	DX, DY   float64
	Distance float64
}

// DistanceAndDeltas returns a-b and its Euclidean norm.
// Distance is zero for coincident points, callers must guard divisions.
func DistanceAndDeltas(a, b r2.Vec) Deltas {
	d := r2.Sub(a, b)
	return Deltas{DX: d.X, DY: d.Y, Distance: r2.Norm(d)}
}

// Distance between a and b
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Clamp limits x to [min, max]
func Clamp(x, min, max float64) float64 {
	return math.Min(math.Max(x, min), max)
}

// Finite reports whether both components are real numbers
func Finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Size is a canvas dimension in pixels
type Size struct {
	Width, Height float64
}

// Wrap folds p back into [0,W)x[0,H) (toroidal canvas)
func (s Size) Wrap(p r2.Vec) r2.Vec {
	if s.Width <= 0 || s.Height <= 0 {
		return p
	}
	return r2.Vec{
		X: math.Mod(math.Mod(p.X, s.Width)+s.Width, s.Width),
		Y: math.Mod(math.Mod(p.Y, s.Height)+s.Height, s.Height),
	}
}

// Inside reports whether p lies in the closed rectangle [0,W]x[0,H]
func (s Size) Inside(p r2.Vec) bool {
	return p.X >= 0 && p.X <= s.Width && p.Y >= 0 && p.Y <= s.Height
}
