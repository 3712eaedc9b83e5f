// Package links computes and draws proximity links between particles,
// including links that wrap around the edges of a toroidal canvas.
package links

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
)

// epsilon is the tolerance for axis-aligned deltas and edge bounds
const epsilon = 1e-9

// Segment is one straight piece of a link
type Segment struct {
	Begin, End r2.Vec
}

// OffsetFactors are the canvas tile translations tried by the wrap search, in order
var OffsetFactors = [8]r2.Vec{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
}

// LinkPoints returns the segments linking begin and end: the direct one when
// it is within maxDistance, plus two edge-crossing segments when warp is on
// and a wrapped path is short enough.
func LinkPoints(begin, end r2.Vec, maxDistance float64, warp bool, size geom.Size) []Segment {
	var out []Segment
	if geom.Distance(begin, end) <= maxDistance {
		out = append(out, Segment{Begin: begin, End: end})
	}
	if warp {
		out = append(out, IntermediatePoints(begin, end, size, maxDistance)...)
	}
	return out
}

// IntermediatePoints searches the wrapped neighbours of the pair for a path no
// longer than maxDistance. It returns either nothing or exactly two segments:
// begin to where its link leaves the canvas, and end to where the same link
// re-enters on the opposite side. Crossings are always finite and on the canvas.
func IntermediatePoints(begin, end r2.Vec, size geom.Size, maxDistance float64) []Segment {
	if !onCanvas(begin, size) || !onCanvas(end, size) {
		return nil
	}
	for _, f := range OffsetFactors {
		offset := r2.Vec{X: f.X * size.Width, Y: f.Y * size.Height}
		d1 := geom.DistanceAndDeltas(r2.Add(begin, offset), end)
		d2 := geom.DistanceAndDeltas(begin, r2.Add(end, offset))

		// images of each endpoint in the other's tile
		var beginImage, endImage r2.Vec
		switch {
		case d1.Distance <= maxDistance:
			beginImage, endImage = r2.Add(begin, offset), r2.Sub(end, offset)
		case d2.Distance <= maxDistance:
			beginImage, endImage = r2.Sub(begin, offset), r2.Add(end, offset)
		default:
			continue
		}

		pi1, ok1 := exitPoint(begin, endImage, size)
		pi2, ok2 := exitPoint(end, beginImage, size)
		if !ok1 || !ok2 || !onCanvas(pi1, size) || !onCanvas(pi2, size) {
			continue
		}
		return []Segment{
			{Begin: begin, End: pi1},
			{Begin: end, End: pi2},
		}
	}
	return nil
}

// exitPoint returns where the segment from -> to first meets the canvas border.
// Axis-aligned segments cross only the edge along their axis, and the greater
// coordinate of the pair picks the far edge.
func exitPoint(from, to r2.Vec, size geom.Size) (r2.Vec, bool) {
	d := r2.Sub(to, from)
	t, edgeX, edgeY := math.Inf(1), false, false
	if !nearZero(d.X) {
		bound := 0.0
		if d.X > 0 {
			bound = size.Width
		}
		if tx := (bound - from.X) / d.X; tx < t {
			t, edgeX = tx, true
		}
	}
	if !nearZero(d.Y) {
		bound := 0.0
		if d.Y > 0 {
			bound = size.Height
		}
		if ty := (bound - from.Y) / d.Y; ty < t {
			t, edgeX, edgeY = ty, false, true
		}
	}
	if !edgeX && !edgeY || t < 0 || t > 1 {
		return r2.Vec{}, false
	}

	p := r2.Add(from, r2.Scale(t, d))
	// snap onto the edge the segment crossed
	switch {
	case edgeX && d.X > 0:
		p.X = size.Width
	case edgeX:
		p.X = 0
	case d.Y > 0:
		p.Y = size.Height
	default:
		p.Y = 0
	}
	return p, true
}

func nearZero(v float64) bool {
	return math.Abs(v) < epsilon
}

func onCanvas(p r2.Vec, size geom.Size) bool {
	return geom.Finite(p) &&
		p.X >= -epsilon && p.X <= size.Width+epsilon &&
		p.Y >= -epsilon && p.Y <= size.Height+epsilon
}
