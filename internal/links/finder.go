package links

import (
	"cmp"
	"math"
	"runtime"
	"slices"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/particle"
)

// Index answers region queries over the current particle positions
type Index interface {
	Query(region geom.Region, pred func(*particle.Particle) bool) []*particle.Particle
}

// Pair is two linked particles with A.ID < B.ID
type Pair struct {
	A, B *particle.Particle
	// Distance is the shorter of the direct and wrapped distances
	Distance float64
	// Direct is true when the unwrapped distance is within range
	Direct bool
}

// Triad is three particles linked pairwise without wrapping, A.ID < B.ID < C.ID
type Triad struct {
	A, B, C *particle.Particle
}

// Finder discovers link candidates through the spatial index.
// The index must be rebuilt before Pairs is called and not touched until it returns.
type Finder struct {
	Index       Index
	Size        geom.Size
	MaxDistance float64
	Warp        bool
	// Workers bounds the query goroutines, zero means one per CPU
	Workers int
}

// Pairs returns every pair within MaxDistance, sorted by particle IDs
func (f *Finder) Pairs(ps []*particle.Particle) []Pair {
	if f.Index == nil || !(f.MaxDistance > 0) || len(ps) < 2 {
		return nil
	}

	workers := f.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(ps))
	chunk := (len(ps) + workers - 1) / workers

	// one result slice per worker so goroutines never share writes
	results := make([][]Pair, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(ps))
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w int, part []*particle.Particle) {
			defer wg.Done()
			for _, p := range part {
				results[w] = f.neighbours(p, results[w])
			}
		}(w, ps[lo:hi])
	}
	wg.Wait()

	var out []Pair
	for _, r := range results {
		out = append(out, r...)
	}
	slices.SortFunc(out, func(a, b Pair) int {
		if c := cmp.Compare(a.A.ID, b.A.ID); c != 0 {
			return c
		}
		return cmp.Compare(a.B.ID, b.B.ID)
	})
	return out
}

// neighbours appends the pairs p forms with higher-ID particles
func (f *Finder) neighbours(p *particle.Particle, out []Pair) []Pair {
	seen := make(map[int]bool)
	higher := func(q *particle.Particle) bool {
		return q.ID > p.ID && !seen[q.ID]
	}

	for _, q := range f.Index.Query(geom.NewCircle(p.Position.X, p.Position.Y, f.MaxDistance), higher) {
		seen[q.ID] = true
		out = append(out, f.pair(p, q))
	}
	if !f.Warp {
		return out
	}

	for _, o := range OffsetFactors {
		c := r2.Add(p.Position, r2.Vec{X: o.X * f.Size.Width, Y: o.Y * f.Size.Height})
		region := geom.NewCircle(c.X, c.Y, f.MaxDistance)
		if !f.overlapsCanvas(region.Bounds()) {
			continue
		}
		for _, q := range f.Index.Query(region, higher) {
			seen[q.ID] = true
			out = append(out, f.pair(p, q))
		}
	}
	return out
}

func (f *Finder) pair(a, b *particle.Particle) Pair {
	direct := geom.Distance(a.Position, b.Position)
	d := direct
	if f.Warp {
		d = math.Min(d, f.wrappedDistance(a.Position, b.Position))
	}
	return Pair{A: a, B: b, Distance: d, Direct: direct <= f.MaxDistance}
}

// wrappedDistance is the toroidal distance between a and b
func (f *Finder) wrappedDistance(a, b r2.Vec) float64 {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)
	if f.Size.Width > 0 {
		dx = math.Min(dx, f.Size.Width-dx)
	}
	if f.Size.Height > 0 {
		dy = math.Min(dy, f.Size.Height-dy)
	}
	return math.Hypot(dx, dy)
}

func (f *Finder) overlapsCanvas(b r2.Box) bool {
	return b.Max.X >= 0 && b.Min.X <= f.Size.Width && b.Max.Y >= 0 && b.Min.Y <= f.Size.Height
}

// Triads returns every triangle of direct pairs, sorted by particle IDs
func Triads(pairs []Pair) []Triad {
	adj := make(map[int]map[int]*particle.Particle)
	for _, p := range pairs {
		if !p.Direct {
			continue
		}
		if adj[p.A.ID] == nil {
			adj[p.A.ID] = make(map[int]*particle.Particle)
		}
		adj[p.A.ID][p.B.ID] = p.B
	}

	var out []Triad
	for _, p := range pairs {
		if !p.Direct {
			continue
		}
		for cid, c := range adj[p.B.ID] {
			if _, ok := adj[p.A.ID][cid]; ok {
				out = append(out, Triad{A: p.A, B: p.B, C: c})
			}
		}
	}
	slices.SortFunc(out, func(x, y Triad) int {
		if c := cmp.Compare(x.A.ID, y.A.ID); c != 0 {
			return c
		}
		if c := cmp.Compare(x.B.ID, y.B.ID); c != 0 {
			return c
		}
		return cmp.Compare(x.C.ID, y.C.ID)
	})
	return out
}

// Opacity fades a link from opacity at distance zero to nothing at maxDistance
func Opacity(distance, maxDistance, opacity float64) float64 {
	if !(maxDistance > 0) {
		return 0
	}
	return geom.Clamp(1-distance/maxDistance, 0, 1) * opacity
}
