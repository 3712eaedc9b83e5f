package links

import (
	"math"
	"math/rand"
	"testing"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/particle"
	"github.com/olivierh59500/particle-links/internal/spatial"
)

func indexed(size geom.Size, cell float64, positions ...[2]float64) ([]*particle.Particle, *spatial.Grid[*particle.Particle]) {
	ps := make([]*particle.Particle, len(positions))
	for i, p := range positions {
		ps[i] = &particle.Particle{ID: i, Position: geom.Vec(p[0], p[1])}
	}
	g := spatial.NewGrid[*particle.Particle](size, cell)
	g.Rebuild(ps)
	return ps, g
}

func TestPairsDirect(t *testing.T) {
	ps, g := indexed(square, 20, [2]float64{10, 10}, [2]float64{25, 10}, [2]float64{80, 80})
	f := &Finder{Index: g, Size: square, MaxDistance: 20}

	pairs := f.Pairs(ps)
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].A.ID != 0 || pairs[0].B.ID != 1 || pairs[0].Distance != 15 || !pairs[0].Direct {
		t.Errorf("unexpected pair %+v", pairs[0])
	}
}

func TestPairsWrapped(t *testing.T) {
	ps, g := indexed(square, 20, [2]float64{5, 50}, [2]float64{95, 50})

	if got := (&Finder{Index: g, Size: square, MaxDistance: 20}).Pairs(ps); len(got) != 0 {
		t.Errorf("Expected no pairs without warp, got %d", len(got))
	}

	pairs := (&Finder{Index: g, Size: square, MaxDistance: 20, Warp: true}).Pairs(ps)
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 wrapped pair, got %d", len(pairs))
	}
	if pairs[0].Direct || math.Abs(pairs[0].Distance-10) > 1e-9 {
		t.Errorf("Expected wrapped distance 10, got %+v", pairs[0])
	}
}

func TestPairsMatchBruteForce(t *testing.T) {
	size := geom.Size{Width: 300, Height: 200}
	rng := rand.New(rand.NewSource(7))
	var positions [][2]float64
	for i := 0; i < 300; i++ {
		positions = append(positions, [2]float64{rng.Float64() * size.Width, rng.Float64() * size.Height})
	}
	ps, g := indexed(size, 30, positions...)

	for _, warp := range []bool{false, true} {
		f := &Finder{Index: g, Size: size, MaxDistance: 30, Warp: warp, Workers: 4}
		pairs := f.Pairs(ps)

		want := 0
		for i := range ps {
			for j := i + 1; j < len(ps); j++ {
				d := geom.Distance(ps[i].Position, ps[j].Position)
				if warp {
					d = math.Min(d, f.wrappedDistance(ps[i].Position, ps[j].Position))
				}
				if d <= 30 {
					want++
				}
			}
		}
		if len(pairs) != want {
			t.Errorf("warp=%v: Expected %d pairs, got %d", warp, want, len(pairs))
		}
		for i := 1; i < len(pairs); i++ {
			a, b := pairs[i-1], pairs[i]
			if a.A.ID > b.A.ID || (a.A.ID == b.A.ID && a.B.ID >= b.B.ID) {
				t.Fatalf("warp=%v: pairs not sorted or duplicated at %d", warp, i)
			}
		}
	}
}

func TestTriads(t *testing.T) {
	ps, g := indexed(square, 20,
		[2]float64{10, 10}, [2]float64{20, 10}, [2]float64{15, 18},
		[2]float64{60, 60},
	)
	pairs := (&Finder{Index: g, Size: square, MaxDistance: 15}).Pairs(ps)
	triads := Triads(pairs)
	if len(triads) != 1 {
		t.Fatalf("Expected 1 triad, got %d", len(triads))
	}
	if tr := triads[0]; tr.A.ID != 0 || tr.B.ID != 1 || tr.C.ID != 2 {
		t.Errorf("unexpected triad %d %d %d", tr.A.ID, tr.B.ID, tr.C.ID)
	}
}

func TestOpacityFades(t *testing.T) {
	cases := []struct {
		d, want float64
	}{
		{0, 0.4},
		{50, 0.2},
		{100, 0},
		{150, 0},
	}
	for _, c := range cases {
		if got := Opacity(c.d, 100, 0.4); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Opacity(%v) = %v, want %v", c.d, got, c.want)
		}
	}
	if got := Opacity(10, 0, 1); got != 0 {
		t.Errorf("Expected 0 for zero max distance, got %v", got)
	}
}
