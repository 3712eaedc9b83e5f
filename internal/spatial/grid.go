// Package spatial bins positioned items into a uniform grid so region
// queries only visit the cells a region overlaps.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
)

// Positioned is anything the grid can bin
type Positioned interface {
	Pos() r2.Vec
}

// Bin is the list of items in one cell
type Bin[T Positioned] []T

// Grid is rebuilt once per tick and queried read-only afterwards.
// Rebuild must not run concurrently with Query.
type Grid[T Positioned] struct {
	size     geom.Size
	cellSize float64
	cols     int
	rows     int
	bins     []Bin[T]
	count    int
}

// NewGrid covers a canvas of the given size with square cells
func NewGrid[T Positioned](size geom.Size, cellSize float64) *Grid[T] {
	g := &Grid[T]{}
	g.Resize(size, cellSize)
	return g
}

// Resize changes the covered area and drops all items
func (g *Grid[T]) Resize(size geom.Size, cellSize float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	g.size = size
	g.cellSize = cellSize
	g.cols = max(1, int(math.Ceil(size.Width/cellSize)))
	g.rows = max(1, int(math.Ceil(size.Height/cellSize)))
	g.bins = make([]Bin[T], g.cols*g.rows)
	g.count = 0
}

// Size returns the covered canvas size
func (g *Grid[T]) Size() geom.Size { return g.size }

// Len returns the number of binned items
func (g *Grid[T]) Len() int { return g.count }

// Rebuild assigns items to bins from their current positions
func (g *Grid[T]) Rebuild(items []T) {
	for i := range g.bins {
		g.bins[i] = g.bins[i][:0]
	}
	g.count = 0
	for _, it := range items {
		p := it.Pos()
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		col, row := g.cell(p)
		idx := row*g.cols + col
		g.bins[idx] = append(g.bins[idx], it)
		g.count++
	}
}

// Query returns the items inside region accepted by pred (nil accepts all).
// Order is unspecified.
func (g *Grid[T]) Query(region geom.Region, pred func(T) bool) []T {
	var out []T
	g.Visit(region, func(it T) {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	})
	return out
}

// Visit calls fn for every item inside region without allocating a result
func (g *Grid[T]) Visit(region geom.Region, fn func(T)) {
	if region == nil {
		return
	}
	b := region.Bounds()
	if math.IsNaN(b.Min.X) || math.IsNaN(b.Min.Y) || math.IsNaN(b.Max.X) || math.IsNaN(b.Max.Y) {
		return
	}
	minCol, minRow := g.cell(b.Min)
	maxCol, maxRow := g.cell(b.Max)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, it := range g.bins[row*g.cols+col] {
				if region.Contains(it.Pos()) {
					fn(it)
				}
			}
		}
	}
}

// cell maps a position to its bin, clamping off-canvas positions to the border
func (g *Grid[T]) cell(p r2.Vec) (col, row int) {
	col = clampIndex(p.X/g.cellSize, g.cols)
	row = clampIndex(p.Y/g.cellSize, g.rows)
	return col, row
}

func clampIndex(v float64, n int) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return int(v)
}
