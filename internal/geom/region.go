package geom

import "gonum.org/v1/gonum/spatial/r2"

// Region is a query shape for the spatial index
type Region interface {
	Contains(p r2.Vec) bool
	Center() r2.Vec
	// Bounds is the axis-aligned box enclosing the region
	Bounds() r2.Box
}

// Circle region
type Circle struct {
	Position r2.Vec
	Radius   float64
}

// NewCircle returns a circle centered at (x, y); negative radii are treated as zero
func NewCircle(x, y, radius float64) Circle {
	if radius < 0 {
		radius = 0
	}
	return Circle{Position: r2.Vec{X: x, Y: y}, Radius: radius}
}

func (c Circle) Contains(p r2.Vec) bool {
	d := r2.Sub(p, c.Position)
	return d.X*d.X+d.Y*d.Y <= c.Radius*c.Radius
}

func (c Circle) Center() r2.Vec { return c.Position }

func (c Circle) Bounds() r2.Box {
	r := r2.Vec{X: c.Radius, Y: c.Radius}
	return r2.Box{Min: r2.Sub(c.Position, r), Max: r2.Add(c.Position, r)}
}

// Rectangle region, Position is the top-left corner
type Rectangle struct {
	Position r2.Vec
	Size     Size
}

// NewRectangle returns the rectangle with top-left (x, y)
func NewRectangle(x, y, width, height float64) Rectangle {
	return Rectangle{Position: r2.Vec{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

func (r Rectangle) Contains(p r2.Vec) bool {
	return p.X >= r.Position.X && p.X <= r.Position.X+r.Size.Width &&
		p.Y >= r.Position.Y && p.Y <= r.Position.Y+r.Size.Height
}

func (r Rectangle) Center() r2.Vec {
	return r2.Vec{X: r.Position.X + r.Size.Width/2, Y: r.Position.Y + r.Size.Height/2}
}

func (r Rectangle) Bounds() r2.Box {
	return r2.Box{
		Min: r.Position,
		Max: r2.Vec{X: r.Position.X + r.Size.Width, Y: r.Position.Y + r.Size.Height},
	}
}
