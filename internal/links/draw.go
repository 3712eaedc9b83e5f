package links

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/palette"
)

// Context is the subset of a 2D canvas context the link renderer drives.
// Style setters persist until changed, like canvas state.
type Context interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	SetLineWidth(w float64)
	SetStrokeStyle(s palette.Style)
	SetFillStyle(s palette.Style)
	SetGlobalCompositeOperation(op string)
	SetShadowBlur(blur float64)
	SetShadowColor(s palette.Style)
	Stroke()
	Fill()
}

// Mask switches the composite operation before each draw when enabled
type Mask struct {
	Enable    bool
	Composite string
}

// Shadow is applied to link strokes when enabled and Color resolves
type Shadow struct {
	Enable bool
	Blur   float64
	Color  string
}

// DrawLinkLine strokes every segment LinkPoints returns for the pair.
// Nothing is drawn when no segment qualifies.
func DrawLinkLine(
	ctx Context,
	width float64,
	begin, end r2.Vec,
	maxDistance float64,
	size geom.Size,
	warp bool,
	mask Mask,
	colour palette.RGB,
	opacity float64,
	shadow Shadow,
) {
	for _, s := range LinkPoints(begin, end, maxDistance, warp, size) {
		ctx.BeginPath()
		ctx.MoveTo(s.Begin.X, s.Begin.Y)
		ctx.LineTo(s.End.X, s.End.Y)
		ctx.ClosePath()

		ctx.SetLineWidth(width)
		if mask.Enable {
			ctx.SetGlobalCompositeOperation(mask.Composite)
		}
		ctx.SetStrokeStyle(palette.StyleFromRGB(colour, opacity))

		if shadow.Enable {
			if c, ok := palette.Parse(shadow.Color, nil); ok {
				ctx.SetShadowBlur(shadow.Blur)
				ctx.SetShadowColor(palette.Opaque(c))
			}
		}

		ctx.Stroke()
	}
}

// DrawLinkTriangle fills the triangle p1 p2 p3. Vertices are drawn as given.
func DrawLinkTriangle(
	ctx Context,
	p1, p2, p3 r2.Vec,
	mask Mask,
	colour palette.RGB,
	opacity float64,
) {
	ctx.BeginPath()
	ctx.MoveTo(p1.X, p1.Y)
	ctx.LineTo(p2.X, p2.Y)
	ctx.LineTo(p3.X, p3.Y)
	ctx.ClosePath()

	if mask.Enable {
		ctx.SetGlobalCompositeOperation(mask.Composite)
	}
	ctx.SetFillStyle(palette.StyleFromRGB(colour, opacity))
	ctx.Fill()
}
