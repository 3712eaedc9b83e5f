package render

import (
	"image"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/olivierh59500/particle-links/internal/palette"
)

// Canvas draws into an offscreen RGBA image through a software canvas.
// It has no composite operations, so anything but source-over is logged and ignored.
type Canvas struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
}

// NewCanvas creates an offscreen canvas of the given pixel size
func NewCanvas(width, height int) *Canvas {
	backend := softwarebackend.New(width, height)
	return &Canvas{backend: backend, cv: canvas.New(backend)}
}

// Image returns the rendered pixels
func (c *Canvas) Image() *image.RGBA {
	return c.backend.Image
}

func (c *Canvas) Clear(bg palette.Style) {
	c.cv.SetFillStyle(bg)
	c.cv.FillRect(0, 0, float64(c.cv.Width()), float64(c.cv.Height()))
}

func (c *Canvas) FillCircle(x, y, radius float64, s palette.Style) {
	c.cv.BeginPath()
	c.cv.Arc(x, y, radius, 0, 2*math.Pi, false)
	c.cv.SetFillStyle(s)
	c.cv.Fill()
}

func (c *Canvas) BeginPath() { c.cv.BeginPath() }

func (c *Canvas) MoveTo(x, y float64) { c.cv.MoveTo(x, y) }

func (c *Canvas) LineTo(x, y float64) { c.cv.LineTo(x, y) }

func (c *Canvas) ClosePath() { c.cv.ClosePath() }

func (c *Canvas) SetLineWidth(w float64) { c.cv.SetLineWidth(w) }

func (c *Canvas) SetStrokeStyle(s palette.Style) { c.cv.SetStrokeStyle(s) }

func (c *Canvas) SetFillStyle(s palette.Style) { c.cv.SetFillStyle(s) }

func (c *Canvas) SetGlobalCompositeOperation(op string) {
	if op != CompositeSourceOver {
		WarnOnce("render: software canvas ignores composite operation " + op)
	}
}

func (c *Canvas) SetShadowBlur(blur float64) { c.cv.SetShadowBlur(blur) }

func (c *Canvas) SetShadowColor(s palette.Style) { c.cv.SetShadowColor(s) }

func (c *Canvas) Stroke() { c.cv.Stroke() }

func (c *Canvas) Fill() { c.cv.Fill() }
