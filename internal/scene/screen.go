package scene

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-links/internal/palette"
	"github.com/olivierh59500/particle-links/internal/render"
)

// blends maps canvas composite operations to ebiten blend modes
var blends = map[string]ebiten.Blend{
	"source-over":      ebiten.BlendSourceOver,
	"source-in":        ebiten.BlendSourceIn,
	"source-out":       ebiten.BlendSourceOut,
	"source-atop":      ebiten.BlendSourceAtop,
	"destination-over": ebiten.BlendDestinationOver,
	"destination-in":   ebiten.BlendDestinationIn,
	"destination-out":  ebiten.BlendDestinationOut,
	"destination-atop": ebiten.BlendDestinationAtop,
	"lighter":          ebiten.BlendLighter,
	"copy":             ebiten.BlendCopy,
	"xor":              ebiten.BlendXor,
}

// shadowAlpha scales the shadow colour of the halo stroke
const shadowAlpha = 0.35

var _ render.Surface = (*Screen)(nil)

// Screen draws onto an ebiten image with canvas-like state
type Screen struct {
	img   *ebiten.Image
	white *ebiten.Image

	path        vector.Path
	lineWidth   float64
	stroke      palette.Style
	fill        palette.Style
	blend       ebiten.Blend
	shadowBlur  float64
	shadowColor palette.Style

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewScreen wraps img. The wrapper is meant to be reused across frames via Reset.
func NewScreen(img *ebiten.Image) *Screen {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	s := &Screen{white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)}
	s.Reset(img)
	return s
}

// Reset points the screen at img and restores the default state
func (s *Screen) Reset(img *ebiten.Image) {
	s.img = img
	s.path = vector.Path{}
	s.lineWidth = 1
	s.stroke = palette.Opaque(palette.RGB{})
	s.fill = palette.Opaque(palette.RGB{})
	s.blend = ebiten.BlendSourceOver
	s.shadowBlur = 0
	s.shadowColor = palette.Style{}
}

func (s *Screen) Clear(bg palette.Style) {
	s.img.Fill(bg)
	s.blend = ebiten.BlendSourceOver
}

func (s *Screen) FillCircle(x, y, radius float64, st palette.Style) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), st, true)
}

func (s *Screen) BeginPath() { s.path = vector.Path{} }

func (s *Screen) MoveTo(x, y float64) { s.path.MoveTo(float32(x), float32(y)) }

func (s *Screen) LineTo(x, y float64) { s.path.LineTo(float32(x), float32(y)) }

func (s *Screen) ClosePath() { s.path.Close() }

func (s *Screen) SetLineWidth(w float64) { s.lineWidth = w }

func (s *Screen) SetStrokeStyle(st palette.Style) { s.stroke = st }

func (s *Screen) SetFillStyle(st palette.Style) { s.fill = st }

// SetGlobalCompositeOperation switches the blend mode; unknown operations
// fall back to source-over
func (s *Screen) SetGlobalCompositeOperation(op string) {
	b, ok := blends[op]
	if !ok {
		render.WarnOnce("render: unsupported composite operation " + op)
		b = ebiten.BlendSourceOver
	}
	s.blend = b
}

func (s *Screen) SetShadowBlur(blur float64) { s.shadowBlur = blur }

func (s *Screen) SetShadowColor(st palette.Style) { s.shadowColor = st }

// Stroke draws the current path. A shadow is approximated by a wider
// translucent stroke underneath.
func (s *Screen) Stroke() {
	if s.shadowBlur > 0 && s.shadowColor.Alpha > 0 {
		halo := s.shadowColor
		halo.Alpha *= shadowAlpha
		s.strokePath(s.lineWidth+s.shadowBlur, halo)
	}
	s.strokePath(s.lineWidth, s.stroke)
}

// Fill fills the current path
func (s *Screen) Fill() {
	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.draw(s.fill)
}

func (s *Screen) strokePath(width float64, st palette.Style) {
	op := &vector.StrokeOptions{Width: float32(width), LineCap: vector.LineCapRound}
	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
	s.draw(st)
}

func (s *Screen) draw(st palette.Style) {
	if len(s.indices) == 0 {
		return
	}
	r, g, b := float32(st.R)/0xff, float32(st.G)/0xff, float32(st.B)/0xff
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = float32(st.Alpha)
	}
	s.img.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{
		Blend:     s.blend,
		AntiAlias: true,
	})
}
