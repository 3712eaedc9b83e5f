package links

import (
	"fmt"
	"strings"
	"testing"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/palette"
)

// recorder logs every call as a short string; count matches a call name with any arguments
type recorder struct {
	calls []string
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) BeginPath() { r.log("begin") }
func (r *recorder) MoveTo(x, y float64) { r.log("move %g,%g", x, y) }
func (r *recorder) LineTo(x, y float64) { r.log("line %g,%g", x, y) }
func (r *recorder) ClosePath() { r.log("close") }
func (r *recorder) SetLineWidth(w float64) { r.log("width %g", w) }
func (r *recorder) SetStrokeStyle(s palette.Style) { r.log("stroke-style %s", s) }
func (r *recorder) SetFillStyle(s palette.Style) { r.log("fill-style %s", s) }
func (r *recorder) SetGlobalCompositeOperation(op string) { r.log("composite %s", op) }
func (r *recorder) SetShadowBlur(blur float64) { r.log("shadow-blur %g", blur) }
func (r *recorder) SetShadowColor(s palette.Style) { r.log("shadow-color %s", s) }
func (r *recorder) Stroke() { r.log("stroke") }
func (r *recorder) Fill() { r.log("fill") }

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if c == prefix || strings.HasPrefix(c, prefix+" ") {
			n++
		}
	}
	return n
}

var white = palette.RGB{R: 255, G: 255, B: 255}

func TestDrawLinkLineDirect(t *testing.T) {
	rec := &recorder{}
	DrawLinkLine(rec, 2, geom.Vec(10, 10), geom.Vec(20, 10), 50, square, false,
		Mask{}, white, 0.5, Shadow{})

	want := []string{
		"begin",
		"move 10,10",
		"line 20,10",
		"close",
		"width 2",
		"stroke-style rgba(255, 255, 255, 0.5)",
		"stroke",
	}
	if strings.Join(rec.calls, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
}

func TestDrawLinkLineNothingWhenFar(t *testing.T) {
	rec := &recorder{}
	DrawLinkLine(rec, 1, geom.Vec(30, 50), geom.Vec(70, 50), 20, square, true,
		Mask{Enable: true, Composite: "destination-out"}, white, 1, Shadow{Enable: true, Blur: 4, Color: "#00ff00"})
	if len(rec.calls) != 0 {
		t.Errorf("Expected no draw calls, got %v", rec.calls)
	}
}

func TestDrawLinkLineWrapStrokesTwice(t *testing.T) {
	rec := &recorder{}
	DrawLinkLine(rec, 1, geom.Vec(5, 50), geom.Vec(95, 50), 20, square, true,
		Mask{Enable: true, Composite: "destination-out"}, white, 1, Shadow{})

	if got := rec.count("stroke"); got != 2 {
		t.Errorf("Expected 2 strokes, got %d", got)
	}
	if got := rec.count("composite destination-out"); got != 2 {
		t.Errorf("Expected composite set per segment, got %d", got)
	}
}

func TestDrawLinkLineShadow(t *testing.T) {
	rec := &recorder{}
	DrawLinkLine(rec, 1, geom.Vec(10, 10), geom.Vec(20, 10), 50, square, false,
		Mask{}, white, 1, Shadow{Enable: true, Blur: 4, Color: "#00ff00"})
	if rec.count("shadow-blur 4") != 1 || rec.count("shadow-color rgba(0, 255, 0, 1)") != 1 {
		t.Errorf("shadow not applied: %v", rec.calls)
	}

	rec = &recorder{}
	DrawLinkLine(rec, 1, geom.Vec(10, 10), geom.Vec(20, 10), 50, square, false,
		Mask{}, white, 1, Shadow{Enable: true, Blur: 4, Color: "not a colour"})
	if rec.count("shadow-blur")+rec.count("shadow-color") != 0 {
		t.Errorf("unresolved shadow colour must be skipped: %v", rec.calls)
	}
	if rec.count("stroke") != 1 {
		t.Error("line must still be stroked")
	}
}

func TestDrawLinkTriangle(t *testing.T) {
	rec := &recorder{}
	DrawLinkTriangle(rec, geom.Vec(0, 0), geom.Vec(500, 0), geom.Vec(0, 500),
		Mask{Enable: true, Composite: "source-over"}, palette.RGB{R: 1, G: 2, B: 3}, 0.25)

	want := []string{
		"begin",
		"move 0,0",
		"line 500,0",
		"line 0,500",
		"close",
		"composite source-over",
		"fill-style rgba(1, 2, 3, 0.25)",
		"fill",
	}
	if strings.Join(rec.calls, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
}
