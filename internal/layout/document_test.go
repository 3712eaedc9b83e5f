package layout

import (
	"testing"

	"github.com/olivierh59500/particle-links/internal/geom"
)

const fragment = `
<section>
  <div id="logo" class="repulse big" data-left="10" data-top="20" data-width="80" data-height="40">logo</div>
  <div id="panel" class="repulse-box" data-left="200px" data-top="100" data-width="50" data-height="30"></div>
  <p class="repulse">not laid out</p>
</section>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	d, err := Parse(fragment)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestParseCollectsLaidOutElements(t *testing.T) {
	d := mustParse(t)
	if len(d.Elements()) != 2 {
		t.Fatalf("Expected 2 laid out elements, got %d", len(d.Elements()))
	}
	logo := d.ByID("logo")
	if logo == nil {
		t.Fatal("logo not found")
	}
	if logo.Text() != "logo" {
		t.Errorf("Expected text 'logo', got %q", logo.Text())
	}
	if got := logo.Box(); got != geom.NewRectangle(10, 20, 80, 40) {
		t.Errorf("unexpected box %+v", got)
	}
	if got := d.ByID("panel").Box().Position.X; got != 200 {
		t.Errorf("px suffix not handled, got %v", got)
	}
}

func TestQuerySelectorAll(t *testing.T) {
	d := mustParse(t)

	cases := map[string]int{
		".repulse":               1,
		"#panel":                 1,
		"div":                    2,
		".repulse, .repulse-box": 2,
		".missing":               0,
	}
	for sel, want := range cases {
		if got := len(d.QuerySelectorAll(sel)); got != want {
			t.Errorf("%q matched %d elements, want %d", sel, got, want)
		}
	}
}

func TestInvalidSelectorMatchesNothing(t *testing.T) {
	d := mustParse(t)
	if got := d.QuerySelectorAll("div[["); got != nil {
		t.Errorf("Expected nil for invalid selector, got %d", len(got))
	}
	if d.ByID("logo").Matches("div[[") {
		t.Error("invalid selector should not match")
	}
}

func TestMatches(t *testing.T) {
	d := mustParse(t)
	logo := d.ByID("logo")
	if !logo.Matches(".big") || !logo.Matches("#logo") {
		t.Error("logo should match its class and id")
	}
	if logo.Matches("#panel") {
		t.Error("logo matched #panel")
	}
}

func TestBoxIsLive(t *testing.T) {
	d := mustParse(t)
	logo := d.ByID("logo")
	els := d.QuerySelectorAll("#logo")

	logo.MoveTo(300, 310)
	logo.Resize(20, 10)

	if got := els[0].Box(); got != geom.NewRectangle(300, 310, 20, 10) {
		t.Errorf("Expected moved box, got %+v", got)
	}
}
