package palette

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

func system(name string, meta plot.Metadata) plot.System {
	return plot.System{Name: name, Coordinates: geom.Pt(0, 0), Meta: meta}
}

func mustNew(t *testing.T, cfg Config) *Palette {
	t.Helper()
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return p
}

func TestSystemColor(t *testing.T) {
	p := mustNew(t, Config{Colors: map[string]string{"Lyran Commonwealth": "#3366ff"}})

	if got := p.SystemColor(system("Tharkad", plot.Metadata{"faction": "Lyran Commonwealth"})); got != "#3366ff" {
		t.Errorf("mapped color = %q, want #3366ff", got)
	}
	if got := p.SystemColor(system("Nowhere", nil)); got != plot.DefaultSystemColor {
		t.Errorf("missing key = %q, want %q", got, plot.DefaultSystemColor)
	}

	gen := p.SystemColor(system("Sian", plot.Metadata{"faction": "Capellan Confederation"}))
	if gen != Generate("Capellan Confederation").Hex() {
		t.Errorf("unmapped color = %q, want generated", gen)
	}
	if again := p.SystemColor(system("Sarna", plot.Metadata{"faction": "Capellan Confederation"})); again != gen {
		t.Errorf("generated colors must be stable: %q vs %q", again, gen)
	}
}

func TestGenerateDistinct(t *testing.T) {
	a, b := Generate("Draconis Combine"), Generate("Free Worlds League")
	if a.Hex() == b.Hex() {
		t.Errorf("different factions produced the same color %s", a.Hex())
	}
	if !a.IsValid() {
		t.Errorf("generated color %v out of gamut", a)
	}
}

func TestNewRejectsBadColors(t *testing.T) {
	for _, cfg := range []Config{
		{Colors: map[string]string{"x": "red"}},
		{LinkColor: "#12"},
	} {
		_, err := New(cfg)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("New(%+v) err = %v, want INVALID_CONFIG", cfg, err)
		}
	}
}

func TestTitleAndSubtitle(t *testing.T) {
	p := mustNew(t, Config{TitleKey: "display", SubtitleKey: "faction"})

	s := system("terra", plot.Metadata{"display": "Terra", "faction": "ComStar"})
	if got := p.Title(s); got != "Terra" {
		t.Errorf("Title() = %q, want Terra", got)
	}
	if got := p.Subtitle(s); got != "ComStar" {
		t.Errorf("Subtitle() = %q, want ComStar", got)
	}

	bare := system("Outpost", nil)
	if got := p.Title(bare); got != "Outpost" {
		t.Errorf("Title() fallback = %q, want Outpost", got)
	}
	if got := p.Subtitle(bare); got != "" {
		t.Errorf("Subtitle() = %q, want empty", got)
	}

	none := mustNew(t, Config{})
	if got := none.Subtitle(s); got != "" {
		t.Errorf("Subtitle() without key = %q, want empty", got)
	}
}

func TestImportant(t *testing.T) {
	p := mustNew(t, Config{})
	tests := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{"yes", false},
		{"true", true},
		{float64(1), true},
		{float64(0), false},
		{int64(2), true},
		{nil, false},
	}
	for _, tt := range tests {
		s := system("x", plot.Metadata{"capital": tt.value})
		if got := p.Important(s); got != tt.want {
			t.Errorf("Important(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLinkColor(t *testing.T) {
	p := mustNew(t, Config{Colors: map[string]string{"a": "#ff0000", "b": "#0000ff"}})

	red := system("r", plot.Metadata{"faction": "a"})
	blue := system("b", plot.Metadata{"faction": "b"})
	plain := system("p", nil)

	if got := p.LinkColor(red, plain); got != plot.DefaultLinkColor {
		t.Errorf("uncolored endpoint = %q, want default", got)
	}

	got := p.LinkColor(red, blue)
	c, err := colorful.Hex(got)
	if err != nil {
		t.Fatalf("LinkColor() = %q is not hex: %v", got, err)
	}
	if got == "#ff0000" || got == "#0000ff" {
		t.Errorf("LinkColor() = %q, want a blend", got)
	}
	if _, _, l := c.Hcl(); l >= 0.9 {
		t.Errorf("link color %q should be shaded darker", got)
	}

	if got, want := p.LinkColor(red, blue), p.LinkColor(blue, red); got != want {
		t.Errorf("LinkColor not symmetric: %q vs %q", got, want)
	}

	fixed := mustNew(t, Config{LinkColor: "#123456"})
	if got := fixed.LinkColor(red, blue); got != "#123456" {
		t.Errorf("fixed link color = %q", got)
	}
}

func TestInstall(t *testing.T) {
	p := mustNew(t, Config{})
	var s plot.Settings
	p.Install(&s)
	if s.SystemColor == nil || s.SystemTitle == nil || s.SystemSubtitle == nil || s.LinkColor == nil || s.Important == nil {
		t.Error("Install should set every policy")
	}
}
