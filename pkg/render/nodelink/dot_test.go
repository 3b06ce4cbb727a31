package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

var (
	terra  = plot.System{Name: "Terra", Coordinates: geom.Pt(0, 0), Meta: plot.Metadata{"faction": "ComStar"}}
	sol    = plot.System{Name: "New Earth", Coordinates: geom.Pt(20, 10)}
	tharks = plot.System{Name: "Tharkad", Coordinates: geom.Pt(-40, 12.5)}
)

func sampleLinks() []plot.Link {
	return []plot.Link{
		{A: terra, B: sol, Kind: plot.PrimaryLink, Color: "#666666"},
		{A: terra, B: tharks, Kind: plot.DistanceLink, Color: "#445566"},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT([]plot.System{terra, sol, tharks}, sampleLinks(), Options{})

	for _, want := range []string{
		"graph G {",
		`"Terra" [label="Terra", fillcolor="#ffffff"];`,
		`"New Earth" [label="New Earth", fillcolor="#ffffff"];`,
		`"Terra" -- "New Earth" [color="#666666"];`,
		`"Terra" -- "Tharkad" [color="#445566", style=dashed, penwidth=0.5];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "pos=") {
		t.Error("unpinned DOT should not carry positions")
	}
}

func TestToDOTPinned(t *testing.T) {
	dot := ToDOT([]plot.System{tharks}, nil, Options{Pinned: true, Scale: 2})
	if !strings.Contains(dot, `pos="-80.00,25.00!"`) {
		t.Errorf("pinned position missing:\n%s", dot)
	}

	dot = ToDOT([]plot.System{sol}, nil, Options{Pinned: true})
	if !strings.Contains(dot, `pos="80.00,40.00!"`) {
		t.Errorf("default pin scale not applied:\n%s", dot)
	}
}

func TestToDOTDetailedAndColor(t *testing.T) {
	opts := Options{
		Detailed: true,
		Color:    func(plot.System) string { return "#abcdef" },
	}
	dot := ToDOT([]plot.System{terra}, nil, opts)

	if !strings.Contains(dot, `label="Terra\n(0, 0)\nfaction: ComStar"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="#abcdef"`) {
		t.Errorf("color policy not applied:\n%s", dot)
	}
}

func TestToDOTSkipsDanglingLinks(t *testing.T) {
	dot := ToDOT([]plot.System{terra, sol}, sampleLinks(), Options{})
	if strings.Contains(dot, "Tharkad") {
		t.Errorf("link to a missing system should be skipped:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT([]plot.System{terra, sol, tharks}, sampleLinks(), Options{Pinned: true})
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Fatal("output is not SVG")
	}
	if !bytes.Contains(svg, []byte("Tharkad")) {
		t.Error("node label missing from SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
