package pipeline

import (
	"fmt"

	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/palette"
	"github.com/matzehuels/starmap/pkg/render"
	"github.com/matzehuels/starmap/pkg/render/nodelink"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

// Plot builds a Plotter for systems: hex grid first if requested, then the
// overlays, then every system.
func Plot(systems []plot.System, opts Options) (*plot.Plotter, *palette.Palette, error) {
	pal, err := palette.New(opts.Palette)
	if err != nil {
		return nil, nil, err
	}

	settings := opts.Settings()
	pal.Install(&settings)

	p, err := plot.New(settings)
	if err != nil {
		return nil, nil, err
	}

	if opts.Grid {
		p.AddHexGrid()
	}
	for _, r := range opts.Rectangles {
		p.AddRectangle(plot.Rectangle{A: geom.Pt(r[0], r[1]), B: geom.Pt(r[2], r[3])})
	}
	for _, c := range opts.Circles {
		p.AddCircle(plot.Circle{Center: geom.Pt(c[0], c[1]), Radius: c[2]})
	}
	for _, sys := range systems {
		p.AddSystem(sys)
	}
	return p, pal, nil
}

// Render generates output artifacts in the requested formats.
func Render(p *plot.Plotter, pal *palette.Palette, opts Options) (map[string][]byte, error) {
	if opts.IsNetwork() {
		return renderNetwork(p, pal, opts)
	}
	return renderMap(p, opts)
}

func renderMap(p *plot.Plotter, opts Options) (map[string][]byte, error) {
	svg := p.Bytes()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(svg, opts.PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(svg)
		default:
			return nil, fmt.Errorf("unsupported map format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderNetwork(p *plot.Plotter, pal *palette.Palette, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(p.Retained(), p.Links(), nodelink.Options{
		Detailed: opts.Detailed,
		Pinned:   opts.Pinned,
		Color:    pal.SystemColor,
	})

	svg, err := nodelink.RenderSVG(dot)
	if err != nil {
		return nil, fmt.Errorf("render network: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte

		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(svg, opts.PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(svg)
		default:
			return nil, fmt.Errorf("unsupported network format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
