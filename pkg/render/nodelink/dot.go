package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/starmap/pkg/render/plot"
)

// DefaultPinScale is the number of points per world unit for pinned layouts.
const DefaultPinScale = 4.0

// Options configures jump network rendering.
type Options struct {
	// Detailed adds coordinates and metadata to node labels.
	Detailed bool

	// Pinned fixes nodes at their world coordinates.
	Pinned bool

	// Scale is points per world unit when Pinned. Zero means DefaultPinScale.
	Scale float64

	// Color returns a node's fill color. Nil fills white.
	Color plot.SystemColorFunc
}

// ToDOT converts systems and the links between them to an undirected
// Graphviz graph. Links whose endpoints are not in systems are skipped.
func ToDOT(systems []plot.System, links []plot.Link, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultPinScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"black\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fontname=\"sans-serif\", fontsize=10, fontcolor=\"#eeeeee\", color=\"#000000\", width=0.15, fixedsize=false];\n")
	buf.WriteString("  edge [penwidth=1];\n")
	buf.WriteString("\n")

	names := make(map[string]bool, len(systems))
	for _, sys := range systems {
		names[sys.Name] = true
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(sys, opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", fillColor(sys, opts.Color)),
		}
		if opts.Pinned {
			x := strconv.FormatFloat(sys.Coordinates.X*scale, 'f', 2, 64)
			y := strconv.FormatFloat(sys.Coordinates.Y*scale, 'f', 2, 64)
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", x, y))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", sys.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range links {
		if !names[l.A.Name] || !names[l.B.Name] {
			continue
		}
		attrs := []string{fmt.Sprintf("color=%q", l.Color)}
		if l.Kind == plot.DistanceLink {
			attrs = append(attrs, "style=dashed", "penwidth=0.5")
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", l.A.Name, l.B.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(sys plot.System, detailed bool) string {
	if !detailed {
		return sys.Name
	}

	parts := []string{fmt.Sprintf("(%g, %g)", sys.Coordinates.X, sys.Coordinates.Y)}
	for _, k := range slices.Sorted(maps.Keys(sys.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, sys.Meta[k]))
	}
	return sys.Name + "\n" + strings.Join(parts, "\n")
}

func fillColor(sys plot.System, color plot.SystemColorFunc) string {
	if color == nil {
		return plot.DefaultSystemColor
	}
	return color(sys)
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
// Pinned positions are honoured.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in user units so the diagram scales like the star map.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
