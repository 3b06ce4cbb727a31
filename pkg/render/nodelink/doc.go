// Package nodelink renders the jump network as a Graphviz diagram.
//
// # Overview
//
// Systems become filled circles and links become edges: primary links
// solid, distance links dashed. The diagram complements the star map when
// connectivity matters more than geometry.
//
// # Usage
//
//	dot := nodelink.ToDOT(p.Retained(), p.Links(), nodelink.Options{Pinned: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// PNG and PDF output convert that SVG with render.ToPNG and render.ToPDF,
// so the layout runs once per network whatever the formats.
//
// # Options
//
//   - Detailed: labels carry coordinates and metadata
//   - Pinned: nodes keep their world positions instead of a spring layout
//   - Color: fill policy, usually the star map's system color
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] with the neato engine for
// in-process SVG rendering.
package nodelink
