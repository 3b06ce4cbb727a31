// Package render turns star catalogs into documents.
//
// # Overview
//
//   - [plot]: the SVG star map (markers, labels, jump links, overlays, hex grid)
//   - [nodelink]: the jump network as a Graphviz diagram
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers use them.
//
//	svg := p.Bytes()
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [plot]: github.com/matzehuels/starmap/pkg/render/plot
// [nodelink]: github.com/matzehuels/starmap/pkg/render/nodelink
package render
