// Package pkg provides the libraries behind the starmap renderer.
//
// # Overview
//
// starmap turns a catalog of named star systems with 2D coordinates into a
// map of the region around a focus point, with jump links between nearby
// systems and optional hexagon grid, rectangle and circle overlays.
//
// # Architecture
//
// The data flow through starmap:
//
//	Catalog (JSON/TOML file or URL)
//	         ↓
//	    [io] package (decode + validate systems)
//	         ↓
//	    [render/plot] package (classify, transform, link, compose SVG)
//	         ↓
//	    [render/nodelink] or [render] (Graphviz network, PNG/PDF)
//	         ↓
//	    SVG/PNG/PDF output
//
// [pipeline] wires these steps together and caches the artifacts through
// [cache].
//
// # Quick Start
//
//	systems, _ := io.Import("inner-sphere.json")
//
//	opts := pipeline.DefaultOptions()
//	opts.Scale = 2
//	opts.Grid = true
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, systems, opts)
//	os.WriteFile("map.svg", result.Artifacts["svg"], 0644)
//
// # Packages
//
//   - [geom]: Coordinate and Hexagon primitives
//   - [geom/hexgrid]: Flat-topped hexagon grid generation
//   - [render/plot]: The star map renderer and world to device transform
//   - [render/nodelink]: Graphviz rendering of the jump network
//   - [render]: SVG to PNG/PDF conversion
//   - [palette]: Metadata driven colors, titles and link colors
//   - [io]: Catalog import and export
//   - [httputil]: Remote catalog download with retry and caching
//   - [pipeline]: Options, validation and the cached render runner
//   - [cache]: Null, file and Redis artifact caches
//   - [config]: starmap.toml loading
//   - [observability]: Pipeline and cache hooks
//   - [errors]: Coded errors and input validation
//   - [buildinfo]: Version information set at build time
package pkg
