// Package plot renders star systems onto a flat SVG map.
//
// # Overview
//
// A [Plotter] owns a fixed viewport (width × height device units after
// scaling) and a world-to-device [Transform] centered on a configured focus
// point. Callers add systems, diagnostic overlays, and optionally a hex grid;
// the plotter decides what is visible and accumulates serialized SVG
// fragments into ordered layers. [Plotter.WriteTo] composes the document.
//
// # Layers
//
// Output is always composed in this order, regardless of the order in which
// things were added:
//
//  1. background rectangle
//  2. distance links (dashed)
//  3. primary links (solid)
//  4. system markers
//  5. overlays (rectangles, circles, hex grid)
//  6. text labels
//
// Items inside a layer keep their insertion order.
//
// # Visibility
//
// [Plotter.AddSystem] classifies each system by its device position:
//
//   - [Visible]: inside the viewport. A marker is drawn, labels too when names
//     are enabled, and the system takes part in link generation.
//   - [NearVisible]: outside the viewport but within the overshoot margin.
//     Nothing is drawn, but links may still reach it from visible systems.
//   - [Excluded]: beyond the margin. Dropped entirely.
//
// The margin is 5 world units without links, 30 with primary links and 50
// with distance links, multiplied by the scale.
//
// # Links
//
// Links are computed once, when the document is first written, by comparing
// every pair of retained systems in world space. Pairs within
// [PrimaryLinkRange] get a solid primary link. Otherwise, pairs within
// [DistanceLinkRange] get a dashed distance link. A pair never receives both.
//
// # Policies
//
// Colors, titles, subtitles and importance are decided by optional callbacks
// in [Settings]. A nil callback falls back to a fixed default. Callback output
// is written verbatim into attributes; label text is XML-escaped.
//
// A Plotter is not safe for concurrent use.
//
// Basic usage:
//
//	p, err := plot.New(plot.Settings{Width: 200, Height: 200, Scale: 2, Names: true})
//	if err != nil {
//	    return err
//	}
//	p.AddHexGrid()
//	for _, s := range systems {
//	    p.AddSystem(s)
//	}
//	_, err = p.WriteTo(w)
package plot
