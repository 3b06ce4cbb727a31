// Package io reads and writes system catalogs.
//
// # Overview
//
// A catalog lists the systems to plot. Two encodings are supported and carry
// the same fields:
//
// JSON:
//
//	{
//	  "systems": [
//	    {"name": "Terra", "x": 0, "y": 0, "meta": {"faction": "ComStar", "capital": true}},
//	    {"name": "Tharkad", "x": -211.2, "y": 401.9, "meta": {"faction": "Lyran Commonwealth"}}
//	  ]
//	}
//
// TOML:
//
//	[[systems]]
//	name = "Terra"
//	x = 0.0
//	y = 0.0
//	[systems.meta]
//	faction = "ComStar"
//	capital = true
//
// # System Fields
//
// Required:
//   - name: Unique, non-blank display name
//   - x, y: World coordinates (y grows upward)
//
// Optional:
//   - meta: Freeform attributes consumed by palette policies
//
// # Validation
//
// [ReadJSON] and [ReadTOML] reject blank names, names with control
// characters, and duplicate names with an INVALID_CATALOG error. Decode
// failures are wrapped with the same code.
//
// # File Helpers
//
// [Import] picks the decoder from the file extension (.json or .toml) and
// [ExportJSON] writes a catalog that round-trips through [ImportJSON].
//
// [Fetch] loads a catalog published over HTTP through an
// [httputil.Fetcher], using the extension of the URL path the same way.
package io
