// Package hexgrid tiles a rectangular area with flat-topped hexagons.
//
// [Generate] lays columns out from a center point, first to the right and then
// to the left. Adjacent columns are offset vertically by half a hexagon so
// that they interlock:
//
//	    __      __
//	 __/  \__/  \__
//	/  \__/  \__/  \
//	\__/  \__/  \__/
//
// Every hexagon carries a "CCRR" label (two-digit column and row). Labels are
// for debugging only: columns to the left and right of the center share the
// same numbers, so labels are not unique across a grid.
package hexgrid

import (
	"fmt"

	"github.com/matzehuels/starmap/pkg/geom"
)

// OriginLabel marks the hexagon centered exactly on the requested center.
const OriginLabel = "0000"

// Generate returns hexagons of the given height covering rows × columns cells
// around center. The first hexagon is always the origin tile at center.
//
// Half the columns (columns/2, rounded down, plus the center column) are laid
// to the right and columns/2 to the left. Non-positive rows or columns yield
// only the origin tile.
func Generate(center geom.Coordinate, rows, columns int, hexHeight float64) []geom.Hexagon {
	radius := hexHeight / geom.Sqrt3
	origin := geom.Hexagon{Center: center, Radius: radius, Label: OriginLabel}
	if rows <= 0 || columns <= 0 {
		return []geom.Hexagon{origin}
	}

	half := columns / 2
	hexes := make([]geom.Hexagon, 0, 1+rows*(2*half+1))
	hexes = append(hexes, origin)

	hexes = appendColumns(hexes, center, rows, 0, half, radius, hexHeight, 1.5*radius)
	hexes = appendColumns(hexes, center, rows, 1, half, radius, hexHeight, -1.5*radius)
	return hexes
}

// appendColumns walks columns first..last, stepping the anchor by dx per
// column and alternating the vertical offset so neighbours interlock.
func appendColumns(hexes []geom.Hexagon, center geom.Coordinate, rows, first, last int, radius, hexHeight, dx float64) []geom.Hexagon {
	anchor := geom.Pt(center.X, center.Y-hexHeight*float64(rows/2))

	for c := first; c <= last; c++ {
		if c != 0 {
			anchor = step(anchor, c, dx, hexHeight)
		}
		for r := 0; r < rows; r++ {
			hexes = append(hexes, geom.Hexagon{
				Center: geom.Pt(anchor.X, anchor.Y+float64(r)*hexHeight),
				Radius: radius,
				Label:  fmt.Sprintf("%02d%02d", c, r),
			})
		}
	}
	return hexes
}

// step moves the anchor to column c: odd columns sit half a hex lower than
// their even neighbours.
func step(anchor geom.Coordinate, c int, dx, hexHeight float64) geom.Coordinate {
	if c%2 == 1 {
		return geom.Pt(anchor.X+dx, anchor.Y-hexHeight/2)
	}
	return geom.Pt(anchor.X+dx, anchor.Y+hexHeight/2)
}
