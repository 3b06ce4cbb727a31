// Package geom provides the planar value types shared by the map renderer:
// world-space coordinates and flat-topped hexagons.
//
// All types are immutable values. Methods return new values and never modify
// their receiver, so coordinates and hexagons can be copied and shared freely.
package geom

import "math"

// Sqrt3 is √3, the ratio between a hexagon's height and its circumradius.
const Sqrt3 = 1.7320508075688772

// Coordinate is a point on the flat 2D plane.
type Coordinate struct {
	X, Y float64
}

// Pt is shorthand for Coordinate{X: x, Y: y}.
func Pt(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Add returns c translated by d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns the vector from d to c.
func (c Coordinate) Sub(d Coordinate) Coordinate {
	return Coordinate{X: c.X - d.X, Y: c.Y - d.Y}
}

// DistanceSquared returns the squared Euclidean distance between c and d.
func (c Coordinate) DistanceSquared(d Coordinate) float64 {
	dx, dy := c.X-d.X, c.Y-d.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between c and d.
func (c Coordinate) Distance(d Coordinate) float64 {
	return math.Sqrt(c.DistanceSquared(d))
}
