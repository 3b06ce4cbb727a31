package geom

// Hexagon is a flat-topped regular hexagon.
//
// Radius is the circumradius (center to corner). The hexagon's height, measured
// between its two horizontal edges, is Radius·√3.
type Hexagon struct {
	Center Coordinate
	Radius float64
	Label  string // optional, for debugging only
}

// HexagonForHeight returns the hexagon of the given height centered on c.
func HexagonForHeight(c Coordinate, height float64, label string) Hexagon {
	return Hexagon{Center: c, Radius: height / Sqrt3, Label: label}
}

// Height returns the distance between the top and bottom edges.
func (h Hexagon) Height() float64 {
	return h.Radius * Sqrt3
}

// Corners returns the six corner points, starting on the positive x axis
// and walking clockwise in world space (0°, -60°, ..., -300°).
func (h Hexagon) Corners() [6]Coordinate {
	half := h.Radius / 2
	rise := Sqrt3 * h.Radius / 2
	c := h.Center
	return [6]Coordinate{
		{c.X + h.Radius, c.Y},
		{c.X + half, c.Y - rise},
		{c.X - half, c.Y - rise},
		{c.X - h.Radius, c.Y},
		{c.X - half, c.Y + rise},
		{c.X + half, c.Y + rise},
	}
}
