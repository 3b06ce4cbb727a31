package plot

import "github.com/matzehuels/starmap/pkg/geom"

// Transform maps world coordinates (y up) to device coordinates (y down).
//
//	deviceX =  Scale·(x − Focus.X) + CenterX
//	deviceY = −Scale·(y − Focus.Y) + CenterY
type Transform struct {
	Scale   float64
	Focus   geom.Coordinate
	CenterX float64
	CenterY float64
}

// ToDevice maps a world coordinate into device space.
func (t Transform) ToDevice(c geom.Coordinate) (x, y float64) {
	x = t.Scale*(c.X-t.Focus.X) + t.CenterX
	y = -t.Scale*(c.Y-t.Focus.Y) + t.CenterY
	return x, y
}

// ToWorld is the inverse of ToDevice.
func (t Transform) ToWorld(x, y float64) geom.Coordinate {
	return geom.Coordinate{
		X: (x-t.CenterX)/t.Scale + t.Focus.X,
		Y: -(y-t.CenterY)/t.Scale + t.Focus.Y,
	}
}
