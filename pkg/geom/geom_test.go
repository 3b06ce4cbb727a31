package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestDistanceSquared(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		{"same point", Pt(1, 1), Pt(1, 1), 0},
		{"axis aligned", Pt(0, 0), Pt(30, 0), 900},
		{"pythagorean", Pt(0, 0), Pt(3, 4), 25},
		{"negative quadrant", Pt(-1, -2), Pt(2, 2), 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceSquared(tt.b); got != tt.want {
				t.Errorf("DistanceSquared() = %v, want %v", got, tt.want)
			}
			if got := tt.b.DistanceSquared(tt.a); got != tt.want {
				t.Errorf("DistanceSquared() not symmetric: %v", got)
			}
		})
	}
}

func TestAddSub(t *testing.T) {
	c := Pt(3, -2).Add(Pt(1, 1)).Sub(Pt(4, -1))
	if c != Pt(0, 0) {
		t.Errorf("got %v, want origin", c)
	}
}

func TestHexagonCorners(t *testing.T) {
	h := Hexagon{Center: Pt(12, -7), Radius: 30 / Sqrt3}
	pts := h.Corners()

	for i, p := range pts {
		if d := p.Distance(h.Center); math.Abs(d-h.Radius) > eps {
			t.Errorf("corner %d at distance %v, want %v", i, d, h.Radius)
		}
	}

	for i := range pts {
		a := pts[i].Sub(h.Center)
		b := pts[(i+1)%6].Sub(h.Center)
		angle := math.Acos((a.X*b.X + a.Y*b.Y) / (h.Radius * h.Radius))
		if math.Abs(angle-math.Pi/3) > 1e-7 {
			t.Errorf("corners %d,%d separated by %v rad, want π/3", i, (i+1)%6, angle)
		}
	}

	if math.Abs(pts[0].X-(h.Center.X+h.Radius)) > eps || math.Abs(pts[0].Y-h.Center.Y) > eps {
		t.Errorf("first corner = %v, want on the positive x axis", pts[0])
	}
	if pts[1].Y >= h.Center.Y || pts[4].Y <= h.Center.Y {
		t.Errorf("corners should walk clockwise (down first): %v", pts)
	}
}

func TestHexagonCornersExact(t *testing.T) {
	h := Hexagon{Center: Pt(0, 0), Radius: 2}
	want := [6]Coordinate{
		{2, 0}, {1, -Sqrt3}, {-1, -Sqrt3}, {-2, 0}, {-1, Sqrt3}, {1, Sqrt3},
	}
	if got := h.Corners(); got != want {
		t.Errorf("Corners() = %v, want %v", got, want)
	}
}

func TestHexagonForHeight(t *testing.T) {
	h := HexagonForHeight(Pt(0, 0), 30, "x")
	if math.Abs(h.Radius-30/math.Sqrt(3)) > eps {
		t.Errorf("Radius = %v", h.Radius)
	}
	if math.Abs(h.Height()-30) > eps {
		t.Errorf("Height() = %v, want 30", h.Height())
	}
	if h.Label != "x" {
		t.Errorf("Label = %q", h.Label)
	}
}
