package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/geom/hexgrid"
)

// Overshoot margins in world units; the largest enabled one applies.
const (
	MarginNoLinks       = 5.0
	MarginPrimaryLinks  = 30.0
	MarginDistanceLinks = 50.0
)

// GridHexHeight is the height of hex grid cells in world units.
const GridHexHeight = 30.0

// Metadata holds caller attributes of a system. The plotter never reads it;
// it exists for policy callbacks.
type Metadata map[string]any

// System is a named point on the map.
type System struct {
	Name        string
	Coordinates geom.Coordinate
	Meta        Metadata
}

// Rectangle is an axis-aligned rectangle spanned by two opposite corners.
type Rectangle struct {
	A, B geom.Coordinate
}

// Circle is a circle in world units.
type Circle struct {
	Center geom.Coordinate
	Radius float64
}

// Visibility is the outcome of admitting a system.
type Visibility int

const (
	Excluded Visibility = iota
	NearVisible
	Visible
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case NearVisible:
		return "near-visible"
	default:
		return "excluded"
	}
}

// Stats counts what a Plotter has drawn so far.
type Stats struct {
	Visible       int
	NearVisible   int
	Excluded      int
	Markers       int
	Labels        int
	Overlays      int
	PrimaryLinks  int
	DistanceLinks int
}

// Plotter accumulates map layers for one SVG document.
type Plotter struct {
	settings  Settings
	transform Transform
	width     int
	height    int

	retained []System

	primaryLines  []string
	distanceLines []string
	markers       []string
	overlays      []string
	text          []string

	links  []Link
	linked int // len(retained) when links were last generated, -1 if never

	stats Stats
}

// New creates a Plotter. It returns an INVALID_CONFIG error when the scale
// is not positive or the viewport size is negative.
func New(s Settings) (*Plotter, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	width := int(math.Ceil(s.Width * s.Scale))
	height := int(math.Ceil(s.Height * s.Scale))

	return &Plotter{
		settings: s,
		width:    width,
		height:   height,
		transform: Transform{
			Scale:   s.Scale,
			Focus:   s.Center,
			CenterX: float64(width) / 2,
			CenterY: float64(height) / 2,
		},
		linked: -1,
	}, nil
}

// Width returns the document width in device units.
func (p *Plotter) Width() int { return p.width }

// Height returns the document height in device units.
func (p *Plotter) Height() int { return p.height }

// Transform returns the world-to-device transform.
func (p *Plotter) Transform() Transform { return p.transform }

// Stats returns counters for everything added so far. Link counts are only
// populated once the document has been written or Links was called.
func (p *Plotter) Stats() Stats { return p.stats }

// Retained returns the systems kept as potential link endpoints, in
// admission order.
func (p *Plotter) Retained() []System {
	return append([]System(nil), p.retained...)
}

// Overshoot returns the margin, in device units, around the viewport within
// which off-screen systems are still kept for links.
func (p *Plotter) Overshoot() float64 {
	m := MarginNoLinks
	if p.settings.PrimaryLinks {
		m = MarginPrimaryLinks
	}
	if p.settings.DistanceLinks {
		m = MarginDistanceLinks
	}
	return m * p.settings.Scale
}

// Classify reports how a system at world coordinate c would be admitted.
func (p *Plotter) Classify(c geom.Coordinate) Visibility {
	x, y := p.transform.ToDevice(c)
	w, h := float64(p.width), float64(p.height)
	if x >= 0 && x <= w && y >= 0 && y <= h {
		return Visible
	}
	o := p.Overshoot()
	if x >= -o && x <= w+o && y >= -o && y <= h+o {
		return NearVisible
	}
	return Excluded
}

// AddSystem admits a system and returns its classification. Visible systems
// get a marker and, when names are enabled, labels. Visible and near-visible
// systems are retained for link generation.
func (p *Plotter) AddSystem(sys System) Visibility {
	v := p.Classify(sys.Coordinates)
	switch v {
	case Visible:
		p.stats.Visible++
		p.drawSystem(sys)
		p.retained = append(p.retained, sys)
	case NearVisible:
		p.stats.NearVisible++
		p.retained = append(p.retained, sys)
	default:
		p.stats.Excluded++
	}
	return v
}

func (p *Plotter) drawSystem(sys System) {
	s := p.settings
	x, y := p.transform.ToDevice(sys.Coordinates)

	radius := s.SystemRadius
	if s.important(sys) {
		radius *= 2
	}

	p.markers = append(p.markers, fmt.Sprintf(
		`<circle cx="%s" cy="%s" r="%s" stroke="#000000" stroke-width="1" fill="%s" />`,
		num(x), num(y), num(radius), s.systemColor(sys)))
	p.stats.Markers++

	if !s.Names {
		return
	}

	title := s.systemTitle(sys)
	p.text = append(p.text, label(x, y-(radius+s.SecondaryFontSize+4), s.PrimaryFontSize, title))
	p.stats.Labels++

	if sub := s.systemSubtitle(sys); strings.TrimSpace(sub) != "" {
		p.text = append(p.text, label(x, y-(radius+2), s.SecondaryFontSize, sub))
		p.stats.Labels++
	}
}

func label(x, y, size float64, text string) string {
	return fmt.Sprintf(
		`<text x="%s" y="%s" fill="#eeeeee" text-anchor="middle" font-family="sans-serif" font-size="%s" stroke="black" stroke-width="0.25">%s</text>`,
		num(x), num(y), num(size), escapeXML(text))
}

// AddRectangle draws an unfilled diagnostic rectangle. It is never culled.
func (p *Plotter) AddRectangle(r Rectangle) {
	x1, y1 := p.transform.ToDevice(r.A)
	x2, y2 := p.transform.ToDevice(r.B)

	p.addOverlay(fmt.Sprintf(
		`<rect x="%s" y="%s" width="%s" height="%s" fill-opacity="0" stroke="#cccccc" />`,
		num(math.Min(x1, x2)), num(math.Min(y1, y2)), num(math.Abs(x2-x1)), num(math.Abs(y2-y1))))
}

// AddCircle draws an unfilled diagnostic circle. It is never culled.
func (p *Plotter) AddCircle(c Circle) {
	x, y := p.transform.ToDevice(c.Center)

	p.addOverlay(fmt.Sprintf(
		`<circle cx="%s" cy="%s" r="%s" fill-opacity="0" stroke="#cccccc" />`,
		num(x), num(y), num(c.Radius*p.settings.Scale)))
}

// AddHexGrid overlays a hex grid anchored at world (0,0), sized to cover the
// viewport. The row count is always odd so the grid is symmetric about its
// middle row.
func (p *Plotter) AddHexGrid() {
	rows, columns := p.gridSize()
	for _, hex := range hexgrid.Generate(geom.Pt(0, 0), rows, columns, GridHexHeight) {
		p.addOverlay(p.polygon(hex))
	}
}

func (p *Plotter) gridSize() (rows, columns int) {
	scale := p.settings.Scale
	rows = int(math.Ceil(float64(p.height) / (scale * GridHexHeight)))
	columns = int(math.Ceil(float64(p.width) / (scale * GridHexHeight / geom.Sqrt3)))
	if rows%2 == 0 {
		rows++
	}
	return rows, columns
}

func (p *Plotter) polygon(hex geom.Hexagon) string {
	corners := hex.Corners()

	var pts strings.Builder
	for i := 0; i <= len(corners); i++ {
		if i > 0 {
			pts.WriteByte(' ')
		}
		x, y := p.transform.ToDevice(corners[i%len(corners)])
		pts.WriteString(num(x))
		pts.WriteByte(',')
		pts.WriteString(num(y))
	}
	return fmt.Sprintf(`<polygon points="%s" fill="none" stroke="#aaaaaa" stroke-width="1.5" />`, pts.String())
}

func (p *Plotter) addOverlay(svg string) {
	p.overlays = append(p.overlays, svg)
	p.stats.Overlays++
}
