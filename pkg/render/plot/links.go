package plot

import "fmt"

// Squared world-space distances below which two systems are linked.
const (
	PrimaryLinkRange  = 900.0  // 30 world units
	DistanceLinkRange = 2500.0 // 50 world units
)

// LinkKind distinguishes the two connector categories.
type LinkKind int

const (
	PrimaryLink LinkKind = iota
	DistanceLink
)

func (k LinkKind) String() string {
	if k == DistanceLink {
		return "distance"
	}
	return "primary"
}

// Link connects two retained systems.
type Link struct {
	A, B  System
	Kind  LinkKind
	Color string
}

// Links generates links between retained systems if it has not done so for
// the current set, and returns them. It returns nil when both link kinds are
// disabled.
func (p *Plotter) Links() []Link {
	p.finalize()
	return append([]Link(nil), p.links...)
}

// finalize regenerates the link layers when the retained set changed since
// the last run. Retained systems are append-only, so the count identifies
// the set.
func (p *Plotter) finalize() {
	s := p.settings
	if !s.PrimaryLinks && !s.DistanceLinks {
		return
	}
	if p.linked == len(p.retained) {
		return
	}

	p.links = p.links[:0]
	p.primaryLines = p.primaryLines[:0]
	p.distanceLines = p.distanceLines[:0]

	for i, a := range p.retained {
		x1, y1 := p.transform.ToDevice(a.Coordinates)
		for _, b := range p.retained[i+1:] {
			d2 := a.Coordinates.DistanceSquared(b.Coordinates)

			switch {
			case s.PrimaryLinks && d2 <= PrimaryLinkRange:
				x2, y2 := p.transform.ToDevice(b.Coordinates)
				color := s.linkColor(a, b)
				p.links = append(p.links, Link{A: a, B: b, Kind: PrimaryLink, Color: color})
				p.primaryLines = append(p.primaryLines, fmt.Sprintf(
					`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" opacity="%s" />`,
					num(x1), num(y1), num(x2), num(y2), color, num(s.LinkStrokeWidth), num(s.LinkOpacity)))
			case s.DistanceLinks && d2 <= DistanceLinkRange:
				x2, y2 := p.transform.ToDevice(b.Coordinates)
				color := s.linkColor(a, b)
				p.links = append(p.links, Link{A: a, B: b, Kind: DistanceLink, Color: color})
				p.distanceLines = append(p.distanceLines, fmt.Sprintf(
					`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-dasharray="3 2" opacity="%s" />`,
					num(x1), num(y1), num(x2), num(y2), color, num(s.LinkStrokeWidth/2), num(s.LinkOpacity)))
			}
		}
	}

	p.linked = len(p.retained)
	p.stats.PrimaryLinks = len(p.primaryLines)
	p.stats.DistanceLinks = len(p.distanceLines)
}
