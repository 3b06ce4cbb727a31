package plot

import (
	"math"

	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/geom"
)

// Default policy results used when a callback is nil.
const (
	DefaultSystemColor = "#ffffff"
	DefaultLinkColor   = "#666666"
)

// Policy callbacks. Each receives systems read-only and must not retain them.
type (
	SystemColorFunc func(System) string
	SystemTextFunc  func(System) string
	LinkColorFunc   func(a, b System) string
	ImportantFunc   func(System) bool
)

// Settings configures a Plotter. It is read once by New.
type Settings struct {
	Width  float64 // viewport width in world units, before scaling
	Height float64 // viewport height in world units, before scaling
	Scale  float64 // device units per world unit; must be > 0

	Center geom.Coordinate // world point drawn at the middle of the viewport

	SystemRadius float64 // marker radius in device units

	PrimaryLinks  bool // solid links between systems within PrimaryLinkRange
	DistanceLinks bool // dashed links between systems within DistanceLinkRange
	Names         bool // title and subtitle labels

	PrimaryFontSize   float64
	SecondaryFontSize float64

	LinkStrokeWidth float64
	LinkOpacity     float64

	SystemColor    SystemColorFunc // default DefaultSystemColor
	SystemTitle    SystemTextFunc  // default System.Name
	SystemSubtitle SystemTextFunc  // default none
	LinkColor      LinkColorFunc   // default DefaultLinkColor
	Important      ImportantFunc   // default never
}

// Validate reports whether s describes a usable viewport.
func (s Settings) Validate() error {
	if math.IsNaN(s.Scale) || math.IsInf(s.Scale, 0) || s.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be a positive number, got %v", s.Scale)
	}
	if math.IsNaN(s.Width) || math.IsInf(s.Width, 0) || s.Width < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width must be a non-negative number, got %v", s.Width)
	}
	if math.IsNaN(s.Height) || math.IsInf(s.Height, 0) || s.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "height must be a non-negative number, got %v", s.Height)
	}
	return nil
}

func (s Settings) systemColor(sys System) string {
	if s.SystemColor == nil {
		return DefaultSystemColor
	}
	return s.SystemColor(sys)
}

func (s Settings) systemTitle(sys System) string {
	if s.SystemTitle == nil {
		return sys.Name
	}
	return s.SystemTitle(sys)
}

func (s Settings) systemSubtitle(sys System) string {
	if s.SystemSubtitle == nil {
		return ""
	}
	return s.SystemSubtitle(sys)
}

func (s Settings) linkColor(a, b System) string {
	if s.LinkColor == nil {
		return DefaultLinkColor
	}
	return s.LinkColor(a, b)
}

func (s Settings) important(sys System) bool {
	return s.Important != nil && s.Important(sys)
}
