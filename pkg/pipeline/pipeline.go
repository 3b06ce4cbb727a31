// Package pipeline turns a star catalog into rendered documents.
//
// This package implements the plot → render pipeline used by the CLI and by
// library callers. Centralizing it keeps defaults, validation and caching
// identical across entry points.
//
// # Architecture
//
//  1. Plot: classify the catalog against the viewport, draw markers, labels,
//     overlays and the hex grid, and generate jump links
//  2. Render: produce each requested format for the requested viz type
//     ("map" is the SVG star map, "network" the Graphviz jump network)
//
// Artifacts are cached under a key derived from the catalog content, the
// options and the format, so re-rendering an unchanged map is a lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, systems, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/starmap/pkg/cache"
	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/palette"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library
// =============================================================================

const (
	// DefaultWidth is the default viewport width in world units.
	DefaultWidth = 200.0

	// DefaultHeight is the default viewport height in world units.
	DefaultHeight = 200.0

	// DefaultScale is the default number of device units per world unit.
	DefaultScale = 1.0

	// DefaultSystemRadius is the marker radius in device units.
	DefaultSystemRadius = 3.0

	// DefaultPrimaryFontSize is the title font size.
	DefaultPrimaryFontSize = 10.0

	// DefaultSecondaryFontSize is the subtitle font size.
	DefaultSecondaryFontSize = 7.0

	// DefaultLinkStrokeWidth is the primary link stroke width.
	DefaultLinkStrokeWidth = 1.0

	// DefaultLinkOpacity is the link opacity.
	DefaultLinkOpacity = 1.0

	// DefaultPNGScale is the rasterization zoom for PNG output.
	DefaultPNGScale = 2.0
)

// Viz types.
const (
	VizTypeMap     = "map"
	VizTypeNetwork = "network"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeMap

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeMap:     true,
	VizTypeNetwork: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render. Zero numeric fields take
// the package defaults; booleans are taken as given, so start from
// DefaultOptions to get links and names switched on.
type Options struct {
	// Viewport
	Width   float64 `json:"width,omitempty" toml:"width"`
	Height  float64 `json:"height,omitempty" toml:"height"`
	Scale   float64 `json:"scale,omitempty" toml:"scale"`
	CenterX float64 `json:"center_x,omitempty" toml:"center_x"`
	CenterY float64 `json:"center_y,omitempty" toml:"center_y"`

	// Drawing
	SystemRadius      float64 `json:"system_radius,omitempty" toml:"system_radius"`
	PrimaryLinks      bool    `json:"primary_links,omitempty" toml:"primary_links"`
	DistanceLinks     bool    `json:"distance_links,omitempty" toml:"distance_links"`
	Names             bool    `json:"names,omitempty" toml:"names"`
	PrimaryFontSize   float64 `json:"primary_font_size,omitempty" toml:"primary_font_size"`
	SecondaryFontSize float64 `json:"secondary_font_size,omitempty" toml:"secondary_font_size"`
	LinkStrokeWidth   float64 `json:"link_stroke_width,omitempty" toml:"link_stroke_width"`
	LinkOpacity       float64 `json:"link_opacity,omitempty" toml:"link_opacity"`

	// Overlays: rectangles are x1,y1,x2,y2 and circles x,y,r in world units.
	Grid       bool         `json:"grid,omitempty" toml:"grid"`
	Rectangles [][4]float64 `json:"rectangles,omitempty" toml:"rectangles"`
	Circles    [][3]float64 `json:"circles,omitempty" toml:"circles"`

	// Output
	VizType  string   `json:"viz_type,omitempty" toml:"viz_type"`
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	PNGScale float64  `json:"png_scale,omitempty" toml:"png_scale"`
	Pinned   bool     `json:"pinned,omitempty" toml:"pinned"`   // network: keep world positions
	Detailed bool     `json:"detailed,omitempty" toml:"detailed"` // network: metadata in labels

	Palette palette.Config `json:"palette" toml:"-"` // [palette] table in the config file

	// Refresh bypasses cache lookups; results are still stored.
	Refresh bool `json:"-" toml:"-"`

	validated bool
}

// DefaultOptions returns options with every default applied and links and
// names enabled.
func DefaultOptions() Options {
	o := Options{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		Scale:             DefaultScale,
		SystemRadius:      DefaultSystemRadius,
		PrimaryLinks:      true,
		DistanceLinks:     true,
		Names:             true,
		PrimaryFontSize:   DefaultPrimaryFontSize,
		SecondaryFontSize: DefaultSecondaryFontSize,
		LinkStrokeWidth:   DefaultLinkStrokeWidth,
		LinkOpacity:       DefaultLinkOpacity,
		PNGScale:          DefaultPNGScale,
	}
	o.SetDefaults()
	return o
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// CatalogHash is the content hash of the input systems.
	CatalogHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timings. Plot counts are zero on a cache hit.
	Stats Stats

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Systems    int
	Plot       plot.Stats
	PlotTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	return errors.ValidateChoice(errors.ErrCodeInvalidVizType, "viz_type", vizType, ValidVizTypes)
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills fields whose zero value never means anything: the
// viz type, the format list and the palette keys. Numeric fields are left
// alone since zero is either meaningful (opacity, width) or invalid
// (scale); start from DefaultOptions for the usual values.
func (o *Options) SetDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Palette.SetDefaults()
}

// ValidateAndSetDefaults applies defaults and validates the result.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Settings().Validate(); err != nil {
		return err
	}
	for _, c := range o.Circles {
		if c[2] < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "circle radius must not be negative, got %v", c[2])
		}
	}
	o.validated = true
	return nil
}

// IsNetwork returns true for the jump network visualization.
func (o *Options) IsNetwork() bool {
	return o.VizType == VizTypeNetwork
}

// Settings converts the options to plot settings without policies.
func (o *Options) Settings() plot.Settings {
	return plot.Settings{
		Width:             o.Width,
		Height:            o.Height,
		Scale:             o.Scale,
		Center:            geom.Pt(o.CenterX, o.CenterY),
		SystemRadius:      o.SystemRadius,
		PrimaryLinks:      o.PrimaryLinks,
		DistanceLinks:     o.DistanceLinks,
		Names:             o.Names,
		PrimaryFontSize:   o.PrimaryFontSize,
		SecondaryFontSize: o.SecondaryFontSize,
		LinkStrokeWidth:   o.LinkStrokeWidth,
		LinkOpacity:       o.LinkOpacity,
	}
}

// Hash returns a content hash of the options that affect output. Formats
// are excluded; each format is keyed separately.
func (o *Options) Hash() (string, error) {
	keyed := *o
	keyed.Formats = nil
	return cache.HashJSON(keyed)
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format, optionsHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:     o.VizType,
		Format:      format,
		OptionsHash: optionsHash,
	}
}
