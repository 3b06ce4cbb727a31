// Package palette builds plot policies from system metadata.
//
// A [Palette] colors systems by one metadata key (typically a faction),
// titles and subtitles them from others, and marks systems important when a
// flag key is set. Unmapped colour values get a stable generated hue, so the
// same faction is drawn the same way on every map.
package palette

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

// Default metadata keys.
const (
	DefaultColorKey     = "faction"
	DefaultImportantKey = "capital"
)

// Generated colors share saturation and value; only the hue varies.
const (
	generatedSaturation = 0.55
	generatedValue      = 0.95
	linkShade           = 0.35
)

// Config selects which metadata keys drive each policy.
type Config struct {
	ColorKey     string            `toml:"color_key" json:"color_key,omitempty"`
	Colors       map[string]string `toml:"colors" json:"colors,omitempty"`
	TitleKey     string            `toml:"title_key" json:"title_key,omitempty"`
	SubtitleKey  string            `toml:"subtitle_key" json:"subtitle_key,omitempty"`
	ImportantKey string            `toml:"important_key" json:"important_key,omitempty"`
	LinkColor    string            `toml:"link_color" json:"link_color,omitempty"`
}

// SetDefaults fills empty keys.
func (c *Config) SetDefaults() {
	if c.ColorKey == "" {
		c.ColorKey = DefaultColorKey
	}
	if c.ImportantKey == "" {
		c.ImportantKey = DefaultImportantKey
	}
}

// Palette implements the plot policies for one Config.
type Palette struct {
	cfg    Config
	colors map[string]colorful.Color
}

// New validates cfg and returns a Palette. Every explicit color must be a
// hex color such as "#a0c4ff".
func New(cfg Config) (*Palette, error) {
	cfg.SetDefaults()

	colors := make(map[string]colorful.Color, len(cfg.Colors))
	for value, hex := range cfg.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette color for %q", value)
		}
		colors[value] = c
	}
	if cfg.LinkColor != "" {
		if _, err := colorful.Hex(cfg.LinkColor); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "link color")
		}
	}

	return &Palette{cfg: cfg, colors: colors}, nil
}

// Install sets the policy callbacks on s.
func (p *Palette) Install(s *plot.Settings) {
	s.SystemColor = p.SystemColor
	s.SystemTitle = p.Title
	s.SystemSubtitle = p.Subtitle
	s.LinkColor = p.LinkColor
	s.Important = p.Important
}

// SystemColor returns the color for sys, or plot.DefaultSystemColor when the
// color key is missing.
func (p *Palette) SystemColor(sys plot.System) string {
	c, ok := p.color(sys)
	if !ok {
		return plot.DefaultSystemColor
	}
	return c.Hex()
}

func (p *Palette) color(sys plot.System) (colorful.Color, bool) {
	value, ok := metaString(sys.Meta, p.cfg.ColorKey)
	if !ok {
		return colorful.Color{}, false
	}
	if c, ok := p.colors[value]; ok {
		return c, true
	}
	return Generate(value), true
}

// Title returns the title key's value, falling back to the system name.
func (p *Palette) Title(sys plot.System) string {
	if p.cfg.TitleKey != "" {
		if v, ok := metaString(sys.Meta, p.cfg.TitleKey); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return sys.Name
}

// Subtitle returns the subtitle key's value, or "" when unset.
func (p *Palette) Subtitle(sys plot.System) string {
	if p.cfg.SubtitleKey == "" {
		return ""
	}
	v, _ := metaString(sys.Meta, p.cfg.SubtitleKey)
	return v
}

// Important reports whether the importance key holds a truthy value.
func (p *Palette) Important(sys plot.System) bool {
	return truthy(sys.Meta[p.cfg.ImportantKey])
}

// LinkColor shades the Lab midpoint of both endpoint colors toward black.
// Without a colored endpoint on both sides it returns plot.DefaultLinkColor.
func (p *Palette) LinkColor(a, b plot.System) string {
	if p.cfg.LinkColor != "" {
		return p.cfg.LinkColor
	}
	ca, okA := p.color(a)
	cb, okB := p.color(b)
	if !okA || !okB {
		return plot.DefaultLinkColor
	}
	mid := ca.BlendLab(cb, 0.5)
	return mid.BlendLab(colorful.Color{}, linkShade).Clamped().Hex()
}

// Generate derives a stable color from a string.
func Generate(value string) colorful.Color {
	h := fnv.New32a()
	h.Write([]byte(value))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsv(hue, generatedSaturation, generatedValue)
}

func metaString(meta plot.Metadata, key string) (string, bool) {
	v, ok := meta[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	case float64:
		return t != 0
	case int64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}
