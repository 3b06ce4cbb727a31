package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/starmap/pkg/config"
	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/httputil"
	starmapio "github.com/matzehuels/starmap/pkg/io"
	"github.com/matzehuels/starmap/pkg/pipeline"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

// renderOpts holds the command-line flags for the render command that do
// not map one-to-one onto pipeline.Options.
type renderOpts struct {
	output     string   // output file path (or base path for multiple outputs)
	configPath string   // starmap.toml; empty means look one up
	vizTypes   []string // "map", "network"
	formats    []string // "svg", "png", "pdf"
	center     string   // "x,y"
	rects      []string // "x1,y1,x2,y2", repeatable
	circles    []string // "x,y,r", repeatable
	cache      cacheOpts
}

// renderCommand creates the render command.
//
// Option precedence: pipeline defaults, then the config file, then flags
// that were set explicitly.
func (c *CLI) renderCommand() *cobra.Command {
	var ropts renderOpts
	var vizTypesStr, formatsStr string
	flagOpts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "render [catalog]",
		Short: "Render a star catalog to a map or jump network",
		Long: `Render a star catalog (JSON or TOML) to SVG, PNG or PDF. The catalog
may be a local file or an http(s) URL; downloads are cached for a day.

The map type draws the viewport around --center: visible systems get a
marker and labels, systems just outside the viewport only contribute jump
links. The network type lays the same systems out as a Graphviz diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ropts.vizTypes = splitList(vizTypesStr, pipeline.DefaultVizType)
			ropts.formats = splitList(formatsStr, pipeline.FormatSVG)
			for _, v := range ropts.vizTypes {
				if err := pipeline.ValidateVizType(v); err != nil {
					return err
				}
			}
			if err := pipeline.ValidateFormats(ropts.formats); err != nil {
				return err
			}
			if ropts.cache.redis == "" {
				ropts.cache.redis = os.Getenv(redisEnv)
			}

			opts, err := resolveOptions(cmd, ropts, flagOpts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], ropts, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&ropts.output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	f.StringVarP(&vizTypesStr, "type", "t", "", "visualization type(s): map (default), network (comma-separated)")
	f.StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	f.StringVarP(&ropts.configPath, "config", "c", "", "config file (default ./"+config.FileName+" if present)")

	f.Float64Var(&flagOpts.Width, "width", flagOpts.Width, "viewport width in world units")
	f.Float64Var(&flagOpts.Height, "height", flagOpts.Height, "viewport height in world units")
	f.Float64VarP(&flagOpts.Scale, "scale", "s", flagOpts.Scale, "device units per world unit")
	f.StringVar(&ropts.center, "center", "", "world point at the middle of the map as x,y (default 0,0)")

	f.Float64Var(&flagOpts.SystemRadius, "radius", flagOpts.SystemRadius, "system marker radius")
	f.BoolVar(&flagOpts.PrimaryLinks, "primary-links", flagOpts.PrimaryLinks, "draw links between systems within 30 units")
	f.BoolVar(&flagOpts.DistanceLinks, "distance-links", flagOpts.DistanceLinks, "draw dashed links between systems within 50 units")
	f.BoolVar(&flagOpts.Names, "names", flagOpts.Names, "draw system titles and subtitles")
	f.Float64Var(&flagOpts.PrimaryFontSize, "font-size", flagOpts.PrimaryFontSize, "title font size")
	f.Float64Var(&flagOpts.SecondaryFontSize, "subtitle-font-size", flagOpts.SecondaryFontSize, "subtitle font size")
	f.Float64Var(&flagOpts.LinkStrokeWidth, "link-width", flagOpts.LinkStrokeWidth, "primary link stroke width")
	f.Float64Var(&flagOpts.LinkOpacity, "link-opacity", flagOpts.LinkOpacity, "link opacity")

	f.BoolVar(&flagOpts.Grid, "grid", false, "overlay the hex grid")
	f.StringArrayVar(&ropts.rects, "rect", nil, "overlay a rectangle x1,y1,x2,y2 (repeatable)")
	f.StringArrayVar(&ropts.circles, "circle", nil, "overlay a circle x,y,r (repeatable)")

	f.Float64Var(&flagOpts.PNGScale, "png-scale", flagOpts.PNGScale, "PNG zoom factor")
	f.BoolVar(&flagOpts.Pinned, "pinned", false, "network: keep systems at their map positions")
	f.BoolVar(&flagOpts.Detailed, "detailed", false, "network: show coordinates and metadata")

	f.StringVar(&flagOpts.Palette.ColorKey, "color-key", flagOpts.Palette.ColorKey, "metadata key that selects the system color")
	f.StringVar(&flagOpts.Palette.TitleKey, "title-key", "", "metadata key for titles (default: system name)")
	f.StringVar(&flagOpts.Palette.SubtitleKey, "subtitle-key", "", "metadata key for subtitles")
	f.StringVar(&flagOpts.Palette.ImportantKey, "important-key", flagOpts.Palette.ImportantKey, "metadata key that marks important systems")

	f.BoolVar(&ropts.cache.noCache, "no-cache", false, "disable the artifact cache")
	f.StringVar(&ropts.cache.redis, "redis", "", "Redis cache URL (default $"+redisEnv+")")
	f.BoolVar(&flagOpts.Refresh, "refresh", false, "re-render even if cached")

	registerRenderCompletions(cmd)
	return cmd
}

// flagFields lists flags whose values live directly in pipeline.Options,
// with a setter copying the flag value across.
var flagFields = map[string]func(dst *pipeline.Options, src pipeline.Options){
	"width":              func(d *pipeline.Options, s pipeline.Options) { d.Width = s.Width },
	"height":             func(d *pipeline.Options, s pipeline.Options) { d.Height = s.Height },
	"scale":              func(d *pipeline.Options, s pipeline.Options) { d.Scale = s.Scale },
	"radius":             func(d *pipeline.Options, s pipeline.Options) { d.SystemRadius = s.SystemRadius },
	"primary-links":      func(d *pipeline.Options, s pipeline.Options) { d.PrimaryLinks = s.PrimaryLinks },
	"distance-links":     func(d *pipeline.Options, s pipeline.Options) { d.DistanceLinks = s.DistanceLinks },
	"names":              func(d *pipeline.Options, s pipeline.Options) { d.Names = s.Names },
	"font-size":          func(d *pipeline.Options, s pipeline.Options) { d.PrimaryFontSize = s.PrimaryFontSize },
	"subtitle-font-size": func(d *pipeline.Options, s pipeline.Options) { d.SecondaryFontSize = s.SecondaryFontSize },
	"link-width":         func(d *pipeline.Options, s pipeline.Options) { d.LinkStrokeWidth = s.LinkStrokeWidth },
	"link-opacity":       func(d *pipeline.Options, s pipeline.Options) { d.LinkOpacity = s.LinkOpacity },
	"grid":               func(d *pipeline.Options, s pipeline.Options) { d.Grid = s.Grid },
	"png-scale":          func(d *pipeline.Options, s pipeline.Options) { d.PNGScale = s.PNGScale },
	"pinned":             func(d *pipeline.Options, s pipeline.Options) { d.Pinned = s.Pinned },
	"detailed":           func(d *pipeline.Options, s pipeline.Options) { d.Detailed = s.Detailed },
	"refresh":            func(d *pipeline.Options, s pipeline.Options) { d.Refresh = s.Refresh },
	"color-key":          func(d *pipeline.Options, s pipeline.Options) { d.Palette.ColorKey = s.Palette.ColorKey },
	"title-key":          func(d *pipeline.Options, s pipeline.Options) { d.Palette.TitleKey = s.Palette.TitleKey },
	"subtitle-key":       func(d *pipeline.Options, s pipeline.Options) { d.Palette.SubtitleKey = s.Palette.SubtitleKey },
	"important-key":      func(d *pipeline.Options, s pipeline.Options) { d.Palette.ImportantKey = s.Palette.ImportantKey },
}

// resolveOptions layers the config file and explicitly set flags over the
// pipeline defaults.
func resolveOptions(cmd *cobra.Command, ropts renderOpts, flagOpts pipeline.Options) (pipeline.Options, error) {
	logger := loggerFromContext(cmd.Context())
	opts := pipeline.DefaultOptions()

	path := ropts.configPath
	if path == "" {
		path = config.Find()
	}
	if path != "" {
		loaded, unknown, err := config.Load(path, opts)
		if err != nil {
			return opts, err
		}
		for _, key := range unknown {
			logger.Warn("unknown config key", "key", key, "file", path)
		}
		logger.Debug("loaded config", "file", path)
		opts = loaded
	}

	cmd.Flags().Visit(func(f *pflag.Flag) {
		if set, ok := flagFields[f.Name]; ok {
			set(&opts, flagOpts)
		}
	})

	if ropts.center != "" {
		v, err := parseFloats(ropts.center, 2)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "--center")
		}
		opts.CenterX, opts.CenterY = v[0], v[1]
	}
	for _, r := range ropts.rects {
		v, err := parseFloats(r, 4)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "--rect")
		}
		opts.Rectangles = append(opts.Rectangles, [4]float64{v[0], v[1], v[2], v[3]})
	}
	for _, s := range ropts.circles {
		v, err := parseFloats(s, 3)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "--circle")
		}
		opts.Circles = append(opts.Circles, [3]float64{v[0], v[1], v[2]})
	}

	return opts, nil
}

// parseFloats parses exactly n comma-separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// runRender loads the catalog and renders every requested type and format.
func (c *CLI) runRender(ctx context.Context, input string, ropts renderOpts, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	systems, err := loadCatalog(ctx, input, ropts.cache, opts.Refresh)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d systems from %s", len(systems), input))

	runner, err := c.newRunner(ctx, ropts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	base := basePath(ropts.output, input)
	single := len(ropts.vizTypes) == 1 && len(ropts.formats) == 1

	for _, vizType := range ropts.vizTypes {
		vopts := opts
		vopts.VizType = vizType
		vopts.Formats = ropts.formats

		result, err := runner.Execute(ctx, systems, vopts)
		if err != nil {
			return fmt.Errorf("%s: %w", vizType, err)
		}

		printSuccess("Rendered %s", vizType)
		printStats(result.Stats.Plot, result.CacheInfo.RenderHit)

		for _, format := range ropts.formats {
			path := outputPath(ropts.output, base, vizType, format, single, len(ropts.vizTypes))
			if err := writeOutput(path, result.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
	}
	return nil
}

// loadCatalog reads a local catalog file or downloads one from a URL.
func loadCatalog(ctx context.Context, input string, opts cacheOpts, refresh bool) ([]plot.System, error) {
	if httputil.IsURL(input) {
		return starmapio.Fetch(ctx, newFetcher(opts, refresh), input)
	}
	return starmapio.Import(input)
}

// basePath derives the base output path. Without an output it strips the
// extension from the input, or from the last URL path element for remote
// catalogs; a known format extension on the output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		if u, err := url.Parse(input); err == nil && httputil.IsURL(input) {
			input = path.Base(u.Path)
			if input == "/" || input == "." {
				input = "starmap"
			}
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names one artifact: the explicit output for a single artifact,
// base.format for one type, base_type.format otherwise.
func outputPath(output, base, vizType, format string, single bool, types int) string {
	if single && output != "" {
		return output
	}
	if types == 1 {
		return fmt.Sprintf("%s.%s", base, format)
	}
	return fmt.Sprintf("%s_%s.%s", base, vizType, format)
}

// writeOutput writes data to path; "-" writes to stdout.
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
