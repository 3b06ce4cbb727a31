package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starmap/pkg/cache"
	"github.com/matzehuels/starmap/pkg/observability"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses DefaultKeyer, a nil cache
// disables caching and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the plot → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, systems []plot.System, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	catalogHash, err := cache.HashJSON(systems)
	if err != nil {
		return nil, fmt.Errorf("hash catalog: %w", err)
	}
	optionsHash, err := opts.Hash()
	if err != nil {
		return nil, fmt.Errorf("hash options: %w", err)
	}

	result := &Result{
		CatalogHash: catalogHash,
		Stats:       Stats{Systems: len(systems)},
	}

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(catalogHash, opts.ArtifactKeyOpts(format, optionsHash))
	}

	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, keys); ok {
			r.Logger.Debug("artifacts from cache", "formats", opts.Formats)
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			return result, nil
		}
	}

	// Stage 1: Plot
	plotStart := time.Now()
	observability.Pipeline().OnPlotStart(ctx, opts.VizType, len(systems))
	p, pal, err := Plot(systems, opts)
	result.Stats.PlotTime = time.Since(plotStart)
	if err != nil {
		observability.Pipeline().OnPlotComplete(ctx, opts.VizType, observability.PlotStats{}, result.Stats.PlotTime, err)
		return nil, fmt.Errorf("plot: %w", err)
	}

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(p, pal, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	// Link counts are final once rendering has generated the links.
	result.Stats.Plot = p.Stats()
	observability.Pipeline().OnPlotComplete(ctx, opts.VizType, plotStats(result.Stats.Plot), result.Stats.PlotTime, nil)
	result.Artifacts = artifacts

	r.Logger.Info("plotted systems",
		"visible", result.Stats.Plot.Visible,
		"near_visible", result.Stats.Plot.NearVisible,
		"excluded", result.Stats.Plot.Excluded,
		"duration", result.Stats.PlotTime)
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}

	return result, nil
}

// lookup returns every keyed artifact, or false if any is missing.
func (r *Runner) lookup(ctx context.Context, keys map[string]string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "error", err)
			return nil, false
		}
		if !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func plotStats(s plot.Stats) observability.PlotStats {
	return observability.PlotStats{
		Visible:       s.Visible,
		NearVisible:   s.NearVisible,
		Excluded:      s.Excluded,
		PrimaryLinks:  s.PrimaryLinks,
		DistanceLinks: s.DistanceLinks,
	}
}
