package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/starmap/pkg/buildinfo"
	"github.com/matzehuels/starmap/pkg/cache"
	"github.com/matzehuels/starmap/pkg/httputil"
	"github.com/matzehuels/starmap/pkg/observability"
	"github.com/matzehuels/starmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "starmap"

	// redisEnv names the environment variable holding a Redis cache URL.
	redisEnv = "STARMAP_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Starmap draws star catalogs as SVG maps",
		Long:         `Starmap renders a catalog of star systems on a flat plane as an SVG star map, with jump links between nearby systems, a hex grid and diagnostic overlays.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := &logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheOpts selects the artifact cache backend.
type cacheOpts struct {
	noCache bool
	redis   string
}

// newRunner creates a pipeline runner for CLI use. Keys are scoped to the
// build version.
func (c *CLI) newRunner(ctx context.Context, opts cacheOpts) (*pipeline.Runner, error) {
	store, err := newCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, cache.VersionPrefix(buildinfo.Version))
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(ctx context.Context, opts cacheOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		return cache.NewRedisCache(ctx, opts.redis)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// catalogTTL bounds how long a downloaded catalog is reused.
const catalogTTL = 24 * time.Hour

// newFetcher creates a fetcher for remote catalogs. Downloads share the
// cache directory with rendered artifacts unless caching is disabled.
func newFetcher(opts cacheOpts, refresh bool) *httputil.Fetcher {
	var store *httputil.Cache
	if !opts.noCache {
		if dir, err := cacheDir(); err == nil {
			store, _ = httputil.NewCache(filepath.Join(dir, "catalogs"), catalogTTL)
		}
	}
	f := httputil.NewFetcher(store)
	f.Refresh = refresh
	return f
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/starmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// splitList parses a comma-separated flag value, falling back to def.
func splitList(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{def}
	}
	return out
}
