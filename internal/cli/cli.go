// Package cli implements the flowlayout command-line interface.
//
// # Commands
//
//   - layout: lay out a workflow document and write the result
//   - columns: print the column assignment as a table
//   - render: draw the columns as a Graphviz SVG or DOT file
//   - cache: inspect or clear the layout cache
//   - completion: generate shell completion scripts
//
// Layout settings come from pipeline defaults, then an optional TOML file
// (--config), then individual flags. All commands support --verbose (-v)
// for debug logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/flowlayout/pkg/cache"
	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/observability"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "flowlayout"

	// cacheSchema namespaces cache keys; bump it when the cached payload
	// changes shape.
	cacheSchema = "v1:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a CLI that logs to w at level. Command output goes to
// stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner creates a pipeline runner backed by the cache f selects.
func (c *CLI) newRunner(ctx context.Context, f *layoutFlags) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, cacheSchema)
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

// newCache opens the backend selected by the flags: none, Redis, MongoDB
// or, by default, the file cache under the user cache directory.
func newCache(ctx context.Context, f *layoutFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redisURL != "":
		c, err := cache.NewRedisCache(ctx, f.redisURL)
		if err != nil {
			return nil, flerrors.Wrap(flerrors.ErrCodeCache, err, "connect redis")
		}
		return c, nil
	case f.mongoURI != "":
		c, err := cache.NewMongoCache(ctx, f.mongoURI, "", "")
		if err != nil {
			return nil, flerrors.Wrap(flerrors.ErrCodeCache, err, "connect mongodb")
		}
		return c, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/flowlayout/).
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

// startMetrics installs Prometheus hooks when path is set. The returned
// function writes the collected metrics to path; it is a no-op otherwise.
func (c *CLI) startMetrics(path string) func() {
	if path == "" {
		return func() {}
	}
	hooks := observability.NewPromHooks(prometheus.NewRegistry())
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	return func() {
		if err := hooks.WriteToTextfile(path); err != nil {
			c.Logger.Warn("write metrics", "path", path, "err", err)
			return
		}
		c.Logger.Debug("wrote metrics", "path", path)
	}
}
