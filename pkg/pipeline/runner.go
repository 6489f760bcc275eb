package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/dag"
	"github.com/matzehuels/flowlayout/pkg/dag/transform"
	"github.com/matzehuels/flowlayout/pkg/groups"
	"github.com/matzehuels/flowlayout/pkg/observability"
	"github.com/matzehuels/flowlayout/pkg/position"
	"github.com/matzehuels/flowlayout/pkg/workflow"
)

// cacheKeyType labels layout entries in cache hooks.
const cacheKeyType = "layout"

// Runner executes layout runs with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different documents and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// cachedLayout is the cache payload: everything the engine computes that
// is not derived from the document alone.
type cachedLayout struct {
	Columns dag.Columns      `json:"columns"`
	Layout  *position.Layout `json:"layout"`
}

// Layout lays out a copy of doc. The input document is not modified; the
// result carries the laid-out copy.
func (r *Runner) Layout(ctx context.Context, doc *workflow.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, runID, len(doc.Nodes))

	start := time.Now()
	res, err := r.run(ctx, runID, doc, opts)
	elapsed := time.Since(start)
	hooks.OnLayoutComplete(ctx, runID, elapsed, err)
	if err != nil {
		r.Logger.Debug("layout failed", "run_id", runID, "err", err)
		return nil, err
	}
	res.Stats.Duration = elapsed

	r.Logger.Info("computed layout",
		"run_id", runID,
		"nodes", res.Stats.NodeCount,
		"columns", len(res.Columns),
		"crossings", res.Stats.Crossings,
		"cache_hit", res.CacheHit,
		"duration", elapsed)
	return res, nil
}

func (r *Runner) run(ctx context.Context, runID string, in *workflow.Document, opts Options) (*Result, error) {
	key := r.cacheKey(in, opts)
	doc := in.Clone()
	res := &Result{RunID: runID, Document: doc}

	var members groups.Membership
	err := r.stage(ctx, res, StageSnapshot, func() error {
		members = groups.Snapshot(doc, opts.Groups)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, res, StagePrepare, func() error {
		if opts.Unpin {
			res.Stats.Unpinned = workflow.Unpin(doc)
		}
		res.Stats.Folded = workflow.Fold(doc, opts.FoldOptions())
		return nil
	})
	if err != nil {
		return nil, err
	}

	g := BuildGraph(doc)
	res.Graph = g
	res.Stats.NodeCount = g.Len()
	res.Stats.EdgeCount = len(g.Edges())

	if cached, ok := r.lookup(ctx, key, g, opts); ok {
		res.Columns, res.Layout, res.CacheHit = cached.Columns, cached.Layout, true
	} else {
		if err := r.compute(ctx, res, g, SizeOf(doc), opts); err != nil {
			return nil, err
		}
		r.store(ctx, key, cachedLayout{Columns: res.Columns, Layout: res.Layout})
	}

	err = r.stage(ctx, res, StageApply, func() error {
		Apply(doc, res.Columns, res.Layout, opts.SizeAlign)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, res, StageGroups, func() error {
		res.Stats.Shelved = groups.Recompute(doc, members, opts.Groups)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Stats.Crossings = dag.CountCrossings(g, res.Columns)
	res.Stats.MainPath, _ = transform.MainPath(g)
	return res, nil
}

// compute runs the engine stages that the cache can skip.
func (r *Runner) compute(ctx context.Context, res *Result, g *dag.Graph, size position.SizeFunc, opts Options) error {
	var cols dag.Columns
	err := r.stage(ctx, res, StageLayering, func() (err error) {
		cols, err = layering(g)
		return err
	})
	if err != nil {
		return err
	}
	r.Logger.Debug("assigned columns", "run_id", res.RunID, "columns", len(cols))

	err = r.stage(ctx, res, StageCompact, func() error {
		cols = transform.CompactForward(g, cols, opts.CompactOptions())
		return nil
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, res, StageOrder, func() (err error) {
		cols, err = order(g, cols, opts)
		return err
	})
	if err != nil {
		return err
	}

	return r.stage(ctx, res, StagePlace, func() error {
		l, err := Place(g, cols, size, opts)
		if err != nil {
			return err
		}
		res.Columns, res.Layout = cols, l
		return nil
	})
}

// stage runs fn as the named stage, recording its duration and
// reporting it to the pipeline hooks.
func (r *Runner) stage(ctx context.Context, res *Result, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	observability.Pipeline().OnStageComplete(ctx, name, elapsed, err)
	res.Stats.Stages = append(res.Stats.Stages, StageTiming{Stage: name, Duration: elapsed})
	return err
}

// cacheKey returns the key for in and opts, or "" when the document
// cannot be encoded.
func (r *Runner) cacheKey(in *workflow.Document, opts Options) string {
	data, err := workflow.Encode(in)
	if err != nil {
		return ""
	}
	return r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts())
}

// lookup returns a cached layout for key. Entries that cannot be decoded
// or no longer match g count as misses.
func (r *Runner) lookup(ctx context.Context, key string, g *dag.Graph, opts Options) (cachedLayout, bool) {
	var cached cachedLayout
	if key == "" || opts.Refresh {
		return cached, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil || cached.Layout == nil ||
		position.ValidateColumns(g, cached.Columns) != nil {
		r.Logger.Debug("discarding stale cache entry", "key", key)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return cachedLayout{}, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return cached, true
}

func (r *Runner) store(ctx context.Context, key string, entry cachedLayout) {
	if key == "" {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
