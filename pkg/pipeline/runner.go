package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/splitgrid/pkg/cache"
	"github.com/matzehuels/splitgrid/pkg/grid"
	sgio "github.com/matzehuels/splitgrid/pkg/io"
	"github.com/matzehuels/splitgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and API use this to avoid duplicating render logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, but a single *grid.Grid must not be
// rendered and dragged concurrently.
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

// Execute runs the complete build → drag → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Pipeline().OnRunStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRunComplete(ctx, opts.Formats, len(opts.Drags), time.Since(start), err)
	}()

	result = &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Build
	buildStart := time.Now()
	g, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Grid = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Regions = len(g.Regions())
	result.Stats.Dividers = len(g.Dividers())

	r.Logger.Info("built grid",
		"regions", result.Stats.Regions,
		"dividers", result.Stats.Dividers,
		"duration", result.Stats.BuildTime)

	// Stage 2: Drag
	dragStart := time.Now()
	if err := r.Replay(ctx, g, opts.Drags); err != nil {
		return nil, fmt.Errorf("drag: %w", err)
	}
	result.Stats.DragTime = time.Since(dragStart)
	result.Stats.Drags = len(opts.Drags)
	result.Layout = sgio.FromGrid(g)

	if len(opts.Drags) > 0 {
		r.Logger.Info("replayed drags",
			"drags", len(opts.Drags),
			"duration", result.Stats.DragTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.CacheHits = hits
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build validates the options and constructs the grid.
func (r *Runner) Build(ctx context.Context, opts Options) (*grid.Grid, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return grid.New(opts.Matrix, opts.GridOptions()...)
}

// Replay applies drags to g in order, checking ctx between drags.
func (r *Runner) Replay(ctx context.Context, g *grid.Grid, drags []grid.DragEvent) error {
	for i, ev := range drags {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Drag(ev); err != nil {
			return fmt.Errorf("drag %d (divider %d): %w", i, ev.Divider, err)
		}
	}
	return nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit count.
func (r *Runner) Render(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// RenderWithCacheInfo renders every requested format and reports how many
// came from the cache. Artifacts are keyed by a content hash of the grid's
// current layout, so an unchanged grid is rendered once.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, int, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, 0, err
	}

	layoutData, err := json.Marshal(sgio.FromGrid(g))
	if err != nil {
		return nil, 0, fmt.Errorf("hash layout: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := 0
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, hits, err
		}
		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: format, Detailed: opts.Detailed})
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
			hits++
			continue
		}

		data, err := RenderArtifact(ctx, g, format, opts.Detailed)
		if err != nil {
			return nil, hits, fmt.Errorf("render %s: %w", format, err)
		}
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		artifacts[format] = data
		observability.Pipeline().OnExport(ctx, format, len(data))
	}
	return artifacts, hits, nil
}

// applyLogger propagates the runner's logger to options that have none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
