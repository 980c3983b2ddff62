package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spendmap/pkg/chart"
	spendio "github.com/matzehuels/spendmap/pkg/io"
	"github.com/matzehuels/spendmap/pkg/observability"
	"github.com/matzehuels/spendmap/pkg/spend"
)

// Runner executes pipeline stages and reports each one to the registered
// observability hooks.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete pipeline for opts.Input.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, result.Chart, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build runs every stage up to and including layout. A layout document
// input is read back instead of recomputed.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	if IsLayoutInput(opts.Input) {
		start := time.Now()
		ch, err := r.LoadLayout(ctx, opts.Input)
		if err != nil {
			return nil, err
		}
		result.Chart = ch
		result.Stats.LoadTime = time.Since(start)
		result.Stats.CellCount = len(ch.Cells)
		result.Stats.CategoryCount = len(chart.AtDepth(ch.Cells, chart.DepthCategory))
		result.Stats.Total = ch.Total
		opts.Logger.Info("loaded layout", "cells", len(ch.Cells), "duration", result.Stats.LoadTime)
		return result, nil
	}

	// Stage 1: Load
	start := time.Now()
	records, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(start)
	result.Stats.RecordCount = len(records)
	opts.Logger.Info("loaded records", "records", len(records), "duration", result.Stats.LoadTime)

	// Stage 2: Aggregate
	start = time.Now()
	nodes, err := r.Aggregate(ctx, records)
	if err != nil {
		return nil, err
	}
	result.Nodes = nodes
	result.Stats.AggregateTime = time.Since(start)
	result.Stats.CategoryCount = len(nodes)
	result.Stats.Total = spend.Total(nodes)
	opts.Logger.Debug("aggregated records",
		"categories", len(nodes),
		"total", result.Stats.Total,
		"duration", result.Stats.AggregateTime)

	// Stage 3: Layout
	start = time.Now()
	ch, err := r.Layout(ctx, nodes, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = ch
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.CellCount = len(ch.Cells)
	opts.Logger.Info("computed layout", "cells", len(ch.Cells), "duration", result.Stats.LayoutTime)

	return result, nil
}

// Load reads the record file named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (records []spend.Record, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()
	defer func() { hooks.OnLoadComplete(ctx, opts.Input, len(records), time.Since(start), err) }()

	return spendio.ReadRecords(opts.Input, opts.Config.RecordOptions()...)
}

// LoadLayout reads a saved layout document.
func (r *Runner) LoadLayout(ctx context.Context, path string) (ch *chart.Chart, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	defer func() {
		n := 0
		if ch != nil {
			n = len(ch.Cells)
		}
		hooks.OnLoadComplete(ctx, path, n, time.Since(start), err)
	}()

	return spendio.ImportLayout(path)
}

// Aggregate groups records into the category hierarchy.
func (r *Runner) Aggregate(ctx context.Context, records []spend.Record) (nodes []spend.Node, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnAggregateStart(ctx, len(records))
	start := time.Now()
	defer func() {
		hooks.OnAggregateComplete(ctx, len(nodes), spend.Total(nodes), time.Since(start), err)
	}()

	return spend.Aggregate(records)
}

// Layout computes the two-level treemap for nodes on the configured canvas.
func (r *Runner) Layout(ctx context.Context, nodes []spend.Node, opts Options) (ch *chart.Chart, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(nodes))
	start := time.Now()
	defer func() {
		n := 0
		if ch != nil {
			n = len(ch.Cells)
		}
		hooks.OnLayoutComplete(ctx, n, time.Since(start), err)
	}()

	return chart.New(nodes, opts.Config.CanvasRect(), opts.Config.ChartOptions())
}

// Render generates every format in opts.Formats.
func (r *Runner) Render(ctx context.Context, ch *chart.Chart, opts Options) (artifacts map[string][]byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	return RenderAll(ctx, ch, opts)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
