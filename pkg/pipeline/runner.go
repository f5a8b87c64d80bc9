package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/doxflow/doxflow/pkg/diagram"
	errs "github.com/doxflow/doxflow/pkg/errors"
	"github.com/doxflow/doxflow/pkg/export"
	pkgio "github.com/doxflow/doxflow/pkg/io"
	"github.com/doxflow/doxflow/pkg/observability"
	"github.com/doxflow/doxflow/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the exporter and logger - it doesn't
// store pipeline results. Every run loads its own diagram, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Exporter *export.Exporter
	Logger   *log.Logger
}

// NewRunner creates a runner with the given exporter.
// If exporter is nil, export.New() is used.
// If logger is nil, the default logger is used.
func NewRunner(exporter *export.Exporter, logger *log.Logger) *Runner {
	if exporter == nil {
		exporter = export.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Exporter: exporter,
		Logger:   logger,
	}
}

// Execute runs the complete load → build → export pipeline.
//
// A render failure does not fail Execute: it is reported through
// Result.Export. Invalid options, unreadable models and file system errors
// are returned as errors.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Diagram = d
	result.Dangling = d.Dangling()
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Roots = len(d.Roots())
	result.Stats.Elements = countElements(d)
	result.Stats.Interactions = countLinks(d)

	r.Logger.Info("loaded model",
		"roots", result.Stats.Roots,
		"elements", result.Stats.Elements,
		"interactions", result.Stats.Interactions,
		"duration", result.Stats.LoadTime)
	if len(result.Dangling) > 0 {
		r.Logger.Warn("interactions reference undeclared names", "names", result.Dangling)
	}

	// Stage 2: Build
	buildStart := time.Now()
	src, err := r.Build(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Source = src
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.DocumentSize = len(src.Text)

	r.Logger.Info("built document",
		"notation", src.Notation,
		"bytes", result.Stats.DocumentSize,
		"duration", result.Stats.BuildTime)

	if opts.Output == "" {
		return result, nil
	}

	// Stage 3: Export
	exportStart := time.Now()
	res, err := r.Export(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Export = &res
	result.Stats.ExportTime = time.Since(exportStart)

	if res.Rendered {
		r.Logger.Info("exported diagram",
			"path", res.Path,
			"format", res.Format,
			"bytes", res.Bytes,
			"duration", result.Stats.ExportTime)
	} else {
		r.Logger.Warn("render failed", "path", res.Path, "err", res.Failure)
	}

	return result, nil
}

// Load reads the input model into a diagram.
func (r *Runner) Load(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	hooks := observability.Build()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	d, err := pkgio.ImportFile(opts.Input)

	roots, links := 0, 0
	if d != nil {
		roots, links = len(d.Roots()), countLinks(d)
	}
	hooks.OnLoadComplete(ctx, opts.Input, roots, links, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("read model", "path", opts.Input, "declared", d.Scope().Len())
	return d, nil
}

// Build writes the diagram in the notation selected by opts.
func (r *Runner) Build(ctx context.Context, d *diagram.Diagram, opts Options) (export.Source, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return export.Source{}, err
	}

	hooks := observability.Build()
	hooks.OnBuildStart(ctx, opts.Notation)
	start := time.Now()

	src, err := BuildSource(d, opts)

	hooks.OnBuildComplete(ctx, opts.Notation, len(src.Text), time.Since(start), err)
	return src, err
}

// Export renders src to opts.Output.
func (r *Runner) Export(ctx context.Context, src export.Source, opts Options) (export.Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForExport(); err != nil {
		return export.Result{}, err
	}

	opts.Logger.Debug("rendering", "notation", src.Notation, "format", opts.Format(), "path", opts.Output)
	return r.Exporter.Export(ctx, src, opts.Output)
}

// BuildSource writes d as a document in the notation selected by opts.
// Options must have been validated for building.
func BuildSource(d *diagram.Diagram, opts Options) (export.Source, error) {
	if d == nil {
		return export.Source{}, errs.New(errs.ErrCodeInvalidInput, "diagram is nil")
	}
	if opts.IsDOT() {
		dot, err := nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})
		if err != nil {
			return export.Source{}, err
		}
		return export.Source{Notation: export.NotationDOT, Text: dot}, nil
	}

	doc, err := d.Document()
	if err != nil {
		return export.Source{}, err
	}
	return export.Source{Notation: export.NotationPlantUML, Text: doc}, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countElements(d *diagram.Diagram) int {
	n := 0
	for _, root := range d.Roots() {
		root.Walk(func(*diagram.Element, int) bool {
			n++
			return true
		})
	}
	return n
}

func countLinks(d *diagram.Diagram) int {
	n := 0
	for _, in := range d.Interactions() {
		n += len(in.Targets)
	}
	return n
}
