// Package pipeline provides the load → build → export pipeline for doxflow.
//
// This package ties the model reader, the document builders and the exporter
// together so the CLI, and anything else embedding doxflow, behave the same.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a model file (YAML, JSON or a PlantUML document) into a diagram
//  2. Build: Write the diagram as a document in the requested notation
//  3. Export: Render the document to an SVG or PNG file (optional)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(export.New(), logger)
//	opts := pipeline.Options{
//	    Input:  "model.yaml",
//	    Output: "diagram.svg",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Export.Rendered {
//	    log.Warn("render failed", "err", result.Export.Failure)
//	}
//
// Run individual stages:
//
//	d, err := runner.Load(ctx, opts)
//	src, err := runner.Build(ctx, d, opts)
//	res, err := runner.Export(ctx, src, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/doxflow/doxflow/pkg/diagram"
	errs "github.com/doxflow/doxflow/pkg/errors"
	"github.com/doxflow/doxflow/pkg/export"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultNotation is the notation documents are built in unless asked otherwise.
const DefaultNotation = export.NotationPlantUML

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Input string `json:"input"`

	// Build options
	Notation string `json:"notation,omitempty"` // plantuml or dot
	Detailed bool   `json:"detailed,omitempty"` // DOT labels include the element kind

	// Export options
	Output string `json:"output,omitempty"` // Destination image; empty skips the export stage

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	format    export.Format
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the loaded model.
	Diagram *diagram.Diagram

	// Source is the built document.
	Source export.Source

	// Export is the export outcome, nil when no output was requested.
	Export *export.Result

	// Dangling lists interaction endpoints no element declares.
	Dangling []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Roots        int
	Elements     int
	Interactions int
	DocumentSize int
	LoadTime     time.Duration
	BuildTime    time.Duration
	ExportTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. An output path with an unsupported extension is rejected
// here, before anything is loaded or rendered.
//
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if o.Output != "" {
		if err := o.ValidateForExport(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return errs.New(errs.ErrCodeInvalidInput, "input model is required")
	}
	o.setLogger()
	return nil
}

// ValidateForBuild validates the notation and sets its default.
func (o *Options) ValidateForBuild() error {
	n, err := export.ParseNotation(o.Notation)
	if err != nil {
		return err
	}
	o.Notation = string(n)
	o.setLogger()
	return nil
}

// ValidateForExport validates the output path and resolves its format.
func (o *Options) ValidateForExport() error {
	if err := errs.ValidatePath(o.Output); err != nil {
		return err
	}
	f, err := export.FormatFromPath(o.Output)
	if err != nil {
		return err
	}
	o.format = f
	o.setLogger()
	return nil
}

// Format returns the output format resolved by [Options.ValidateForExport].
func (o *Options) Format() export.Format { return o.format }

// IsDOT returns true if documents are built as Graphviz DOT.
func (o *Options) IsDOT() bool {
	return o.Notation == string(export.NotationDOT)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
