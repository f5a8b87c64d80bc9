// Package pkg provides the libraries behind doxflow.
//
// # Overview
//
// doxflow builds diagrams from a tree of named, typed elements and the
// directed interactions between them, and writes them as PlantUML text for
// an external renderer. The pkg directory is organized as follows:
//
//  1. [diagram] - The element tree, the PlantUML serializer and its parser
//  2. [render/nodelink] - The same model written as Graphviz DOT
//  3. [io] - Declarative model files (YAML, JSON)
//  4. [export] - Rendering documents to SVG or PNG files
//  5. [pipeline] - Orchestration (load → build → export)
//
// Supporting packages: [errors] (coded errors and input validation),
// [observability] (hooks) and [buildinfo] (version information).
//
// # Architecture
//
// The typical data flow through doxflow:
//
//	model.yaml
//	     ↓
//	 [io] package (read the model into a diagram)
//	     ↓
//	 [diagram] package (elements, scope, registry, document)
//	     ↓
//	 [export] package (plantuml or graphviz)
//	     ↓
//	 SVG/PNG output
//
// # Quick Start
//
// Build a diagram in code and print its document:
//
//	d := diagram.NewDiagram()
//	a, _ := d.Declare(nil, "A", "role_party", diagram.WithColor("#orange"))
//	d.Declare(a, "B", "role_party")
//	d.Relate("A", diagram.Target{Name: "B", Label: "confirms"})
//	doc, _ := d.Document()
//
// Render it:
//
//	res, err := export.New().Export(ctx, export.Source{Text: doc}, "diagram.svg")
//	if err == nil && !res.Rendered {
//	    log.Print(res.Failure)
//	}
//
// [diagram]: github.com/doxflow/doxflow/pkg/diagram
// [render/nodelink]: github.com/doxflow/doxflow/pkg/render/nodelink
// [io]: github.com/doxflow/doxflow/pkg/io
// [export]: github.com/doxflow/doxflow/pkg/export
// [pipeline]: github.com/doxflow/doxflow/pkg/pipeline
// [errors]: github.com/doxflow/doxflow/pkg/errors
// [observability]: github.com/doxflow/doxflow/pkg/observability
// [buildinfo]: github.com/doxflow/doxflow/pkg/buildinfo
package pkg
