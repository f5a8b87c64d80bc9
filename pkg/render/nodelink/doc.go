// Package nodelink renders diagrams as Graphviz node-link graphs.
//
// # Overview
//
// This package is the DOT notation of the diagram model: the same element
// tree and interactions that [diagram.BuildDocument] writes as PlantUML are
// written as a Graphviz digraph instead, which can be rendered in-process
// without a Java runtime.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(d, nodelink.Options{})
//	res, err := export.New().Export(ctx, export.Source{Notation: export.NotationDOT, Text: dot}, "out.svg")
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the element kind
//
// # DOT Format
//
// Containers become "cluster" subgraphs labeled with their kind. Each cluster
// carries an anchor node named after the container, so interactions whose
// endpoint is a container still have a node to attach to. Colors go through
// [Color], which maps PlantUML color tokens to Graphviz ones.
//
// [diagram.BuildDocument]: github.com/doxflow/doxflow/pkg/diagram.BuildDocument
package nodelink
