// Package render groups the alternative notations a diagram can be written in.
//
// The PlantUML serializer lives with the model in [diagram]. This package
// tree holds notations that are derived from a finished [diagram.Diagram]:
//
//   - Node-link graphs in Graphviz DOT (in [nodelink] subpackage)
//
// Rendering the produced text to an image is the job of [export].
//
// [diagram]: github.com/doxflow/doxflow/pkg/diagram
// [diagram.Diagram]: github.com/doxflow/doxflow/pkg/diagram.Diagram
// [nodelink]: github.com/doxflow/doxflow/pkg/render/nodelink
// [export]: github.com/doxflow/doxflow/pkg/export
package render
