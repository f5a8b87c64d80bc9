// Package export renders finished documents to image files.
//
// # Overview
//
// An [Exporter] takes a [Source] (document text plus its [Notation]) and a
// destination path. The output [Format] is chosen once from the path
// extension: .svg or .png. Anything else fails with an
// *errors.UnsupportedFormatError before a renderer is invoked.
//
//	exp := export.New()
//	res, err := exp.Export(ctx, export.Source{Notation: export.NotationPlantUML, Text: doc}, "out/all.png")
//	if err != nil {
//	    return err // bad extension or file system error
//	}
//	if !res.Rendered {
//	    log.Warn("render failed", "err", res.Failure)
//	}
//
// # Renderers
//
//   - [PlantUML]: pipes the text through the external plantuml tool
//   - [Graphviz]: renders DOT text in-process with go-graphviz
//
// Any type implementing [Renderer] can be plugged in with [WithRenderer].
//
// # Failure Reporting
//
// A renderer failure is a status, not an error: [Result.Rendered] is false and
// [Result.Failure] explains why. Rendering happens in memory, and the file is
// only created once image bytes exist, so a failed render never leaves a
// truncated file.
//
// # Dependencies
//
// PlantUML output requires the plantuml command (which itself needs Java and
// Graphviz). DOT output uses [github.com/goccy/go-graphviz] and needs nothing
// installed.
package export
