package export

import (
	"path/filepath"
	"strings"

	errs "github.com/doxflow/doxflow/pkg/errors"
)

// Format is an output image format. The set is closed: [SVG] and [PNG].
type Format int

const (
	// SVG selects scalable vector output.
	SVG Format = iota + 1
	// PNG selects raster output.
	PNG
)

// String returns the lowercase format name, which is also its file extension.
func (f Format) String() string {
	switch f {
	case SVG:
		return "svg"
	case PNG:
		return "png"
	}
	return "unknown"
}

// FormatFromPath resolves the output format from the extension of path,
// ignoring case. Any extension other than .svg or .png yields an
// *errors.UnsupportedFormatError.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	}
	return 0, &errs.UnsupportedFormatError{Path: path, Extension: ext}
}

// Notation is the diagram-description language a [Source] is written in.
type Notation string

const (
	// NotationPlantUML is PlantUML text rendered by the external plantuml tool.
	NotationPlantUML Notation = "plantuml"
	// NotationDOT is Graphviz DOT text rendered in-process.
	NotationDOT Notation = "dot"
)

// ParseNotation validates a notation name. Empty selects [NotationPlantUML].
func ParseNotation(s string) (Notation, error) {
	switch Notation(strings.ToLower(s)) {
	case "", NotationPlantUML:
		return NotationPlantUML, nil
	case NotationDOT:
		return NotationDOT, nil
	}
	return "", errs.New(errs.ErrCodeInvalidNotation, "invalid notation: %s (must be 'plantuml' or 'dot')", s)
}

// Source is a complete document ready to be rendered.
type Source struct {
	Notation Notation
	Text     string
}
