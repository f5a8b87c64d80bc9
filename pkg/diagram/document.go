package diagram

import (
	"bytes"

	errs "github.com/doxflow/doxflow/pkg/errors"
)

const (
	startMarker = "@startuml"
	endMarker   = "@enduml"
)

// stylePreamble is written at the top of every document. It is constant and
// takes no parameters.
const stylePreamble = `skinparam class {
   BorderColor black
   FontColor White
   AttributeFontColor White
   StereotypeFontColor White
}
skinparam defaultTextAlignment center
skinparam style strictuml
skinparam roundCorner 10
hide empty members
`

// Preamble returns the fixed style block shared by all documents.
func Preamble() string { return stylePreamble }

// BuildDocument assembles a complete document: the style preamble, each root
// rendered with [Render] in the order given, then each interaction block in
// the order given, wrapped in start/end markers.
//
// A nil root or an interaction without a source aborts the build; no partial
// document is ever returned.
func BuildDocument(roots []*Element, interactions []Interaction) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(startMarker + "\n")
	buf.WriteString(stylePreamble)

	for i, r := range roots {
		if r == nil {
			return "", errs.New(errs.ErrCodeInvalidInput, "root %d is nil", i)
		}
		writeBlock(&buf, r)
	}

	for i, in := range interactions {
		if in.Source == "" {
			return "", errs.New(errs.ErrCodeInvalidInput, "interaction %d has no source", i)
		}
		buf.WriteString(EmitInteractions(in.Source, in.Targets))
	}

	buf.WriteString(endMarker + "\n")
	return buf.String(), nil
}
