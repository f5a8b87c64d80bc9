package diagram

import (
	"bytes"
	"strings"
)

// Target is one endpoint of an interaction with an optional label.
type Target struct {
	Name  string // Name of the target element
	Label string // Optional label; blank labels are not written
}

// Interaction is a directed relationship record from one source element to an
// ordered list of targets. Targets are matched by name by the renderer; they
// are not checked against the model.
type Interaction struct {
	Source  string
	Targets []Target
}

// String renders the interaction with [EmitInteractions].
func (i Interaction) String() string {
	return EmitInteractions(i.Source, i.Targets)
}

// EmitInteractions writes one "[source]-->[target]" line per target, in the
// order given, appending ":label" when the label is not blank. Nothing is
// deduplicated and no target is resolved; a target that names no element
// becomes a dangling reference that only the renderer notices.
func EmitInteractions(source string, targets []Target) string {
	var buf bytes.Buffer
	for _, t := range targets {
		buf.WriteString("[" + source + "]-->[" + t.Name + "]")
		if strings.TrimSpace(t.Label) != "" {
			buf.WriteString(":" + t.Label)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}
