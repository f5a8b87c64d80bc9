package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/doxflow/doxflow/pkg/diagram"
	errs "github.com/doxflow/doxflow/pkg/errors"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds the element kind below the name in node labels.
	// When false, only the name is shown.
	Detailed bool
}

// ToDOT converts a diagram to Graphviz DOT format.
// The resulting DOT string can be rendered with export.Graphviz.
//
// Containers become cluster subgraphs. Each cluster holds an anchor node
// named after the container so interactions can point at it. Leaves become
// filled boxes drawn in their effective color. Elements are emitted in the
// same order the PlantUML serializer uses.
//
// Node identifiers are element names. Names only need to be unique among
// siblings, so two elements sharing a name in different containers collapse
// into one node, the same way interaction endpoints resolve by name.
func ToDOT(d *diagram.Diagram, opts Options) (string, error) {
	if d == nil {
		return "", errs.New(errs.ErrCodeInvalidInput, "diagram is nil")
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	w := &writer{buf: &buf, opts: opts}
	for _, root := range d.Roots() {
		buf.WriteString("\n")
		w.element(root, 1)
	}

	if ins := d.Interactions(); len(ins) > 0 {
		buf.WriteString("\n")
		for _, in := range ins {
			for _, t := range in.Targets {
				fmt.Fprintf(&buf, "  %q -> %q", in.Source, t.Name)
				if label := strings.TrimSpace(t.Label); label != "" {
					fmt.Fprintf(&buf, " [label=%q]", t.Label)
				}
				buf.WriteString(";\n")
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

type writer struct {
	buf      *bytes.Buffer
	opts     Options
	clusters int
}

func (w *writer) element(e *diagram.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	color := Color(e.EffectiveColor())

	if !e.IsContainer() {
		fmt.Fprintf(w.buf, "%s%q [%s];\n", indent, e.Name, strings.Join(w.attrs(e, color), ", "))
		return
	}

	fmt.Fprintf(w.buf, "%ssubgraph \"cluster_%d\" {\n", indent, w.clusters)
	w.clusters++
	fmt.Fprintf(w.buf, "%s  label=%q;\n", indent, string(e.Kind))
	fmt.Fprintf(w.buf, "%s  style=\"rounded,dashed\";\n", indent)
	fmt.Fprintf(w.buf, "%s  color=%q;\n", indent, borderColor(color))
	fmt.Fprintf(w.buf, "%s  %q [%s];\n", indent, e.Name, strings.Join(append(w.attrs(e, color), "penwidth=2"), ", "))
	for _, c := range e.Children() {
		w.element(c, depth+1)
	}
	fmt.Fprintf(w.buf, "%s}\n", indent)
}

func (w *writer) attrs(e *diagram.Element, color string) []string {
	label := e.Name
	if w.opts.Detailed {
		label = e.Name + "\n" + string(e.Kind)
	}
	return []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("fillcolor=%q", color)}
}

func borderColor(color string) string {
	if color == "transparent" {
		return "black"
	}
	return color
}

// Color converts a PlantUML color token to a Graphviz color.
//
// Hex colors keep their value, with three-digit forms expanded. Named colors
// drop the leading '#' and are lowercased. The unset marker and the empty
// string become "transparent".
func Color(c string) string {
	if c == "" || c == diagram.NoColor {
		return "transparent"
	}
	name := strings.TrimPrefix(c, "#")
	if isHex(name) {
		switch len(name) {
		case 3:
			return "#" + strings.ToUpper(string([]byte{name[0], name[0], name[1], name[1], name[2], name[2]}))
		case 6, 8:
			return "#" + strings.ToUpper(name)
		}
	}
	return strings.ToLower(name)
}

func isHex(s string) bool {
	if len(s) != 3 && len(s) != 6 && len(s) != 8 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
