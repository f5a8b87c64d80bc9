package diagram

import (
	"bytes"
	"fmt"
	"strings"
)

// indent is the per-depth prefix for nested block lines.
const indent = "  "

// Render serializes root and its subtree as nested blocks.
//
// The header names the root's kind and name, plus its effective color when
// the root has a color of its own or is itself nested in another element.
// Children follow in insertion order: a leaf child becomes a
// "<kind> <name> <color>" line, and a child that owns children becomes a
// nested block in place of that line. A root without children renders as its header
// immediately followed by the closer.
//
// Output depends only on the tree: no sorting, no randomness.
func Render(root *Element) string {
	var buf bytes.Buffer
	writeBlock(&buf, root)
	return buf.String()
}

func writeBlock(buf *bytes.Buffer, root *Element) {
	if root.Color != "" || root.parent != nil {
		fmt.Fprintf(buf, "%s %s %s {\n", root.Kind, root.Name, root.EffectiveColor())
	} else {
		fmt.Fprintf(buf, "%s %s {\n", root.Kind, root.Name)
	}
	writeChildren(buf, root.children, root.EffectiveColor(), 1)
	buf.WriteString("}\n")
}

// writeChildren drains the children FIFO. inherited is the effective color of
// the enclosing container.
func writeChildren(buf *bytes.Buffer, children []*Element, inherited string, depth int) {
	pad := strings.Repeat(indent, depth)
	for _, c := range children {
		color := resolve(c.Color, inherited)
		if !c.IsContainer() {
			fmt.Fprintf(buf, "%s%s %s %s\n", pad, c.Kind, c.Name, color)
			continue
		}
		fmt.Fprintf(buf, "%s%s %s %s {\n", pad, c.Kind, c.Name, color)
		writeChildren(buf, c.children, color, depth+1)
		fmt.Fprintf(buf, "%s}\n", pad)
	}
}
