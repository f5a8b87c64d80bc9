package diagram

import (
	"regexp"
	"strings"

	errs "github.com/doxflow/doxflow/pkg/errors"
)

var interactionRe = regexp.MustCompile(`^\[([^\]]+)\]-->\[([^\]]+)\](?::(.*))?$`)

// Parse reads a document produced by [BuildDocument] back into a diagram.
//
// Every element line becomes an element whose explicit color is the color
// that was printed, so building the parsed diagram again yields the same
// bytes. Consecutive interaction lines sharing a source are grouped into one
// interaction. Runs of whitespace inside names collapse to a single space.
func Parse(doc string) (*Diagram, error) {
	body := strings.TrimRight(doc, "\n")
	if !strings.HasPrefix(body, startMarker) {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "document must start with %s", startMarker)
	}
	if !strings.HasSuffix(body, endMarker) {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "document must end with %s", endMarker)
	}
	body = strings.TrimPrefix(body, startMarker)
	body = strings.TrimSuffix(body, endMarker)
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, stylePreamble)

	p := &parser{d: NewDiagram()}
	for i, line := range strings.Split(body, "\n") {
		if err := p.line(strings.TrimSpace(line)); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "line %d", i+1)
		}
	}
	if len(p.stack) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "unclosed block %q", p.stack[len(p.stack)-1].Name)
	}
	p.flush()
	return p.d, nil
}

type parser struct {
	d       *Diagram
	stack   []*Element
	pending *Interaction
}

func (p *parser) line(line string) error {
	switch {
	case line == "":
		return nil
	case line == "}":
		if len(p.stack) == 0 {
			return errs.New(errs.ErrCodeInvalidDocument, "unexpected }")
		}
		p.stack = p.stack[:len(p.stack)-1]
		return nil
	case strings.HasPrefix(line, "["):
		return p.interaction(line)
	case strings.HasSuffix(line, "{"):
		return p.open(strings.Fields(strings.TrimSuffix(line, "{")))
	default:
		return p.leaf(strings.Fields(line))
	}
}

func (p *parser) open(fields []string) error {
	p.flush()
	if len(p.stack) == 0 {
		if len(fields) < 2 {
			return errs.New(errs.ErrCodeInvalidDocument, "block header needs a kind and a name")
		}
		e := New(strings.Join(fields[1:], " "), Kind(fields[0]))
		if last := fields[len(fields)-1]; len(fields) > 2 && strings.HasPrefix(last, "#") {
			e = New(strings.Join(fields[1:len(fields)-1], " "), Kind(fields[0]), WithColor(last))
		}
		if err := p.d.AddRoot(e); err != nil {
			return err
		}
		p.stack = append(p.stack, e)
		return nil
	}

	e, err := p.child(fields)
	if err != nil {
		return err
	}
	p.stack = append(p.stack, e)
	return nil
}

func (p *parser) leaf(fields []string) error {
	if len(p.stack) == 0 {
		return errs.New(errs.ErrCodeInvalidDocument, "element line outside of a block")
	}
	_, err := p.child(fields)
	return err
}

// child attaches a "<kind> <name> <color>" line to the innermost open block.
func (p *parser) child(fields []string) (*Element, error) {
	if len(fields) < 3 {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "element line needs a kind, a name and a color")
	}
	name := strings.Join(fields[1:len(fields)-1], " ")
	return NewChild(p.stack[len(p.stack)-1], name, Kind(fields[0]), WithColor(fields[len(fields)-1]))
}

func (p *parser) interaction(line string) error {
	if len(p.stack) > 0 {
		return errs.New(errs.ErrCodeInvalidDocument, "interaction inside block %q", p.stack[len(p.stack)-1].Name)
	}
	m := interactionRe.FindStringSubmatch(line)
	if m == nil {
		return errs.New(errs.ErrCodeInvalidDocument, "malformed interaction %q", line)
	}
	if p.pending != nil && p.pending.Source != m[1] {
		p.flush()
	}
	if p.pending == nil {
		p.pending = &Interaction{Source: m[1]}
	}
	p.pending.Targets = append(p.pending.Targets, Target{Name: m[2], Label: m[3]})
	return nil
}

func (p *parser) flush() {
	if p.pending == nil {
		return
	}
	_ = p.d.Relate(p.pending.Source, p.pending.Targets...)
	p.pending = nil
}
