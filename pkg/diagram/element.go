package diagram

import (
	errs "github.com/doxflow/doxflow/pkg/errors"
)

// NoColor is the marker emitted for elements that have no color of their own
// and no colored ancestor. The renderer needs a color token on every element
// line, so the marker is written instead of leaving the slot empty.
const NoColor = "#transparent"

// Kind selects the notation keyword an element is rendered with
// (package, class, rectangle, role_party, ...). The core treats it as opaque.
type Kind string

// Element is a named, typed node of the diagram tree.
//
// An element owns its children exclusively: it is attached to at most one
// parent, once, through [Element.AddChild], and is never moved afterwards.
// Children keep insertion order, which is also the render order.
//
// The zero value is not usable - use [New] or [NewChild].
// Element is not safe for concurrent mutation.
type Element struct {
	Name  string // Identifier, unique among siblings; also the display label
	Kind  Kind   // Notation keyword
	Color string // Own color ("#name" or "#RRGGBB"); empty means unset

	parent   *Element
	children []*Element
	index    map[string]int // child name -> position in children
}

// Option configures an Element at construction time.
type Option func(*Element)

// WithColor sets the element's own color.
func WithColor(color string) Option {
	return func(e *Element) { e.Color = color }
}

// New creates a detached element.
func New(name string, kind Kind, opts ...Option) *Element {
	e := &Element{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewChild creates an element and attaches it to parent in one step.
// It fails exactly when [Element.AddChild] would.
func NewChild(parent *Element, name string, kind Kind, opts ...Option) (*Element, error) {
	if parent == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "parent of %q is nil", name)
	}
	child := New(name, kind, opts...)
	if err := parent.AddChild(child); err != nil {
		return nil, err
	}
	return child, nil
}

// AddChild appends child to e's children.
//
// It returns a *errors.DuplicateNameError when a direct child of e already
// has child's name; uniqueness is only checked among siblings, not across
// the whole tree. It also rejects a nil child, a child that already has a
// parent, and a child that is e itself or one of e's ancestors. On error the
// children of e are left untouched.
func (e *Element) AddChild(child *Element) error {
	if child == nil {
		return errs.New(errs.ErrCodeInvalidInput, "cannot add nil child to %q", e.Name)
	}
	if _, ok := e.index[child.Name]; ok {
		return &errs.DuplicateNameError{Container: e.Name, Name: child.Name}
	}
	if child.parent != nil {
		return errs.New(errs.ErrCodeInvalidInput, "element %q already belongs to %q", child.Name, child.parent.Name)
	}
	for a := e; a != nil; a = a.parent {
		if a == child {
			return errs.New(errs.ErrCodeInvalidInput, "element %q cannot contain itself", child.Name)
		}
	}

	if e.index == nil {
		e.index = make(map[string]int)
	}
	e.index[child.Name] = len(e.children)
	e.children = append(e.children, child)
	child.parent = e
	return nil
}

// Children returns a copy of e's children in insertion order.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Child returns the direct child with the given name.
func (e *Element) Child(name string) (*Element, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	return e.children[i], true
}

// Len returns the number of direct children.
func (e *Element) Len() int { return len(e.children) }

// Parent returns the owning element, or nil for a root or detached element.
func (e *Element) Parent() *Element { return e.parent }

// IsContainer reports whether e owns at least one child. Containers render
// as nested blocks, everything else as a single line.
func (e *Element) IsContainer() bool { return len(e.children) > 0 }

// EffectiveColor resolves the color e is drawn with: its own color, else the
// nearest ancestor that has one, else [NoColor].
func (e *Element) EffectiveColor() string {
	for a := e; a != nil; a = a.parent {
		if a.Color != "" {
			return a.Color
		}
	}
	return NoColor
}

// Walk visits e and its descendants depth-first in render order.
// Returning false from fn skips the subtree below the visited element.
func (e *Element) Walk(fn func(el *Element, depth int) bool) {
	e.walk(fn, 0)
}

func (e *Element) walk(fn func(*Element, int) bool, depth int) {
	if !fn(e, depth) {
		return
	}
	for _, c := range e.children {
		c.walk(fn, depth+1)
	}
}

// resolve returns own color or the inherited one.
func resolve(own, inherited string) string {
	if own != "" {
		return own
	}
	if inherited != "" {
		return inherited
	}
	return NoColor
}
