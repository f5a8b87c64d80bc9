package diagram

import (
	errs "github.com/doxflow/doxflow/pkg/errors"
)

// Diagram holds everything one build produces: the root containers in
// registration order, the interaction records in registration order, the
// [Scope] of declared names and the [Registry] of keyed elements.
//
// A Diagram belongs to a single build. It is not safe for concurrent use;
// builds that run in parallel must each use their own Diagram.
type Diagram struct {
	roots        []*Element
	rootIndex    map[string]struct{}
	interactions []Interaction
	scope        *Scope
	registry     *Registry
}

// NewDiagram creates an empty diagram with a fresh scope and registry.
func NewDiagram() *Diagram {
	return &Diagram{
		rootIndex: make(map[string]struct{}),
		scope:     NewScope(),
		registry:  NewRegistry(),
	}
}

// Declare creates an element, attaches it to parent (or registers it as a
// new root when parent is nil) and records its name in the diagram's scope.
// The name is only recorded when attaching succeeds.
func (d *Diagram) Declare(parent *Element, name string, kind Kind, opts ...Option) (*Element, error) {
	e := New(name, kind, opts...)
	var err error
	if parent == nil {
		err = d.AddRoot(e)
	} else {
		err = parent.AddChild(e)
	}
	if err != nil {
		return nil, err
	}
	d.scope.Declare(name)
	return e, nil
}

// AddRoot registers a top-level container. Root names are unique among roots.
// The whole subtree of e is recorded in the scope.
func (d *Diagram) AddRoot(e *Element) error {
	if e == nil {
		return errs.New(errs.ErrCodeInvalidInput, "cannot add nil root")
	}
	if e.parent != nil {
		return errs.New(errs.ErrCodeInvalidInput, "element %q already belongs to %q", e.Name, e.parent.Name)
	}
	if _, ok := d.rootIndex[e.Name]; ok {
		return &errs.DuplicateNameError{Name: e.Name}
	}
	d.rootIndex[e.Name] = struct{}{}
	d.roots = append(d.roots, e)
	e.Walk(func(el *Element, _ int) bool {
		d.scope.Declare(el.Name)
		return true
	})
	return nil
}

// Relate records an interaction from source to targets. Targets are kept in
// the order given and are not resolved.
func (d *Diagram) Relate(source string, targets ...Target) error {
	if source == "" {
		return errs.New(errs.ErrCodeInvalidInput, "interaction source cannot be empty")
	}
	ts := make([]Target, len(targets))
	copy(ts, targets)
	d.interactions = append(d.interactions, Interaction{Source: source, Targets: ts})
	return nil
}

// Register binds key to e in the diagram's registry.
func (d *Diagram) Register(key string, e *Element) error {
	return d.registry.Register(key, e)
}

// Satisfy records that source plays the role of the element registered under
// key elsewhere in the model, as an interaction from source to that element.
// The key must already be registered.
func (d *Diagram) Satisfy(source *Element, key, label string) error {
	if source == nil {
		return errs.New(errs.ErrCodeInvalidInput, "satisfying element is nil")
	}
	target, err := d.registry.Resolve(key)
	if err != nil {
		return err
	}
	return d.Relate(source.Name, Target{Name: target.Name, Label: label})
}

// Roots returns the root containers in registration order.
func (d *Diagram) Roots() []*Element {
	out := make([]*Element, len(d.roots))
	copy(out, d.roots)
	return out
}

// Interactions returns the interaction records in registration order.
func (d *Diagram) Interactions() []Interaction {
	out := make([]Interaction, len(d.interactions))
	copy(out, d.interactions)
	return out
}

// Scope returns the diagram's scope of declared names.
func (d *Diagram) Scope() *Scope { return d.scope }

// Registry returns the diagram's keyed element registry.
func (d *Diagram) Registry() *Registry { return d.registry }

// Document assembles the diagram with [BuildDocument].
func (d *Diagram) Document() (string, error) {
	return BuildDocument(d.roots, d.interactions)
}

// Dangling returns interaction endpoints that name no element of the diagram
// and were never declared in its scope, each once, in first-seen order.
//
// Nothing enforces this; it exists for reporting.
func (d *Diagram) Dangling() []string {
	known := make(map[string]bool)
	for _, r := range d.roots {
		r.Walk(func(el *Element, _ int) bool {
			known[el.Name] = true
			return true
		})
	}

	var out []string
	check := func(name string) {
		if known[name] || d.scope.Declared(name) {
			return
		}
		known[name] = true
		out = append(out, name)
	}
	for _, in := range d.interactions {
		check(in.Source)
		for _, t := range in.Targets {
			check(t.Name)
		}
	}
	return out
}
