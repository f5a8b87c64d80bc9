package io

import (
	"fmt"
	"strings"

	"github.com/doxflow/doxflow/pkg/diagram"
	errs "github.com/doxflow/doxflow/pkg/errors"
)

// model is the on-disk shape shared by the JSON and YAML readers and writers.
type model struct {
	Roots        []element     `json:"roots" yaml:"roots"`
	Interactions []interaction `json:"interactions,omitempty" yaml:"interactions,omitempty"`
}

type element struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     string    `json:"kind" yaml:"kind"`
	Color    string    `json:"color,omitempty" yaml:"color,omitempty"`
	Key      string    `json:"key,omitempty" yaml:"key,omitempty"`
	Plays    []string  `json:"plays,omitempty" yaml:"plays,omitempty"`
	Children []element `json:"children,omitempty" yaml:"children,omitempty"`
}

type interaction struct {
	Source  string   `json:"source" yaml:"source"`
	Targets []target `json:"targets" yaml:"targets"`
}

type target struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Ref   string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// build turns a decoded model into a diagram. Elements are created in file
// order; keys are registered as soon as their element exists and plays are
// resolved right after, so a play can only name a key defined earlier.
func build(m model) (*diagram.Diagram, error) {
	d := diagram.NewDiagram()
	for _, r := range m.Roots {
		if err := addElement(d, nil, r, ""); err != nil {
			return nil, err
		}
	}

	for i, in := range m.Interactions {
		if err := errs.ValidateName(in.Source); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidModel, err, "interaction %d: source", i+1)
		}
		targets := make([]diagram.Target, 0, len(in.Targets))
		for j, t := range in.Targets {
			name, err := resolveTarget(d, t)
			if err != nil {
				return nil, fmt.Errorf("interaction %d (%s) target %d: %w", i+1, in.Source, j+1, err)
			}
			targets = append(targets, diagram.Target{Name: name, Label: t.Label})
		}
		if err := d.Relate(in.Source, targets...); err != nil {
			return nil, fmt.Errorf("interaction %d: %w", i+1, err)
		}
	}
	return d, nil
}

func addElement(d *diagram.Diagram, parent *diagram.Element, el element, path string) error {
	path = joinPath(path, el.Name)
	if err := validateElement(el); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidModel, err, "element %s", path)
	}

	e, err := d.Declare(parent, el.Name, diagram.Kind(el.Kind), diagram.WithColor(el.Color))
	if err != nil {
		return fmt.Errorf("element %s: %w", path, err)
	}
	if el.Key != "" {
		if err := d.Register(el.Key, e); err != nil {
			return fmt.Errorf("element %s: %w", path, err)
		}
	}
	for _, key := range el.Plays {
		if err := d.Satisfy(e, key, ""); err != nil {
			return fmt.Errorf("element %s plays %q: %w", path, key, err)
		}
	}

	for _, c := range el.Children {
		if err := addElement(d, e, c, path); err != nil {
			return err
		}
	}
	return nil
}

func validateElement(el element) error {
	if err := errs.ValidateName(el.Name); err != nil {
		return err
	}
	if err := errs.ValidateKind(el.Kind); err != nil {
		return err
	}
	return errs.ValidateColor(el.Color)
}

func resolveTarget(d *diagram.Diagram, t target) (string, error) {
	if strings.ContainsAny(t.Label, "\r\n") {
		return "", errs.New(errs.ErrCodeInvalidModel, "label %q spans several lines", t.Label)
	}
	switch {
	case t.Name != "" && t.Ref != "":
		return "", errs.New(errs.ErrCodeInvalidModel, "target sets both name %q and ref %q", t.Name, t.Ref)
	case t.Ref != "":
		e, err := d.Registry().Resolve(t.Ref)
		if err != nil {
			return "", err
		}
		return e.Name, nil
	}
	if err := errs.ValidateName(t.Name); err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidModel, err, "target name")
	}
	return t.Name, nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "/" + name
}

// fromDiagram converts a diagram back into the file model. Registered keys
// are written on their elements; satisfied links were recorded as
// interactions and are written as such.
func fromDiagram(d *diagram.Diagram) model {
	keys := make(map[*diagram.Element]string)
	reg := d.Registry()
	for _, k := range reg.Keys() {
		if e, ok := reg.Lookup(k); ok {
			if _, seen := keys[e]; !seen {
				keys[e] = k
			}
		}
	}

	var m model
	for _, r := range d.Roots() {
		m.Roots = append(m.Roots, toElement(r, keys))
	}
	for _, in := range d.Interactions() {
		out := interaction{Source: in.Source, Targets: make([]target, len(in.Targets))}
		for i, t := range in.Targets {
			out.Targets[i] = target{Name: t.Name, Label: t.Label}
		}
		m.Interactions = append(m.Interactions, out)
	}
	return m
}

func toElement(e *diagram.Element, keys map[*diagram.Element]string) element {
	out := element{
		Name:  e.Name,
		Kind:  string(e.Kind),
		Color: e.Color,
		Key:   keys[e],
	}
	for _, c := range e.Children() {
		out.Children = append(out.Children, toElement(c, keys))
	}
	return out
}
