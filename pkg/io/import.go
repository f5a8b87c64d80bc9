package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doxflow/doxflow/pkg/diagram"
	errs "github.com/doxflow/doxflow/pkg/errors"
)

// ReadYAML decodes a YAML model from r into a diagram.
//
// The input must be a mapping with a "roots" list and an optional
// "interactions" list:
//
//	roots:
//	  - name: Billing
//	    kind: package
//	    color: "#orange"
//	    children:
//	      - {name: Invoice, kind: class}
//	interactions:
//	  - source: Invoice
//	    targets:
//	      - {name: Payment, label: settles}
//
// Unknown fields are rejected. ReadYAML returns an error if:
//   - The YAML is malformed or has unknown fields
//   - A name, kind or color is invalid
//   - Two siblings share a name, or two roots share a name
//   - A key is registered twice
//   - A play or a ref names a key that is not registered yet
//
// Errors are wrapped with the path of the element that caused them, and keep
// their code for errors.Is.
//
// ReadYAML does not close r.
func ReadYAML(r io.Reader) (*diagram.Diagram, error) {
	var m model
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errs.ErrCodeInvalidModel, err, "decode yaml")
	}
	return build(m)
}

// ReadJSON decodes a JSON model from r into a diagram.
// The schema and the errors are the same as for [ReadYAML].
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*diagram.Diagram, error) {
	var m model
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidModel, err, "decode json")
	}
	return build(m)
}

// ImportFile reads the model file at path, choosing the reader by extension:
// .yaml and .yml use [ReadYAML], .json uses [ReadJSON], and .puml or
// .plantuml documents are read back with [diagram.Parse].
//
// A missing file returns a FILE_NOT_FOUND error.
func ImportFile(path string) (*diagram.Diagram, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var read func(io.Reader) (*diagram.Diagram, error)
	switch ext {
	case ".yaml", ".yml":
		read = ReadYAML
	case ".json":
		read = ReadJSON
	case ".puml", ".plantuml":
		read = readDocument
	default:
		return nil, errs.New(errs.ErrCodeInvalidModel, "unsupported model file %s (use .yaml, .yml, .json or .puml)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "model file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func readDocument(r io.Reader) (*diagram.Diagram, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return diagram.Parse(string(data))
}
