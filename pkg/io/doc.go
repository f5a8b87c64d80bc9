// Package io reads and writes declarative diagram model files.
//
// # Overview
//
// A model file describes a diagram without code: the element tree, optional
// registry keys, "plays" links and the interactions between elements. It is
// the input surface of the doxflow command. The same schema is accepted as
// YAML and as JSON.
//
// # Model Format
//
//	roots:
//	  - name: Contract
//	    kind: role_party
//	    color: "#orange"
//	    key: contract
//	    children:
//	      - name: Buyer
//	        kind: role_party
//	  - name: Evidence
//	    kind: rectangle
//	    children:
//	      - name: Receipt
//	        kind: rectangle
//	        plays: [contract]
//	interactions:
//	  - source: Buyer
//	    targets:
//	      - name: Seller
//	      - ref: contract
//	        label: confirms
//
// # Element Fields
//
// Required:
//   - name: Unique among siblings; also the display label
//   - kind: Notation keyword (package, class, rectangle, role_party, ...)
//
// Optional:
//   - color: "#name" or "#RRGGBB"; children inherit it
//   - key: Registry key other elements and targets can refer to
//   - plays: Keys this element satisfies; each becomes an interaction
//   - children: Nested elements
//
// # References
//
// Keys are registered while the file is read, top to bottom, depth first.
// A "plays" entry or a target "ref" can only name a key that was defined
// earlier in the file. Plain target names are not checked at all; use
// [diagram.Diagram.Dangling] to list names no element declares.
//
// # Import
//
// Use [ImportFile] to read a model by path, or [ReadYAML] and [ReadJSON] to
// read from any io.Reader:
//
//	d, err := io.ImportFile("model.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := d.Document()
//
// ImportFile also accepts a previously generated PlantUML document (.puml),
// which is read back with [diagram.Parse].
//
// # Export
//
// [WriteJSON], [WriteYAML] and [ExportJSON] write a diagram back in the same
// schema. Links created from "plays" are written as interactions, so the
// exported file builds the same document as the original.
//
// [diagram.Diagram.Dangling]: github.com/doxflow/doxflow/pkg/diagram.Diagram.Dangling
// [diagram.Parse]: github.com/doxflow/doxflow/pkg/diagram.Parse
package io
