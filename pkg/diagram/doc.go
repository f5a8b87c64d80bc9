// Package diagram models human-authored diagrams as trees of named, typed
// elements plus directed interactions, and serializes them into PlantUML text.
//
// # Overview
//
// A diagram is a list of root containers, each an [Element] owning an ordered
// list of children, and a list of [Interaction] records between element names.
// [BuildDocument] turns both into one document: a fixed style preamble, every
// root rendered as a nested block, then every interaction as arrow lines.
//
//	d := diagram.NewDiagram()
//	billing, _ := d.Declare(nil, "Billing", "package", diagram.WithColor("#orange"))
//	_, _ = d.Declare(billing, "Invoice", "class")
//	_ = d.Relate("Invoice", diagram.Target{Name: "Payment", Label: "settles"})
//	doc, err := d.Document()
//
// # Colors
//
// An element without a color of its own is drawn with the color of its nearest
// colored ancestor. When there is none the [NoColor] marker is written; every
// element line carries a color token.
//
// # Names and References
//
// Names are unique among siblings only; [Element.AddChild] rejects a second
// child with the same name with an *errors.DuplicateNameError. Interaction
// targets are plain names and are never resolved against the tree; dangling
// targets are the caller's concern (see [Diagram.Dangling] for reporting).
//
// Elements that a later part of a build refers back to are bound to a key in
// the diagram's [Registry]; [Diagram.Satisfy] turns such a key into an
// interaction. Keys must be registered before use.
//
// # Determinism
//
// Rendering never sorts and never randomizes: the same tree always yields the
// same bytes. [Parse] reads a generated document back, and building the parsed
// diagram again reproduces the original document exactly.
//
// # Concurrency
//
// Nothing in this package synchronizes. A [Diagram] and its elements belong to
// one build; concurrent builds must use independent diagrams.
package diagram
