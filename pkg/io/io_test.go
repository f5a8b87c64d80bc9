package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doxflow/doxflow/pkg/diagram"
	errs "github.com/doxflow/doxflow/pkg/errors"
)

const sampleYAML = `
roots:
  - name: Contract
    kind: role_party
    color: "#orange"
    key: contract
    children:
      - name: Buyer
        kind: role_party
  - name: Evidence
    kind: rectangle
    children:
      - name: Receipt
        kind: rectangle
        plays: [contract]
interactions:
  - source: Buyer
    targets:
      - name: Seller
      - ref: contract
        label: confirms
`

func mustDocument(t *testing.T, d *diagram.Diagram) string {
	t.Helper()
	doc, err := d.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	return doc
}

func TestReadYAML(t *testing.T) {
	d, err := ReadYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("ReadYAML() error = %v", err)
	}

	if got := len(d.Roots()); got != 2 {
		t.Fatalf("roots = %d, want 2", got)
	}
	if e, ok := d.Registry().Lookup("contract"); !ok || e.Name != "Contract" {
		t.Errorf("Lookup(contract) = %v, %v", e, ok)
	}

	doc := mustDocument(t, d)
	for _, want := range []string{
		"role_party Contract #orange {\n  role_party Buyer #orange\n}\n",
		"rectangle Evidence {\n  rectangle Receipt #transparent\n}\n",
		"[Receipt]-->[Contract]\n[Buyer]-->[Seller]\n[Buyer]-->[Contract]:confirms\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}

	if got := d.Dangling(); len(got) != 1 || got[0] != "Seller" {
		t.Errorf("Dangling() = %v, want [Seller]", got)
	}
}

func TestReadYAMLEmpty(t *testing.T) {
	d, err := ReadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadYAML(\"\") error = %v", err)
	}
	if len(d.Roots()) != 0 || len(d.Interactions()) != 0 {
		t.Error("empty input should give an empty diagram")
	}
}

func TestReadJSON(t *testing.T) {
	input := `{
  "roots": [
    {"name": "A", "kind": "role_party", "color": "#orange",
     "children": [{"name": "B", "kind": "role_party"}]}
  ],
  "interactions": [
    {"source": "X", "targets": [{"name": "Y"}, {"name": "Z", "label": "confirms"}]}
  ]
}`
	d, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	doc := mustDocument(t, d)
	for _, want := range []string{
		"role_party A #orange {\n  role_party B #orange\n}\n",
		"[X]-->[Y]\n[X]-->[Z]:confirms\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{
			name:  "malformed",
			input: "roots: [",
			code:  errs.ErrCodeInvalidModel,
		},
		{
			name:  "unknown field",
			input: "roots:\n  - name: A\n    kind: package\n    colour: \"#red\"\n",
			code:  errs.ErrCodeInvalidModel,
		},
		{
			name:  "empty name",
			input: "roots:\n  - name: \" \"\n    kind: package\n",
			code:  errs.ErrCodeInvalidModel,
		},
		{
			name:  "missing kind",
			input: "roots:\n  - name: A\n",
			code:  errs.ErrCodeInvalidModel,
		},
		{
			name:  "bad color",
			input: "roots:\n  - name: A\n    kind: package\n    color: orange\n",
			code:  errs.ErrCodeInvalidModel,
		},
		{
			name:  "duplicate sibling",
			input: "roots:\n  - name: A\n    kind: package\n    children:\n      - {name: B, kind: class}\n      - {name: B, kind: class}\n",
			code:  errs.ErrCodeDuplicateName,
		},
		{
			name:  "duplicate root",
			input: "roots:\n  - {name: A, kind: package}\n  - {name: A, kind: package}\n",
			code:  errs.ErrCodeDuplicateName,
		},
		{
			name:  "duplicate key",
			input: "roots:\n  - {name: A, kind: package, key: k}\n  - {name: B, kind: package, key: k}\n",
			code:  errs.ErrCodeDuplicateKey,
		},
		{
			name:  "forward play",
			input: "roots:\n  - {name: A, kind: package, plays: [later]}\n  - {name: B, kind: package, key: later}\n",
			code:  errs.ErrCodeUnknownReference,
		},
		{
			name:  "unknown ref",
			input: "roots:\n  - {name: A, kind: package}\ninteractions:\n  - source: A\n    targets:\n      - ref: nowhere\n",
			code:  errs.ErrCodeUnknownReference,
		},
		{
			name:  "name and ref",
			input: "roots:\n  - {name: A, kind: package, key: a}\ninteractions:\n  - source: A\n    targets:\n      - {name: A, ref: a}\n",
			code:  errs.ErrCodeInvalidModel,
		},
		{
			name:  "multiline label",
			input: "interactions:\n  - source: A\n    targets:\n      - name: B\n        label: \"one\\ntwo\"\n",
			code:  errs.ErrCodeInvalidModel,
		},
		{
			name:  "empty source",
			input: "interactions:\n  - source: \"\"\n    targets:\n      - name: B\n",
			code:  errs.ErrCodeInvalidModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadYAML(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadYAML() should fail")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("ReadYAML() error = %v, want code %s (got %s)", err, tt.code, errs.GetCode(err))
			}
		})
	}
}

func TestReadJSONUnknownField(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"nodes": []}`))
	if !errs.Is(err, errs.ErrCodeInvalidModel) {
		t.Errorf("ReadJSON() error = %v, want INVALID_MODEL", err)
	}
}

func TestRoundTripJSON(t *testing.T) {
	d, err := ReadYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	want := mustDocument(t, d)

	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v\n%s", err, buf.String())
	}
	if got := mustDocument(t, back); got != want {
		t.Errorf("round trip changed document:\n%s\nwant\n%s", got, want)
	}
	if _, ok := back.Registry().Lookup("contract"); !ok {
		t.Error("key should survive the round trip")
	}
}

func TestRoundTripYAML(t *testing.T) {
	d, err := ReadYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	want := mustDocument(t, d)

	var buf bytes.Buffer
	if err := WriteYAML(d, &buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	back, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML() error = %v\n%s", err, buf.String())
	}
	if got := mustDocument(t, back); got != want {
		t.Errorf("round trip changed document:\n%s\nwant\n%s", got, want)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	src, err := ReadYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	want := mustDocument(t, src)

	yamlPath := filepath.Join(dir, "model.YML")
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "model.json")
	if err := ExportJSON(src, jsonPath); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	pumlPath := filepath.Join(dir, "model.puml")
	if err := os.WriteFile(pumlPath, []byte(want), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{yamlPath, jsonPath, pumlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			d, err := ImportFile(path)
			if err != nil {
				t.Fatalf("ImportFile() error = %v", err)
			}
			if got := mustDocument(t, d); got != want {
				t.Errorf("ImportFile(%s) document =\n%s\nwant\n%s", path, got, want)
			}
		})
	}
}

func TestImportFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ImportFile(filepath.Join(dir, "missing.yaml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	txt := filepath.Join(dir, "model.txt")
	if err := os.WriteFile(txt, []byte("roots: []"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = ImportFile(txt)
	if !errs.Is(err, errs.ErrCodeInvalidModel) {
		t.Errorf("unsupported extension error = %v, want INVALID_MODEL", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("roots:\n  - {name: A, kind: package}\n  - {name: A, kind: package}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = ImportFile(bad)
	if !errs.Is(err, errs.ErrCodeDuplicateName) {
		t.Errorf("duplicate root error = %v, want DUPLICATE_NAME", err)
	}
	if err != nil && !strings.Contains(err.Error(), bad) {
		t.Errorf("error %q should mention the file", err)
	}
}

func TestImportExampleModel(t *testing.T) {
	d, err := ImportFile(filepath.Join("..", "..", "examples", "models", "promotion.yaml"))
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if got := d.Dangling(); len(got) != 0 {
		t.Errorf("Dangling() = %v, want none", got)
	}
	doc := mustDocument(t, d)
	if !strings.Contains(doc, "[PaymentVoucher]-->[TopUpConfirmation]\n") {
		t.Errorf("plays link missing:\n%s", doc)
	}
	if !strings.Contains(doc, "[PaymentProvider]-->[TopUpConfirmation]:settles\n") {
		t.Errorf("ref target missing:\n%s", doc)
	}
}
