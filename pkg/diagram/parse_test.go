package diagram

import (
	"strings"
	"testing"

	errs "github.com/doxflow/doxflow/pkg/errors"
)

func TestParse_RoundTrip(t *testing.T) {
	d := sampleDiagram(t)
	_ = d.Relate("MonitorConfirmation", Target{Name: "ClickReport", Label: "attaches"}, Target{Name: "Monitoring"})

	doc, err := d.Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}

	parsed, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	again, err := parsed.Document()
	if err != nil {
		t.Fatalf("Document() of parsed diagram error: %v", err)
	}
	if again != doc {
		t.Errorf("round trip differs:\n%s\nvs\n%s", again, doc)
	}
}

func TestParse_PreservesOrderAndColors(t *testing.T) {
	root := New("P", "package", WithColor("#orange"))
	a, _ := NewChild(root, "A", "role_party")
	_, _ = NewChild(a, "B", "role_party")
	_, _ = NewChild(root, "C", "class", WithColor("#F0637C"))

	doc, _ := BuildDocument([]*Element{root}, nil)
	d, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	roots := d.Roots()
	if len(roots) != 1 || roots[0].Name != "P" || roots[0].Color != "#orange" {
		t.Fatalf("Roots() = %+v", roots)
	}
	children := roots[0].Children()
	if len(children) != 2 || children[0].Name != "A" || children[1].Name != "C" {
		t.Fatalf("children order = %v", children)
	}
	b, ok := children[0].Child("B")
	if !ok {
		t.Fatal("nested child B missing")
	}
	if b.EffectiveColor() != "#orange" || children[1].EffectiveColor() != "#F0637C" {
		t.Error("effective colors not preserved")
	}
}

func TestParse_GroupsInteractions(t *testing.T) {
	doc, _ := BuildDocument(nil, []Interaction{
		{Source: "X", Targets: []Target{{Name: "Y"}, {Name: "Z", Label: "confirms"}}},
		{Source: "W", Targets: []Target{{Name: "X"}}},
	})

	d, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	got := d.Interactions()
	if len(got) != 2 {
		t.Fatalf("Interactions() = %+v, want 2 groups", got)
	}
	if got[0].Source != "X" || len(got[0].Targets) != 2 || got[0].Targets[1].Label != "confirms" {
		t.Errorf("first interaction = %+v", got[0])
	}
	if got[1].Source != "W" {
		t.Errorf("second interaction = %+v", got[1])
	}
}

func TestParse_Errors(t *testing.T) {
	wrap := func(body string) string {
		return "@startuml\n" + Preamble() + body + "@enduml\n"
	}

	tests := []struct {
		name string
		doc  string
	}{
		{"missing start", "package A {\n}\n@enduml\n"},
		{"missing end", "@startuml\npackage A {\n}\n"},
		{"unclosed block", wrap("package A {\n  class b #red\n")},
		{"stray closer", wrap("}\n")},
		{"leaf outside block", wrap("class b #red\n")},
		{"short element line", wrap("package A {\n  class b\n}\n")},
		{"interaction inside block", wrap("package A {\n[a]-->[b]\n}\n")},
		{"malformed interaction", wrap("[a]->[b]\n")},
		{"duplicate sibling", wrap("package A {\n  class b #red\n  class b #red\n}\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !errs.Is(err, errs.ErrCodeInvalidDocument) {
				t.Errorf("Parse() error = %v, want INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestParse_NamesWithSpaces(t *testing.T) {
	root := New("Payment Context", "package")
	_, _ = NewChild(root, "Payment Request", "class")

	doc, _ := BuildDocument([]*Element{root}, []Interaction{
		{Source: "Payment Request", Targets: []Target{{Name: "Payment Context", Label: "lives in"}}},
	})
	d, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, ok := d.Roots()[0].Child("Payment Request"); !ok {
		t.Error("name with a space should survive parsing")
	}
	again, _ := d.Document()
	if !strings.Contains(again, "[Payment Request]-->[Payment Context]:lives in") {
		t.Errorf("interaction lost:\n%s", again)
	}
}
