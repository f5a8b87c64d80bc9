package diagram

import (
	"strings"
	"testing"
)

func TestRender_EmptyContainer(t *testing.T) {
	got := Render(New("Empty", "package"))
	want := "package Empty {\n}\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_Leaves(t *testing.T) {
	root := New("Billing", "package")
	_, _ = NewChild(root, "Invoice", "class", WithColor("#CA8422"))
	_, _ = NewChild(root, "Receipt", "class")

	got := Render(root)
	want := "package Billing {\n" +
		"  class Invoice #CA8422\n" +
		"  class Receipt #transparent\n" +
		"}\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_NestedInheritance(t *testing.T) {
	parent := New("P", "package", WithColor("#orange"))
	a, _ := NewChild(parent, "A", "role_party")
	_, _ = NewChild(a, "B", "role_party")

	got := Render(parent)
	want := "package P #orange {\n" +
		"  role_party A #orange {\n" +
		"    role_party B #orange\n" +
		"  }\n" +
		"}\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	sub := Render(a)
	if !strings.HasPrefix(sub, "role_party A #orange {\n") {
		t.Errorf("Render(nested) header = %q, want inherited color", sub)
	}
	if !strings.Contains(sub, "role_party B #orange") {
		t.Errorf("Render(nested) missing inherited child color: %q", sub)
	}
}

func TestRender_ContainerReplacesLeafLine(t *testing.T) {
	root := New("R", "package")
	c, _ := NewChild(root, "C", "rectangle")
	_, _ = NewChild(c, "D", "class")

	got := Render(root)
	if strings.Contains(got, "rectangle C #transparent\n") {
		t.Errorf("container child must not also render as a leaf line:\n%s", got)
	}
	if strings.Count(got, "rectangle C") != 1 {
		t.Errorf("container child should appear exactly once:\n%s", got)
	}
}

func TestRender_OwnColorOverridesAncestor(t *testing.T) {
	root := New("R", "package", WithColor("#orange"))
	mid, _ := NewChild(root, "M", "package", WithColor("#6D9D79"))
	_, _ = NewChild(mid, "L", "class")
	_, _ = NewChild(root, "K", "class", WithColor("#F0637C"))

	got := Render(root)
	for _, line := range []string{
		"package M #6D9D79 {",
		"class L #6D9D79",
		"class K #F0637C",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("Render() missing %q:\n%s", line, got)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	build := func() *Element {
		root := New("R", "package")
		for _, n := range []string{"z", "m", "a"} {
			c, _ := NewChild(root, n, "package")
			_, _ = NewChild(c, n+"1", "class")
		}
		return root
	}

	first := Render(build())
	for i := 0; i < 10; i++ {
		if got := Render(build()); got != first {
			t.Fatalf("Render() run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
	if strings.Index(first, "package z") > strings.Index(first, "package a") {
		t.Error("Render() must keep insertion order, not sort")
	}
}
