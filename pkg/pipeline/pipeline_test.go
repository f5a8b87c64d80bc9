package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	errs "github.com/doxflow/doxflow/pkg/errors"
	"github.com/doxflow/doxflow/pkg/export"
	"github.com/doxflow/doxflow/pkg/observability"
)

const model = `
roots:
  - name: A
    kind: role_party
    color: "#orange"
    children:
      - {name: B, kind: role_party}
interactions:
  - source: X
    targets:
      - name: Y
      - {name: Z, label: confirms}
`

type fakeRenderer struct {
	calls int
	texts []string
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, text string, _ export.Format) ([]byte, error) {
	f.calls++
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("<svg/>"), nil
}

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(model), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		code    errs.Code
		wantErr bool
	}{
		{"defaults", Options{Input: "m.yaml"}, "", false},
		{"dot", Options{Input: "m.yaml", Notation: "dot"}, "", false},
		{"png output", Options{Input: "m.yaml", Output: "out/d.PNG"}, "", false},
		{"missing input", Options{}, errs.ErrCodeInvalidInput, true},
		{"bad notation", Options{Input: "m.yaml", Notation: "mermaid"}, errs.ErrCodeInvalidNotation, true},
		{"gif output", Options{Input: "m.yaml", Output: "d.gif"}, errs.ErrCodeUnsupportedFormat, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errs.Is(err, tt.code) {
					t.Errorf("error code = %s, want %s", errs.GetCode(err), tt.code)
				}
				return
			}
			if opts.Notation == "" {
				t.Error("Notation should be defaulted")
			}
			if opts.Logger == nil {
				t.Error("Logger should be defaulted")
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "m.yaml", Output: "d.svg"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error = %v", err)
	}
	if opts.Notation != string(DefaultNotation) {
		t.Errorf("Notation = %q, want %q", opts.Notation, DefaultNotation)
	}
	if opts.Format() != export.SVG {
		t.Errorf("Format() = %v, want svg", opts.Format())
	}
}

func TestExecuteDocumentOnly(t *testing.T) {
	fake := &fakeRenderer{}
	r := NewRunner(export.New(export.WithRenderer(export.NotationPlantUML, fake)), nil)

	res, err := r.Execute(context.Background(), Options{Input: writeModel(t)})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Export != nil {
		t.Error("Export should be nil without an output path")
	}
	if fake.calls != 0 {
		t.Errorf("renderer called %d times, want 0", fake.calls)
	}

	for _, want := range []string{
		"@startuml\n",
		"role_party A #orange {\n  role_party B #orange\n}\n",
		"[X]-->[Y]\n[X]-->[Z]:confirms\n",
		"@enduml\n",
	} {
		if !strings.Contains(res.Source.Text, want) {
			t.Errorf("document missing %q:\n%s", want, res.Source.Text)
		}
	}

	if res.Stats.Roots != 1 || res.Stats.Elements != 2 || res.Stats.Interactions != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if strings.Join(res.Dangling, ",") != "X,Y,Z" {
		t.Errorf("Dangling = %v, want [X Y Z]", res.Dangling)
	}
}

func TestExecuteExport(t *testing.T) {
	fake := &fakeRenderer{}
	r := NewRunner(export.New(export.WithRenderer(export.NotationPlantUML, fake)), nil)
	out := filepath.Join(t.TempDir(), "img", "diagram.svg")

	res, err := r.Execute(context.Background(), Options{Input: writeModel(t), Output: out})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Export == nil || !res.Export.Rendered {
		t.Fatalf("Export = %+v, want rendered", res.Export)
	}
	if fake.calls != 1 || fake.texts[0] != res.Source.Text {
		t.Error("renderer should receive the built document once")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestExecuteRenderFailure(t *testing.T) {
	fake := &fakeRenderer{err: stderrors.New("no java")}
	r := NewRunner(export.New(export.WithRenderer(export.NotationPlantUML, fake)), nil)
	out := filepath.Join(t.TempDir(), "diagram.png")

	res, err := r.Execute(context.Background(), Options{Input: writeModel(t), Output: out})
	if err != nil {
		t.Fatalf("Execute() error = %v, want render failure as status", err)
	}
	if res.Export.Rendered {
		t.Error("Rendered = true, want false")
	}
	if !errs.Is(res.Export.Failure, errs.ErrCodeRenderFailure) {
		t.Errorf("Failure = %v", res.Export.Failure)
	}
}

func TestExecuteUnsupportedFormatLoadsNothing(t *testing.T) {
	fake := &fakeRenderer{}
	r := NewRunner(export.New(export.WithRenderer(export.NotationPlantUML, fake)), nil)

	_, err := r.Execute(context.Background(), Options{Input: "does-not-exist.yaml", Output: "d.gif"})
	if !errs.Is(err, errs.ErrCodeUnsupportedFormat) {
		t.Fatalf("Execute() error = %v, want UNSUPPORTED_FORMAT", err)
	}
	if fake.calls != 0 {
		t.Errorf("renderer called %d times", fake.calls)
	}
}

func TestExecuteDOT(t *testing.T) {
	fake := &fakeRenderer{}
	r := NewRunner(export.New(export.WithRenderer(export.NotationDOT, fake)), nil)
	out := filepath.Join(t.TempDir(), "diagram.svg")

	res, err := r.Execute(context.Background(), Options{Input: writeModel(t), Notation: "dot", Output: out})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Source.Notation != export.NotationDOT {
		t.Errorf("Notation = %q, want dot", res.Source.Notation)
	}
	if !strings.HasPrefix(res.Source.Text, "digraph G {") {
		t.Errorf("Source.Text = %q", res.Source.Text)
	}
	if fake.calls != 1 {
		t.Errorf("renderer called %d times, want 1", fake.calls)
	}
}

func TestExecuteMissingModel(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "nope.yaml")})
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestBuildSourceNil(t *testing.T) {
	if _, err := BuildSource(nil, Options{}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("BuildSource(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteEmitsBuildHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &recordingHooks{}
	observability.SetBuildHooks(h)

	r := NewRunner(nil, nil)
	if _, err := r.Execute(context.Background(), Options{Input: writeModel(t)}); err != nil {
		t.Fatal(err)
	}
	want := "load-start,load-complete,build-start,build-complete"
	if got := strings.Join(h.events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if h.links != 2 {
		t.Errorf("OnLoadComplete interactions = %d, want 2", h.links)
	}
}

type recordingHooks struct {
	events []string
	links  int
}

func (h *recordingHooks) OnLoadStart(context.Context, string) {
	h.events = append(h.events, "load-start")
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, _, interactions int, _ time.Duration, _ error) {
	h.events = append(h.events, "load-complete")
	h.links = interactions
}

func (h *recordingHooks) OnBuildStart(context.Context, string) {
	h.events = append(h.events, "build-start")
}

func (h *recordingHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {
	h.events = append(h.events, "build-complete")
}
