package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	errs "github.com/doxflow/doxflow/pkg/errors"
	"github.com/doxflow/doxflow/pkg/observability"
)

// Renderer turns a complete document into image bytes.
type Renderer interface {
	Render(ctx context.Context, text string, f Format) ([]byte, error)
}

// Result describes one export call.
//
// A renderer that cannot produce an image is reported here rather than as an
// error: Rendered is false, Failure holds a RENDER_FAILURE error, and no file
// is written. The caller decides whether that is fatal.
type Result struct {
	Path     string
	Format   Format
	Rendered bool
	Bytes    int
	Failure  error
}

// Exporter writes rendered documents to files. Each notation is served by one
// renderer.
type Exporter struct {
	renderers map[Notation]Renderer
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRenderer sets the renderer used for a notation.
func WithRenderer(n Notation, r Renderer) Option {
	return func(e *Exporter) { e.renderers[n] = r }
}

// New creates an exporter using [PlantUML] for PlantUML sources and
// [Graphviz] for DOT sources, unless overridden with [WithRenderer].
func New(opts ...Option) *Exporter {
	e := &Exporter{
		renderers: map[Notation]Renderer{
			NotationPlantUML: PlantUML{},
			NotationDOT:      Graphviz{},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders src and writes the image to path.
//
// The format is resolved from the extension of path before anything is
// rendered; an unknown extension returns an *errors.UnsupportedFormatError.
// The renderer works in memory, so a failed render leaves no file behind.
// File system errors are returned as errors. Nothing is retried.
func (e *Exporter) Export(ctx context.Context, src Source, path string) (Result, error) {
	if err := errs.ValidatePath(path); err != nil {
		return Result{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Result{}, err
	}
	notation := src.Notation
	if notation == "" {
		notation = NotationPlantUML
	}
	r, ok := e.renderers[notation]
	if !ok {
		return Result{}, errs.New(errs.ErrCodeInvalidNotation, "no renderer for notation %q", notation)
	}

	res := Result{Path: path, Format: format}

	hooks := observability.Export()
	hooks.OnRenderStart(ctx, string(notation), format.String())
	start := time.Now()
	data, err := r.Render(ctx, src.Text, format)
	if err == nil && len(data) == 0 {
		err = fmt.Errorf("renderer returned no data")
	}
	hooks.OnRenderComplete(ctx, string(notation), format.String(), len(data), time.Since(start), err)
	if err != nil {
		res.Failure = errs.Wrap(errs.ErrCodeRenderFailure, err, "render %s as %s", notation, format)
		return res, nil
	}

	if err := writeFile(path, data); err != nil {
		return res, err
	}
	res.Rendered = true
	res.Bytes = len(data)
	return res, nil
}

// writeFile creates parent directories and writes data to path, closing the
// file on every path.
func writeFile(path string, data []byte) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
