// Package file reads EPW weather files and writes reports to the local
// filesystem or standard output.
package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/isoweather/internal/config"
	"github.com/couchcryptid/isoweather/internal/pipeline"
	"github.com/couchcryptid/isoweather/internal/report"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// Extractor loads one EPW file.
// It implements pipeline.Extractor.
type Extractor struct {
	path   string
	logger *slog.Logger
}

// NewExtractor creates an Extractor for the EPW file at path.
func NewExtractor(path string, logger *slog.Logger) *Extractor {
	return &Extractor{path: path, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context) (pipeline.Extracted, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Extracted{}, err
	}
	e.logger.Debug("loading weather file", "path", e.path)
	s, err := weather.Load(e.path)
	if err != nil {
		return pipeline.Extracted{}, err
	}
	return pipeline.Extracted{Series: s, Path: e.path}, nil
}

// Writer writes the report in one format to a file, replacing it atomically,
// or to standard output when the path is config.Stdout.
// It implements pipeline.Loader.
type Writer struct {
	path   string
	format report.Format
	stdout io.Writer
}

// NewWriter creates a Writer for path in the given format. When path is config.Stdout
// the report goes to out, or to os.Stdout if out is nil.
func NewWriter(path string, format report.Format, out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{path: path, format: format, stdout: out}
}

func (w *Writer) Load(ctx context.Context, doc report.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.path == config.Stdout || w.path == "" {
		return report.Write(w.stdout, w.format, doc)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op once renamed

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close() //nolint:errcheck // chmod error takes precedence
		return fmt.Errorf("chmod report file: %w", err)
	}
	if err := report.Write(tmp, w.format, doc); err != nil {
		tmp.Close() //nolint:errcheck // write error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}
	return nil
}
