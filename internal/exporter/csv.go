package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"surveyclean/internal/table"
)

// Options configures CSV output behavior.
type Options struct {
	// BOMPrefix writes a UTF-8 BOM before the header so Excel opens the
	// file with the right encoding.
	BOMPrefix bool
}

// Write serializes a table as CSV to w: header row first, then every data
// row in order. Cell values pass through unchanged; encoding/csv handles
// quoting.
func Write(w io.Writer, t *table.Table, opts Options) error {
	if opts.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < t.RowCount(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Marshal renders a table to CSV bytes. Used by the HTTP layer to build
// download responses without touching disk.
func Marshal(t *table.Table, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a table as CSV to path, creating parent directories as
// needed. Existing files are truncated.
func WriteFile(path string, t *table.Table, opts Options) error {
	slog.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("rows", t.RowCount()),
		slog.Int("columns", t.ColumnCount()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(f, t, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
