package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"surveyclean/internal/table"
)

// Format identifies a supported tabular input format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// UnsupportedFormatError reports a file outside the supported set. It is
// surfaced before any transformation is attempted.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (expected .csv, .xlsx or .xls)", e.Filename)
}

// LoadError reports bytes that could not be parsed as the hinted format.
type LoadError struct {
	Format Format
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not parse input as %s: %v", e.Format, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Detect maps a filename to its format by extension. Excel lock files
// ("~$" prefix) are rejected so a half-open workbook never reaches the
// pipeline.
func Detect(filename string) (Format, error) {
	base := filepath.Base(filename)
	if strings.HasPrefix(base, "~$") {
		return "", &UnsupportedFormatError{Filename: filename}
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return "", &UnsupportedFormatError{Filename: filename}
	}
}

// Load parses a raw byte stream into a table, preserving column order.
// The first row is the header; short data rows are padded with empty
// cells so every row matches the header width.
func Load(r io.Reader, format Format) (*table.Table, error) {
	switch format {
	case FormatCSV:
		return loadCSV(r)
	case FormatXLSX, FormatXLS:
		return loadExcel(r)
	default:
		return nil, &UnsupportedFormatError{Filename: string(format)}
	}
}
