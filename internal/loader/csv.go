package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"surveyclean/internal/table"
)

func loadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	// Survey exports frequently carry ragged trailing cells; width is
	// normalized at the table layer instead of failing the parse.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Format: FormatCSV, Err: fmt.Errorf("empty input")}
	}
	if err != nil {
		return nil, &LoadError{Format: FormatCSV, Err: err}
	}
	if len(header) > 0 {
		// Excel-produced CSVs open with a UTF-8 BOM glued to the first
		// header cell.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t, err := table.New(header)
	if err != nil {
		return nil, &LoadError{Format: FormatCSV, Err: err}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Format: FormatCSV, Err: err}
		}
		t.AppendRow(record)
	}
	return t, nil
}
