package loader

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"surveyclean/internal/table"
)

func loadExcel(r io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Format: FormatXLSX, Err: fmt.Errorf("workbook has no sheets")}
	}

	// Survey exports put everything on the first sheet.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Format: FormatXLSX, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Format: FormatXLSX, Err: fmt.Errorf("sheet %q is empty", sheets[0])}
	}

	t, err := table.New(rows[0])
	if err != nil {
		return nil, &LoadError{Format: FormatXLSX, Err: err}
	}
	for _, row := range rows[1:] {
		t.AppendRow(row)
	}
	return t, nil
}
