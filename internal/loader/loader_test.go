package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		want        Format
		expectError bool
	}{
		{name: "csv", filename: "export.csv", want: FormatCSV},
		{name: "uppercase extension", filename: "EXPORT.CSV", want: FormatCSV},
		{name: "xlsx", filename: "export.xlsx", want: FormatXLSX},
		{name: "legacy xls", filename: "export.xls", want: FormatXLS},
		{name: "nested path", filename: "uploads/spring/export.csv", want: FormatCSV},
		{name: "text file", filename: "export.txt", expectError: true},
		{name: "no extension", filename: "export", expectError: true},
		{name: "excel lock file", filename: "~$export.xlsx", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.filename)
			if tt.expectError {
				var unsupported *UnsupportedFormatError
				require.ErrorAs(t, err, &unsupported)
				assert.Contains(t, err.Error(), "unsupported file format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_CSV(t *testing.T) {
	input := "Q35,StartDate,Q1\nid-1,2024-09-15,a\nid-2,2024-12-01,b\n"

	tbl, err := Load(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Q35", "StartDate", "Q1"}, tbl.Columns())
	assert.Equal(t, 2, tbl.RowCount())
	v, _ := tbl.Cell(1, "StartDate")
	assert.Equal(t, "2024-12-01", v)
}

func TestLoad_CSVWithBOM(t *testing.T) {
	input := "\ufeffQ35,StartDate\nid,2024-09-15\n"

	tbl, err := Load(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Q35", "StartDate"}, tbl.Columns(),
		"BOM must not leak into the first header name")
}

func TestLoad_CSVShortRowsPadded(t *testing.T) {
	input := "Q35,StartDate,Q1\nid-1,2024-09-15\n"

	tbl, err := Load(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)

	v, ok := tbl.Cell(0, "Q1")
	assert.True(t, ok)
	assert.Equal(t, "", v, "missing trailing cells load as empty strings")
}

func TestLoad_CSVQuotedValues(t *testing.T) {
	input := "Q35,Notes\nid-1,\"a, quoted\nmultiline value\"\n"

	tbl, err := Load(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)

	v, _ := tbl.Cell(0, "Notes")
	assert.Equal(t, "a, quoted\nmultiline value", v)
}

func TestLoad_CSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "duplicate headers", input: "Q1,Q1\na,b\n"},
		{name: "bare quote", input: "Q35,Notes\nid,\"broken\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), FormatCSV)
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, FormatCSV, loadErr.Format)
		})
	}
}

func TestLoad_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Q35", "StartDate", "Q1"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"id-1", "2024-09-15", "a"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"id-2", "2024-12-01", "b"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tbl, err := Load(bytes.NewReader(buf.Bytes()), FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, []string{"Q35", "StartDate", "Q1"}, tbl.Columns())
	assert.Equal(t, 2, tbl.RowCount())
	v, _ := tbl.Cell(0, "Q35")
	assert.Equal(t, "id-1", v)
}

func TestLoad_ExcelRaggedRowsPadded(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Q35", "StartDate", "Q1"}))
	// Second row stops after the first cell.
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"id-1"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tbl, err := Load(bytes.NewReader(buf.Bytes()), FormatXLSX)
	require.NoError(t, err)

	v, ok := tbl.Cell(0, "Q1")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestLoad_ExcelGarbage(t *testing.T) {
	_, err := Load(strings.NewReader("this is not a workbook"), FormatXLSX)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}
