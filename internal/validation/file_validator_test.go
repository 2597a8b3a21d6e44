package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUploadName(t *testing.T) {
	v := NewFileValidator(nil)

	tests := []struct {
		name        string
		filename    string
		expectError bool
	}{
		{name: "csv", filename: "export.csv"},
		{name: "xlsx", filename: "export.xlsx"},
		{name: "legacy xls", filename: "export.xls"},
		{name: "uppercase extension", filename: "EXPORT.XLSX"},
		{name: "text file", filename: "notes.txt", expectError: true},
		{name: "no extension", filename: "export", expectError: true},
		{name: "excel lock file", filename: "~$export.xlsx", expectError: true},
		{name: "lock file in subdir", filename: "uploads/~$export.xlsx", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUploadName(tt.filename)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("Q35\n"), 0644))

	assert.NoError(t, v.ValidateInputDirectory(dir))
	assert.Error(t, v.ValidateInputDirectory(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "a.csv")
	assert.Error(t, v.ValidateInputDirectory(file), "a file is not a directory")
}

func TestValidateInputDirectory_EmptyIsNotAnError(t *testing.T) {
	v := NewFileValidator(nil)
	assert.NoError(t, v.ValidateInputDirectory(t.TempDir()))
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "out", "nested")

	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestValidateFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("Q35\nid\n"), 0644))

	assert.NoError(t, v.ValidateFile(path))
	assert.Error(t, v.ValidateFile(filepath.Join(dir, "missing.csv")))
	assert.Error(t, v.ValidateFile(dir), "directories are rejected")
	assert.Error(t, v.ValidateFile(filepath.Join(dir, "notes.txt")), "extension check runs first")
}

func TestListSupportedFiles(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	for _, name := range []string{"a.csv", "b.xlsx", "c.xls", "skip.txt", "~$b.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	files, err := v.ListSupportedFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"a.csv", "b.xlsx", "c.xls"}, names)

	count, err := v.CountSupportedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
