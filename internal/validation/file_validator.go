// Package validation holds the file and upload checks shared by the web
// handlers and the batch CLI.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// allowedExtensions is the set of survey export formats accepted for
// processing.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// FileValidator provides file validation shared by the upload handler and
// the batch CLI.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateUploadName checks a client-supplied filename: the extension must
// be one of csv/xlsx/xls and Excel lock files ("~$" prefix) are rejected.
// It never touches the filesystem, so it is safe on untrusted input.
func (v *FileValidator) ValidateUploadName(filename string) error {
	base := filepath.Base(filename)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejecting Excel lock file",
			slog.String("file", filename))
		return fmt.Errorf("file %s is a temporary Excel lock file", filename)
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !allowedExtensions[ext] {
		v.logger.Warn("Rejecting unsupported upload",
			slog.String("file", filename),
			slog.String("extension", ext))
		return fmt.Errorf("file %s has unsupported extension %q (allowed: .csv, .xlsx, .xls)", filename, ext)
	}
	return nil
}

// ValidateInputDirectory validates that the input directory exists and
// reports how many supported export files it holds.
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Input directory does not exist",
			slog.String("directory", dir))
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		v.logger.Error("Failed to stat input directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return fmt.Errorf("%s is not a directory", dir)
	}

	count, err := v.CountSupportedFiles(dir)
	if err != nil {
		return err
	}
	if count == 0 {
		// Not an error, just nothing to process.
		v.logger.Warn("No supported export files found",
			slog.String("directory", dir))
		return nil
	}

	v.logger.Info("Input directory validated",
		slog.String("directory", dir),
		slog.Int("files_found", count))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file.
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Info("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path names an existing, readable regular file
// with a supported extension.
func (v *FileValidator) ValidateFile(path string) error {
	if err := v.ValidateUploadName(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ListSupportedFiles returns the supported export files directly inside
// dir, sorted by filepath.Glob's lexical order. Lock files and
// subdirectories are skipped.
func (v *FileValidator) ListSupportedFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		v.logger.Error("Failed to list directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	var files []string
	for _, match := range matches {
		if v.ValidateUploadName(match) != nil {
			continue
		}
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	return files, nil
}

// CountSupportedFiles counts the supported export files directly in dir.
func (v *FileValidator) CountSupportedFiles(dir string) (int, error) {
	files, err := v.ListSupportedFiles(dir)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
