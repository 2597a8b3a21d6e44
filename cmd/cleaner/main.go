// Command cleaner batch-cleans survey exports from a directory: every
// supported file in -in is run through the pipeline and written to -out,
// optionally combined into one master CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"surveyclean/internal/config"
	"surveyclean/internal/exporter"
	"surveyclean/internal/filemeta"
	"surveyclean/internal/infrastructure"
	"surveyclean/internal/services"
	"surveyclean/internal/table"
	"surveyclean/internal/validation"
)

func main() {
	inDir := flag.String("in", ".", "input directory with survey exports (.csv, .xlsx, .xls)")
	outDir := flag.String("out", "cleaned", "output directory for cleaned CSV files")
	combine := flag.Bool("combine", false, "also write one combined master CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger, *inDir, *outDir, *combine); err != nil {
		logger.Error("Cleaning run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, inDir, outDir string, combine bool) error {
	ctx := infrastructure.EnsureTraceID(context.Background())

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(inDir); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	files, err := validator.ListSupportedFiles(inDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.InfoContext(ctx, "Nothing to clean", "directory", inDir)
		return nil
	}

	svc := services.NewCleanService(cfg, logger)
	opts := exporter.Options{BOMPrefix: cfg.Upload.BOMInOutput}

	var (
		cleaned []*table.Table
		failed  []string
	)
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			logger.WarnContext(ctx, "Skipping unreadable file", "file", path, "error", err)
			failed = append(failed, filepath.Base(path))
			continue
		}

		res, cleanErr := svc.Clean(ctx, filepath.Base(path), f)
		f.Close()
		if cleanErr != nil {
			logger.WarnContext(ctx, "File failed", "file", path, "error", cleanErr)
			failed = append(failed, filepath.Base(path))
			continue
		}

		outName := cleanedName(filepath.Base(path))
		if err := exporter.WriteFile(filepath.Join(outDir, outName), res.Table, opts); err != nil {
			return fmt.Errorf("writing %s: %w", outName, err)
		}
		cleaned = append(cleaned, res.Table)
	}

	if len(cleaned) == 0 {
		return fmt.Errorf("all %d files failed: %s", len(failed), strings.Join(failed, ", "))
	}

	if combine {
		master, err := services.Combine(cleaned)
		if err != nil {
			return err
		}
		masterPath := filepath.Join(outDir, filemeta.DefaultOutputName)
		if err := exporter.WriteFile(masterPath, master, opts); err != nil {
			return fmt.Errorf("writing master CSV: %w", err)
		}
		logger.InfoContext(ctx, "Master CSV written",
			"path", masterPath, "rows", master.RowCount())
	}

	logger.InfoContext(ctx, "Cleaning run finished",
		"cleaned", len(cleaned), "failed", len(failed))
	if len(failed) > 0 {
		logger.WarnContext(ctx, "Some files failed", "files", strings.Join(failed, ", "))
	}
	return nil
}

// cleanedName maps an input filename to its per-file output name:
// "export.xlsx" becomes "export_cleaned.csv".
func cleanedName(base string) string {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_cleaned.csv"
}
