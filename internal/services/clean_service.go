// Package services implements the application services behind the HTTP
// handlers and the batch CLI: cleaning uploaded survey exports and
// reporting process health.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"surveyclean/internal/config"
	"surveyclean/internal/filemeta"
	"surveyclean/internal/loader"
	"surveyclean/internal/pipeline"
	"surveyclean/internal/table"
)

// Input is one file handed to the clean service.
type Input struct {
	Filename string
	Reader   io.Reader
}

// FileResult is the per-file outcome of a cleaning run. Err is set when
// the file failed; the other files in the same run are unaffected.
type FileResult struct {
	Filename string
	Meta     filemeta.Metadata
	Table    *table.Table
	Err      error
}

// CleanService runs the cleaning pipeline over uploaded survey exports.
type CleanService struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewCleanService creates a new clean service.
func NewCleanService(cfg *config.Config, logger *slog.Logger) *CleanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanService{
		cfg:    cfg,
		logger: logger,
	}
}

// Clean loads one export and runs it through the pipeline. The filename
// is used for format detection and output naming only.
func (s *CleanService) Clean(ctx context.Context, filename string, r io.Reader) (*FileResult, error) {
	start := time.Now()

	format, err := loader.Detect(filename)
	if err != nil {
		filesProcessed.WithLabelValues("rejected").Inc()
		return nil, err
	}

	s.logger.InfoContext(ctx, "cleaning file",
		slog.String("file", filename),
		slog.String("format", string(format)))

	t, err := loader.Load(r, format)
	if err != nil {
		filesProcessed.WithLabelValues("load_failed").Inc()
		return nil, err
	}

	meta := filemeta.Extract(filename)

	cleaned, err := pipeline.Process(t, pipeline.Options{CourseName: meta.CourseName})
	if err != nil {
		filesProcessed.WithLabelValues("pipeline_failed").Inc()
		return nil, fmt.Errorf("cleaning %s: %w", filename, err)
	}

	filesProcessed.WithLabelValues("ok").Inc()
	rowsCleaned.Add(float64(cleaned.RowCount()))
	cleanDuration.Observe(time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "file cleaned",
		slog.String("file", filename),
		slog.Int("rows", cleaned.RowCount()),
		slog.Int("columns", cleaned.ColumnCount()),
		slog.String("duration", time.Since(start).String()))

	return &FileResult{
		Filename: filename,
		Meta:     meta,
		Table:    cleaned,
	}, nil
}

// CleanAll cleans every input concurrently, bounded by the configured
// parallelism. One file's failure never aborts the others; each result
// carries its own error. Results keep input order.
func (s *CleanService) CleanAll(ctx context.Context, inputs []Input) []FileResult {
	results := make([]FileResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel())

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			res, err := s.Clean(gctx, in.Filename, in.Reader)
			if err != nil {
				s.logger.WarnContext(gctx, "file failed",
					slog.String("file", in.Filename),
					slog.String("error", err.Error()))
				results[i] = FileResult{Filename: in.Filename, Err: err}
				return nil
			}
			results[i] = *res
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	g.Wait()
	return results
}

func (s *CleanService) maxParallel() int {
	if s.cfg != nil && s.cfg.Upload.MaxParallel > 0 {
		return s.cfg.Upload.MaxParallel
	}
	return 4
}

// Combine concatenates cleaned tables into one master table. Columns are
// the union in first-seen order, with Semester and Pre/Post pinned to the
// tail; cells a file never had stay empty.
func Combine(tables []*table.Table) (*table.Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to combine")
	}

	var columns []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, col := range t.Columns() {
			if seen[col] {
				continue
			}
			if col == pipeline.SemesterColumn || col == pipeline.PrePostColumn {
				continue
			}
			seen[col] = true
			columns = append(columns, col)
		}
	}
	columns = append(columns, pipeline.SemesterColumn, pipeline.PrePostColumn)

	combined, err := table.New(columns)
	if err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for _, t := range tables {
		for i := 0; i < t.RowCount(); i++ {
			for j, col := range columns {
				row[j] = ""
				if t.HasColumn(col) {
					v, _ := t.Cell(i, col)
					row[j] = v
				}
			}
			combined.AppendRow(row)
		}
	}
	return combined, nil
}
