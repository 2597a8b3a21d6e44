package http

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"surveyclean/internal/config"
	apierrors "surveyclean/internal/errors"
	"surveyclean/internal/exporter"
	"surveyclean/internal/filemeta"
	"surveyclean/internal/services"
	"surveyclean/internal/table"
	"surveyclean/internal/validation"
)

// UploadHandler accepts survey exports, runs them through the cleaning
// pipeline and returns the cleaned CSV as a download.
type UploadHandler struct {
	service   *services.CleanService
	validator *validation.FileValidator
	errors    *apierrors.ErrorHandler
	cfg       config.UploadConfig
	logger    *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service *services.CleanService, validator *validation.FileValidator, errHandler *apierrors.ErrorHandler, cfg config.UploadConfig, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		service:   service,
		validator: validator,
		errors:    errHandler,
		cfg:       cfg,
		logger:    logger.With(slog.String("handler", "upload")),
	}
}

// Upload handles POST /api/upload. Files arrive in the multipart field
// "files" (or "file" for single uploads). Every file is processed
// independently: on partial failure the response still carries the
// cleaned CSV of the successes, with the failures named in the
// X-Failed-Files header.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.errors.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "INVALID_REQUEST", "Could not parse multipart form", err.Error()))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := h.fileHeaders(r)
	if len(headers) == 0 {
		h.errors.HandleError(w, r, apierrors.ErrValidation("files", "no files supplied"))
		return
	}
	if len(headers) > h.cfg.MaxFiles {
		h.errors.HandleError(w, r, apierrors.ErrValidation("files",
			fmt.Sprintf("too many files: %d (limit %d)", len(headers), h.cfg.MaxFiles)))
		return
	}

	for _, fh := range headers {
		if fh.Size > h.cfg.MaxFileSize {
			h.errors.HandleError(w, r, apierrors.ErrValidation(fh.Filename,
				fmt.Sprintf("file exceeds size limit of %d bytes", h.cfg.MaxFileSize)))
			return
		}
		if err := h.validator.ValidateUploadName(fh.Filename); err != nil {
			h.errors.HandleError(w, r, apierrors.UnsupportedFileError(fh.Filename, err))
			return
		}
	}

	inputs, closers, err := openAll(headers)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	if err != nil {
		h.errors.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "INVALID_REQUEST", "Could not read uploaded file", err.Error()))
		return
	}

	results := h.service.CleanAll(ctx, inputs)

	var (
		cleaned []*table.Table
		failed  []string
		course  string
		lastErr error
	)
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Filename)
			lastErr = res.Err
			continue
		}
		cleaned = append(cleaned, res.Table)
		if course == "" {
			course = res.Meta.CourseName
		}
	}

	if len(cleaned) == 0 {
		if len(results) == 1 {
			// Single-file uploads surface the real failure.
			h.errors.HandleError(w, r, lastErr)
			return
		}
		h.errors.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity, "ALL_FILES_FAILED",
			"None of the uploaded files could be processed",
			map[string]interface{}{"failed_files": failed}))
		return
	}

	master, err := services.Combine(cleaned)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if v := r.FormValue("course"); v != "" {
		course = v
	}
	name := filemeta.OutputName(filemeta.Metadata{CourseName: course})

	body, err := exporter.Marshal(master, exporter.Options{BOMPrefix: h.cfg.BOMInOutput})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "upload cleaned",
		slog.Int("files_in", len(results)),
		slog.Int("files_failed", len(failed)),
		slog.Int("rows_out", master.RowCount()),
		slog.String("output", name))

	if len(failed) > 0 {
		w.Header().Set("X-Failed-Files", strings.Join(failed, ", "))
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// fileHeaders collects the uploaded file parts, preferring the multi-file
// "files" field and falling back to "file".
func (h *UploadHandler) fileHeaders(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if headers := r.MultipartForm.File["files"]; len(headers) > 0 {
		return headers
	}
	return r.MultipartForm.File["file"]
}

func (h *UploadHandler) maxRequestBytes() int64 {
	// Headroom for multipart framing on top of the per-file limit.
	return h.cfg.MaxFileSize*int64(h.cfg.MaxFiles) + (1 << 20)
}

func openAll(headers []*multipart.FileHeader) ([]services.Input, []multipart.File, error) {
	inputs := make([]services.Input, 0, len(headers))
	closers := make([]multipart.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closers, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		closers = append(closers, f)
		inputs = append(inputs, services.Input{Filename: fh.Filename, Reader: f})
	}
	return inputs, closers, nil
}
