package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"docporter/internal/domain/models"
	"docporter/internal/domain/services"
	"docporter/internal/httputil"
)

// maxUploadSize limits archive uploads to 50MB.
const maxUploadSize = 50 << 20

// ImportHandler handles archive import HTTP requests. The upload is read
// and checked synchronously; decoding, validation and persistence run in
// the background under a task.
type ImportHandler struct {
	importService services.ImportService
	runner        services.TaskRunner
	logger        *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService services.ImportService, runner services.TaskRunner, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		runner:        runner,
		logger:        logger,
	}
}

// Import handles POST /import
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	// Cap the whole body, not just the in-memory part of the form
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Request is missing a 'file' upload")
		return
	}
	defer file.Close()

	// Checked by filename, not content sniffing
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".zip" {
		httputil.RespondError(w, http.StatusNotAcceptable,
			fmt.Sprintf("Expected an uploaded file with the .zip extension. Got %s", ext))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded archive", "file", header.Filename, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	task, err := h.runner.Run(r.Context(), models.TaskOperationImport, func(ctx context.Context) (services.Result, error) {
		return nil, h.importService.Import(ctx, data)
	})
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("import task scheduled",
		"task", task.URI,
		"file", header.Filename,
		"size", len(data),
	)

	httputil.RespondJSON(w, http.StatusAccepted, newTaskResponse(task))
}
