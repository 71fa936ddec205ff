package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"docporter/internal/domain/models"
	"docporter/internal/domain/services"
	"docporter/internal/httputil"
)

// ExportHandler handles export HTTP requests. The response is sent as soon
// as the task is scheduled; the export itself runs in the background.
type ExportHandler struct {
	exportService services.ExportService
	runner        services.TaskRunner
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService services.ExportService, runner services.TaskRunner, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		runner:        runner,
		logger:        logger,
	}
}

// exportBody keeps the raw field payloads so absent and malformed fields
// can be told apart.
type exportBody struct {
	DocumentContainerURIs json.RawMessage `json:"documentContainerUris"`
	SnippetListURIs       json.RawMessage `json:"snippetListUris"`
}

// Export handles POST /export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var body exportBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Request is missing a body")
		return
	}

	containerURIs, ok := parseURIList(body.DocumentContainerURIs)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest,
			"'documentContainerUris' property of request body is malformed")
		return
	}
	listURIs, ok := parseURIList(body.SnippetListURIs)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest,
			"'snippetListUris' property of request body is malformed")
		return
	}
	if body.DocumentContainerURIs == nil && body.SnippetListURIs == nil {
		httputil.RespondError(w, http.StatusBadRequest,
			"the 'snippetListUris' and 'documentContainerUris' request body properties may not be both undefined")
		return
	}

	req := &services.ExportRequest{
		DocumentContainerURIs: containerURIs,
		SnippetListURIs:       listURIs,
	}

	task, err := h.runner.Run(r.Context(), models.TaskOperationExport, func(ctx context.Context) (services.Result, error) {
		return h.exportService.Export(ctx, req)
	})
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("export task scheduled",
		"task", task.URI,
		"document_containers", len(containerURIs),
		"snippet_lists", len(listURIs),
	)

	httputil.RespondJSON(w, http.StatusAccepted, newTaskResponse(task))
}

// parseURIList decodes an optional JSON string array. A nil payload is
// treated as an empty list; anything other than a string array is malformed.
func parseURIList(payload json.RawMessage) ([]string, bool) {
	if payload == nil {
		return []string{}, true
	}
	var uris []string
	if err := json.Unmarshal(payload, &uris); err != nil {
		return nil, false
	}
	return uris, true
}
