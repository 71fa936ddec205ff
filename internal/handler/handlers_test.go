package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docporter/internal/domain"
	"docporter/internal/domain/models"
	"docporter/internal/domain/services"
	"docporter/internal/httputil"
)

// fakeRunner executes operations synchronously so handler tests can assert
// on what was scheduled without racing a background goroutine.
type fakeRunner struct {
	operationURI string
	runErr       error
	opResult     services.Result
	opErr        error
	ran          bool
}

func (r *fakeRunner) Run(ctx context.Context, operationURI string, op services.Operation) (*models.Task, error) {
	if r.runErr != nil {
		return nil, r.runErr
	}
	r.operationURI = operationURI
	r.ran = true
	r.opResult, r.opErr = op(ctx)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Task{
		ID:           "task-1",
		URI:          "http://redpencil.data.gift/id/task/task-1",
		StatusURI:    models.TaskStatusScheduled,
		CreatedOn:    now,
		UpdatedOn:    now,
		OperationURI: operationURI,
	}, nil
}

type fakeExportService struct {
	req *services.ExportRequest
}

func (s *fakeExportService) Collect(_ context.Context, req *services.ExportRequest) (*models.ExportSet, error) {
	s.req = req
	return &models.ExportSet{}, nil
}

func (s *fakeExportService) Export(_ context.Context, req *services.ExportRequest) (services.Result, error) {
	s.req = req
	return nil, nil
}

type fakeImportService struct {
	archive []byte
	err     error
}

func (s *fakeImportService) Import(_ context.Context, archive []byte) error {
	s.archive = archive
	return s.err
}

type fakeTaskGetter struct {
	task *models.Task
	err  error
}

func (r *fakeTaskGetter) Create(_ context.Context, _ *models.Task) error  { return nil }
func (r *fakeTaskGetter) Persist(_ context.Context, _ *models.Task) error { return nil }
func (r *fakeTaskGetter) GetByID(_ context.Context, _ string) (*models.Task, error) {
	return r.task, r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func decodeErrorTitle(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var parsed httputil.ErrorBody
	if err := json.Unmarshal(body.Bytes(), &parsed); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", body.String(), err)
	}
	if len(parsed.Errors) != 1 {
		t.Fatalf("Expected a single error object, got %d", len(parsed.Errors))
	}
	return parsed.Errors[0].Title
}

func TestExportSchedulesTask(t *testing.T) {
	exportService := &fakeExportService{}
	runner := &fakeRunner{}
	handler := NewExportHandler(exportService, runner, testLogger())

	body := `{"documentContainerUris":["uri:dc-1"],"snippetListUris":["uri:sl-1"]}`
	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if runner.operationURI != models.TaskOperationExport {
		t.Errorf("Expected export operation, got %s", runner.operationURI)
	}
	if exportService.req == nil {
		t.Fatal("Expected the export service to receive the request")
	}
	if len(exportService.req.DocumentContainerURIs) != 1 || exportService.req.DocumentContainerURIs[0] != "uri:dc-1" {
		t.Errorf("Unexpected container URIs %v", exportService.req.DocumentContainerURIs)
	}
	if len(exportService.req.SnippetListURIs) != 1 || exportService.req.SnippetListURIs[0] != "uri:sl-1" {
		t.Errorf("Unexpected list URIs %v", exportService.req.SnippetListURIs)
	}

	var response taskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Data.ID != "task-1" {
		t.Errorf("Expected task id task-1, got %s", response.Data.ID)
	}
	if response.Data.Attributes.Status != models.TaskStatusScheduled {
		t.Errorf("Expected scheduled status, got %s", response.Data.Attributes.Status)
	}
}

func TestExportOnlySnippetLists(t *testing.T) {
	handler := NewExportHandler(&fakeExportService{}, &fakeRunner{}, testLogger())

	body := `{"snippetListUris":["uri:sl-1"]}`
	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExportBadRequests(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		title string
	}{
		{
			name:  "missing body",
			body:  "",
			title: "Request is missing a body",
		},
		{
			name:  "malformed container uris",
			body:  `{"documentContainerUris":"not-an-array"}`,
			title: "'documentContainerUris' property of request body is malformed",
		},
		{
			name:  "malformed snippet list uris",
			body:  `{"snippetListUris":{"bad":true}}`,
			title: "'snippetListUris' property of request body is malformed",
		},
		{
			name:  "both properties undefined",
			body:  `{}`,
			title: "the 'snippetListUris' and 'documentContainerUris' request body properties may not be both undefined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			handler := NewExportHandler(&fakeExportService{}, runner, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Export(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if title := decodeErrorTitle(t, rec.Body); title != tt.title {
				t.Errorf("Expected error %q, got %q", tt.title, title)
			}
			if runner.ran {
				t.Error("Expected no task to be scheduled for a bad request")
			}
		})
	}
}

// multipartUpload builds a multipart body with one file part.
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestImportSchedulesTask(t *testing.T) {
	importService := &fakeImportService{}
	runner := &fakeRunner{}
	handler := NewImportHandler(importService, runner, testLogger())

	body, contentType := multipartUpload(t, "export.zip", []byte("zip-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if runner.operationURI != models.TaskOperationImport {
		t.Errorf("Expected import operation, got %s", runner.operationURI)
	}
	if string(importService.archive) != "zip-bytes" {
		t.Errorf("Expected uploaded bytes to reach the import service, got %q", importService.archive)
	}
}

func TestImportRejectsNonZipUpload(t *testing.T) {
	runner := &fakeRunner{}
	handler := NewImportHandler(&fakeImportService{}, runner, testLogger())

	body, contentType := multipartUpload(t, "data.rar", []byte("rar-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusNotAcceptable {
		t.Fatalf("Expected status 406, got %d: %s", rec.Code, rec.Body.String())
	}
	want := "Expected an uploaded file with the .zip extension. Got .rar"
	if title := decodeErrorTitle(t, rec.Body); title != want {
		t.Errorf("Expected error %q, got %q", want, title)
	}
	if runner.ran {
		t.Error("Expected no task to be scheduled for a rejected upload")
	}
}

func TestImportRejectsOversizedUpload(t *testing.T) {
	runner := &fakeRunner{}
	handler := NewImportHandler(&fakeImportService{}, runner, testLogger())

	body, contentType := multipartUpload(t, "export.zip", make([]byte, maxUploadSize+1))
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if runner.ran {
		t.Error("Expected no task to be scheduled for an oversized upload")
	}
}

func TestImportMissingFilePart(t *testing.T) {
	handler := NewImportHandler(&fakeImportService{}, &fakeRunner{}, testLogger())

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTask(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeTaskGetter{task: &models.Task{
		ID:        "task-1",
		URI:       "http://redpencil.data.gift/id/task/task-1",
		StatusURI: models.TaskStatusSuccess,
		CreatedOn: now,
		UpdatedOn: now,
		ResultURI: "http://data.lblod.info/id/archive/a-1",
	}}
	handler := NewTaskHandler(repo, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/{id}", handler.GetTask)

	req := httptest.NewRequest(http.MethodGet, "/tasks/task-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response taskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Data.Attributes.Status != models.TaskStatusSuccess {
		t.Errorf("Expected success status, got %s", response.Data.Attributes.Status)
	}
	if response.Data.Attributes.Result != "http://data.lblod.info/id/archive/a-1" {
		t.Errorf("Expected result link, got %q", response.Data.Attributes.Result)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	repo := &fakeTaskGetter{err: &domain.NotFoundError{Message: "Task missing was not found in the database"}}
	handler := NewTaskHandler(repo, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/{id}", handler.GetTask)

	req := httptest.NewRequest(http.MethodGet, "/tasks/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
