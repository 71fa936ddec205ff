package services

import (
	"context"

	"docporter/internal/domain/models"
)

// ExportRequest names the resources an export starts from. At least one of
// the two lists must be non-empty; the handler enforces this before a task
// is created.
type ExportRequest struct {
	DocumentContainerURIs []string `json:"documentContainerUris"`
	SnippetListURIs       []string `json:"snippetListUris"`
}

// ExportService collects the transitive export set for a request and packs
// it into a registered archive.
type ExportService interface {
	// Collect walks the resource graph and returns the closed export set
	Collect(ctx context.Context, req *ExportRequest) (*models.ExportSet, error)

	// Export collects, encodes and registers an archive, returning it as a
	// task result
	Export(ctx context.Context, req *ExportRequest) (Result, error)
}

// ImportService decodes, validates and commits an uploaded archive.
type ImportService interface {
	// Import decodes the archive bytes, validates relationships, then
	// persists all contained entities atomically
	Import(ctx context.Context, archive []byte) error
}
