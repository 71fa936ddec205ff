package repositories

import (
	"context"

	"docporter/internal/domain/models"
)

// TaskRepository defines data access for tasks
type TaskRepository interface {
	// Create assigns id/uri when absent and persists the task
	Create(ctx context.Context, task *models.Task) error

	// Persist fully replaces the task's mutable attributes
	// (statusUri, updatedOn, errorUri, resultUri)
	Persist(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task by its short id
	GetByID(ctx context.Context, id string) (*models.Task, error)
}

// JobErrorRepository defines data access for persisted task errors
type JobErrorRepository interface {
	// Create assigns id/uri when absent and persists the error record
	Create(ctx context.Context, jobError *models.JobError) error
}

// FileRepository registers stored archives as logical/physical file pairs
// and wraps them into result containers.
type FileRepository interface {
	// CreateLogicalFile assigns id/uri when absent and persists the record
	CreateLogicalFile(ctx context.Context, file *models.LogicalFile) error

	// CreatePhysicalFile persists the record at its storage-location URI
	CreatePhysicalFile(ctx context.Context, file *models.PhysicalFile) error

	// CreateArchive wraps a logical file reference as a task result container
	CreateArchive(ctx context.Context, archive *models.Archive) error
}
