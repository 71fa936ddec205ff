package services

import (
	"context"

	"docporter/internal/domain/models"
)

// Result is any resource that can be linked as a task's result.
type Result interface {
	ResourceURI() string
}

// Operation is one long-running unit of work executed under a task. A nil
// Result means the task completes without a result container.
type Operation func(ctx context.Context) (Result, error)

// TaskRunner wraps an operation in a persisted task lifecycle. Run returns
// the scheduled task immediately; the operation executes in the background.
type TaskRunner interface {
	Run(ctx context.Context, operationURI string, op Operation) (*models.Task, error)
}
