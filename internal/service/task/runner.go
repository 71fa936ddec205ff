package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"docporter/internal/domain"
	"docporter/internal/domain/models"
	"docporter/internal/domain/repositories"
	"docporter/internal/domain/services"
)

// unknownErrorMessage is recorded on the task for errors the service does
// not recognize as an anticipated failure mode.
const unknownErrorMessage = "Unknown error occurred"

// Runner implements the TaskRunner interface. It persists a task in
// SCHEDULED state, hands it back to the caller, then drives the operation
// through BUSY to SUCCESS or FAILED on a detached goroutine.
//
// Operational errors end the task with a persisted JobError and go no
// further. Anything else still produces a best-effort FAILED record, then
// escalates through the configured hook: an unexpected error means the
// process may be in an unknown state.
type Runner struct {
	taskRepo     repositories.TaskRepository
	jobErrorRepo repositories.JobErrorRepository
	onUnknown    func(err error)
	logger       *slog.Logger
	wg           sync.WaitGroup
}

// NewRunner creates a new task runner. onUnknown is invoked for
// non-operational errors after the task is marked FAILED; it may terminate
// the process.
func NewRunner(
	taskRepo repositories.TaskRepository,
	jobErrorRepo repositories.JobErrorRepository,
	onUnknown func(err error),
	logger *slog.Logger,
) *Runner {
	return &Runner{
		taskRepo:     taskRepo,
		jobErrorRepo: jobErrorRepo,
		onUnknown:    onUnknown,
		logger:       logger,
	}
}

// Run creates and persists a SCHEDULED task, then executes the operation in
// the background. It returns the task before the operation starts so the
// caller never blocks on the operation's duration.
func (r *Runner) Run(ctx context.Context, operationURI string, op services.Operation) (*models.Task, error) {
	now := time.Now()
	task := &models.Task{
		StatusURI:    models.TaskStatusScheduled,
		CreatedOn:    now,
		UpdatedOn:    now,
		OperationURI: operationURI,
	}
	if err := r.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	// The request context dies when the HTTP response is written; the
	// operation outlives it.
	bgCtx := context.WithoutCancel(ctx)

	// The caller serializes the scheduled task while the operation already
	// runs. Hand back a snapshot taken before the goroutine starts so the
	// lifecycle writes stay private to it.
	snapshot := *task

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.execute(bgCtx, task, op)
	}()

	return &snapshot, nil
}

// Wait blocks until all in-flight tasks have finished. Used on shutdown.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// execute drives one task through its lifecycle.
func (r *Runner) execute(ctx context.Context, task *models.Task, op services.Operation) {
	if err := r.transition(ctx, task, models.TaskStatusBusy); err != nil {
		r.failUnknown(ctx, task, err)
		return
	}

	result, err := r.runOperation(ctx, op)
	if err == nil {
		if result != nil {
			task.ResultURI = result.ResourceURI()
		}
		if err := r.transition(ctx, task, models.TaskStatusSuccess); err != nil {
			r.failUnknown(ctx, task, err)
		}
		return
	}

	if domain.IsOperational(err) {
		r.logger.Error("task failed",
			"task", task.URI,
			"operation", task.OperationURI,
			"error", err,
		)
		r.fail(ctx, task, err.Error())
		return
	}

	r.failUnknown(ctx, task, err)
}

// runOperation invokes the operation, converting a panic into an error so a
// single misbehaving task cannot crash the process before its failure is
// recorded.
func (r *Runner) runOperation(ctx context.Context, op services.Operation) (result services.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("operation panicked: %v", rec)
		}
	}()
	return op(ctx)
}

// fail records a JobError with the given message and marks the task FAILED.
func (r *Runner) fail(ctx context.Context, task *models.Task, message string) {
	jobError := &models.JobError{Message: message}
	if err := r.jobErrorRepo.Create(ctx, jobError); err != nil {
		r.logger.Error("failed to persist job error", "task", task.URI, "error", err)
	} else {
		task.ErrorURI = jobError.URI
	}

	if err := r.transition(ctx, task, models.TaskStatusFailed); err != nil {
		r.logger.Error("failed to mark task as failed", "task", task.URI, "error", err)
	}
}

// failUnknown records the generic unknown-error JobError, marks the task
// FAILED and escalates.
func (r *Runner) failUnknown(ctx context.Context, task *models.Task, err error) {
	r.fail(ctx, task, unknownErrorMessage)
	r.onUnknown(err)
}

// transition advances the task's status and persists its mutable fields.
func (r *Runner) transition(ctx context.Context, task *models.Task, statusURI string) error {
	task.StatusURI = statusURI
	task.UpdatedOn = time.Now()
	return r.taskRepo.Persist(ctx, task)
}
