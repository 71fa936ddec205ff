package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"docporter/internal/domain"
	"docporter/internal/domain/models"
	"docporter/internal/domain/services"
)

// fakeTaskRepo records every persisted status so tests can assert on the
// full lifecycle sequence.
type fakeTaskRepo struct {
	mu       sync.Mutex
	sequence []string
	updates  []time.Time
	task     *models.Task
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = "task-id"
	task.URI = "http://redpencil.data.gift/id/task/task-id"
	r.task = task
	r.sequence = append(r.sequence, task.StatusURI)
	r.updates = append(r.updates, task.UpdatedOn)
	return nil
}

func (r *fakeTaskRepo) Persist(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequence = append(r.sequence, task.StatusURI)
	r.updates = append(r.updates, task.UpdatedOn)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, _ string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.task, nil
}

func (r *fakeTaskRepo) statuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sequence...)
}

// current returns the task instance the runner mutates, as last persisted.
func (r *fakeTaskRepo) current() models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.task
}

type fakeJobErrorRepo struct {
	mu      sync.Mutex
	created []*models.JobError
}

func (r *fakeJobErrorRepo) Create(_ context.Context, jobError *models.JobError) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	jobError.ID = fmt.Sprintf("error-%d", len(r.created))
	jobError.URI = "http://data.lblod.info/id/jobs/error/" + jobError.ID
	r.created = append(r.created, jobError)
	return nil
}

type stubResult struct{ uri string }

func (r stubResult) ResourceURI() string { return r.uri }

func newTestRunner(taskRepo *fakeTaskRepo, jobErrorRepo *fakeJobErrorRepo, onUnknown func(error)) *Runner {
	if onUnknown == nil {
		onUnknown = func(error) {}
	}
	return NewRunner(taskRepo, jobErrorRepo, onUnknown, slog.New(slog.DiscardHandler))
}

func TestRunnerSuccessLifecycle(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	jobErrorRepo := &fakeJobErrorRepo{}
	runner := newTestRunner(taskRepo, jobErrorRepo, nil)

	task, err := runner.Run(context.Background(), models.TaskOperationExport, func(ctx context.Context) (services.Result, error) {
		return stubResult{uri: "http://data.lblod.info/id/archive/a-1"}, nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if task.StatusURI != models.TaskStatusScheduled {
		t.Errorf("Expected returned task to be scheduled, got %s", task.StatusURI)
	}
	runner.Wait()

	want := []string{models.TaskStatusScheduled, models.TaskStatusBusy, models.TaskStatusSuccess}
	got := taskRepo.statuses()
	if len(got) != len(want) {
		t.Fatalf("Expected status sequence %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected status %d to be %s, got %s", i, want[i], got[i])
		}
	}

	if persisted := taskRepo.current(); persisted.ResultURI != "http://data.lblod.info/id/archive/a-1" {
		t.Errorf("Expected task to link its result, got %q", persisted.ResultURI)
	}
	if len(jobErrorRepo.created) != 0 {
		t.Errorf("Expected no job errors, got %d", len(jobErrorRepo.created))
	}
}

func TestRunnerReturnedTaskIsImmutable(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	runner := newTestRunner(taskRepo, &fakeJobErrorRepo{}, nil)

	release := make(chan struct{})
	task, err := runner.Run(context.Background(), models.TaskOperationExport, func(ctx context.Context) (services.Result, error) {
		<-release
		return stubResult{uri: "http://data.lblod.info/id/archive/a-1"}, nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Read the returned task the way a handler building the 202 response
	// would, concurrently with the lifecycle transitions.
	if task.StatusURI != models.TaskStatusScheduled {
		t.Errorf("Expected scheduled status, got %s", task.StatusURI)
	}
	scheduledUpdate := task.UpdatedOn
	if task.ResultURI != "" {
		t.Errorf("Expected no result on the scheduled task, got %q", task.ResultURI)
	}

	close(release)
	runner.Wait()

	// The caller's task still carries the scheduled attributes; only the
	// persisted record advanced.
	if task.StatusURI != models.TaskStatusScheduled {
		t.Errorf("Expected caller's task to stay scheduled, got %s", task.StatusURI)
	}
	if !task.UpdatedOn.Equal(scheduledUpdate) {
		t.Errorf("Expected caller's updatedOn to stay %v, got %v", scheduledUpdate, task.UpdatedOn)
	}
	if task.ResultURI != "" {
		t.Errorf("Expected caller's task to carry no result, got %q", task.ResultURI)
	}
	if persisted := taskRepo.current(); persisted.StatusURI != models.TaskStatusSuccess {
		t.Errorf("Expected persisted task to reach success, got %s", persisted.StatusURI)
	}
}

func TestRunnerUpdatedOnAdvances(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	runner := newTestRunner(taskRepo, &fakeJobErrorRepo{}, nil)

	_, err := runner.Run(context.Background(), models.TaskOperationExport, func(ctx context.Context) (services.Result, error) {
		time.Sleep(5 * time.Millisecond)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runner.Wait()

	for i := 1; i < len(taskRepo.updates); i++ {
		if taskRepo.updates[i].Before(taskRepo.updates[i-1]) {
			t.Errorf("Expected updatedOn to advance, got %v then %v", taskRepo.updates[i-1], taskRepo.updates[i])
		}
	}
}

func TestRunnerOperationalFailure(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	jobErrorRepo := &fakeJobErrorRepo{}
	escalated := false
	runner := newTestRunner(taskRepo, jobErrorRepo, func(error) { escalated = true })

	_, err := runner.Run(context.Background(), models.TaskOperationImport, func(ctx context.Context) (services.Result, error) {
		return nil, &domain.ValidationError{Message: "Incorrect folder structure in uploaded archive. Got mystery"}
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runner.Wait()

	got := taskRepo.statuses()
	if got[len(got)-1] != models.TaskStatusFailed {
		t.Errorf("Expected final status failed, got %s", got[len(got)-1])
	}
	if len(jobErrorRepo.created) != 1 {
		t.Fatalf("Expected 1 job error, got %d", len(jobErrorRepo.created))
	}
	if jobErrorRepo.created[0].Message != "Incorrect folder structure in uploaded archive. Got mystery" {
		t.Errorf("Expected job error to carry the operational message, got %q", jobErrorRepo.created[0].Message)
	}
	if persisted := taskRepo.current(); persisted.ErrorURI == "" {
		t.Error("Expected task to link its job error")
	}
	if escalated {
		t.Error("Expected operational failure to not escalate")
	}
}

func TestRunnerUnknownFailure(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	jobErrorRepo := &fakeJobErrorRepo{}
	var escalatedWith error
	runner := newTestRunner(taskRepo, jobErrorRepo, func(err error) { escalatedWith = err })

	cause := errors.New("connection reset by peer")
	_, err := runner.Run(context.Background(), models.TaskOperationExport, func(ctx context.Context) (services.Result, error) {
		return nil, cause
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runner.Wait()

	got := taskRepo.statuses()
	if got[len(got)-1] != models.TaskStatusFailed {
		t.Errorf("Expected final status failed, got %s", got[len(got)-1])
	}
	if len(jobErrorRepo.created) != 1 {
		t.Fatalf("Expected 1 job error, got %d", len(jobErrorRepo.created))
	}
	if jobErrorRepo.created[0].Message != "Unknown error occurred" {
		t.Errorf("Expected generic unknown-error message, got %q", jobErrorRepo.created[0].Message)
	}
	if !errors.Is(escalatedWith, cause) {
		t.Errorf("Expected escalation hook to receive the original error, got %v", escalatedWith)
	}
}

func TestRunnerRecoversPanic(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	jobErrorRepo := &fakeJobErrorRepo{}
	escalated := false
	runner := newTestRunner(taskRepo, jobErrorRepo, func(error) { escalated = true })

	_, err := runner.Run(context.Background(), models.TaskOperationExport, func(ctx context.Context) (services.Result, error) {
		panic("boom")
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runner.Wait()

	got := taskRepo.statuses()
	if got[len(got)-1] != models.TaskStatusFailed {
		t.Errorf("Expected final status failed, got %s", got[len(got)-1])
	}
	if len(jobErrorRepo.created) != 1 || jobErrorRepo.created[0].Message != "Unknown error occurred" {
		t.Error("Expected panic to be recorded as an unknown error")
	}
	if !escalated {
		t.Error("Expected panic to escalate through the hook")
	}
}

func TestRunnerSurvivesCanceledRequestContext(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	runner := newTestRunner(taskRepo, &fakeJobErrorRepo{}, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := runner.Run(ctx, models.TaskOperationExport, func(opCtx context.Context) (services.Result, error) {
		close(started)
		<-release
		return nil, opCtx.Err()
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Cancel the request context mid-operation, as a closed HTTP
	// connection would.
	<-started
	cancel()
	close(release)
	runner.Wait()

	got := taskRepo.statuses()
	if got[len(got)-1] != models.TaskStatusSuccess {
		t.Errorf("Expected operation to outlive the request context, final status %s", got[len(got)-1])
	}
}
