package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"docporter/internal/domain"
	"docporter/internal/domain/models"
	"docporter/internal/domain/repositories"
)

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create assigns id/uri when absent and persists the task
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.URI == "" {
		task.URI = "http://lblod.data.gift/tasks/" + task.ID
	}
	if task.CreatedOn.IsZero() {
		task.CreatedOn = time.Now()
	}
	if task.UpdatedOn.IsZero() {
		task.UpdatedOn = task.CreatedOn
	}
	return r.Persist(ctx, task)
}

// Persist fully replaces the task's mutable attributes (upsert)
func (r *PostgresTaskRepository) Persist(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, status_uri, created_on, updated_on,
		                operation_uri, error_uri, result_uri)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (uri) DO UPDATE SET
			status_uri = EXCLUDED.status_uri,
			updated_on = EXCLUDED.updated_on,
			operation_uri = EXCLUDED.operation_uri,
			error_uri = EXCLUDED.error_uri,
			result_uri = EXCLUDED.result_uri
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		task.URI,
		task.ID,
		task.StatusURI,
		task.CreatedOn,
		task.UpdatedOn,
		nullIfEmpty(task.OperationURI),
		nullIfEmpty(task.ErrorURI),
		nullIfEmpty(task.ResultURI),
	)
	if err != nil {
		return fmt.Errorf("persist task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its short id. A second row for the same id
// signals corrupt data and is reported as a conflict.
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf(`
		SELECT uri, id, status_uri, created_on, updated_on,
		       operation_uri, error_uri, result_uri
		FROM %s
		WHERE id = $1
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var (
			task         models.Task
			operationURI *string
			errorURI     *string
			resultURI    *string
		)
		err := rows.Scan(
			&task.URI,
			&task.ID,
			&task.StatusURI,
			&task.CreatedOn,
			&task.UpdatedOn,
			&operationURI,
			&errorURI,
			&resultURI,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.OperationURI = orEmpty(operationURI)
		task.ErrorURI = orEmpty(errorURI)
		task.ResultURI = orEmpty(resultURI)
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	if len(tasks) == 0 {
		return nil, &domain.NotFoundError{
			Message: fmt.Sprintf("Task %s was not found in the database", id),
		}
	}
	if len(tasks) > 1 {
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("Expected to only find a single result when querying Task %s", id),
		}
	}

	return &tasks[0], nil
}
