package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"docporter/internal/domain/models"
	"docporter/internal/domain/repositories"
)

// PostgresJobErrorRepository implements the JobErrorRepository interface
type PostgresJobErrorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewJobErrorRepository creates a new job error repository
func NewJobErrorRepository(config *RepositoryConfig) repositories.JobErrorRepository {
	return &PostgresJobErrorRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create assigns id/uri when absent and persists the error record
func (r *PostgresJobErrorRepository) Create(ctx context.Context, jobError *models.JobError) error {
	if jobError.ID == "" {
		jobError.ID = uuid.NewString()
	}
	if jobError.URI == "" {
		jobError.URI = "http://redpencil.data.gift/id/jobs/error/" + jobError.ID
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, message)
		VALUES ($1, $2, $3)
	`, r.tables.JobErrors)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, jobError.URI, jobError.ID, jobError.Message)
	if err != nil {
		return fmt.Errorf("create job error: %w", err)
	}

	return nil
}
