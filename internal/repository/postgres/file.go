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

// PostgresFileRepository implements the FileRepository interface. Logical and
// physical files share one table; the physical record carries a source_uri
// pointing at its logical counterpart.
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateLogicalFile assigns id/uri when absent and persists the record
func (r *PostgresFileRepository) CreateLogicalFile(ctx context.Context, file *models.LogicalFile) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	if file.URI == "" {
		file.URI = "http://lblod.data.gift/files/" + file.ID
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, name, format, extension, size, created_on, source_uri)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		file.URI,
		file.ID,
		file.Name,
		file.Format,
		file.Extension,
		file.Size,
		file.CreatedOn,
	)
	if err != nil {
		return fmt.Errorf("create logical file: %w", err)
	}

	return nil
}

// CreatePhysicalFile persists the record at its storage-location URI
func (r *PostgresFileRepository) CreatePhysicalFile(ctx context.Context, file *models.PhysicalFile) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, name, format, extension, size, created_on, source_uri)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		file.URI,
		file.ID,
		file.Name,
		file.Format,
		file.Extension,
		file.Size,
		file.CreatedOn,
		file.SourceURI,
	)
	if err != nil {
		return fmt.Errorf("create physical file: %w", err)
	}

	return nil
}

// CreateArchive wraps a logical file reference as a task result container
func (r *PostgresFileRepository) CreateArchive(ctx context.Context, archive *models.Archive) error {
	if archive.ID == "" {
		archive.ID = uuid.NewString()
	}
	if archive.URI == "" {
		archive.URI = "http://redpencil.data.gift/id/archive/" + archive.ID
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, file_uri)
		VALUES ($1, $2, $3)
	`, r.tables.Archives)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, archive.URI, archive.ID, archive.FileURI)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	return nil
}
