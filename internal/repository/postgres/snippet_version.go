package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"docporter/internal/domain"
	"docporter/internal/domain/models"
	"docporter/internal/domain/repositories"
)

// PostgresSnippetVersionRepository implements the SnippetVersionRepository
// interface
type PostgresSnippetVersionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSnippetVersionRepository creates a new snippet version repository
func NewSnippetVersionRepository(config *RepositoryConfig) repositories.SnippetVersionRepository {
	return &PostgresSnippetVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Find retrieves a snippet version by URI
func (r *PostgresSnippetVersionRepository) Find(ctx context.Context, uri string) (*models.SnippetVersion, error) {
	query := fmt.Sprintf(`
		SELECT uri, id, title, content, created_on, snippet_uri,
		       previous_version_uri, valid_through
		FROM %s
		WHERE uri = $1
	`, r.tables.SnippetVersions)

	var (
		version            models.SnippetVersion
		previousVersionURI *string
	)
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, uri).Scan(
		&version.URI,
		&version.ID,
		&version.Title,
		&version.Content,
		&version.CreatedOn,
		&version.SnippetURI,
		&previousVersionURI,
		&version.ValidThrough,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{
				Message: fmt.Sprintf("SnippetVersion %s was not found in the database", uri),
			}
		}
		return nil, fmt.Errorf("find snippet version: %w", err)
	}

	version.PreviousVersionURI = orEmpty(previousVersionURI)

	return &version, nil
}

// Create assigns id/uri when absent and persists the version
func (r *PostgresSnippetVersionRepository) Create(ctx context.Context, version *models.SnippetVersion) error {
	if version.ID == "" {
		version.ID = uuid.NewString()
	}
	if version.URI == "" {
		version.URI = "http://data.lblod.info/snippet-versions/" + version.ID
	}
	return r.Persist(ctx, version)
}

// Persist fully replaces the version's attributes (upsert)
func (r *PostgresSnippetVersionRepository) Persist(ctx context.Context, version *models.SnippetVersion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, title, content, created_on, snippet_uri,
		                previous_version_uri, valid_through)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (uri) DO UPDATE SET
			id = EXCLUDED.id,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			created_on = EXCLUDED.created_on,
			snippet_uri = EXCLUDED.snippet_uri,
			previous_version_uri = EXCLUDED.previous_version_uri,
			valid_through = EXCLUDED.valid_through
	`, r.tables.SnippetVersions)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		version.URI,
		version.ID,
		version.Title,
		version.Content,
		version.CreatedOn,
		version.SnippetURI,
		nullIfEmpty(version.PreviousVersionURI),
		version.ValidThrough,
	)
	if err != nil {
		return fmt.Errorf("persist snippet version: %w", err)
	}

	return nil
}
