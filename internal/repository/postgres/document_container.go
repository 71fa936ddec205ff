package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"docporter/internal/collection"
	"docporter/internal/domain"
	"docporter/internal/domain/models"
	"docporter/internal/domain/repositories"
)

// PostgresDocumentContainerRepository implements the
// DocumentContainerRepository interface
type PostgresDocumentContainerRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentContainerRepository creates a new document container repository
func NewDocumentContainerRepository(config *RepositoryConfig) repositories.DocumentContainerRepository {
	return &PostgresDocumentContainerRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Find retrieves a document container by URI
func (r *PostgresDocumentContainerRepository) Find(ctx context.Context, uri string) (*models.DocumentContainer, error) {
	query := fmt.Sprintf(`
		SELECT uri, id, current_version_uri, folder_uri, linked_snippet_list_uris
		FROM %s
		WHERE uri = $1
	`, r.tables.DocumentContainers)

	var (
		container  models.DocumentContainer
		folderURI  *string
		linkedURIs []string
	)
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, uri).Scan(
		&container.URI,
		&container.ID,
		&container.CurrentVersionURI,
		&folderURI,
		&linkedURIs,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{
				Message: fmt.Sprintf("DocumentContainer %s was not found in the database", uri),
			}
		}
		return nil, fmt.Errorf("find document container: %w", err)
	}

	container.FolderURI = orEmpty(folderURI)
	container.LinkedSnippetListURIs = collection.NewSet(linkedURIs...)

	return &container, nil
}

// Create assigns id/uri when absent and persists the container
func (r *PostgresDocumentContainerRepository) Create(ctx context.Context, container *models.DocumentContainer) error {
	if container.ID == "" {
		container.ID = uuid.NewString()
	}
	if container.URI == "" {
		container.URI = "http://data.lblod.info/document-containers/" + container.ID
	}
	return r.Persist(ctx, container)
}

// Persist fully replaces the container's attributes (upsert)
func (r *PostgresDocumentContainerRepository) Persist(ctx context.Context, container *models.DocumentContainer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, current_version_uri, folder_uri, linked_snippet_list_uris)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (uri) DO UPDATE SET
			id = EXCLUDED.id,
			current_version_uri = EXCLUDED.current_version_uri,
			folder_uri = EXCLUDED.folder_uri,
			linked_snippet_list_uris = EXCLUDED.linked_snippet_list_uris
	`, r.tables.DocumentContainers)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		container.URI,
		container.ID,
		container.CurrentVersionURI,
		nullIfEmpty(container.FolderURI),
		container.LinkedSnippetListURIs.Values(),
	)
	if err != nil {
		return fmt.Errorf("persist document container: %w", err)
	}

	return nil
}
