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

// PostgresSnippetRepository implements the SnippetRepository interface
type PostgresSnippetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSnippetRepository creates a new snippet repository
func NewSnippetRepository(config *RepositoryConfig) repositories.SnippetRepository {
	return &PostgresSnippetRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Find retrieves a snippet by URI
func (r *PostgresSnippetRepository) Find(ctx context.Context, uri string) (*models.Snippet, error) {
	query := fmt.Sprintf(`
		SELECT uri, id, position, created_on, updated_on, current_version_uri,
		       linked_snippet_list_uris
		FROM %s
		WHERE uri = $1
	`, r.tables.Snippets)

	var (
		snippet    models.Snippet
		linkedURIs []string
	)
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, uri).Scan(
		&snippet.URI,
		&snippet.ID,
		&snippet.Position,
		&snippet.CreatedOn,
		&snippet.UpdatedOn,
		&snippet.CurrentVersionURI,
		&linkedURIs,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{
				Message: fmt.Sprintf("Snippet %s was not found in the database", uri),
			}
		}
		return nil, fmt.Errorf("find snippet: %w", err)
	}

	snippet.LinkedSnippetListURIs = collection.NewSet(linkedURIs...)

	return &snippet, nil
}

// Create assigns id/uri when absent and persists the snippet
func (r *PostgresSnippetRepository) Create(ctx context.Context, snippet *models.Snippet) error {
	if snippet.ID == "" {
		snippet.ID = uuid.NewString()
	}
	if snippet.URI == "" {
		snippet.URI = "http://data.lblod.info/id/snippets/" + snippet.ID
	}
	return r.Persist(ctx, snippet)
}

// Persist fully replaces the snippet's attributes (upsert)
func (r *PostgresSnippetRepository) Persist(ctx context.Context, snippet *models.Snippet) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, position, created_on, updated_on,
		                current_version_uri, linked_snippet_list_uris)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (uri) DO UPDATE SET
			id = EXCLUDED.id,
			position = EXCLUDED.position,
			created_on = EXCLUDED.created_on,
			updated_on = EXCLUDED.updated_on,
			current_version_uri = EXCLUDED.current_version_uri,
			linked_snippet_list_uris = EXCLUDED.linked_snippet_list_uris
	`, r.tables.Snippets)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		snippet.URI,
		snippet.ID,
		snippet.Position,
		snippet.CreatedOn,
		snippet.UpdatedOn,
		snippet.CurrentVersionURI,
		snippet.LinkedSnippetListURIs.Values(),
	)
	if err != nil {
		return fmt.Errorf("persist snippet: %w", err)
	}

	return nil
}
