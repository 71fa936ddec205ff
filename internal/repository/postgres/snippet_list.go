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

// PostgresSnippetListRepository implements the SnippetListRepository interface
type PostgresSnippetListRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSnippetListRepository creates a new snippet list repository
func NewSnippetListRepository(config *RepositoryConfig) repositories.SnippetListRepository {
	return &PostgresSnippetListRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Find retrieves a snippet list by URI
func (r *PostgresSnippetListRepository) Find(ctx context.Context, uri string) (*models.SnippetList, error) {
	query := fmt.Sprintf(`
		SELECT uri, id, label, created_on, snippet_uris, imported_resource_uris
		FROM %s
		WHERE uri = $1
	`, r.tables.SnippetLists)

	var (
		list         models.SnippetList
		snippetURIs  []string
		importedURIs []string
	)
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, uri).Scan(
		&list.URI,
		&list.ID,
		&list.Label,
		&list.CreatedOn,
		&snippetURIs,
		&importedURIs,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{
				Message: fmt.Sprintf("SnippetList %s was not found in the database", uri),
			}
		}
		return nil, fmt.Errorf("find snippet list: %w", err)
	}

	list.SnippetURIs = collection.NewSet(snippetURIs...)
	list.ImportedResourceURIs = collection.NewSet(importedURIs...)

	return &list, nil
}

// Create assigns id/uri when absent and persists the list
func (r *PostgresSnippetListRepository) Create(ctx context.Context, list *models.SnippetList) error {
	if list.ID == "" {
		list.ID = uuid.NewString()
	}
	if list.URI == "" {
		list.URI = "http://data.lblod.info/snippet-lists/" + list.ID
	}
	return r.Persist(ctx, list)
}

// Persist fully replaces the list's attributes (upsert)
func (r *PostgresSnippetListRepository) Persist(ctx context.Context, list *models.SnippetList) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, label, created_on, snippet_uris, imported_resource_uris)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uri) DO UPDATE SET
			id = EXCLUDED.id,
			label = EXCLUDED.label,
			created_on = EXCLUDED.created_on,
			snippet_uris = EXCLUDED.snippet_uris,
			imported_resource_uris = EXCLUDED.imported_resource_uris
	`, r.tables.SnippetLists)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		list.URI,
		list.ID,
		list.Label,
		list.CreatedOn,
		list.SnippetURIs.Values(),
		list.ImportedResourceURIs.Values(),
	)
	if err != nil {
		return fmt.Errorf("persist snippet list: %w", err)
	}

	return nil
}
