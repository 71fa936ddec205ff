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

// PostgresEditorDocumentRepository implements the EditorDocumentRepository
// interface
type PostgresEditorDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewEditorDocumentRepository creates a new editor document repository
func NewEditorDocumentRepository(config *RepositoryConfig) repositories.EditorDocumentRepository {
	return &PostgresEditorDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Find retrieves an editor document by URI
func (r *PostgresEditorDocumentRepository) Find(ctx context.Context, uri string) (*models.EditorDocument, error) {
	query := fmt.Sprintf(`
		SELECT uri, id, title, content, context, created_on, updated_on,
		       previous_version_uri, document_container_uri
		FROM %s
		WHERE uri = $1
	`, r.tables.EditorDocuments)

	var (
		doc                models.EditorDocument
		docContext         *string
		previousVersionURI *string
	)
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, uri).Scan(
		&doc.URI,
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&docContext,
		&doc.CreatedOn,
		&doc.UpdatedOn,
		&previousVersionURI,
		&doc.DocumentContainerURI,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{
				Message: fmt.Sprintf("EditorDocument %s was not found in the database", uri),
			}
		}
		return nil, fmt.Errorf("find editor document: %w", err)
	}

	doc.Context = orEmpty(docContext)
	doc.PreviousVersionURI = orEmpty(previousVersionURI)

	return &doc, nil
}

// Create assigns id/uri when absent and persists the document
func (r *PostgresEditorDocumentRepository) Create(ctx context.Context, doc *models.EditorDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.URI == "" {
		doc.URI = "http://data.lblod.info/editor-documents/" + doc.ID
	}
	return r.Persist(ctx, doc)
}

// Persist fully replaces the document's attributes (upsert)
func (r *PostgresEditorDocumentRepository) Persist(ctx context.Context, doc *models.EditorDocument) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (uri, id, title, content, context, created_on, updated_on,
		                previous_version_uri, document_container_uri)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (uri) DO UPDATE SET
			id = EXCLUDED.id,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			context = EXCLUDED.context,
			created_on = EXCLUDED.created_on,
			updated_on = EXCLUDED.updated_on,
			previous_version_uri = EXCLUDED.previous_version_uri,
			document_container_uri = EXCLUDED.document_container_uri
	`, r.tables.EditorDocuments)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		doc.URI,
		doc.ID,
		doc.Title,
		doc.Content,
		nullIfEmpty(doc.Context),
		doc.CreatedOn,
		doc.UpdatedOn,
		nullIfEmpty(doc.PreviousVersionURI),
		doc.DocumentContainerURI,
	)
	if err != nil {
		return fmt.Errorf("persist editor document: %w", err)
	}

	return nil
}
