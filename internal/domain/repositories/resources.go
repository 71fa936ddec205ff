package repositories

import (
	"context"

	"docporter/internal/domain/models"
)

// Every Find returns the entity or an error wrapping domain.ErrNotFound when
// the URI does not resolve, and an error wrapping domain.ErrConflict when a
// unique-key lookup matches more than one row. Persist is a full replace of
// the entity's attributes (upsert); Create assigns id and uri when absent.

// DocumentContainerRepository defines data access for document containers
type DocumentContainerRepository interface {
	Find(ctx context.Context, uri string) (*models.DocumentContainer, error)
	Create(ctx context.Context, container *models.DocumentContainer) error
	Persist(ctx context.Context, container *models.DocumentContainer) error
}

// EditorDocumentRepository defines data access for editor documents
type EditorDocumentRepository interface {
	Find(ctx context.Context, uri string) (*models.EditorDocument, error)
	Create(ctx context.Context, doc *models.EditorDocument) error
	Persist(ctx context.Context, doc *models.EditorDocument) error
}

// SnippetListRepository defines data access for snippet lists
type SnippetListRepository interface {
	Find(ctx context.Context, uri string) (*models.SnippetList, error)
	Create(ctx context.Context, list *models.SnippetList) error
	Persist(ctx context.Context, list *models.SnippetList) error
}

// SnippetRepository defines data access for snippets
type SnippetRepository interface {
	Find(ctx context.Context, uri string) (*models.Snippet, error)
	Create(ctx context.Context, snippet *models.Snippet) error
	Persist(ctx context.Context, snippet *models.Snippet) error
}

// SnippetVersionRepository defines data access for snippet versions
type SnippetVersionRepository interface {
	Find(ctx context.Context, uri string) (*models.SnippetVersion, error)
	Create(ctx context.Context, version *models.SnippetVersion) error
	Persist(ctx context.Context, version *models.SnippetVersion) error
}
