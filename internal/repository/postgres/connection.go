package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"docporter/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames centralizes the table names used in query text
type TableNames struct {
	DocumentContainers string
	EditorDocuments    string
	SnippetLists       string
	Snippets           string
	SnippetVersions    string
	Tasks              string
	JobErrors          string
	Files              string
	Archives           string
}

// NewTableNames creates the default table names
func NewTableNames() *TableNames {
	return &TableNames{
		DocumentContainers: "document_containers",
		EditorDocuments:    "editor_documents",
		SnippetLists:       "snippet_lists",
		Snippets:           "snippets",
		SnippetVersions:    "snippet_versions",
		Tasks:              "tasks",
		JobErrors:          "job_errors",
		Files:              "files",
		Archives:           "archives",
	}
}

// CreateConnectionPool creates a new pgx connection pool
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is stored in the context it is used, otherwise the pool.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
