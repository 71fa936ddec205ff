package service

import (
	"context"
	"log/slog"

	archivecodec "docporter/internal/service/archive"

	"docporter/internal/domain/repositories"
	"docporter/internal/domain/services"
)

// importService implements the ImportService interface
type importService struct {
	codec         *archivecodec.Codec
	containerRepo repositories.DocumentContainerRepository
	documentRepo  repositories.EditorDocumentRepository
	listRepo      repositories.SnippetListRepository
	snippetRepo   repositories.SnippetRepository
	versionRepo   repositories.SnippetVersionRepository
	txManager     repositories.TransactionManager
	logger        *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	codec *archivecodec.Codec,
	containerRepo repositories.DocumentContainerRepository,
	documentRepo repositories.EditorDocumentRepository,
	listRepo repositories.SnippetListRepository,
	snippetRepo repositories.SnippetRepository,
	versionRepo repositories.SnippetVersionRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ImportService {
	return &importService{
		codec:         codec,
		containerRepo: containerRepo,
		documentRepo:  documentRepo,
		listRepo:      listRepo,
		snippetRepo:   snippetRepo,
		versionRepo:   versionRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Import decodes the archive, validates relationships across its five
// collections, then persists every entity inside a single transaction so a
// failure partway through never leaves the store partially updated.
func (s *importService) Import(ctx context.Context, archive []byte) error {
	set, err := s.codec.Decode(archive)
	if err != nil {
		return err
	}

	if err := archivecodec.ValidateRelationships(set); err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i := range set.DocumentContainers {
			if err := s.containerRepo.Persist(txCtx, &set.DocumentContainers[i]); err != nil {
				return err
			}
		}
		for i := range set.EditorDocuments {
			if err := s.documentRepo.Persist(txCtx, &set.EditorDocuments[i]); err != nil {
				return err
			}
		}
		for i := range set.SnippetLists {
			if err := s.listRepo.Persist(txCtx, &set.SnippetLists[i]); err != nil {
				return err
			}
		}
		for i := range set.Snippets {
			if err := s.snippetRepo.Persist(txCtx, &set.Snippets[i]); err != nil {
				return err
			}
		}
		for i := range set.SnippetVersions {
			if err := s.versionRepo.Persist(txCtx, &set.SnippetVersions[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("archive imported",
		"document_containers", len(set.DocumentContainers),
		"editor_documents", len(set.EditorDocuments),
		"snippet_lists", len(set.SnippetLists),
		"snippets", len(set.Snippets),
		"snippet_versions", len(set.SnippetVersions),
	)

	return nil
}
