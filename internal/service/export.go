package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	archivecodec "docporter/internal/service/archive"
	"docporter/internal/service/export"

	"docporter/internal/domain/models"
	"docporter/internal/domain/repositories"
	"docporter/internal/domain/services"
	"docporter/internal/storage"
)

// exportService implements the ExportService interface
type exportService struct {
	collector *export.Collector
	codec     *archivecodec.Codec
	fileRepo  repositories.FileRepository
	store     storage.Storage
	logger    *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	collector *export.Collector,
	codec *archivecodec.Codec,
	fileRepo repositories.FileRepository,
	store storage.Storage,
	logger *slog.Logger,
) services.ExportService {
	return &exportService{
		collector: collector,
		codec:     codec,
		fileRepo:  fileRepo,
		store:     store,
		logger:    logger,
	}
}

// Collect walks the resource graph and returns the closed export set
func (s *exportService) Collect(ctx context.Context, req *services.ExportRequest) (*models.ExportSet, error) {
	return s.collector.Collect(ctx, req)
}

// Export collects the export set, encodes it into a zip archive, stores the
// bytes, registers the logical/physical file pair and returns the archive
// result container.
func (s *exportService) Export(ctx context.Context, req *services.ExportRequest) (services.Result, error) {
	set, err := s.collector.Collect(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := s.codec.Encode(set)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("template-export-%s-%s.zip", time.Now().Format("20060102150405"), uuid.NewString())
	sourceURI, err := s.store.Write(ctx, name, data)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	logicalFile := &models.LogicalFile{
		Name:      name,
		Format:    "application/zip",
		Extension: "zip",
		Size:      int64(len(data)),
		CreatedOn: now,
	}
	if err := s.fileRepo.CreateLogicalFile(ctx, logicalFile); err != nil {
		return nil, err
	}

	physicalFile := &models.PhysicalFile{
		URI:       sourceURI,
		Name:      name,
		Format:    "application/zip",
		Extension: "zip",
		Size:      int64(len(data)),
		CreatedOn: now,
		SourceURI: logicalFile.URI,
	}
	if err := s.fileRepo.CreatePhysicalFile(ctx, physicalFile); err != nil {
		return nil, err
	}

	archive := &models.Archive{FileURI: logicalFile.URI}
	if err := s.fileRepo.CreateArchive(ctx, archive); err != nil {
		return nil, err
	}

	s.logger.Info("export archive created",
		"archive", archive.URI,
		"file", logicalFile.URI,
		"size", len(data),
	)

	return archive, nil
}
