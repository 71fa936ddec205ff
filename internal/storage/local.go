package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LocalStorage writes archives to a shared directory on disk. Files are
// addressed with share:// URIs relative to that directory.
type LocalStorage struct {
	dir    string
	logger *slog.Logger
}

// NewLocalStorage creates a local storage backend rooted at dir, creating
// the directory if needed.
func NewLocalStorage(dir string, logger *slog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create share directory: %w", err)
	}
	return &LocalStorage{dir: dir, logger: logger}, nil
}

// Write stores the bytes at <dir>/<name> and returns a share:// URI.
func (s *LocalStorage) Write(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}

	s.logger.Debug("archive written", "path", path, "size", len(data))

	return "share://" + name, nil
}
