package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	invoicingapp "github.com/invoicehub/backend/internal/application/invoicing"
	"github.com/invoicehub/backend/internal/domain/shared"
	infraconfig "github.com/invoicehub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure FileSystemStorage implements DocumentStorage
var _ invoicingapp.DocumentStorage = (*FileSystemStorage)(nil)

// FileSystemStorage stores invoice documents on the local file system.
// It is the default backend for single-node deployments; the S3 backend
// replaces it when an object store is configured.
type FileSystemStorage struct {
	basePath string
	baseURL  string
	logger   *zap.Logger
}

// NewFileSystemStorage creates a file system backed document storage rooted
// at the configured base path.
func NewFileSystemStorage(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*FileSystemStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/data/documents"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "/api/v1/documents"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSystemStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// Upload writes document data under the storage key
func (s *FileSystemStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	s.logger.Info("document stored",
		zap.String("key", storageKey),
		zap.Int("size", len(data)))
	return nil
}

// GenerateDownloadURL returns the serving URL for a stored document. Local
// files are served by the application itself, so the URL never actually
// expires; the returned expiry only mirrors the S3 backend's contract.
func (s *FileSystemStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if _, err := s.resolve(storageKey); err != nil {
		return "", time.Time{}, err
	}

	url := s.baseURL + "/" + filepath.ToSlash(filepath.Clean(storageKey))
	return url, time.Now().Add(expiresIn), nil
}

// DeleteObject removes a stored document. Deleting a missing file is not an error.
func (s *FileSystemStorage) DeleteObject(ctx context.Context, storageKey string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.logger.Info("document deleted", zap.String("key", storageKey))
	return nil
}

// ObjectExists checks whether a document is stored under the key
func (s *FileSystemStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}
	return true, nil
}

// Open returns a reader over a stored document. The HTTP layer uses this to
// serve documents directly when the file system backend is active.
func (s *FileSystemStorage) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return file, nil
}

// resolve sanitizes the key and maps it to an absolute path under basePath.
// Keys containing ".." or escaping the base directory are rejected.
func (s *FileSystemStorage) resolve(storageKey string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}

	cleanPath := filepath.Clean(storageKey)
	if filepath.IsAbs(cleanPath) || containsDotDot(storageKey) {
		s.logger.Warn("blocked potentially malicious storage key",
			zap.String("key", storageKey))
		return "", errors.New("invalid storage key")
	}

	fullPath := filepath.Join(s.basePath, cleanPath)

	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve document path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		s.logger.Warn("storage key escape attempt blocked",
			zap.String("key", storageKey))
		return "", errors.New("invalid storage key")
	}

	return fullPath, nil
}

// containsDotDot checks if a key contains ".." components before any
// normalization takes place
func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	return slices.Contains(parts, "..")
}
