package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements Storage interface for the local filesystem. All
// files live flat inside basePath; the directory is served read-only by the
// HTTP layer and never executes its contents.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Upload stores a file locally under the generated stored name
func (s *LocalStorage) Upload(ctx context.Context, storedName string, data io.Reader) (int64, error) {
	if err := checkStoredName(storedName); err != nil {
		return 0, err
	}
	fullPath := filepath.Join(s.basePath, storedName)

	file, err := os.Create(fullPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Clean up on error
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	return written, nil
}

// Download retrieves a file from local storage
func (s *LocalStorage) Download(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if err := checkStoredName(storedName); err != nil {
		return nil, err
	}
	fullPath := filepath.Join(s.basePath, storedName)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", storedName)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, storedName string) error {
	if err := checkStoredName(storedName); err != nil {
		return err
	}
	fullPath := filepath.Join(s.basePath, storedName)

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
