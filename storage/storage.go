package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeName is returned when a stored name contains path components.
// Names are generated by the upload service and must be plain filenames.
var ErrUnsafeName = errors.New("stored name must be a plain filename")

// Storage interface for uploaded file operations. Names are always the
// service-generated stored names, never caller-supplied filenames.
type Storage interface {
	// Upload writes the file under storedName and returns the bytes written
	Upload(ctx context.Context, storedName string, data io.Reader) (int64, error)

	// Download retrieves a file by stored name
	Download(ctx context.Context, storedName string) (io.ReadCloser, error)

	// Delete removes a file by stored name
	Delete(ctx context.Context, storedName string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewStorageFromEnv creates a storage instance from environment variables
func NewStorageFromEnv() (Storage, error) {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = "local" // Default to local for development
	}

	cfg := StorageConfig{
		Type: StorageType(storageType),
	}

	switch StorageType(storageType) {
	case StorageTypeLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./uploads" // Default local storage path
		}
		cfg.LocalPath = localPath
		return NewLocalStorage(cfg.LocalPath)

	case StorageTypeS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}

		return NewS3Storage(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}

// checkStoredName rejects names that could escape the storage root. The
// upload service never produces such names; this guards every backend
// against a caller-influenced name slipping through.
func checkStoredName(storedName string) error {
	if storedName == "" ||
		storedName != filepath.Base(storedName) ||
		strings.ContainsAny(storedName, "/\\") ||
		storedName == "." || storedName == ".." {
		return ErrUnsafeName
	}
	return nil
}

// ContentTypeForName determines the content type served for a stored name.
// Only the image allow-list maps to a concrete type; anything else is
// opaque bytes.
func ContentTypeForName(storedName string) string {
	switch strings.ToLower(filepath.Ext(storedName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
