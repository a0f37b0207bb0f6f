package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"recipeshare-backend/repository"
	"recipeshare-backend/storage"

	"github.com/google/uuid"
)

// DefaultMaxFileSize caps uploads at 2 MiB unless configured otherwise.
const DefaultMaxFileSize = 2 * 1024 * 1024

// UploadService validates and persists recipe image uploads. The recipe
// record is only mutated after the bytes are safely on disk, and the stored
// name is always service-generated, never the caller's filename.
type UploadService struct {
	recipeRepo  *repository.RecipeRepository
	storage     storage.Storage
	maxFileSize int64

	allowedExtensions map[string]bool
	allowedMimeTypes  map[string]bool
}

// UploadServiceOption is a functional option for UploadService
type UploadServiceOption func(*UploadService)

// WithUploadRecipeRepository sets the recipe repository
func WithUploadRecipeRepository(repo *repository.RecipeRepository) UploadServiceOption {
	return func(s *UploadService) {
		s.recipeRepo = repo
	}
}

// WithUploadStorage sets the storage backend
func WithUploadStorage(st storage.Storage) UploadServiceOption {
	return func(s *UploadService) {
		s.storage = st
	}
}

// WithMaxFileSize overrides the upload size cap in bytes
func WithMaxFileSize(maxBytes int64) UploadServiceOption {
	return func(s *UploadService) {
		s.maxFileSize = maxBytes
	}
}

// NewUploadService creates a new upload service
func NewUploadService(opts ...UploadServiceOption) *UploadService {
	s := &UploadService{
		maxFileSize: DefaultMaxFileSize,
		allowedExtensions: map[string]bool{
			"jpg":  true,
			"jpeg": true,
			"png":  true,
			"gif":  true,
		},
		allowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/gif":  true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadImageRequest is the transient upload input: metadata as declared by
// the client plus the byte stream.
type UploadImageRequest struct {
	RecipeID         int
	OriginalName     string
	DeclaredMimeType string
	SizeBytes        int64
	Data             io.Reader
}

// UploadImageResult represents the result of a successful upload
type UploadImageResult struct {
	StoredName string
	SizeBytes  int64
}

// UploadImage runs the validation policy and, only if every check passes,
// writes the bytes under a fresh stored name and updates the recipe's image
// reference. Any failure leaves both storage and recipe untouched.
func (s *UploadService) UploadImage(ctx context.Context, req UploadImageRequest) (*UploadImageResult, error) {
	if s.recipeRepo == nil {
		return nil, errors.New("recipe repository not set")
	}
	if s.storage == nil {
		return nil, errors.New("storage not set")
	}

	// Recipe existence is checked before anything touches the disk.
	if _, err := s.recipeRepo.FindByID(req.RecipeID); err != nil {
		return nil, err
	}

	if req.Data == nil || req.OriginalName == "" {
		return nil, newValidationError("no file uploaded")
	}

	if req.SizeBytes > s.maxFileSize {
		return nil, newValidationError(fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxFileSize))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(req.OriginalName), "."))
	if !s.allowedExtensions[ext] {
		return nil, newValidationError("only image files are allowed (jpg, jpeg, png, gif)")
	}

	// Extension and declared MIME type must both pass independently.
	if !s.allowedMimeTypes[strings.ToLower(req.DeclaredMimeType)] {
		return nil, newValidationError("file content type must be image/jpeg, image/png or image/gif")
	}

	storedName := s.generateStoredName(ext)

	// The reader is capped one byte past the limit so a client lying about
	// SizeBytes is caught right after the payload arrives.
	written, err := s.storage.Upload(ctx, storedName, io.LimitReader(req.Data, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if written > s.maxFileSize {
		_ = s.storage.Delete(ctx, storedName)
		return nil, newValidationError(fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxFileSize))
	}

	// The image reference is updated only after a successful write, so a
	// recipe never points at a name that does not exist in storage.
	if _, err := s.recipeRepo.SetImage(req.RecipeID, storedName); err != nil {
		_ = s.storage.Delete(ctx, storedName)
		return nil, err
	}

	return &UploadImageResult{
		StoredName: storedName,
		SizeBytes:  written,
	}, nil
}

// generateStoredName builds a collision-free on-disk name from a
// nanosecond timestamp, a random uuid and the validated extension. The
// caller-supplied name never reaches the filesystem.
func (s *UploadService) generateStoredName(ext string) string {
	return fmt.Sprintf("img-%d-%s.%s", time.Now().UnixNano(), uuid.NewString(), ext)
}

// IsServableName reports whether a requested filename could have been
// generated by this service. The read-only static route uses it to refuse
// names outside the allow-list before touching storage.
func (s *UploadService) IsServableName(name string) bool {
	if name == "" || name != filepath.Base(name) {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return s.allowedExtensions[ext]
}
