package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"recipeshare-backend/repository"
	"recipeshare-backend/storage"

	"github.com/stretchr/testify/require"
)

func newUploadService(t *testing.T, opts ...UploadServiceOption) (*UploadService, *repository.RecipeRepository, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	repo := repository.NewRecipeRepository()
	base := []UploadServiceOption{
		WithUploadRecipeRepository(repo),
		WithUploadStorage(st),
	}
	return NewUploadService(append(base, opts...)...), repo, dir
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func pngUpload(recipeID int, name string) UploadImageRequest {
	data := "\x89PNG\r\n\x1a\nfake image bytes"
	return UploadImageRequest{
		RecipeID:         recipeID,
		OriginalName:     name,
		DeclaredMimeType: "image/png",
		SizeBytes:        int64(len(data)),
		Data:             strings.NewReader(data),
	}
}

func TestUploadImage_Success(t *testing.T) {
	svc, repo, dir := newUploadService(t)

	result, err := svc.UploadImage(context.Background(), pngUpload(1, "Photo.PNG"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(result.StoredName, "img-"))
	require.True(t, strings.HasSuffix(result.StoredName, ".png"))
	require.Greater(t, result.SizeBytes, int64(0))

	require.Equal(t, []string{result.StoredName}, storedFiles(t, dir))

	recipe, err := repo.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, result.StoredName, recipe.Image)
	require.Equal(t, []string{result.StoredName}, recipe.Images)
}

func TestUploadImage_RecipeNotFound(t *testing.T) {
	svc, _, dir := newUploadService(t)

	_, err := svc.UploadImage(context.Background(), pngUpload(999, "photo.png"))
	require.ErrorIs(t, err, repository.ErrRecipeNotFound)
	require.Empty(t, storedFiles(t, dir))
}

func TestUploadImage_MissingFile(t *testing.T) {
	svc, _, dir := newUploadService(t)

	_, err := svc.UploadImage(context.Background(), UploadImageRequest{RecipeID: 1})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "no file uploaded", vErr.Reason)
	require.Empty(t, storedFiles(t, dir))
}

func TestUploadImage_RejectsDisallowedExtension(t *testing.T) {
	svc, repo, dir := newUploadService(t)

	req := pngUpload(1, "payload.exe")
	_, err := svc.UploadImage(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Reason, "image files")
	require.Empty(t, storedFiles(t, dir))

	recipe, findErr := repo.FindByID(1)
	require.NoError(t, findErr)
	require.Equal(t, "default", recipe.Image)
}

func TestUploadImage_RejectsDisallowedMimeType(t *testing.T) {
	svc, _, dir := newUploadService(t)

	req := pngUpload(1, "photo.png")
	req.DeclaredMimeType = "application/octet-stream"
	_, err := svc.UploadImage(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Reason, "content type")
	require.Empty(t, storedFiles(t, dir))
}

func TestUploadImage_RejectsDeclaredOversize(t *testing.T) {
	svc, _, dir := newUploadService(t, WithMaxFileSize(8))

	req := pngUpload(1, "big.png")
	req.SizeBytes = 9
	_, err := svc.UploadImage(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Reason, "maximum size")
	require.Empty(t, storedFiles(t, dir))
}

func TestUploadImage_RejectsUndeclaredOversize(t *testing.T) {
	// The client lies about SizeBytes; the byte cap catches it after the
	// write and the partial object is rolled back.
	svc, _, dir := newUploadService(t, WithMaxFileSize(8))

	req := UploadImageRequest{
		RecipeID:         1,
		OriginalName:     "sneaky.png",
		DeclaredMimeType: "image/png",
		SizeBytes:        4,
		Data:             strings.NewReader(strings.Repeat("x", 64)),
	}
	_, err := svc.UploadImage(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Empty(t, storedFiles(t, dir))
}

func TestUploadImage_SameOriginalNameNeverCollides(t *testing.T) {
	svc, _, dir := newUploadService(t)

	first, err := svc.UploadImage(context.Background(), pngUpload(1, "photo.png"))
	require.NoError(t, err)
	second, err := svc.UploadImage(context.Background(), pngUpload(1, "photo.png"))
	require.NoError(t, err)

	require.NotEqual(t, first.StoredName, second.StoredName)
	require.ElementsMatch(t, []string{first.StoredName, second.StoredName}, storedFiles(t, dir))
}

func TestUploadImage_NeverUsesCallerName(t *testing.T) {
	svc, _, dir := newUploadService(t)

	req := pngUpload(1, "../../escape.png")
	result, err := svc.UploadImage(context.Background(), req)
	require.NoError(t, err)

	require.NotContains(t, result.StoredName, "escape")
	require.NotContains(t, result.StoredName, "..")
	require.Equal(t, []string{result.StoredName}, storedFiles(t, dir))
}

func TestIsServableName(t *testing.T) {
	svc, _, _ := newUploadService(t)

	require.True(t, svc.IsServableName("img-123-abc.png"))
	require.True(t, svc.IsServableName("img-123-abc.jpeg"))
	require.False(t, svc.IsServableName("shell.exe"))
	require.False(t, svc.IsServableName("../img-123-abc.png"))
	require.False(t, svc.IsServableName(""))
}
