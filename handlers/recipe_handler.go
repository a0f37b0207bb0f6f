package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"recipeshare-backend/repository"
	"recipeshare-backend/service"
	"recipeshare-backend/storage"

	"github.com/gin-gonic/gin"
)

// RecipeHandler handles HTTP requests for the recipe catalog and the two
// ingestion pipelines (comments and image uploads).
type RecipeHandler struct {
	recipeRepo     *repository.RecipeRepository
	commentService *service.CommentService
	uploadService  *service.UploadService
	storage        storage.Storage
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(
	recipeRepo *repository.RecipeRepository,
	commentService *service.CommentService,
	uploadService *service.UploadService,
	st storage.Storage,
) *RecipeHandler {
	return &RecipeHandler{
		recipeRepo:     recipeRepo,
		commentService: commentService,
		uploadService:  uploadService,
		storage:        st,
	}
}

// ListRecipes handles GET /recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.recipeRepo.ListAll())
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeRepo.FindByID(id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// PostComment handles POST /recipes/:id/comment
func (h *RecipeHandler) PostComment(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	var req service.PostCommentRequest
	// Bind errors are deliberately ignored: an empty or malformed body
	// degrades to empty fields, which existing clients depend on.
	_ = c.ShouldBindJSON(&req)
	req.RecipeID = id

	result, err := h.commentService.PostComment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added",
		"recipe":  result.Recipe,
	})
}

// UploadImage handles POST /recipes/:id/upload
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("failed to open multipart file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadImage(c.Request.Context(), service.UploadImageRequest{
		RecipeID:         id,
		OriginalName:     fileHeader.Filename,
		DeclaredMimeType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:        fileHeader.Size,
		Data:             file,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded",
		"filename": result.StoredName,
	})
}

// ServeUpload handles GET /uploads/:filename. Files stream back with a
// fixed image content type and nosniff so stored bytes are never
// interpreted as anything executable.
func (h *RecipeHandler) ServeUpload(c *gin.Context) {
	filename := c.Param("filename")
	if !h.uploadService.IsServableName(filename) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", storage.ContentTypeForName(filename))
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		log.Printf("failed to stream %s: %v", filename, err)
	}
}

// recipeID parses the :id path parameter, writing the error response
// itself when the id is not numeric.
func (h *RecipeHandler) recipeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return 0, false
	}
	return id, true
}

// writeError maps the service error taxonomy onto HTTP statuses. Unexpected
// failures are logged and reported generically, never echoed to the caller.
func (h *RecipeHandler) writeError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
