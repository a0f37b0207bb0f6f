package service

import (
	"context"
	"errors"
	"time"

	"recipeshare-backend/models"
	"recipeshare-backend/repository"
	"recipeshare-backend/sanitize"
)

// CommentDateLayout is the format used for the stored comment timestamp.
const CommentDateLayout = "Jan 2, 2006 3:04:05 PM"

// CommentService handles comment ingestion for recipes
type CommentService struct {
	recipeRepo *repository.RecipeRepository
	now        func() time.Time
}

// CommentServiceOption is a functional option for CommentService
type CommentServiceOption func(*CommentService)

// WithCommentRecipeRepository sets the recipe repository
func WithCommentRecipeRepository(repo *repository.RecipeRepository) CommentServiceOption {
	return func(s *CommentService) {
		s.recipeRepo = repo
	}
}

// WithCommentClock overrides the timestamp source, used by tests
func WithCommentClock(now func() time.Time) CommentServiceOption {
	return func(s *CommentService) {
		s.now = now
	}
}

// NewCommentService creates a new comment service
func NewCommentService(opts ...CommentServiceOption) *CommentService {
	s := &CommentService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PostCommentRequest carries the raw, untrusted comment fields. Two client
// generations are in the wild: {user, text} and the legacy {name, comment}.
// Both alias pairs are accepted and collapse to one canonical shape.
type PostCommentRequest struct {
	RecipeID int
	User     string `json:"user"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	Comment  string `json:"comment"`
}

// normalize collapses the legacy field aliases into the canonical
// (user, text) pair. Missing fields stay lenient on purpose: user falls
// back to "Anonymous" and text to the empty string, matching the behavior
// existing clients rely on.
func (r *PostCommentRequest) normalize() (user, text string) {
	user = r.User
	if user == "" {
		user = r.Name
	}
	if user == "" {
		user = "Anonymous"
	}
	text = r.Text
	if text == "" {
		text = r.Comment
	}
	return user, text
}

// PostCommentResult represents the result of posting a comment
type PostCommentResult struct {
	Recipe  *models.Recipe
	Comment models.Comment
}

// PostComment sanitizes the untrusted fields and appends the comment to the
// recipe. The repository assigns the sequential comment id; the timestamp
// is taken at append time.
func (s *CommentService) PostComment(ctx context.Context, req PostCommentRequest) (*PostCommentResult, error) {
	if s.recipeRepo == nil {
		return nil, errors.New("recipe repository not set")
	}

	user, text := req.normalize()

	comment := models.Comment{
		User: sanitize.Clean(user),
		Text: sanitize.Clean(text),
		Date: s.now().Format(CommentDateLayout),
	}

	recipe, err := s.recipeRepo.AppendComment(req.RecipeID, comment)
	if err != nil {
		return nil, err
	}

	return &PostCommentResult{
		Recipe:  recipe,
		Comment: recipe.Comments[len(recipe.Comments)-1],
	}, nil
}
