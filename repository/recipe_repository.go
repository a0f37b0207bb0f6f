package repository

import (
	"errors"
	"sync"

	"recipeshare-backend/models"
)

// ErrRecipeNotFound is returned when no recipe matches the given id.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository holds the in-memory recipe catalog. All access goes
// through the lock; comment ids are assigned inside the write critical
// section so concurrent appends to one recipe can never collide.
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes map[int]*models.Recipe
	order   []int
}

// NewRecipeRepository creates a repository seeded with the initial catalog.
func NewRecipeRepository() *RecipeRepository {
	r := &RecipeRepository{
		recipes: make(map[int]*models.Recipe),
	}
	for _, recipe := range models.SeedRecipes() {
		r.recipes[recipe.ID] = recipe
		r.order = append(r.order, recipe.ID)
	}
	return r
}

// FindByID retrieves a recipe by id. The returned recipe is a copy.
func (r *RecipeRepository) FindByID(id int) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, ok := r.recipes[id]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return recipe.Clone(), nil
}

// ListAll returns all recipes in seed order, as copies.
func (r *RecipeRepository) ListAll() []*models.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]*models.Recipe, 0, len(r.order))
	for _, id := range r.order {
		recipes = append(recipes, r.recipes[id].Clone())
	}
	return recipes
}

// AppendComment appends a comment to a recipe, assigning the next
// sequential id (current count + 1) under the write lock. Returns the
// updated recipe as a copy.
func (r *RecipeRepository) AppendComment(recipeID int, comment models.Comment) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe, ok := r.recipes[recipeID]
	if !ok {
		return nil, ErrRecipeNotFound
	}

	comment.ID = len(recipe.Comments) + 1
	recipe.Comments = append(recipe.Comments, comment)
	return recipe.Clone(), nil
}

// SetImage records a stored filename as the recipe's current image and
// appends it to the image history. Callers must only pass names that were
// successfully written to storage.
func (r *RecipeRepository) SetImage(recipeID int, storedName string) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe, ok := r.recipes[recipeID]
	if !ok {
		return nil, ErrRecipeNotFound
	}

	recipe.Image = storedName
	recipe.Images = append(recipe.Images, storedName)
	return recipe.Clone(), nil
}
