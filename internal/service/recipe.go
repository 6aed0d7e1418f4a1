package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/platefork/backend/internal/models"
	"github.com/platefork/backend/internal/spoonacular"
	"github.com/platefork/backend/internal/types"
)

// upstreamSearchLimit bounds the number of records requested from the
// upstream source per list/search request.
const upstreamSearchLimit = 5

// UpstreamSource is the external recipe API seen by the merge engine.
type UpstreamSource interface {
	Search(ctx context.Context, query string, limit int) spoonacular.Outcome
	Random(ctx context.Context, count int) spoonacular.Outcome
	Information(ctx context.Context, id string) (*spoonacular.Detail, error)
}

// ListParams is the recognized filter specification for recipe listing.
// All structured filters combine conjunctively.
type ListParams struct {
	Title      string
	Difficulty string
	CategoryID uint
	CuisineID  uint
	// DietIDs matches ANY-of: a recipe qualifies when its diet set
	// intersects the requested IDs.
	DietIDs     []uint
	PrepTimeMax *int
	CookTimeMax *int
	CaloriesMax *int
	// Search filters locally over title/description/ingredient names and,
	// when non-empty, additionally triggers one bounded upstream query.
	Search   string
	Ordering string
	Page     int
	PageSize int
}

// ListResult carries one assembled page: the paginated local projections,
// the local total, and whatever the upstream contributed (possibly nothing).
type ListResult struct {
	Local    []types.RecipeSummary
	Total    int64
	Upstream []spoonacular.Record
}

// RecipeService owns recipe CRUD, favorites, ratings and the merge and
// filter engine over the local catalog plus the upstream source.
type RecipeService struct {
	db       *gorm.DB
	upstream UpstreamSource
}

func NewRecipeService(db *gorm.DB, upstream UpstreamSource) *RecipeService {
	return &RecipeService{
		db:       db,
		upstream: upstream,
	}
}

var orderableFields = map[string]bool{
	"created_at": true,
	"prep_time":  true,
	"cook_time":  true,
	"difficulty": true,
}

func orderClause(ordering string) string {
	field := strings.TrimPrefix(ordering, "-")
	if !orderableFields[field] {
		return "created_at DESC"
	}
	if strings.HasPrefix(ordering, "-") {
		return field + " DESC"
	}
	return field + " ASC"
}

// buildFilter applies every present structured filter as an AND predicate.
func (s *RecipeService) buildFilter(ctx context.Context, p ListParams) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Recipe{})

	if p.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(p.Title)+"%")
	}
	if p.Difficulty != "" {
		q = q.Where("difficulty = ?", p.Difficulty)
	}
	if p.CategoryID != 0 {
		q = q.Where("category_id = ?", p.CategoryID)
	}
	if p.CuisineID != 0 {
		q = q.Where("cuisine_id = ?", p.CuisineID)
	}
	if len(p.DietIDs) > 0 {
		q = q.Where("id IN (?)",
			s.db.Table("recipe_diets").Select("recipe_id").Where("diet_id IN ?", p.DietIDs))
	}
	if p.PrepTimeMax != nil {
		q = q.Where("prep_time <= ?", *p.PrepTimeMax)
	}
	if p.CookTimeMax != nil {
		q = q.Where("cook_time <= ?", *p.CookTimeMax)
	}
	if p.CaloriesMax != nil {
		q = q.Where("calories_per_serving <= ?", *p.CaloriesMax)
	}
	if p.Search != "" {
		like := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR id IN (?)",
			like, like,
			s.db.Table("ingredients").Select("recipe_id").Where("LOWER(name) LIKE ?", like))
	}

	return q
}

// List answers a list/search request: filter and paginate the local catalog,
// project the page, and append bounded upstream results when a free-text
// search was supplied. Upstream failure contributes nothing and is never an
// error; local store failure is.
func (s *RecipeService) List(ctx context.Context, p ListParams, viewerID *uint) (*ListResult, error) {
	q := s.buildFilter(ctx, p)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting recipes: %w", err)
	}

	q = q.Order(orderClause(p.Ordering))
	if p.PageSize > 0 {
		q = q.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
	}

	var recipes []models.Recipe
	err := q.
		Preload("Author").
		Preload("Category").
		Preload("Cuisine").
		Preload("Ratings").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}

	ids := make([]uint, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	favorited, err := favoritedSet(s.db.WithContext(ctx), viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving favorites: %w", err)
	}

	local := make([]types.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		local = append(local, projectSummary(&recipes[i], favorited[recipes[i].ID]))
	}

	result := &ListResult{Local: local, Total: total}

	if p.Search != "" {
		outcome := s.upstream.Search(ctx, p.Search, upstreamSearchLimit)
		if outcome.Unavailable {
			// Deliberate total isolation: upstream trouble degrades to
			// zero upstream records, never a request failure.
			log.Printf("Upstream recipe search unavailable: %s", outcome.Reason)
		} else {
			result.Upstream = outcome.Records
		}
	}

	return result, nil
}

// Merged returns every local recipe plus a random upstream sample, in one
// unpaginated response.
func (s *RecipeService) Merged(ctx context.Context, viewerID *uint) ([]types.RecipeSummary, []spoonacular.Record, error) {
	res, err := s.List(ctx, ListParams{}, viewerID)
	if err != nil {
		return nil, nil, err
	}

	outcome := s.upstream.Random(ctx, upstreamSearchLimit)
	if outcome.Unavailable {
		log.Printf("Upstream random sample unavailable: %s", outcome.Reason)
		return res.Local, nil, nil
	}
	return res.Local, outcome.Records, nil
}

// Get resolves a local recipe into its detail projection.
func (s *RecipeService) Get(ctx context.Context, id uint, viewerID *uint) (*types.RecipeDetail, error) {
	recipe, err := s.loadAggregate(ctx, id)
	if err != nil {
		return nil, err
	}

	favorited, err := favoritedSet(s.db.WithContext(ctx), viewerID, []uint{id})
	if err != nil {
		return nil, err
	}

	detail := projectDetail(recipe, favorited[id])
	return &detail, nil
}

// GetUpstream resolves an upstream-prefixed identifier via the external API.
// The local store is never consulted.
func (s *RecipeService) GetUpstream(ctx context.Context, id string) (*spoonacular.Detail, error) {
	return s.upstream.Information(ctx, strings.TrimPrefix(id, spoonacular.IDPrefix))
}

func (s *RecipeService) loadAggregate(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Cuisine").
		Preload("Diets").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.id ASC")
		}).
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("instructions.step_number ASC")
		}).
		Preload("Ratings").
		Preload("Ratings.User").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create persists a recipe aggregate authored by authorID.
func (s *RecipeService) Create(ctx context.Context, authorID uint, input *types.RecipeInput) (*types.RecipeDetail, error) {
	diets, err := s.resolveReferences(ctx, input)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:              input.Title,
		Description:        input.Description,
		AuthorID:           authorID,
		CategoryID:         input.CategoryID,
		CuisineID:          input.CuisineID,
		PrepTime:           input.PrepTime,
		CookTime:           input.CookTime,
		Servings:           input.Servings,
		Difficulty:         input.Difficulty,
		Image:              input.Image,
		CaloriesPerServing: input.CaloriesPerServing,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if len(diets) > 0 {
			if err := tx.Model(&recipe).Association("Diets").Append(&diets); err != nil {
				return err
			}
		}
		return createChildren(tx, recipe.ID, input)
	})
	if err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}

	return s.Get(ctx, recipe.ID, &authorID)
}

// Update replaces a recipe aggregate. Only the owning author may update.
func (s *RecipeService) Update(ctx context.Context, id, userID uint, input *types.RecipeInput) (*types.RecipeDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrForbidden
	}

	diets, err := s.resolveReferences(ctx, input)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":                input.Title,
			"description":          input.Description,
			"category_id":          input.CategoryID,
			"cuisine_id":           input.CuisineID,
			"prep_time":            input.PrepTime,
			"cook_time":            input.CookTime,
			"servings":             input.Servings,
			"difficulty":           input.Difficulty,
			"image":                input.Image,
			"calories_per_serving": input.CaloriesPerServing,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Diets").Replace(&diets); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Instruction{}).Error; err != nil {
			return err
		}
		return createChildren(tx, id, input)
	})
	if err != nil {
		return nil, fmt.Errorf("updating recipe: %w", err)
	}

	return s.Get(ctx, id, &userID)
}

// Delete removes a recipe and everything hanging off it. Only the owning
// author may delete.
func (s *RecipeService) Delete(ctx context.Context, id, userID uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.AuthorID != userID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{
			&models.Ingredient{}, &models.Instruction{}, &models.Rating{},
			&models.Favorite{}, &models.ShoppingListItem{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&recipe).Association("Diets").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// resolveReferences validates category/cuisine/diet references up front so a
// dangling ID reports as a field error rather than a store failure.
func (s *RecipeService) resolveReferences(ctx context.Context, input *types.RecipeInput) ([]models.Diet, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", input.CategoryID).Error; err != nil {
		return nil, &ValidationError{Field: "category_id", Message: "unknown category"}
	}

	if input.CuisineID != nil {
		var cuisine models.Cuisine
		if err := s.db.WithContext(ctx).First(&cuisine, "id = ?", *input.CuisineID).Error; err != nil {
			return nil, &ValidationError{Field: "cuisine_id", Message: "unknown cuisine"}
		}
	}

	var diets []models.Diet
	if len(input.DietIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", input.DietIDs).Find(&diets).Error; err != nil {
			return nil, err
		}
		if len(diets) != len(input.DietIDs) {
			return nil, &ValidationError{Field: "diet_ids", Message: "unknown diet"}
		}
	}
	return diets, nil
}

func createChildren(tx *gorm.DB, recipeID uint, input *types.RecipeInput) error {
	for _, ing := range input.Ingredients {
		row := models.Ingredient{
			RecipeID: recipeID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	for _, step := range input.Instructions {
		row := models.Instruction{
			RecipeID:   recipeID,
			StepNumber: step.StepNumber,
			Text:       step.Text,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Favorite bookmarks a recipe for the user. Idempotent.
func (s *RecipeService) Favorite(ctx context.Context, userID, recipeID uint) error {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return err
	}
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	return s.db.WithContext(ctx).
		Where(models.Favorite{UserID: userID, RecipeID: recipeID}).
		FirstOrCreate(&fav).Error
}

// Unfavorite removes a bookmark. Removing an absent bookmark is a no-op.
func (s *RecipeService) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{}).Error
}

// IsFavorite reports whether the user has bookmarked the recipe.
func (s *RecipeService) IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return false, err
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// ListFavorites returns the user's bookmarked recipes as list projections.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uint) ([]types.RecipeSummary, error) {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Recipe.Author").
		Preload("Recipe.Category").
		Preload("Recipe.Cuisine").
		Preload("Recipe.Ratings").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]types.RecipeSummary, 0, len(favorites))
	for i := range favorites {
		summaries = append(summaries, projectSummary(&favorites[i].Recipe, true))
	}
	return summaries, nil
}

// Rate records the user's score for a recipe, overwriting any prior rating
// by the same user.
func (s *RecipeService) Rate(ctx context.Context, userID, recipeID uint, score int, comment string) (*models.Rating, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{UserID: userID, RecipeID: recipeID, Score: score, Comment: comment}
		if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		rating.Score = score
		rating.Comment = comment
		if err := s.db.WithContext(ctx).Save(&rating).Error; err != nil {
			return nil, err
		}
	}
	return &rating, nil
}

// AttachImage uploads an image for a recipe the user owns and stores the
// resulting URL on the recipe.
func (s *RecipeService) AttachImage(ctx context.Context, recipeID, userID uint, images *ImageService, filename string, body io.Reader) (string, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if recipe.AuthorID != userID {
		return "", ErrForbidden
	}

	url, err := images.UploadRecipeImage(ctx, recipeID, filename, body)
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).Model(&recipe).Update("image", url).Error; err != nil {
		return "", err
	}
	return url, nil
}

func (s *RecipeService) requireRecipe(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
