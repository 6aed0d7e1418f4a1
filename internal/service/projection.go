package service

import (
	"gorm.io/gorm"

	"github.com/platefork/backend/internal/models"
	"github.com/platefork/backend/internal/types"
)

// Read-only projections from stored aggregates to response shapes. No side
// effects; is_favorited is the only per-request input.

func userPublic(u *models.User) types.UserPublic {
	return types.UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
	}
}

func categoryRef(c *models.Category) types.LookupRef {
	return types.LookupRef{ID: c.ID, Name: c.Name, Description: c.Description}
}

func cuisineRef(c *models.Cuisine) *types.LookupRef {
	if c == nil {
		return nil
	}
	return &types.LookupRef{ID: c.ID, Name: c.Name, Description: c.Description}
}

func dietRefs(diets []models.Diet) []types.LookupRef {
	refs := make([]types.LookupRef, 0, len(diets))
	for i := range diets {
		d := &diets[i]
		refs = append(refs, types.LookupRef{ID: d.ID, Name: d.Name, Description: d.Description})
	}
	return refs
}

func projectSummary(r *models.Recipe, favorited bool) types.RecipeSummary {
	return types.RecipeSummary{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description,
		Author:             userPublic(&r.Author),
		Category:           categoryRef(&r.Category),
		Cuisine:            cuisineRef(r.Cuisine),
		PrepTime:           r.PrepTime,
		CookTime:           r.CookTime,
		TotalTime:          r.TotalTime(),
		Servings:           r.Servings,
		Difficulty:         r.Difficulty,
		Image:              r.Image,
		CaloriesPerServing: r.CaloriesPerServing,
		AverageRating:      r.AverageRating(),
		IsFavorited:        favorited,
		CreatedAt:          r.CreatedAt,
	}
}

func projectDetail(r *models.Recipe, favorited bool) types.RecipeDetail {
	ingredients := make([]types.IngredientView, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, types.IngredientView{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}

	instructions := make([]types.InstructionView, 0, len(r.Instructions))
	for _, step := range r.Instructions {
		instructions = append(instructions, types.InstructionView{
			ID:         step.ID,
			StepNumber: step.StepNumber,
			Text:       step.Text,
		})
	}

	ratings := make([]types.RatingView, 0, len(r.Ratings))
	for i := range r.Ratings {
		rt := &r.Ratings[i]
		ratings = append(ratings, types.RatingView{
			ID:        rt.ID,
			User:      userPublic(&rt.User),
			Score:     rt.Score,
			Comment:   rt.Comment,
			CreatedAt: rt.CreatedAt,
		})
	}

	return types.RecipeDetail{
		RecipeSummary: projectSummary(r, favorited),
		Diets:         dietRefs(r.Diets),
		Ingredients:   ingredients,
		Instructions:  instructions,
		Ratings:       ratings,
		UpdatedAt:     r.UpdatedAt,
	}
}

// favoritedSet resolves is_favorited for a page of recipes with one query.
// Anonymous viewers (nil) favorite nothing.
func favoritedSet(db *gorm.DB, viewerID *uint, recipeIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool)
	if viewerID == nil || len(recipeIDs) == 0 {
		return set, nil
	}

	var favorited []uint
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
		Pluck("recipe_id", &favorited).Error
	if err != nil {
		return nil, err
	}
	for _, id := range favorited {
		set[id] = true
	}
	return set, nil
}
