package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platefork/backend/internal/models"
	"github.com/platefork/backend/internal/types"
)

// ShoppingListService handles per-user shopping list mutations. Every
// operation is scoped to the calling user; items of other users are
// unreachable.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// List returns the user's items, newest first.
func (s *ShoppingListService) List(ctx context.Context, userID uint) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Create adds one item for the user.
func (s *ShoppingListService) Create(ctx context.Context, userID uint, input *types.ShoppingListItemInput) (*models.ShoppingListItem, error) {
	item := models.ShoppingListItem{
		UserID:         userID,
		RecipeID:       input.RecipeID,
		IngredientName: input.IngredientName,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// AddRecipeIngredients copies every ingredient of the recipe into the user's
// list. The copy is taken at this moment; later recipe edits do not touch
// the created items.
func (s *ShoppingListService) AddRecipeIngredients(ctx context.Context, userID, recipeID uint) ([]models.ShoppingListItem, error) {
	var ingredients []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		if err := s.requireRecipe(ctx, recipeID); err != nil {
			return nil, err
		}
	}

	items := make([]models.ShoppingListItem, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, models.ShoppingListItem{
			UserID:         userID,
			RecipeID:       &recipeID,
			IngredientName: ing.Name,
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
		})
	}
	if len(items) > 0 {
		if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Update replaces the editable fields of one of the user's items.
func (s *ShoppingListService) Update(ctx context.Context, userID, itemID uint, input *types.ShoppingListItemInput) (*models.ShoppingListItem, error) {
	item, err := s.owned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.IngredientName = input.IngredientName
	item.Quantity = input.Quantity
	item.Unit = input.Unit
	item.RecipeID = input.RecipeID
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes one of the user's items.
func (s *ShoppingListService) Delete(ctx context.Context, userID, itemID uint) error {
	item, err := s.owned(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}

// TogglePurchased flips the purchased flag on one of the user's items.
func (s *ShoppingListService) TogglePurchased(ctx context.Context, userID, itemID uint) (*models.ShoppingListItem, error) {
	item, err := s.owned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.IsPurchased = !item.IsPurchased
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ClearPurchased removes every purchased item of the user and reports how
// many were removed.
func (s *ShoppingListService) ClearPurchased(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND is_purchased = ?", userID, true).
		Delete(&models.ShoppingListItem{})
	return result.RowsAffected, result.Error
}

func (s *ShoppingListService) owned(ctx context.Context, userID, itemID uint) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ShoppingListService) requireRecipe(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
