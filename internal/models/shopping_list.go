package models

import (
	"time"
)

// ShoppingListItem copies ingredient name/quantity/unit at creation time, so
// later edits to the source recipe never mutate an existing list.
type ShoppingListItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	RecipeID       *uint     `gorm:"index" json:"recipe_id"`
	Recipe         *Recipe   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IngredientName string    `gorm:"size:200;not null" json:"ingredient_name"`
	Quantity       string    `gorm:"size:50;not null" json:"quantity"`
	Unit           string    `gorm:"size:50" json:"unit"`
	IsPurchased    bool      `gorm:"not null;default:false" json:"is_purchased"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}
