package models

import (
	"time"
)

// Rating is unique per (recipe, user); re-rating overwrites the existing row.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_recipe_user_rating" json:"recipe_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_recipe_user_rating" json:"user_id"`
	User      User      `json:"-"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Comment   string    `gorm:"type:text" json:"comment"`
}
