package models

import (
	"time"
)

// Difficulty levels accepted on Recipe.Difficulty.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Recipe struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Title              string    `gorm:"size:200;not null" json:"title"`
	Description        string    `gorm:"type:text" json:"description"`
	AuthorID           uint      `gorm:"not null;index" json:"author_id"`
	Author             User      `json:"-"`
	CategoryID         uint      `gorm:"not null;index" json:"category_id"`
	Category           Category  `json:"-"`
	CuisineID          *uint     `gorm:"index" json:"cuisine_id"`
	Cuisine            *Cuisine  `json:"-"`
	Diets              []Diet    `gorm:"many2many:recipe_diets;constraint:OnDelete:CASCADE" json:"-"`
	PrepTime           int       `gorm:"not null;check:prep_time >= 0" json:"prep_time"`
	CookTime           int       `gorm:"not null;check:cook_time >= 0" json:"cook_time"`
	Servings           int       `gorm:"not null;default:1;check:servings > 0" json:"servings"`
	Difficulty         string    `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	Image              string    `gorm:"size:255" json:"image"`
	CaloriesPerServing *int      `json:"calories_per_serving"`

	Ingredients  []Ingredient  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Instructions []Instruction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Ratings      []Rating      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TotalTime is the derived prep+cook duration in minutes. Never stored.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// AverageRating is the arithmetic mean of submitted scores, 0 when unrated.
func (r *Recipe) AverageRating() float64 {
	if len(r.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rt := range r.Ratings {
		sum += rt.Score
	}
	return float64(sum) / float64(len(r.Ratings))
}

type Ingredient struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	RecipeID uint   `gorm:"not null;index" json:"-"`
	Name     string `gorm:"size:200;not null" json:"name"`
	// Quantity is free text so entries like "to taste" stay representable.
	Quantity string `gorm:"size:50;not null" json:"quantity"`
	Unit     string `gorm:"size:50" json:"unit"`
}

type Instruction struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	RecipeID   uint   `gorm:"not null;uniqueIndex:idx_recipe_step" json:"-"`
	StepNumber int    `gorm:"not null;uniqueIndex:idx_recipe_step;check:step_number >= 1" json:"step_number"`
	Text       string `gorm:"type:text;not null" json:"text"`
}
