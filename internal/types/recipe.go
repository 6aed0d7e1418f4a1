package types

import (
	"time"
)

// UserPublic is the public identity shape embedded in recipe responses.
type UserPublic struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// LookupRef is the response shape shared by category, cuisine and diet.
type LookupRef struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RecipeSummary is the list projection of a locally stored recipe.
type RecipeSummary struct {
	ID                 uint       `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Author             UserPublic `json:"author"`
	Category           LookupRef  `json:"category"`
	Cuisine            *LookupRef `json:"cuisine"`
	PrepTime           int        `json:"prep_time"`
	CookTime           int        `json:"cook_time"`
	TotalTime          int        `json:"total_time"`
	Servings           int        `json:"servings"`
	Difficulty         string     `json:"difficulty"`
	Image              string     `json:"image"`
	CaloriesPerServing *int       `json:"calories_per_serving"`
	AverageRating      float64    `json:"average_rating"`
	IsFavorited        bool       `json:"is_favorited"`
	CreatedAt          time.Time  `json:"created_at"`
}

type IngredientView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type InstructionView struct {
	ID         uint   `json:"id"`
	StepNumber int    `json:"step_number"`
	Text       string `json:"text"`
}

type RatingView struct {
	ID        uint       `json:"id"`
	User      UserPublic `json:"user"`
	Score     int        `json:"score"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
}

// RecipeDetail adds the full child collections to the list projection.
type RecipeDetail struct {
	RecipeSummary
	Diets        []LookupRef       `json:"diets"`
	Ingredients  []IngredientView  `json:"ingredients"`
	Instructions []InstructionView `json:"instructions"`
	Ratings      []RatingView      `json:"ratings"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Page wraps a paginated local result set. Count, next and previous account
// for local rows only; upstream records appended to Results sit outside the
// page accounting.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []any   `json:"results"`
}
