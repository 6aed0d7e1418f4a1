package types

// Request bodies accepted at the API boundary. Each endpoint accepts exactly
// one JSON shape; there are no alternative form encodings.

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  UserPublic `json:"user"`
}

type IngredientInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity" binding:"required"`
	Unit     string `json:"unit"`
}

type InstructionInput struct {
	StepNumber int    `json:"step_number" binding:"required,min=1"`
	Text       string `json:"text" binding:"required"`
}

type RecipeInput struct {
	Title              string             `json:"title" binding:"required,max=200"`
	Description        string             `json:"description"`
	CategoryID         uint               `json:"category_id" binding:"required"`
	CuisineID          *uint              `json:"cuisine_id"`
	DietIDs            []uint             `json:"diet_ids"`
	PrepTime           int                `json:"prep_time" binding:"gte=0"`
	CookTime           int                `json:"cook_time" binding:"gte=0"`
	Servings           int                `json:"servings" binding:"required,gte=1"`
	Difficulty         string             `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Image              string             `json:"image"`
	CaloriesPerServing *int               `json:"calories_per_serving"`
	Ingredients        []IngredientInput  `json:"ingredients" binding:"required,min=1,dive"`
	Instructions       []InstructionInput `json:"instructions" binding:"required,min=1,dive"`
}

type RateRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ShoppingListItemInput struct {
	IngredientName string `json:"ingredient_name" binding:"required"`
	Quantity       string `json:"quantity" binding:"required"`
	Unit           string `json:"unit"`
	RecipeID       *uint  `json:"recipe_id"`
}
