package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefork/backend/internal/api"
	"github.com/platefork/backend/internal/middleware"
	"github.com/platefork/backend/internal/service"
)

// Handlers bundles everything SetupRouter needs to wire the API.
type Handlers struct {
	Auth         *api.AuthHandler
	Recipes      *api.RecipeHandler
	ShoppingList *api.ShoppingListHandler
	AuthService  *service.AuthService
	DB           *gorm.DB
	// MutationLimiter may be nil, in which case no rate limiting is applied.
	MutationLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	h.Auth.RegisterRoutes(v1)

	// Taxonomy lookups
	api.NewLookupHandler(h.DB).RegisterRoutes(v1)

	// Recipe routes. Listing and detail are public but honor a bearer token
	// when one is sent, so is_favorited can be filled in for the viewer.
	recipes := v1.Group("/recipes")
	recipes.Use(middleware.OptionalAuthMiddleware(h.AuthService))
	{
		recipes.GET("", h.Recipes.ListRecipes)
		recipes.GET("/:id", h.Recipes.GetRecipe)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(h.AuthService))
	{
		mutations := protected.Group("/recipes")
		mutations.Use(h.MutationLimiter.Middleware())
		{
			mutations.POST("", h.Recipes.CreateRecipe)
			mutations.PUT("/:id", h.Recipes.UpdateRecipe)
			mutations.DELETE("/:id", h.Recipes.DeleteRecipe)
			mutations.POST("/:id/image", h.Recipes.UploadRecipeImage)
		}

		protected.POST("/recipes/:id/favorite", h.Recipes.FavoriteRecipe)
		protected.DELETE("/recipes/:id/favorite", h.Recipes.UnfavoriteRecipe)
		protected.GET("/recipes/:id/favorite", h.Recipes.IsFavorite)
		protected.POST("/recipes/:id/rate", h.Recipes.RateRecipe)
		protected.POST("/recipes/:id/add-to-shopping-list", h.Recipes.AddToShoppingList)
		protected.GET("/favorites", h.Recipes.ListFavorites)

		h.ShoppingList.RegisterRoutes(protected)
	}

	return router
}
