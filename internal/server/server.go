package server

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platefork/backend/config"
	"github.com/platefork/backend/internal/api"
	"github.com/platefork/backend/internal/middleware"
	"github.com/platefork/backend/internal/router"
	"github.com/platefork/backend/internal/service"
	"github.com/platefork/backend/internal/spoonacular"
)

// Deps carries the external collaborators the server needs. Redis and S3 are
// optional; without them rate limiting and image upload degrade gracefully.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	S3    *config.S3Config
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New wires services, handlers and routes into a ready-to-start server.
func New(cfg *config.Config, deps Deps) *Server {
	upstream := spoonacular.New(spoonacular.Config{
		APIKey:  cfg.SpoonacularAPIKey,
		BaseURL: cfg.SpoonacularBaseURL,
	}, nil)

	authService := service.NewAuthService(deps.DB, cfg.JWTSecret)
	recipeService := service.NewRecipeService(deps.DB, upstream)
	shoppingService := service.NewShoppingListService(deps.DB)
	imageService := service.NewImageService(deps.S3)

	var limiter *middleware.RateLimiter
	if deps.Redis != nil {
		limiter = middleware.NewRecipeMutationRateLimiter(deps.Redis)
	}

	engine := router.SetupRouter(router.Handlers{
		Auth:            api.NewAuthHandler(authService),
		Recipes:         api.NewRecipeHandler(recipeService, shoppingService, imageService),
		ShoppingList:    api.NewShoppingListHandler(shoppingService),
		AuthService:     authService,
		DB:              deps.DB,
		MutationLimiter: limiter,
	})

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:    net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler: engine,
		},
	}
}

// Start starts the server and blocks until it stops serving.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
