package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefork/backend/internal/models"
)

// LookupHandler serves the read-only category/cuisine/diet endpoints.
type LookupHandler struct {
	db *gorm.DB
}

func NewLookupHandler(db *gorm.DB) *LookupHandler {
	return &LookupHandler{db: db}
}

func (h *LookupHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", listOf[models.Category](h.db, "categories"))
	router.GET("/categories/:id", getOne[models.Category](h.db))
	router.GET("/cuisines", listOf[models.Cuisine](h.db, "cuisines"))
	router.GET("/cuisines/:id", getOne[models.Cuisine](h.db))
	router.GET("/diets", listOf[models.Diet](h.db, "diets"))
	router.GET("/diets/:id", getOne[models.Diet](h.db))
}

func listOf[T any](db *gorm.DB, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []T
		if err := db.WithContext(c.Request.Context()).Order("name ASC").Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch " + key})
			return
		}
		c.JSON(http.StatusOK, gin.H{key: rows})
	}
}

func getOne[T any](db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var row T
		if err := db.WithContext(c.Request.Context()).First(&row, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, row)
	}
}
