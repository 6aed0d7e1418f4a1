package database

import (
	"gorm.io/gorm"

	"github.com/platefork/backend/internal/models"
)

// Migrate creates or updates the schema for every catalog entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Cuisine{},
		&models.Diet{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Instruction{},
		&models.Rating{},
		&models.Favorite{},
		&models.ShoppingListItem{},
	)
}
