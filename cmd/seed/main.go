package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platefork/backend/config"
	"github.com/platefork/backend/internal/database"
	"github.com/platefork/backend/internal/models"
)

type seedRecipe struct {
	Title        string
	Description  string
	Category     string
	Cuisine      string
	Diets        []string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Calories     int
	Ingredients  []models.Ingredient
	Instructions []string
}

var lookups = map[string][][2]string{
	"categories": {
		{"Breakfast", "Morning meals and brunch dishes"},
		{"Lunch", "Midday meals and light dishes"},
		{"Dinner", "Evening meals and hearty dishes"},
		{"Dessert", "Sweet treats and desserts"},
		{"Snacks", "Quick bites and appetizers"},
		{"Beverages", "Drinks and smoothies"},
	},
	"cuisines": {
		{"Italian", "Traditional Italian cuisine"},
		{"Mexican", "Traditional Mexican cuisine"},
		{"Asian", "Asian fusion cuisine"},
		{"American", "Traditional American cuisine"},
		{"Mediterranean", "Mediterranean cuisine"},
		{"Indian", "Traditional Indian cuisine"},
	},
	"diets": {
		{"Vegetarian", "No meat, fish, or poultry"},
		{"Vegan", "No animal products"},
		{"Gluten-Free", "No gluten-containing ingredients"},
		{"Keto", "Low-carb, high-fat diet"},
		{"Paleo", "Stone-age inspired diet"},
		{"Dairy-Free", "No dairy products"},
	},
}

var recipes = []seedRecipe{
	{
		Title:       "Classic Spaghetti Carbonara",
		Description: "A traditional Italian pasta dish with eggs, cheese, and pancetta.",
		Category:    "Dinner",
		Cuisine:     "Italian",
		PrepTime:    10,
		CookTime:    20,
		Servings:    4,
		Difficulty:  models.DifficultyMedium,
		Calories:    520,
		Ingredients: []models.Ingredient{
			{Name: "Spaghetti", Quantity: "400", Unit: "g"},
			{Name: "Pancetta", Quantity: "150", Unit: "g"},
			{Name: "Eggs", Quantity: "3", Unit: "large"},
			{Name: "Parmesan cheese", Quantity: "100", Unit: "g"},
			{Name: "Black pepper", Quantity: "1", Unit: "tsp"},
			{Name: "Salt", Quantity: "to taste"},
		},
		Instructions: []string{
			"Cook spaghetti in salted boiling water until al dente.",
			"Meanwhile, dice pancetta and cook in a large pan until crispy.",
			"Beat eggs with grated Parmesan and black pepper.",
			"Drain pasta, reserving some pasta water.",
			"Add hot pasta to pancetta pan, remove from heat.",
			"Quickly stir in egg mixture, adding pasta water as needed.",
			"Serve immediately with extra Parmesan and black pepper.",
		},
	},
	{
		Title:       "Chicken Tacos",
		Description: "Delicious and easy chicken tacos with fresh toppings.",
		Category:    "Dinner",
		Cuisine:     "Mexican",
		PrepTime:    15,
		CookTime:    25,
		Servings:    4,
		Difficulty:  models.DifficultyEasy,
		Calories:    380,
		Ingredients: []models.Ingredient{
			{Name: "Chicken breast", Quantity: "500", Unit: "g"},
			{Name: "Taco seasoning", Quantity: "1", Unit: "packet"},
			{Name: "Corn tortillas", Quantity: "8", Unit: "pieces"},
			{Name: "Lettuce", Quantity: "1", Unit: "head"},
			{Name: "Tomatoes", Quantity: "2", Unit: "medium"},
			{Name: "Cheddar cheese", Quantity: "100", Unit: "g"},
			{Name: "Sour cream", Quantity: "200", Unit: "ml"},
			{Name: "Lime", Quantity: "2", Unit: "pieces"},
		},
		Instructions: []string{
			"Season chicken with taco seasoning and cook in a pan until done.",
			"Warm tortillas in a dry pan or microwave.",
			"Shred lettuce and dice tomatoes.",
			"Grate cheese and cut lime into wedges.",
			"Slice cooked chicken into strips.",
			"Assemble tacos with chicken, lettuce, tomatoes, and cheese.",
			"Serve with sour cream and lime wedges.",
		},
	},
	{
		Title:       "Vegetarian Buddha Bowl",
		Description: "A nutritious bowl packed with fresh vegetables, grains, and protein.",
		Category:    "Lunch",
		Cuisine:     "Asian",
		Diets:       []string{"Vegetarian"},
		PrepTime:    20,
		CookTime:    30,
		Servings:    2,
		Difficulty:  models.DifficultyMedium,
		Calories:    450,
		Ingredients: []models.Ingredient{
			{Name: "Quinoa", Quantity: "200", Unit: "g"},
			{Name: "Sweet potato", Quantity: "1", Unit: "large"},
			{Name: "Broccoli", Quantity: "200", Unit: "g"},
			{Name: "Chickpeas", Quantity: "400", Unit: "g"},
			{Name: "Avocado", Quantity: "1", Unit: "piece"},
			{Name: "Tahini", Quantity: "2", Unit: "tbsp"},
			{Name: "Lemon juice", Quantity: "2", Unit: "tbsp"},
			{Name: "Olive oil", Quantity: "2", Unit: "tbsp"},
		},
		Instructions: []string{
			"Cook quinoa according to package instructions.",
			"Roast diced sweet potato at 200°C for 25 minutes.",
			"Steam broccoli until tender, about 5 minutes.",
			"Drain and rinse chickpeas.",
			"Whisk tahini, lemon juice, olive oil and a splash of water into a dressing.",
			"Arrange quinoa, vegetables and chickpeas in bowls.",
			"Top with sliced avocado and drizzle with dressing.",
		},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Sample data created")
}

func seed(db *gorm.DB) error {
	admin, err := ensureAdmin(db)
	if err != nil {
		return err
	}

	for _, row := range lookups["categories"] {
		if err := upsertLookup(db, &models.Category{Name: row[0], Description: row[1]}); err != nil {
			return err
		}
	}
	for _, row := range lookups["cuisines"] {
		if err := upsertLookup(db, &models.Cuisine{Name: row[0], Description: row[1]}); err != nil {
			return err
		}
	}
	for _, row := range lookups["diets"] {
		if err := upsertLookup(db, &models.Diet{Name: row[0], Description: row[1]}); err != nil {
			return err
		}
	}

	for _, r := range recipes {
		if err := createRecipe(db, admin.ID, r); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdmin(db *gorm.DB) (*models.User, error) {
	var admin models.User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin = models.User{
		Username:     "admin",
		Name:         "Admin",
		Email:        "admin@admin.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	log.Println("Created admin user")
	return &admin, nil
}

func upsertLookup(db *gorm.DB, row any) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(row).Error
}

func createRecipe(db *gorm.DB, authorID uint, r seedRecipe) error {
	var existing int64
	if err := db.Model(&models.Recipe{}).Where("title = ?", r.Title).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	var category models.Category
	if err := db.Where("name = ?", r.Category).First(&category).Error; err != nil {
		return err
	}
	var cuisine models.Cuisine
	if err := db.Where("name = ?", r.Cuisine).First(&cuisine).Error; err != nil {
		return err
	}
	var diets []models.Diet
	if len(r.Diets) > 0 {
		if err := db.Where("name IN ?", r.Diets).Find(&diets).Error; err != nil {
			return err
		}
	}

	calories := r.Calories
	recipe := models.Recipe{
		Title:              r.Title,
		Description:        r.Description,
		AuthorID:           authorID,
		CategoryID:         category.ID,
		CuisineID:          &cuisine.ID,
		Diets:              diets,
		PrepTime:           r.PrepTime,
		CookTime:           r.CookTime,
		Servings:           r.Servings,
		Difficulty:         r.Difficulty,
		CaloriesPerServing: &calories,
		Ingredients:        r.Ingredients,
	}
	for i, text := range r.Instructions {
		recipe.Instructions = append(recipe.Instructions, models.Instruction{
			StepNumber: i + 1,
			Text:       text,
		})
	}

	if err := db.Create(&recipe).Error; err != nil {
		return err
	}
	log.Printf("Created recipe %q", r.Title)
	return nil
}
