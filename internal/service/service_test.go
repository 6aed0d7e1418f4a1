package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/platefork/backend/internal/models"
	"github.com/platefork/backend/internal/service"
	"github.com/platefork/backend/internal/spoonacular"
	"github.com/platefork/backend/internal/testdb"
	"github.com/platefork/backend/internal/types"
)

// fakeUpstream is a scriptable UpstreamSource that records how it was called.
type fakeUpstream struct {
	searchOutcome spoonacular.Outcome
	randomOutcome spoonacular.Outcome
	detail        *spoonacular.Detail
	detailErr     error

	searchCalls  int
	searchQuery  string
	randomCalls  int
	detailCalls  int
	lastDetailID string
}

func (f *fakeUpstream) Search(ctx context.Context, query string, limit int) spoonacular.Outcome {
	f.searchCalls++
	f.searchQuery = query
	return f.searchOutcome
}

func (f *fakeUpstream) Random(ctx context.Context, count int) spoonacular.Outcome {
	f.randomCalls++
	return f.randomOutcome
}

func (f *fakeUpstream) Information(ctx context.Context, id string) (*spoonacular.Detail, error) {
	f.detailCalls++
	f.lastDetailID = id
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

type taxonomy struct {
	Dinner     models.Category
	Lunch      models.Category
	Italian    models.Cuisine
	Vegetarian models.Diet
	Vegan      models.Diet
}

func seedTaxonomy(t *testing.T, db *gorm.DB) taxonomy {
	t.Helper()
	tx := taxonomy{
		Dinner:     models.Category{Name: "Dinner"},
		Lunch:      models.Category{Name: "Lunch"},
		Italian:    models.Cuisine{Name: "Italian"},
		Vegetarian: models.Diet{Name: "Vegetarian"},
		Vegan:      models.Diet{Name: "Vegan"},
	}
	require.NoError(t, db.Create(&tx.Dinner).Error)
	require.NoError(t, db.Create(&tx.Lunch).Error)
	require.NoError(t, db.Create(&tx.Italian).Error)
	require.NoError(t, db.Create(&tx.Vegetarian).Error)
	require.NoError(t, db.Create(&tx.Vegan).Error)
	return tx
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Name:         username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// recipeFixture bundles everything most recipe tests need.
type recipeFixture struct {
	db       *gorm.DB
	svc      *service.RecipeService
	upstream *fakeUpstream
	user     models.User
	tax      taxonomy
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()
	db := testdb.Open(t)
	upstream := &fakeUpstream{}
	return &recipeFixture{
		db:       db,
		svc:      service.NewRecipeService(db, upstream),
		upstream: upstream,
		user:     seedUser(t, db, "alice"),
		tax:      seedTaxonomy(t, db),
	}
}

func recipeInput(title string, categoryID uint, mutate ...func(*types.RecipeInput)) *types.RecipeInput {
	input := &types.RecipeInput{
		Title:      title,
		CategoryID: categoryID,
		PrepTime:   10,
		CookTime:   20,
		Servings:   2,
		Difficulty: models.DifficultyMedium,
		Ingredients: []types.IngredientInput{
			{Name: "Flour", Quantity: "200", Unit: "g"},
		},
		Instructions: []types.InstructionInput{
			{StepNumber: 1, Text: "Mix."},
		},
	}
	for _, m := range mutate {
		m(input)
	}
	return input
}

func (f *recipeFixture) create(t *testing.T, input *types.RecipeInput) *types.RecipeDetail {
	t.Helper()
	detail, err := f.svc.Create(context.Background(), f.user.ID, input)
	require.NoError(t, err)
	return detail
}
