package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/platefork/backend/internal/api"
	"github.com/platefork/backend/internal/models"
	"github.com/platefork/backend/internal/router"
	"github.com/platefork/backend/internal/service"
	"github.com/platefork/backend/internal/spoonacular"
	"github.com/platefork/backend/internal/testdb"
	"github.com/platefork/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// upstreamStub is an httptest server standing in for the external recipe
// API. Handlers are registered per path; everything else 404s. Hits records
// how often each path was called.
type upstreamStub struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
}

func newUpstreamStub(t *testing.T) *upstreamStub {
	t.Helper()
	stub := &upstreamStub{
		handlers: make(map[string]http.HandlerFunc),
		hits:     make(map[string]int),
	}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.hits[r.URL.Path]++
		handler, ok := stub.handlers[r.URL.Path]
		stub.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *upstreamStub) handle(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *upstreamStub) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// testApp wires the real router against an in-memory database and the
// upstream stub.
type testApp struct {
	engine   *gin.Engine
	db       *gorm.DB
	upstream *upstreamStub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testdb.Open(t)
	upstream := newUpstreamStub(t)

	client := spoonacular.New(spoonacular.Config{
		APIKey:  "test-key",
		BaseURL: upstream.server.URL,
	}, upstream.server.Client())

	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db, client)
	shoppingService := service.NewShoppingListService(db)
	imageService := service.NewImageService(nil)

	engine := router.SetupRouter(router.Handlers{
		Auth:         api.NewAuthHandler(authService),
		Recipes:      api.NewRecipeHandler(recipeService, shoppingService, imageService),
		ShoppingList: api.NewShoppingListHandler(shoppingService),
		AuthService:  authService,
		DB:           db,
	})

	return &testApp{engine: engine, db: db, upstream: upstream}
}

// request performs one in-process HTTP request, optionally authenticated.
func (a *testApp) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// register creates a user through the API and returns its token.
func (a *testApp) register(t *testing.T, username string) (types.UserPublic, string) {
	t.Helper()

	w := a.request(t, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AuthResponse
	decodeJSON(t, w, &resp)
	return resp.User, resp.Token
}

func (a *testApp) seedTaxonomy(t *testing.T) (models.Category, models.Cuisine, models.Diet) {
	t.Helper()
	category := models.Category{Name: "Dinner", Description: "Evening meals"}
	cuisine := models.Cuisine{Name: "Italian"}
	diet := models.Diet{Name: "Vegetarian"}
	require.NoError(t, a.db.Create(&category).Error)
	require.NoError(t, a.db.Create(&cuisine).Error)
	require.NoError(t, a.db.Create(&diet).Error)
	return category, cuisine, diet
}

func validRecipeInput(title string, categoryID uint) types.RecipeInput {
	return types.RecipeInput{
		Title:      title,
		CategoryID: categoryID,
		PrepTime:   10,
		CookTime:   20,
		Servings:   2,
		Difficulty: models.DifficultyEasy,
		Ingredients: []types.IngredientInput{
			{Name: "Tomato", Quantity: "2", Unit: "pieces"},
		},
		Instructions: []types.InstructionInput{
			{StepNumber: 1, Text: "Chop the tomatoes."},
		},
	}
}

// createRecipe creates a recipe through the API and returns its id.
func (a *testApp) createRecipe(t *testing.T, token string, input types.RecipeInput) uint {
	t.Helper()
	w := a.request(t, http.MethodPost, "/api/v1/recipes", token, input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var detail types.RecipeDetail
	decodeJSON(t, w, &detail)
	return detail.ID
}
