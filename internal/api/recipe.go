package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platefork/backend/internal/service"
	"github.com/platefork/backend/internal/spoonacular"
	"github.com/platefork/backend/internal/types"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	shoppingService *service.ShoppingListService
	imageService    *service.ImageService
}

func NewRecipeHandler(recipeService *service.RecipeService, shoppingService *service.ShoppingListService, imageService *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		shoppingService: shoppingService,
		imageService:    imageService,
	}
}

// ListRecipes answers the merged list/search request: a filtered, paginated
// local page with best-effort upstream records appended after it.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	params := parseListParams(c)

	result, err := h.recipeService.List(c.Request.Context(), params, viewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	// Local results always precede upstream results; upstream records are
	// appended, never merged into the ordering or the page accounting.
	results := make([]any, 0, len(result.Local)+len(result.Upstream))
	for _, r := range result.Local {
		results = append(results, r)
	}
	for _, r := range result.Upstream {
		results = append(results, r)
	}

	page := types.Page{
		Count:   result.Total,
		Results: results,
	}
	if params.Page > 1 {
		page.Previous = pageURL(c, params.Page-1)
	}
	if int64(params.Page*params.PageSize) < result.Total {
		page.Next = pageURL(c, params.Page+1)
	}

	c.JSON(http.StatusOK, page)
}

// MergedRecipes returns every local recipe plus a random upstream sample.
func (h *RecipeHandler) MergedRecipes(c *gin.Context) {
	local, upstream, err := h.recipeService.Merged(c.Request.Context(), viewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	recipes := make([]any, 0, len(local)+len(upstream))
	for _, r := range local {
		recipes = append(recipes, r)
	}
	for _, r := range upstream {
		recipes = append(recipes, r)
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe resolves a mixed identifier: upstream-prefixed ids go to the
// external API, anything else to the local catalog.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")

	// gin cannot register a static /recipes/merged route next to the
	// /recipes/:id wildcard, so the dispatch happens here.
	if id == "merged" {
		h.MergedRecipes(c)
		return
	}

	if spoonacular.IsUpstreamID(id) {
		detail, err := h.recipeService.GetUpstream(c.Request.Context(), id)
		if err != nil {
			if statusErr, ok := err.(*spoonacular.StatusError); ok {
				c.JSON(statusErr.Code, gin.H{"error": "Recipe not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, detail)
		return
	}

	localID, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.recipeService.Get(c.Request.Context(), localID, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.recipeService.Create(c.Request.Context(), userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.recipeService.Update(c.Request.Context(), id, userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Favorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Unfavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *RecipeHandler) IsFavorite(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	fav, err := h.recipeService.IsFavorite(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": fav})
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	favorites, err := h.recipeService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req types.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.recipeService.Rate(c.Request.Context(), userID, id, req.Score, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// AddToShoppingList copies the recipe's ingredients into the caller's list.
func (h *RecipeHandler) AddToShoppingList(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.shoppingService.AddRecipeIngredients(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

// UploadRecipeImage stores an image for a recipe the caller owns.
func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.imageService.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image file"})
		return
	}
	defer file.Close()

	url, err := h.recipeService.AttachImage(c.Request.Context(), id, userID, h.imageService, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": url})
}

func parseListParams(c *gin.Context) service.ListParams {
	params := service.ListParams{
		Title:      c.Query("title"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
		Page:       positiveIntQuery(c, "page", 1),
		PageSize:   positiveIntQuery(c, "page_size", defaultPageSize),
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	if v, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
		params.CategoryID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("cuisine"), 10, 64); err == nil {
		params.CuisineID = uint(v)
	}
	params.DietIDs = parseDietIDs(c.QueryArray("diets"))
	params.PrepTimeMax = intQueryPtr(c, "prep_time_max")
	params.CookTimeMax = intQueryPtr(c, "cook_time_max")
	params.CaloriesMax = intQueryPtr(c, "calories_max")

	return params
}

// parseDietIDs accepts both repeated parameters (?diets=1&diets=2) and a
// single comma-separated value (?diets=1,2).
func parseDietIDs(values []string) []uint {
	var ids []uint
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
				ids = append(ids, uint(v))
			}
		}
	}
	return ids
}

func positiveIntQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func intQueryPtr(c *gin.Context, name string) *int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return nil
	}
	return &v
}

func pageURL(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
