package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefork/backend/internal/models"
	"github.com/platefork/backend/internal/types"
)

func TestShoppingListEndpoints(t *testing.T) {
	app := newTestApp(t)
	_, token := app.register(t, "alice")

	w := app.request(t, http.MethodGet, "/api/v1/shopping-list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.request(t, http.MethodPost, "/api/v1/shopping-list", token, types.ShoppingListItemInput{
		IngredientName: "Milk",
		Quantity:       "1",
		Unit:           "l",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.ShoppingListItem
	decodeJSON(t, w, &item)
	assert.Equal(t, "Milk", item.IngredientName)

	w = app.request(t, http.MethodPut, fmt.Sprintf("/api/v1/shopping-list/%d", item.ID), token,
		types.ShoppingListItemInput{IngredientName: "Oat milk", Quantity: "2", Unit: "l"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &item)
	assert.Equal(t, "Oat milk", item.IngredientName)

	w = app.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/shopping-list/%d/toggle-purchased", item.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &item)
	assert.True(t, item.IsPurchased)

	w = app.request(t, http.MethodGet, "/api/v1/shopping-list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Items []models.ShoppingListItem `json:"items"`
	}
	decodeJSON(t, w, &listed)
	assert.Len(t, listed.Items, 1)

	w = app.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/shopping-list/%d", item.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/shopping-list/%d", item.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddRecipeToShoppingList(t *testing.T) {
	app := newTestApp(t)
	category, _, _ := app.seedTaxonomy(t)
	_, token := app.register(t, "alice")

	input := validRecipeInput("Stew", category.ID)
	input.Ingredients = []types.IngredientInput{
		{Name: "Beef", Quantity: "500", Unit: "g"},
		{Name: "Carrot", Quantity: "2", Unit: "pieces"},
	}
	id := app.createRecipe(t, token, input)

	w := app.request(t, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/add-to-shopping-list", id), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Items []models.ShoppingListItem `json:"items"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Beef", resp.Items[0].IngredientName)

	w = app.request(t, http.MethodPost, "/api/v1/recipes/9999/add-to-shopping-list", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearPurchased(t *testing.T) {
	app := newTestApp(t)
	_, token := app.register(t, "alice")

	for _, name := range []string{"Milk", "Bread"} {
		w := app.request(t, http.MethodPost, "/api/v1/shopping-list", token,
			types.ShoppingListItemInput{IngredientName: name, Quantity: "1"})
		require.Equal(t, http.StatusCreated, w.Code)
		var item models.ShoppingListItem
		decodeJSON(t, w, &item)

		w = app.request(t, http.MethodPatch,
			fmt.Sprintf("/api/v1/shopping-list/%d/toggle-purchased", item.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := app.request(t, http.MethodPost, "/api/v1/shopping-list", token,
		types.ShoppingListItemInput{IngredientName: "Eggs", Quantity: "12"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.request(t, http.MethodDelete, "/api/v1/shopping-list/clear-purchased", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2 purchased items cleared")

	w = app.request(t, http.MethodGet, "/api/v1/shopping-list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Items []models.ShoppingListItem `json:"items"`
	}
	decodeJSON(t, w, &listed)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "Eggs", listed.Items[0].IngredientName)
}
