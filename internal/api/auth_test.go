package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefork/backend/internal/types"
)

func TestRegisterAndLoginEndpoints(t *testing.T) {
	app := newTestApp(t)

	user, token := app.register(t, "alice")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)

	w := app.request(t, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.AuthResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	// The password hash never leaks through the response.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice")

	w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Username: "other",
		Name:     "Other",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterValidatesBody(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Username: "al",
		Name:     "Al",
		Email:    "not-an-email",
		Password: "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice")

	w := app.request(t, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpointRejectsBadToken(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodGet, "/api/v1/favorites", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
