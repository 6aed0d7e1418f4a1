package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefork/backend/internal/middleware"
	"github.com/platefork/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func identityEcho(c *gin.Context) {
	if id, ok := middleware.UserID(c); ok {
		c.JSON(http.StatusOK, gin.H{"user_id": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": nil})
}

func perform(engine *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	validator := &stubValidator{claims: &types.TokenClaims{UserID: 7, Username: "alice"}}
	engine := gin.New()
	engine.GET("/probe", middleware.AuthMiddleware(validator), identityEcho)

	w := perform(engine, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(engine, "NotBearer token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(engine, "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)

	validator.err = errors.New("expired")
	w = perform(engine, "Bearer stale-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	validator := &stubValidator{claims: &types.TokenClaims{UserID: 7, Username: "alice"}}
	engine := gin.New()
	engine.GET("/probe", middleware.OptionalAuthMiddleware(validator), identityEcho)

	// Anonymous requests pass through with no identity.
	w := perform(engine, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":null`)

	// So do requests carrying a bad token.
	validator.err = errors.New("expired")
	w = perform(engine, "Bearer stale-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":null`)

	validator.err = nil
	w = perform(engine, "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestNilRateLimiterIsNoop(t *testing.T) {
	engine := gin.New()
	var limiter *middleware.RateLimiter
	engine.GET("/probe", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(engine, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}
