package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *auth.Tokens) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.CORSMiddleware())

	api := r.Group("/api", middleware.Authenticate(tokens))
	api.GET("/me", func(c *gin.Context) {
		caller, _ := auth.FromGin(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.UserID, "role": caller.Role})
	})
	api.GET("/admin", middleware.RequireRole("admin", "staff"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	r := newRouter(tokens)

	w := do(r, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_authorization_header")

	w = do(r, http.MethodGet, "/api/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")

	token, _, err := tokens.Issue(5, "customer")
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"role":"customer"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	r := newRouter(tokens)

	customer, _, err := tokens.Issue(5, "customer")
	require.NoError(t, err)
	staff, _, err := tokens.Issue(1, "staff")
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/api/admin", customer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"forbidden"`)

	w = do(r, http.MethodGet, "/api/admin", staff)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(auth.NewTokens("secret", time.Hour))

	w := do(r, http.MethodGet, "/api/me", "")
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(auth.NewTokens("secret", time.Hour))

	req := httptest.NewRequest(http.MethodOptions, "/api/me", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}
