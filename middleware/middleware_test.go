package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedStore map[string]bool

func (s revokedStore) Revoke(_ context.Context, id string, _ time.Duration) error {
	s[id] = true
	return nil
}

func (s revokedStore) IsRevoked(_ context.Context, id string) (bool, error) {
	return s[id], nil
}

func newAuthRouter(tokens *utils.TokenIssuer, store services.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()
	r := gin.New()
	r.Use(Logger(&log))
	secured := r.Group("", AuthMiddleware(tokens, store, &log))
	secured.GET("/me", func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	secured.GET("/admin", RoleMiddleware(models.RoleAdministrator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	store := revokedStore{}
	r := newAuthRouter(tokens, store)

	admin, _, err := tokens.Issue(&models.User{ID: 1, Username: "admin", Role: models.RoleAdministrator})
	require.NoError(t, err)
	desk, deskClaims, err := tokens.Issue(&models.User{ID: 2, Username: "reception", Role: models.RoleReceptionist})
	require.NoError(t, err)

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error.missingToken")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = do(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error.invalidOrExpiredToken")

	w = do(r, "/me", desk)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reception", w.Body.String())

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", desk).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", admin).Code)

	store[deskClaims.Id] = true
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", desk).Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(1, 2)

	r := gin.New()
	r.POST("/login", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	assert.True(t, limiter.Allow("10.0.0.2"), "buckets are per IP")
}

func TestIPRateLimiter_EvictsIdle(t *testing.T) {
	limiter := NewIPRateLimiter(60, 1)
	start := time.Now()
	limiter.get("10.0.0.1", start)
	limiter.get("10.0.0.2", start.Add(11*time.Minute))

	assert.Len(t, limiter.visitors, 1)
	_, ok := limiter.visitors["10.0.0.2"]
	assert.True(t, ok)
}
