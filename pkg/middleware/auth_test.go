package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(issuer *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(issuer), func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id": identity.UserID,
			"role":    string(identity.Role),
		})
	})
	return router
}

func TestRequireAuth_AllowsValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	router := setupRouter(issuer)

	token, err := issuer.Mint(&domain.User{UserID: "user-1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-1")
	assert.Contains(t, rec.Body.String(), "Admin")
}

func TestRequireAuth_RejectsMissingHeader(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	router := setupRouter(issuer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_RejectsMalformedHeader(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	router := setupRouter(issuer)

	for _, header := range []string{"Basic abc", "Bearer", "Bearer not.a.token"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}
