package middleware

import (
	"net/http"
	"strings"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireAuth verifies the bearer token and stores the resulting identity in
// the request context. Handlers read it back with IdentityFrom.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or malformed authorization header",
			})
			return
		}

		identity, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
