package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/etudify/etudify-backend/token"
	"github.com/etudify/etudify-backend/utils"
)

// Authenticate gates requests on a bearer access token. A token that is
// expired but otherwise genuine is renewed transparently from the
// refresh cookie: the request continues with a fresh access token in its
// Authorization header, and the new token is exposed to the client via
// the X-Access-Token response header.
func Authenticate(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tm.VerifyAccess(tokenStr)
		switch {
		case err == nil:
			setIdentity(c, claims)
			c.Next()

		case errors.Is(err, token.ErrAccessTokenExpired):
			refreshStr := utils.RefreshCookie(c)
			newAccess, newClaims, renewErr := tm.Renew(c.Request.Context(), refreshStr)
			if renewErr != nil {
				status := http.StatusForbidden
				if errors.Is(renewErr, token.ErrMissingToken) {
					status = http.StatusUnauthorized
				}
				c.AbortWithStatusJSON(status, gin.H{"error": "invalid or expired token"})
				return
			}

			c.Request.Header.Set("Authorization", "Bearer "+newAccess)
			c.Header("X-Access-Token", newAccess)
			setIdentity(c, newClaims)
			c.Next()

		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		}
	}
}

func setIdentity(c *gin.Context, claims *token.Claims) {
	c.Set("userID", claims.UserID)
	c.Set("email", claims.Email)
}
