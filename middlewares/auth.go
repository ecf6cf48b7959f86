package middlewares

import (
	"net/http"

	"contesthub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	ClaimsKey    = "claims"
	UserEmailKey = "userEmail"
)

// AuthMiddleware verifies the token cookie and stores its claims in the
// context. Requests without a valid token never reach the handler.
func AuthMiddleware(issuer *utils.TokenIssuer, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.TokenCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			log.Infof("Token validation failed for %s %s: %v", c.Request.Method, c.FullPath(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserEmailKey, utils.EmailFromClaims(claims))
		c.Next()
	}
}
