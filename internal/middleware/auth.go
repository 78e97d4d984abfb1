package middleware

import (
	"net/http"
	"strings"

	"roundvest/config"
	"roundvest/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets the account scope for the
// request. Every engine call downstream takes the account id explicitly;
// nothing reads ambient session state.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("account_id", claims.AccountID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// GetAccountID returns the authenticated account id (after AuthRequired).
func GetAccountID(c *gin.Context) uint {
	v, _ := c.Get("account_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}
