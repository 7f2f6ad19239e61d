package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"ledger_system/internal/domain" // Domain models
	"ledger_system/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// CallerKey is the gin.Context key holding the authenticated domain.AccountID
const CallerKey = "caller"

// JWTAuthMiddleware validates JWT tokens and stores the caller identity
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(CallerKey, claims.Account) // Store caller in context
		c.Next()
	}
}

// Caller returns the authenticated account set by JWTAuthMiddleware
func Caller(c *gin.Context) (domain.AccountID, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return "", false
	}
	account, ok := v.(domain.AccountID)
	return account, ok && account != ""
}
