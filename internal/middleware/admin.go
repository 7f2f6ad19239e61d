package middleware

import (
	"context"
	"net/http" // HTTP status codes

	"ledger_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RoleChecker answers membership questions; *registry.Registry satisfies it
type RoleChecker interface {
	HasRole(ctx context.Context, id domain.AccountID, role domain.Role) (bool, error)
}

// RequireRole checks the caller's role in the registry on each request
func RequireRole(roles RoleChecker, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		has, err := roles.HasRole(c.Request.Context(), caller, role)
		if err != nil {
			logrus.WithFields(logrus.Fields{"caller": caller, "error": err.Error()}).Error("Role check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Role check failed"})
			return
		}
		if !has {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": role.String() + " role required"})
			return
		}
		c.Next()
	}
}
