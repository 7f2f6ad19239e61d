package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"ledger_system/internal/domain"     // Domain models
	"ledger_system/internal/middleware" // Caller lookup
	"ledger_system/internal/registry"   // Role registry
	"ledger_system/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// AssignRoleRequest names the target account and, for non-admin roles, the role
type AssignRoleRequest struct {
	Target string `json:"target" binding:"required"` // Account receiving the role
	Role   string `json:"role"`                      // Supporter or Member
}

// AssignAdminRoleHandler lets an admin make another account an admin
func AssignAdminRoleHandler(reg *registry.Registry, rdb *redis.Client) gin.HandlerFunc {
	return assignHandler(rdb, func(ctx context.Context, caller domain.AccountID, req AssignRoleRequest) (string, error) {
		return domain.RoleAdmin.String(), reg.AssignAdminRole(ctx, caller, domain.AccountID(req.Target))
	})
}

// AssignOtherRoleHandler lets an admin grant the Supporter or Member role
func AssignOtherRoleHandler(reg *registry.Registry, rdb *redis.Client) gin.HandlerFunc {
	return assignHandler(rdb, func(ctx context.Context, caller domain.AccountID, req AssignRoleRequest) (string, error) {
		return req.Role, reg.AssignOtherRole(ctx, caller, domain.AccountID(req.Target), req.Role)
	})
}

type assignFunc func(ctx context.Context, caller domain.AccountID, req AssignRoleRequest) (string, error)

func assignHandler(rdb *redis.Client, assign assignFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.Caller(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AssignRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		role, err := assign(c.Request.Context(), caller, req)
		if err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the target's cached memberships
		_ = utils.DeleteCache(c.Request.Context(), rdb, utils.RolesCacheKey(req.Target))
		c.JSON(http.StatusOK, gin.H{"message": "Role assigned", "target": req.Target, "role": role})
	}
}

// GetRolesHandler returns the memberships of the account in the path
func GetRolesHandler(reg *registry.Registry, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		account := c.Param("account")
		cacheKey := utils.RolesCacheKey(account)
		var m registry.Membership
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &m); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"roles": m, "cached": true})
			return
		}
		m, err := reg.Roles(ctx, domain.AccountID(account))
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, m, utils.RolesCacheTTL) // Short TTL bounds a stale read racing an assignment
		c.JSON(http.StatusOK, gin.H{"roles": m, "cached": false})
	}
}
