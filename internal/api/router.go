package api

import (
	"ledger_system/internal/domain"     // Domain models
	"ledger_system/internal/ledger"     // Ledger service
	"ledger_system/internal/middleware" // Auth middleware
	"ledger_system/internal/registry"   // Role registry

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps are the collaborators the HTTP surface needs. Redis and Events are optional.
type Deps struct {
	Registry  *registry.Registry
	Ledger    *ledger.Ledger
	Users     Users
	Events    EventLister
	Redis     *redis.Client
	JWTSecret string
}

// NewRouter registers every route on a fresh engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Auth routes
	r.POST("/accounts", RegisterHandler(d.Users))                 // Registration endpoint
	r.POST("/accounts/login", LoginHandler(d.Users, d.JWTSecret)) // Login endpoint

	auth := middleware.JWTAuthMiddleware(d.JWTSecret)

	// Registry routes
	roles := r.Group("/roles", auth)
	roles.POST("/admin", AssignAdminRoleHandler(d.Registry, d.Redis)) // Assign Admin
	roles.POST("", AssignOtherRoleHandler(d.Registry, d.Redis))       // Assign Supporter or Member
	roles.GET("/:account", GetRolesHandler(d.Registry, d.Redis))      // Membership query

	// Ledger routes; every call goes through the dispatch table
	call := LedgerCallHandler(d.Ledger)
	ledgerGroup := r.Group("/ledger", auth)
	ledgerGroup.POST("", call)    // Bare transfer
	ledgerGroup.Any("/:op", call) // Named entry points and unknown ones

	// Notification feed, admins only
	if d.Events != nil {
		r.GET("/events", auth, middleware.RequireRole(d.Registry, domain.RoleAdmin), ListEventsHandler(d.Events))
	}
	return r
}
