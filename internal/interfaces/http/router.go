package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/locationgenius/dashboard/internal/infrastructure/config"
	"github.com/locationgenius/dashboard/internal/interfaces/http/middleware"
	"github.com/locationgenius/dashboard/internal/interfaces/http/routes"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	container *Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(ctx, db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container
	engine := c.engine

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(c.log))
	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/health", c.healthHandler.HealthCheck)

	api := engine.Group("/api/v1")

	routes.SetupDashboardRoutes(api, &routes.DashboardRouteConfig{
		DashboardHandler:     c.dashboardHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupMessageTemplateRoutes(api, &routes.MessageTemplateRouteConfig{
		MessageTemplateHandler: c.messageTemplateHandler,
		AuthMiddleware:         c.authMiddleware,
		PermissionMiddleware:   c.permissionMiddleware,
		SendRateLimiter:        c.sendRateLimiter,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.container.engine
}

// Shutdown releases router-owned resources.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}
