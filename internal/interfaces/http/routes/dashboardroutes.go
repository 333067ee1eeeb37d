package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/locationgenius/dashboard/internal/interfaces/http/handlers"
	"github.com/locationgenius/dashboard/internal/interfaces/http/middleware"
	"github.com/locationgenius/dashboard/internal/shared/constants"
)

type DashboardRouteConfig struct {
	DashboardHandler     *handlers.DashboardHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupDashboardRoutes(api *gin.RouterGroup, config *DashboardRouteConfig) {
	dashboard := api.Group("/dashboard")
	dashboard.Use(
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequirePermission(constants.ResourceDashboard, constants.ActionRead),
	)
	{
		dashboard.GET("/timeframes", config.DashboardHandler.ListTimeframes)
		dashboard.GET("/timeframe", config.DashboardHandler.ResolveTimeframe)
		dashboard.GET("/date", config.DashboardHandler.PickDate)
	}
}
