package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/locationgenius/dashboard/internal/interfaces/http/handlers"
	"github.com/locationgenius/dashboard/internal/interfaces/http/middleware"
	"github.com/locationgenius/dashboard/internal/shared/constants"
)

type MessageTemplateRouteConfig struct {
	MessageTemplateHandler *handlers.MessageTemplateHandler
	AuthMiddleware         *middleware.AuthMiddleware
	PermissionMiddleware   *middleware.PermissionMiddleware
	// SendRateLimiter is nil when Redis is disabled.
	SendRateLimiter *middleware.RateLimiter
}

func SetupMessageTemplateRoutes(api *gin.RouterGroup, config *MessageTemplateRouteConfig) {
	read := config.PermissionMiddleware.RequirePermission(constants.ResourceMessageTemplate, constants.ActionRead)
	write := config.PermissionMiddleware.RequirePermission(constants.ResourceMessageTemplate, constants.ActionWrite)
	sendChain := []gin.HandlerFunc{
		config.PermissionMiddleware.RequirePermission(constants.ResourceMessageTemplate, constants.ActionSend),
	}
	if config.SendRateLimiter != nil {
		sendChain = append(sendChain, config.SendRateLimiter.Limit())
	}

	templates := api.Group("/message-templates")
	templates.Use(config.AuthMiddleware.RequireAuth())
	{
		templates.GET("", read, config.MessageTemplateHandler.ListActiveTemplates)
		templates.GET("/type/:type", read, config.MessageTemplateHandler.GetTemplateByType)
		templates.POST("/render", read, config.MessageTemplateHandler.RenderTemplate)
		templates.POST("/preview", read, config.MessageTemplateHandler.PreviewContent)
	}

	admin := api.Group("/admin/message-templates")
	admin.Use(config.AuthMiddleware.RequireAuth())
	{
		// Specific paths BEFORE parameterized paths
		admin.GET("", write, config.MessageTemplateHandler.ListAllTemplates)
		admin.POST("", write, config.MessageTemplateHandler.CreateTemplate)
		admin.POST("/send", append(sendChain, config.MessageTemplateHandler.SendTemplate)...)
		admin.PUT("/type/:type/content", write, config.MessageTemplateHandler.UpdateContentByType)

		admin.PATCH("/:id/status", write, config.MessageTemplateHandler.SetTemplateStatus)
		admin.PUT("/:id", write, config.MessageTemplateHandler.UpdateTemplate)
	}
}
