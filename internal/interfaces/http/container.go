package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	dashboardApp "github.com/locationgenius/dashboard/internal/application/dashboard"
	templateApp "github.com/locationgenius/dashboard/internal/application/messagetemplate"
	"github.com/locationgenius/dashboard/internal/application/messagetemplate/usecases"
	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/infrastructure/auth"
	"github.com/locationgenius/dashboard/internal/infrastructure/cache"
	"github.com/locationgenius/dashboard/internal/infrastructure/config"
	"github.com/locationgenius/dashboard/internal/infrastructure/permission"
	"github.com/locationgenius/dashboard/internal/infrastructure/repository"
	"github.com/locationgenius/dashboard/internal/infrastructure/telegram"
	"github.com/locationgenius/dashboard/internal/interfaces/http/handlers"
	"github.com/locationgenius/dashboard/internal/interfaces/http/middleware"
	"github.com/locationgenius/dashboard/internal/shared/logger"
	"github.com/locationgenius/dashboard/internal/shared/services/markdown"
)

// Container holds the infrastructure, services, handlers and middlewares
// and owns the resources released by Shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	templateStore messagetemplate.Repository
	enforcer      *permission.Enforcer
	botService    *telegram.BotService

	templateService  *templateApp.Service
	dashboardService *dashboardApp.Service

	messageTemplateHandler *handlers.MessageTemplateHandler
	dashboardHandler       *handlers.DashboardHandler
	healthHandler          *handlers.HealthHandler

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	sendRateLimiter      *middleware.RateLimiter
}

// NewContainer wires every component. Redis and Telegram are optional and
// only built when enabled in cfg.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	var store messagetemplate.Repository = repository.NewMessageTemplateRepository(c.db)

	if c.cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, &c.cfg.Redis)
		if err != nil {
			return err
		}
		c.redis = client
		ttl := time.Duration(c.cfg.Redis.TemplateTTLSeconds) * time.Second
		store = cache.NewCachedTemplateStore(store, client, ttl, c.log.Named("template_cache"))
		c.log.Infow("template cache enabled", "addr", c.cfg.Redis.GetAddr(), "ttl", ttl)
	}
	c.templateStore = store

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPermissions(enforcer, c.log); err != nil {
		return err
	}
	c.enforcer = enforcer

	if c.cfg.Telegram.IsConfigured() {
		c.botService = telegram.NewBotService(c.cfg.Telegram.BotToken, c.cfg.Telegram.APIBaseURL, c.log.Named("telegram"))
		if info, err := c.botService.GetMe(ctx); err != nil {
			c.log.Warnw("telegram token could not be verified", "error", err)
		} else {
			c.log.Infow("telegram delivery enabled", "bot", info.Username)
		}
	} else {
		c.log.Infow("telegram delivery disabled, bot token not set")
	}

	return nil
}

func (c *Container) initServices() {
	// A nil *BotService must not become a non-nil interface value.
	var sender usecases.MessageSender
	if c.botService != nil {
		sender = c.botService
	}

	c.templateService = templateApp.NewService(c.templateStore, markdown.NewMarkdownService(), sender, c.log.Named("message_template"))
	c.dashboardService = dashboardApp.NewService(c.log.Named("dashboard"))
}

func (c *Container) initHandlers() {
	jwtSvc := auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)
	if c.redis != nil && c.cfg.Telegram.SendsPerMinute > 0 {
		c.sendRateLimiter = middleware.NewRateLimiter(c.redis, "template_send", c.cfg.Telegram.SendsPerMinute, time.Minute, c.log)
	}

	c.messageTemplateHandler = handlers.NewMessageTemplateHandler(c.templateService, c.log)
	c.dashboardHandler = handlers.NewDashboardHandler(c.dashboardService, c.log)

	if sqlDB, err := c.db.DB(); err == nil {
		c.healthHandler = handlers.NewHealthHandler(sqlDB)
	} else {
		c.healthHandler = handlers.NewHealthHandler(nil)
	}
}

// Shutdown releases resources owned by the container. The database handle
// belongs to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
}
