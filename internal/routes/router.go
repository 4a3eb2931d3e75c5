package routes

import (
	"context"
	"net/http"

	"shopping-list-api/internal/auth"
	"shopping-list-api/internal/config"
	"shopping-list-api/internal/delivery/http/handler"
	"shopping-list-api/internal/infrastructure/database/gormdb"
	"shopping-list-api/internal/logger"
	"shopping-list-api/internal/middleware"
	"shopping-list-api/internal/notify"
	"shopping-list-api/internal/usecase/access"
	"shopping-list-api/internal/usecase/friend"
	"shopping-list-api/internal/usecase/share"
	"shopping-list-api/internal/usecase/shoppinglist"
	"shopping-list-api/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires repositories, services and handlers onto a gin engine.
// Background work started here stops when ctx is cancelled.
func SetupRoutes(ctx context.Context, cfg *config.Config, db *gormdb.DB, publisher notify.Publisher) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}

	router := gin.New()

	// Add middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.Server.Environment == "production"))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(ctx, cfg.RateLimit))
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := gormdb.NewUserRepository(db)
	friendRepository := gormdb.NewFriendRepository(db)
	shareRepository := gormdb.NewShareRepository(db)
	listRepository := gormdb.NewShoppingListRepository(db)
	itemRepository := gormdb.NewItemRepository(db)

	userService := user.NewService(userRepository, cfg)
	friendService := friend.NewService(userRepository, friendRepository, publisher)
	shareService := share.NewService(listRepository, shareRepository, friendService, publisher)
	guard := access.NewGuard(listRepository, itemRepository, shareRepository)
	listService := shoppinglist.NewService(listRepository, itemRepository, guard)

	authenticator := auth.NewTokenAuthenticator(userRepository, cfg.JWT.Secret)

	userHandler := handler.NewUserHandler(userService)
	friendHandler := handler.NewFriendHandler(friendService)
	shareHandler := handler.NewShareHandler(shareService, listService)
	listHandler := handler.NewShoppingListHandler(listService)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(authenticator))
		{
			userHandler.RegisterProfileRoutes(protected)
			friendHandler.RegisterRoutes(protected)
			shareHandler.RegisterRoutes(protected)
			listHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
