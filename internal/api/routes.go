package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"showfolio/internal/api/middleware"
	"showfolio/internal/auth"
	"showfolio/internal/config"
	"showfolio/internal/database"
	"showfolio/internal/portfolio"
	"showfolio/internal/session"
	"showfolio/internal/storage"
)

// RegisterRoutes wires the JSON API under /v1 and the server-rendered
// pages at the root.
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	sessions *session.Store,
	authService *auth.AuthService,
	asynqClient *asynq.Client,
	redisClient redis.UniversalClient,
	storageClient *storage.Client,
	logger *slog.Logger,
) {
	composer := portfolio.NewComposer(db)

	authHandler := NewAuthHandler(
		db,
		sessions,
		redisClient,
		logger,
		cfg.Auth.LoginRateLimitPerHour,
		cfg.Auth.LoginLockThreshold,
		cfg.Auth.LoginLockTTL(),
		cfg.API.CookieDomain,
	)
	portfolioHandler := NewPortfolioHandler(db, composer, asynqClient, storageClient, logger)
	galleryHandler := NewGalleryHandler(composer, time.Duration(cfg.API.GalleryCacheTTL)*time.Second, logger)
	pageHandler := NewPageHandler(composer, sessions, logger)

	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		portfolioGroup := v1.Group("/portfolio")
		portfolioGroup.Use(authMiddleware)
		{
			portfolioGroup.GET("", portfolioHandler.Get)

			writes := portfolioGroup.Group("")
			writes.Use(
				middleware.RequireRole(database.RoleStudent),
				middleware.RequirePasswordChangeCompleted(),
			)
			{
				writes.POST("", portfolioHandler.Create)
				writes.PUT("", portfolioHandler.Update)
				writes.POST("/snapshot", portfolioHandler.RequestSnapshot)
				writes.GET("/snapshot", portfolioHandler.GetSnapshot)
			}
		}

		v1.GET("/gallery", galleryHandler.List)
	}

	router.GET("/", pageHandler.Home)
	router.GET("/login", pageHandler.Login)
	router.GET("/register", pageHandler.Register)
	router.GET("/gallery", pageHandler.Gallery)
	router.GET("/portfolio/:username", pageHandler.PublicPortfolio)

	router.GET("/dashboard", middleware.PageGuard(sessions, ""), pageHandler.Dashboard)
	studentPages := router.Group("/portfolio")
	studentPages.Use(middleware.PageGuard(sessions, database.RoleStudent))
	{
		studentPages.GET("/create", pageHandler.CreatePortfolio)
		studentPages.GET("/edit", pageHandler.EditPortfolio)
	}

	router.NoRoute(pageHandler.NotFound)
}
