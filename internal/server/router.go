package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/modulehub/modulehub-backend/internal/handlers"
	"github.com/modulehub/modulehub-backend/internal/middleware"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type RouterConfig struct {
	AuthMiddleware  *middleware.AuthMiddleware
	AuthHandler     *handlers.AuthHandler
	ModuleHandler   *handlers.ModuleHandler
	TopicHandler    *handlers.TopicHandler
	BookmarkHandler *handlers.BookmarkHandler
	UserHandler     *handlers.UserHandler
	UploadHandler   *handlers.UploadHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("modulehub-backend"))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Set-Auth-Token"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	requireAuth := cfg.AuthMiddleware.RequireAuth()
	requireAdmin := cfg.AuthMiddleware.RequireRole(types.RoleAdmin)

	// Auth
	api.POST("/auth/register", cfg.AuthHandler.Register)
	api.POST("/auth/login", cfg.AuthHandler.Login)
	api.POST("/auth/logout", requireAuth, cfg.AuthHandler.Logout)
	api.GET("/auth/user", requireAuth, cfg.AuthHandler.GetUser)

	// Modules (reads public, mutations admin)
	api.GET("/modules", cfg.ModuleHandler.List)
	api.GET("/modules/:id", cfg.ModuleHandler.Get)
	api.POST("/modules", requireAdmin, cfg.ModuleHandler.Create)
	api.PUT("/modules/:id", requireAdmin, cfg.ModuleHandler.Update)
	api.DELETE("/modules/:id", requireAdmin, cfg.ModuleHandler.Delete)

	// Topics (reads public, mutations admin)
	api.GET("/topics", cfg.TopicHandler.List)
	api.GET("/topics/:id", cfg.TopicHandler.Get)
	api.POST("/topics", requireAdmin, cfg.TopicHandler.Create)
	api.PUT("/topics/:id", requireAdmin, cfg.TopicHandler.Update)
	api.DELETE("/topics/:id", requireAdmin, cfg.TopicHandler.Delete)

	// Bookmarks
	api.GET("/bookmarks", requireAuth, cfg.BookmarkHandler.List)
	api.POST("/bookmarks", requireAuth, cfg.BookmarkHandler.Create)
	api.DELETE("/bookmarks/:moduleId", requireAuth, cfg.BookmarkHandler.Delete)

	// Users
	api.GET("/users/profile", requireAuth, cfg.UserHandler.GetProfile)
	api.PUT("/users/profile", requireAuth, cfg.UserHandler.UpdateProfile)
	api.GET("/users/last-seen", requireAuth, cfg.UserHandler.ListLastSeen)
	api.POST("/users/last-seen", requireAuth, cfg.UserHandler.TouchLastSeen)

	// Upload
	api.POST("/upload", requireAuth, cfg.UploadHandler.Upload)

	return router
}
