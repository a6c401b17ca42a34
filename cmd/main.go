package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/modulehub/modulehub-backend/internal/db"
	"github.com/modulehub/modulehub-backend/internal/handlers"
	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/middleware"
	"github.com/modulehub/modulehub-backend/internal/observability"
	"github.com/modulehub/modulehub-backend/internal/repos"
	"github.com/modulehub/modulehub-backend/internal/server"
	"github.com/modulehub/modulehub-backend/internal/services"
	"github.com/modulehub/modulehub-backend/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing (no-op unless OTEL_ENABLED=true)
	shutdownOTel := observability.InitOTel(context.Background(), log)
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
	if jwtSecretKey == "" {
		log.Error("JWT_SECRET_KEY is required")
		os.Exit(1)
	}
	sessionTTL := utils.GetEnvAsInt("SESSION_TTL_SECONDS", 7*24*3600, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	sessionRepo := repos.NewSessionRepo(thePG, log)
	moduleRepo := repos.NewModuleRepo(thePG, log)
	topicRepo := repos.NewTopicRepo(thePG, log)
	moduleOnTopicRepo := repos.NewModuleOnTopicRepo(thePG, log)
	bookmarkRepo := repos.NewBookmarkRepo(thePG, log)
	lastSeenRepo := repos.NewLastSeenRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}
	sessionCache := services.NewSessionCache(log)
	authService := services.NewAuthService(thePG, log, userRepo, sessionRepo, sessionCache, jwtSecretKey, time.Duration(sessionTTL)*time.Second)
	moduleService := services.NewModuleService(thePG, log, moduleRepo, moduleOnTopicRepo)
	topicService := services.NewTopicService(thePG, log, topicRepo)
	bookmarkService := services.NewBookmarkService(thePG, log, bookmarkRepo)
	userService := services.NewUserService(thePG, log, userRepo, lastSeenRepo)
	uploadService := services.NewUploadService(log, bucketService)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	moduleHandler := handlers.NewModuleHandler(log, moduleService)
	topicHandler := handlers.NewTopicHandler(log, topicService)
	bookmarkHandler := handlers.NewBookmarkHandler(log, bookmarkService)
	userHandler := handlers.NewUserHandler(log, userService)
	uploadHandler := handlers.NewUploadHandler(log, uploadService)

	// Middleware + router
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:  authMiddleware,
		AuthHandler:     authHandler,
		ModuleHandler:   moduleHandler,
		TopicHandler:    topicHandler,
		BookmarkHandler: bookmarkHandler,
		UserHandler:     userHandler,
		UploadHandler:   uploadHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
