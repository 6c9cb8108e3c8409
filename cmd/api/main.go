package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nutrichef/nutrichef/backend/config"
	"github.com/nutrichef/nutrichef/backend/internal/api"
	"github.com/nutrichef/nutrichef/backend/internal/database"
	"github.com/nutrichef/nutrichef/backend/internal/middleware"
	"github.com/nutrichef/nutrichef/backend/internal/router"
	"github.com/nutrichef/nutrichef/backend/internal/server"
	"github.com/nutrichef/nutrichef/backend/internal/service"
)

func main() {
	// .env is optional; real deployments use the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Counter store: shared Redis counters when configured, otherwise
	// process-local fixed-window counters (single-instance deployments).
	var store middleware.CounterStore = middleware.NewMemoryStore()
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = middleware.NewRedisStore(redisClient)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	historyService := service.NewHistoryService(db)
	favoriteService := service.NewFavoriteService(db)
	statsService := service.NewStatsService(db)
	generationService := service.NewGenerationService(cfg.DeepSeekAPIKey, cfg.DeepSeekAPIURL)

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}
	imageService := service.NewImageService(s3Config)

	handlers := &router.Handlers{
		Health:   api.NewHealthHandler(db, redisClient),
		Auth:     api.NewAuthHandler(authService),
		Recipe:   api.NewRecipeHandler(recipeService),
		Generate: api.NewGenerateHandler(generationService),
		History:  api.NewHistoryHandler(historyService),
		Favorite: api.NewFavoriteHandler(favoriteService),
		Image:    api.NewImageHandler(imageService, recipeService),
		Stats:    api.NewStatsHandler(statsService),
	}

	engine := router.Setup(cfg, handlers, authService, store)
	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
