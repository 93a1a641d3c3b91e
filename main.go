package main

import (
	"log"

	"snakyarena/config"
	"snakyarena/handlers"
	"snakyarena/middleware"
	"snakyarena/models"
	"snakyarena/routes"
	"snakyarena/seeders"
	"snakyarena/services"
	"snakyarena/storage/postgres"
	redisstore "snakyarena/storage/redis"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Score{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	store := postgres.New(db)

	// Initialize Redis-backed live roster
	liveCfg := redisstore.DefaultConfig()
	liveCfg.URL = cfg.RedisURL
	liveCfg.SessionTTL = cfg.SessionTTL
	liveStore, err := redisstore.New(liveCfg)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}
	defer liveStore.Close()

	// Seed demo data when requested
	if cfg.SeedData {
		if err := seeders.Seed(store, liveStore); err != nil {
			log.Printf("Seeding failed: %v", err)
		}
	}

	// Initialize services
	authService := services.NewAuthService(store, cfg.JWTSecret)
	leaderboardService := services.NewLeaderboardService(store)
	liveService := services.NewLiveService(liveStore, store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	liveHandler := handlers.NewLiveHandler(liveService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, leaderboardHandler, liveHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
