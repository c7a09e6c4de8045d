package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"preparedhub-api/config"
	"preparedhub-api/database"
	"preparedhub-api/jobs"
	"preparedhub-api/middleware"
	"preparedhub-api/routes"
	"preparedhub-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with initial data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Redis backs the email verification codes; optional in dev
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	emailService := services.NewEmailService(cfg, redisClient)

	// Kafka alert event stream; disabled when no brokers are configured
	alertPublisher := services.NewAlertPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer alertPublisher.Close()

	// Background sweep deactivating expired alerts
	expiryJob := jobs.NewAlertExpiryJob(db, 5*time.Minute)
	expiryJob.Start()
	defer expiryJob.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, alertPublisher)

	// Start server
	log.Printf("Starting PreparedHub API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/health", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
