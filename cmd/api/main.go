package main

import (
	"context"
	"log"
	"os"

	"editorial-content-api/config"
	"editorial-content-api/routes"
	"editorial-content-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logging and database
	config.InitLogging()
	config.InitDB()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Core services
	notifier := services.NewNotificationService(config.DB)
	workflow := services.NewWorkflowService(config.DB).WithNotifier(notifier)
	views := services.NewViewService(config.DB)

	// Nightly sweep of expired view buckets
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		removed, err := views.PurgeExpiredBuckets(context.Background(), services.DefaultBucketRetentionDays)
		if err != nil {
			log.Printf("view bucket purge failed: %v", err)
			return
		}
		log.Printf("view bucket purge removed %d expired buckets", removed)
	}); err != nil {
		log.Printf("Warning: failed to schedule view bucket purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Setup routes
	routes.SetupRoutes(router, workflow, views)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
