package main

import (
	"context"
	"log"

	"app/config"
	"app/database"
	"app/email"
	"app/jobs"
	"app/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	database.Connect(config.AppConfig.MongoURI, config.AppConfig.MongoDBName)
	defer database.Close()

	// Start the daily expiry check
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	mailer := email.NewClient(config.AppConfig.ResendAPIKey, config.AppConfig.EmailFrom)
	jobs.NewExpiryChecker(mailer).Start(jobCtx)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
