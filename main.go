package main

import (
	"log"
	"os"

	"merchline/config"
	"merchline/db"
	"merchline/mailer"
	"merchline/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db.InitDatabase(cfg.DBPath)

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat(cfg.UploadsDir); os.IsNotExist(err) {
		os.Mkdir(cfg.UploadsDir, 0755)
	}

	// Mail notifications go through the broker; without one they are only
	// logged, the workflows themselves are unaffected.
	m, err := mailer.NewAMQPMailer(cfg.AMQPURL, cfg.MailQueue)
	if err != nil {
		log.Println("Mail broker unavailable, falling back to log mailer:", err)
		routes.SetMailer(mailer.LogMailer{})
	} else {
		defer m.Close()
		routes.SetMailer(m)
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Serve static files
	app.Static("/"+cfg.UploadsDir, "./"+cfg.UploadsDir)

	// Setup routes
	routes.SetupRoutes(app, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
