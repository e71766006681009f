package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"pocket-lite/cache"
	"pocket-lite/config"
	"pocket-lite/database"
	"pocket-lite/handlers"
	"pocket-lite/mailer"
	"pocket-lite/pocket"
	"pocket-lite/store"
)

func main() {
	// A .env file is optional; deployments usually set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established.")

	h := &handlers.Handler{
		Store:       store.New(db.Entries),
		Fetcher:     pocket.NewClient(cfg.ConsumerKey, cfg.AccessKey),
		Cache:       cache.New(),
		Notifier:    mailer.New(cfg.SendgridAPIKey, cfg.AlertTo, cfg.AlertFrom),
		SecurityKey: cfg.SecurityKey,
	}

	app := fiber.New()

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	h.SetupRoutes(app)

	log.Printf("Starting server on port %d...", cfg.Port)
	log.Fatal(app.Listen(cfg.Address()))
}
