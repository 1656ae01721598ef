package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fairwaylab/swingcoach/internal/config"
	"github.com/fairwaylab/swingcoach/internal/database"
	"github.com/fairwaylab/swingcoach/internal/routes"
	"github.com/fairwaylab/swingcoach/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := database.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	storage, err := buildStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to set up storage: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:   "swingcoach-api",
		BodyLimit: 100 * 1024 * 1024, // swing videos
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: joinOrigins(cfg.FrontendOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Line-Signature",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	healthz := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
	app.Get("/", healthz)
	app.Get("/health", healthz)

	if cfg.StorageType == "local" {
		app.Static("/uploads", cfg.LocalStoragePath)
	}

	routes.RegisterRoutes(app, pool, cfg, storage)

	log.Printf("Starting server on port %s (%s)", cfg.Port, cfg.AppEnv)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func buildStorage(cfg *config.Config) (services.Storage, error) {
	if cfg.StorageType == "azure_blob" {
		return services.NewAzureBlobStorage(cfg.AzureConnectionString, cfg.AzureStorageContainer)
	}
	return services.NewLocalStorage(cfg.LocalStoragePath)
}

func joinOrigins(origins []string) string {
	joined := ""
	for i, origin := range origins {
		if i > 0 {
			joined += ", "
		}
		joined += origin
	}
	return joined
}
