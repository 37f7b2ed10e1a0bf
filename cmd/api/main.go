package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"fleet-registry/internal/config"
	"fleet-registry/internal/domain"
	"fleet-registry/internal/handler"
	"fleet-registry/internal/middleware"
	"fleet-registry/internal/repository"
	"fleet-registry/internal/service"
	"fleet-registry/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (document upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)

	protected := v1.Group("", middleware.AuthRequired(authService), middleware.RequireRole(domain.RoleOfficeUser))

	protected.Post("/auth/register", middleware.RequireRole(domain.RoleAdmin), h.Auth.Register)

	vehicles := protected.Group("/vehicles")
	vehicles.Get("/", h.Vehicle.List)
	vehicles.Post("/", h.Vehicle.Create)
	vehicles.Get("/export/csv", h.Vehicle.ExportCSV)
	vehicles.Get("/:chassis", h.Vehicle.Get)
	vehicles.Put("/:chassis", h.Vehicle.Update)
	vehicles.Post("/:chassis/documents", h.Document.Upload)

	protected.Get("/dropdowns", h.Dropdown.List)

	changeLogs := protected.Group("/change-logs")
	changeLogs.Get("/", h.ChangeLog.List)
	changeLogs.Get("/:chassis", h.ChangeLog.ListByChassis)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.Feed)
	notifications.Get("/mine", h.Notification.ListMine)
	notifications.Get("/settings", h.Notification.GetSettings)
	notifications.Put("/settings", h.Notification.UpdateSettings)
	notifications.Patch("/:id/read", h.Notification.MarkRead)
	notifications.Patch("/:id/unread", h.Notification.MarkUnread)
	notifications.Post("/:id/snooze", h.Notification.Snooze)

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Post("/sweep", h.Sweep.Run)
}
