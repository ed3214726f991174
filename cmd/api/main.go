package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"plataforma-pm/internal/config"
	"plataforma-pm/internal/handler"
	"plataforma-pm/internal/middleware"
	"plataforma-pm/internal/repository"
	"plataforma-pm/internal/service"
	"plataforma-pm/internal/service/auth"
	"plataforma-pm/internal/service/scheduler"
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

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, cfg)
	handlers := handler.NewHandlers(services)

	runner := scheduler.NewRunner(services.Scheduler, cfg.SchedulerInterval, cfg.SchedulerBatchSize)
	if err := runner.Start(); err != nil {
		log.Fatalf("Failed to start scheduled notification processor: %v", err)
	}
	defer runner.Stop()

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

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
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

	protected := v1.Group("", middleware.AuthRequired(authService))

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	admin := protected.Group("/admin/notifications", middleware.OrgContext())
	admin.Post("/send", h.Broadcast.Send)
	admin.Post("/scheduled", h.Broadcast.Schedule)
	admin.Get("/scheduled", h.Broadcast.ListScheduled)
	admin.Patch("/scheduled/:id", h.Broadcast.UpdateScheduled)
	admin.Delete("/scheduled/:id", h.Broadcast.CancelScheduled)
	admin.Get("/history", h.Broadcast.SendHistory)
	admin.Get("/stats/summary", h.Broadcast.Summary)
	admin.Get("/stats/:id", h.Broadcast.DeliveryStats)
	admin.Get("/targets", h.Broadcast.SearchTargets)
	admin.Post("/process", middleware.RequireSuperAdmin(), h.Broadcast.ProcessNow)

	audit := protected.Group("/audit")
	audit.Get("/recent", h.Audit.GetRecentActivities)
}
