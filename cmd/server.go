package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/resumegpt/assistant/chat/chatapi"
	"github.com/Abraxas-365/resumegpt/assistant/content/contentapi"
	"github.com/Abraxas-365/resumegpt/assistant/session"
	"github.com/Abraxas-365/resumegpt/pkg/config"
	"github.com/Abraxas-365/resumegpt/pkg/httpx"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Configuration and logger
	cfg, err := config.Load(config.Path())
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting ResumeGPT API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "ResumeGPT API",
		DisableStartupMessage: true,
		ErrorHandler:          httpx.ErrorHandler,
		BodyLimit:             cfg.Server.BodyLimitMB << 20,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + session.HeaderSessionToken,
		AllowMethods: "GET, POST, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check and index
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "ok",
			"vector_store": fiber.Map{"backend": cfg.VectorStore.Backend, "ok": container.VectorStoreHealthy()},
			"llm_backends": container.Generator.Backends(),
		})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "ResumeGPT API",
			"message": "Upload a resume, then ask questions about it",
			"endpoints": []string{
				"POST /upload",
				"POST /ask",
				"POST /clear-memory",
				"GET /memory-summary",
				"GET|POST /generate-cover-letter",
				"GET|POST /generate-interview-questions",
				"POST /interview-prep",
				"GET /health",
			},
			"memory_types": []string{"buffer", "window", "summary"},
		})
	})

	// 6. Register Routes
	sessionMiddleware := session.Middleware(container.TokenService)
	chatapi.RegisterRoutes(app, container.ChatHandlers, sessionMiddleware)
	contentapi.RegisterRoutes(app, container.ContentHandlers, sessionMiddleware)

	// 7. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}
