package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casedesk/casedesk/pkg/config"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load environment and initialize logger
	if err := godotenv.Load(); err != nil {
		logx.Debugf("No .env file loaded: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(config.GetEnv("LOG_LEVEL", "info")))

	logx.Info("🚀 Starting CaseDesk API Server...")

	cfg := config.Load()

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Cleanup()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "CaseDesk API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
	})

	// 4. Global Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${reqHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	// 5. Health check and dashboard
	app.Get("/health", healthCheckHandler(container))
	app.Get("/api/v1/dashboard", dashboardHandler(container))

	// 6. Register Routes
	container.CaseHandlers.RegisterRoutes(app)
	logx.Info("✓ Case routes registered")

	container.DocumentHandlers.RegisterRoutes(app)
	logx.Info("✓ Document routes registered")

	container.InterviewHandlers.RegisterRoutes(app)
	logx.Info("✓ Interview routes registered")

	container.QuestionnaireHandlers.RegisterRoutes(app)
	logx.Info("✓ Questionnaire routes registered")

	container.ContactHandlers.RegisterRoutes(app)
	logx.Info("✓ Contact routes registered")

	// 7. 404 Handler
	app.Use(notFoundHandler)

	// 8. Start Server with Graceful Shutdown
	startServer(app, cfg)
}

// ============================================================================
// Handler Functions
// ============================================================================

// healthCheckHandler reports the status of the server and its backing stores.
func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":  "healthy",
			"service": "casedesk-api",
			"version": config.GetEnv("APP_VERSION", "1.0.0"),
		}

		if err := container.DB.Ping(); err != nil {
			health["db"] = "unhealthy"
			health["db_error"] = err.Error()
			health["status"] = "degraded"
		} else {
			health["db"] = "healthy"
		}

		if err := container.Redis.Ping(c.Context()).Err(); err != nil {
			health["redis"] = "unhealthy"
			health["redis_error"] = err.Error()
			health["status"] = "degraded"
		} else {
			health["redis"] = "healthy"
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}

		return c.Status(status).JSON(health)
	}
}

// dashboardHandler composes the landing-page counters.
func dashboardHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		caseCount, err := container.CaseService.Count(ctx)
		if err != nil {
			return err
		}
		latestCaseUpdate, err := container.CaseService.LatestUpdatedAt(ctx)
		if err != nil {
			return err
		}
		documentCount, err := container.DocumentService.Count(ctx)
		if err != nil {
			return err
		}
		questionCount, err := container.QuestionnaireService.CountQuestions(ctx)
		if err != nil {
			return err
		}

		dashboard := fiber.Map{
			"case_count":     caseCount,
			"document_count": documentCount,
			"question_count": questionCount,
		}
		if !latestCaseUpdate.IsZero() {
			dashboard["latest_case_update"] = latestCaseUpdate
		}

		return c.JSON(dashboard)
	}
}

// notFoundHandler handles 404 errors
func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"message":    "The requested endpoint does not exist",
		"request_id": c.Get("X-Request-ID"),
	})
}

// ============================================================================
// Error Handler
// ============================================================================

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	logx.ErrorWith("Request error", err, logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"ip":         c.IP(),
		"request_id": c.Get("X-Request-ID"),
	})

	// If it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error":      e.Message,
			"code":       "FIBER_ERROR",
			"status":     e.Code,
			"request_id": c.Get("X-Request-ID"),
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		response := fiber.Map{
			"error":      e.ToHTTPResponse(),
			"request_id": c.Get("X-Request-ID"),
		}

		if config.GetEnv("DEBUG", "false") == "true" && e.Err != nil {
			response["underlying_error"] = e.Err.Error()
		}

		return c.Status(e.HTTPStatus).JSON(response)
	}

	// Default unknown error
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":      "Internal Server Error",
		"type":       "INTERNAL",
		"code":       "INTERNAL_ERROR",
		"message":    "An unexpected error occurred",
		"request_id": c.Get("X-Request-ID"),
	})
}

// ============================================================================
// Lifecycle
// ============================================================================

// startServer starts the server with graceful shutdown
func startServer(app *fiber.App, cfg *config.Config) {
	go func() {
		logx.Infof("🚀 Server listening on port %d", cfg.Server.Port)
		logx.Infof("💚 Health Check: http://localhost:%d/health", cfg.Server.Port)

		if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app)
}

// gracefulShutdown handles graceful server shutdown
func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
