package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/i474232898/weather-party-planner/internal/observability"
)

// NewApp builds the Fiber app with middleware, health, metrics and API routes.
func NewApp(planner Planner, metrics *observability.Metrics, log *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-party-planner",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * time.Minute,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-party-planner",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app, planner, metrics, log)

	return app
}

// errorHandler renders every error as {"error": message}. Fiber errors carry
// their own status and caller-safe message; anything else is logged and
// reported as a generic 500.
func errorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		log.Errorw("request failed",
			"requestID", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgInternalError})
	}
}
