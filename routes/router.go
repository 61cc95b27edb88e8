package routes

import (
	"errors"

	"klinika.admin/configs"
	"klinika.admin/configs/configslog"
	"klinika.admin/middlewares"
	"klinika.admin/pkg/flashmessages"
	"klinika.admin/pkg/renderer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies holds what the route groups need to build their handlers.
type Dependencies struct {
	Config   *configs.Config
	DB       *gorm.DB
	Validate *validator.Validate
	Sessions *session.Store
}

// SetupRoutes registers the global middleware, every route group and the
// 404 fallback.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.Sessions == nil {
		deps.Sessions = configs.SetupSession()
	}

	app.Use(recoverMiddleware.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(middlewares.Metrics())
	app.Use(initializeSession(deps.Sessions))

	registerSystemRoutes(app, deps)

	app.Use(middlewares.AdminAuth(deps.Config))
	registerDashboardRoutes(app, deps)
	registerPanelRoutes(app, deps)

	app.Use(notFoundHandler)
}

func initializeSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(flashmessages.SessionStoreKey, store)
		return c.Next()
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	middlewares.MarkUnmatched(c)
	accepts := c.Accepts("text/html", "application/json")
	if accepts == "application/json" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	}
	return renderer.RenderNotFound(c, "")
}

// ErrorHandler renders the error pages for errors that escape a handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	switch {
	case code == fiber.StatusNotFound:
		return renderer.RenderNotFound(c, "")
	case code >= fiber.StatusInternalServerError:
		configslog.Log.Error("Unhandled error",
			zap.String("path", c.Path()),
			zap.Any("requestid", c.Locals("requestid")),
			zap.Error(err))
		if renderErr := renderer.RenderError(c); renderErr != nil {
			return c.Status(code).SendString(fiber.ErrInternalServerError.Message)
		}
		return nil
	default:
		return c.Status(code).SendString(err.Error())
	}
}
