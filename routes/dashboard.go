package routes

import (
	dashboard_handlers "klinika.admin/handlers/dashboard"
	"klinika.admin/services"

	"github.com/gofiber/fiber/v2"
)

func registerDashboardRoutes(app *fiber.App, deps Dependencies) {
	dashboardHandler := dashboard_handlers.NewDashboardHandler(services.NewDashboardService(deps.DB))
	app.Get("/dashboard", dashboardHandler.Home)
}
