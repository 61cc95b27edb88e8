package handlers

import (
	"net/http"

	"klinika.admin/configs/configslog"
	"klinika.admin/pkg/renderer"
	"klinika.admin/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler shows an overview of the clinic network.
type DashboardHandler struct {
	service services.IDashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(service services.IDashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Home renders the dashboard with the network counts.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	counts, err := h.service.GetNetworkCounts(c.UserContext())

	renderData := fiber.Map{
		"Title":  "Dashboard",
		"Counts": counts,
	}
	if err != nil {
		configslog.Log.Error("Dashboard - Home Error", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Counts could not be loaded."
	}
	return renderer.Render(c, "dashboard/home", renderer.MainLayout, renderData, http.StatusOK)
}
