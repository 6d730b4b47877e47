package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/service/dashboard"
)

type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /views/dashboard
func (h *DashboardHandler) Summary(c fiber.Ctx) error {
	summary, err := h.svc.Summary(c.Context())
	if err != nil {
		slog.Error("dashboard summary", "error", err)
		return badGateway(c, "Failed to load dashboard data. Please try again later.")
	}

	return ok(c, summary)
}
