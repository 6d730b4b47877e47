package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/api/http/handler"
)

func (r *Router) registerDashboardRoutes(api fiber.Router, dh *handler.DashboardHandler) {
	api.Get("/views/dashboard", dh.Summary)
}
