package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/api/http/handler"
)

func (r *Router) registerTreatmentRoutes(api fiber.Router, th *handler.TreatmentHandler) {
	views := api.Group("/views/treatments")
	views.Get("/", th.List)

	forms := api.Group("/forms/treatments")
	forms.Get("/new", th.NewForm)
	forms.Get("/:id", th.EditForm)
	forms.Post("/", th.Create)
	forms.Patch("/:id", th.Update)
}
