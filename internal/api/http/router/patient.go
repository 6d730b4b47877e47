package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/api/http/handler"
)

func (r *Router) registerPatientRoutes(api fiber.Router, ph *handler.PatientHandler) {
	views := api.Group("/views/patients")
	views.Get("/", ph.List)
	views.Get("/:id", ph.Detail)
	views.Delete("/:id", ph.Delete)

	forms := api.Group("/forms/patients")
	// "new" must register before the id route
	forms.Get("/new", ph.NewForm)
	forms.Get("/:id", ph.EditForm)
	forms.Post("/", ph.Create)
	forms.Patch("/:id", ph.Update)
}
