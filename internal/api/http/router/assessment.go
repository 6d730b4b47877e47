package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/api/http/handler"
)

func (r *Router) registerAssessmentRoutes(api fiber.Router, ah *handler.AssessmentHandler) {
	views := api.Group("/views/assessments")
	views.Get("/", ah.List)

	forms := api.Group("/forms/assessments")
	forms.Get("/new", ah.NewForm)
	forms.Get("/:id", ah.EditForm)
	forms.Post("/", ah.Create)
	forms.Patch("/:id", ah.Update)
}
