package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/service/assessment"
)

type AssessmentHandler struct {
	svc assessment.Service
}

func NewAssessmentHandler(svc assessment.Service) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

// saveRedirect points back to the patient detail when the form was
// opened from there, otherwise to the section list.
func saveRedirect(c fiber.Ctx, fallback string) string {
	if patient := fiber.Query[string](c, "patient"); patient != "" {
		return "/patients/" + patient
	}
	return fallback
}

// GET /views/assessments
func (h *AssessmentHandler) List(c fiber.Ctx) error {
	var q struct {
		Patient string `query:"patient"`
	}
	_ = c.Bind().Query(&q)

	view, err := h.svc.List(c.Context(), q.Patient)
	if err != nil {
		slog.Error("list assessments", "error", err)
		return badGateway(c, "Failed to load assessments. Please try again later.")
	}

	return ok(c, view)
}

// GET /forms/assessments/new
func (h *AssessmentHandler) NewForm(c fiber.Ctx) error {
	view, err := h.svc.Form(c.Context(), 0, fiber.Query[string](c, "patient"))
	if err != nil {
		slog.Error("assessment form", "error", err)
		return badGateway(c, "Failed to load form data. Please try again later.")
	}
	return ok(c, view)
}

// GET /forms/assessments/:id
func (h *AssessmentHandler) EditForm(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid assessment id")
	}

	view, err := h.svc.Form(c.Context(), id, "")
	if err != nil {
		slog.Error("assessment form", "id", id, "error", err)
		if errors.Is(err, assessment.ErrAssessmentNotFound) {
			return notFound(c, err.Error())
		}
		return badGateway(c, "Failed to load form data. Please try again later.")
	}
	return ok(c, view)
}

// POST /forms/assessments
func (h *AssessmentHandler) Create(c fiber.Ctx) error {
	var body assessment.Form
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.Create(c.Context(), body)
	if err != nil {
		slog.Error("create assessment", "error", err)
		if errors.Is(err, assessment.ErrPatientRequired) {
			return badRequest(c, err.Error())
		}
		return badGateway(c, "Failed to save assessment data. Please try again.")
	}

	return created(c, a, "Assessment created successfully!", saveRedirect(c, "/assessments"))
}

// PATCH /forms/assessments/:id
func (h *AssessmentHandler) Update(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid assessment id")
	}

	var body assessment.Form
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.Update(c.Context(), id, body)
	if err != nil {
		slog.Error("update assessment", "id", id, "error", err)
		switch {
		case errors.Is(err, assessment.ErrPatientRequired):
			return badRequest(c, err.Error())
		case errors.Is(err, assessment.ErrAssessmentNotFound):
			return notFound(c, err.Error())
		}
		return badGateway(c, "Failed to save assessment data. Please try again.")
	}

	return updated(c, a, "Assessment updated successfully!", saveRedirect(c, "/assessments"))
}
