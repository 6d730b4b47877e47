package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/service/treatment"
)

type TreatmentHandler struct {
	svc treatment.Service
}

func NewTreatmentHandler(svc treatment.Service) *TreatmentHandler {
	return &TreatmentHandler{svc: svc}
}

// GET /views/treatments
func (h *TreatmentHandler) List(c fiber.Ctx) error {
	var q struct {
		Patient string `query:"patient"`
		Status  string `query:"status"`
	}
	_ = c.Bind().Query(&q)

	view, err := h.svc.List(c.Context(), q.Patient, q.Status)
	if err != nil {
		slog.Error("list treatments", "error", err)
		return badGateway(c, "Failed to load treatments. Please try again later.")
	}

	return ok(c, view)
}

// GET /forms/treatments/new
func (h *TreatmentHandler) NewForm(c fiber.Ctx) error {
	view, err := h.svc.Form(c.Context(), 0, fiber.Query[string](c, "patient"))
	if err != nil {
		slog.Error("treatment form", "error", err)
		return badGateway(c, "Failed to load form data. Please try again later.")
	}
	return ok(c, view)
}

// GET /forms/treatments/:id
func (h *TreatmentHandler) EditForm(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid treatment id")
	}

	view, err := h.svc.Form(c.Context(), id, "")
	if err != nil {
		slog.Error("treatment form", "id", id, "error", err)
		if errors.Is(err, treatment.ErrTreatmentNotFound) {
			return notFound(c, err.Error())
		}
		return badGateway(c, "Failed to load form data. Please try again later.")
	}
	return ok(c, view)
}

// POST /forms/treatments
func (h *TreatmentHandler) Create(c fiber.Ctx) error {
	var body treatment.Form
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	t, err := h.svc.Create(c.Context(), body)
	if err != nil {
		slog.Error("create treatment", "error", err)
		if errors.Is(err, treatment.ErrPatientRequired) {
			return badRequest(c, err.Error())
		}
		return badGateway(c, "Failed to save treatment data. Please try again.")
	}

	return created(c, t, "Treatment created successfully!", saveRedirect(c, "/treatments"))
}

// PATCH /forms/treatments/:id
func (h *TreatmentHandler) Update(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid treatment id")
	}

	var body treatment.Form
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	t, err := h.svc.Update(c.Context(), id, body)
	if err != nil {
		slog.Error("update treatment", "id", id, "error", err)
		switch {
		case errors.Is(err, treatment.ErrPatientRequired):
			return badRequest(c, err.Error())
		case errors.Is(err, treatment.ErrTreatmentNotFound):
			return notFound(c, err.Error())
		}
		return badGateway(c, "Failed to save treatment data. Please try again.")
	}

	return updated(c, t, "Treatment updated successfully!", saveRedirect(c, "/treatments"))
}
