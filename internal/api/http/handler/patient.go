package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/service/roster"
)

type PatientHandler struct {
	svc roster.Service
}

func NewPatientHandler(svc roster.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func idParam(c fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	return id, err == nil && id > 0
}

func mapPatientError(c fiber.Ctx, err error, loadMsg string) error {
	switch {
	case errors.Is(err, roster.ErrPatientNotFound):
		return notFound(c, err.Error())
	default:
		return badGateway(c, loadMsg)
	}
}

// GET /views/patients
func (h *PatientHandler) List(c fiber.Ctx) error {
	var q struct {
		Search string `query:"search"`
	}
	_ = c.Bind().Query(&q)

	rows, err := h.svc.List(c.Context(), q.Search)
	if err != nil {
		slog.Error("list patients", "error", err)
		return badGateway(c, "Failed to load patients. Please try again later.")
	}

	return ok(c, fiber.Map{"patients": rows, "search": q.Search})
}

// GET /views/patients/:id
func (h *PatientHandler) Detail(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	detail, err := h.svc.Detail(c.Context(), id)
	if err != nil {
		slog.Error("patient detail", "id", id, "error", err)
		return mapPatientError(c, err, "Failed to load patient data. Please try again later.")
	}

	return ok(c, detail)
}

// GET /forms/patients/new
func (h *PatientHandler) NewForm(c fiber.Ctx) error {
	return ok(c, h.svc.NewForm())
}

// GET /forms/patients/:id
func (h *PatientHandler) EditForm(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	view, err := h.svc.EditForm(c.Context(), id)
	if err != nil {
		slog.Error("patient form", "id", id, "error", err)
		return mapPatientError(c, err, "Failed to load patient data. Please try again later.")
	}

	return ok(c, view)
}

// POST /forms/patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	var body roster.Form
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Create(c.Context(), body)
	if err != nil {
		slog.Error("create patient", "error", err)
		return badGateway(c, "Failed to save patient data. Please try again.")
	}

	return created(c, p, "Patient created successfully!", "/patients")
}

// PATCH /forms/patients/:id
func (h *PatientHandler) Update(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	var body roster.Form
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Update(c.Context(), id, body)
	if err != nil {
		slog.Error("update patient", "id", id, "error", err)
		if errors.Is(err, roster.ErrPatientNotFound) {
			return notFound(c, err.Error())
		}
		return badGateway(c, "Failed to save patient data. Please try again.")
	}

	return updated(c, p, "Patient updated successfully!", "/patients")
}

// DELETE /views/patients/:id
func (h *PatientHandler) Delete(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		slog.Error("delete patient", "id", id, "error", err)
		if errors.Is(err, roster.ErrPatientNotFound) {
			return notFound(c, err.Error())
		}
		return badGateway(c, "Failed to delete patient. Please try again later.")
	}

	return noContent(c)
}
