package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/service/roster"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// rosterStub satisfies roster.Service with canned responses per method.
type rosterStub struct {
	detail    *roster.Detail
	detailErr error
	listErr   error
}

func (s *rosterStub) List(ctx context.Context, search string) ([]roster.Row, error) {
	return nil, s.listErr
}

func (s *rosterStub) Detail(ctx context.Context, id int) (*roster.Detail, error) {
	return s.detail, s.detailErr
}

func (s *rosterStub) NewForm() *roster.FormView { return &roster.FormView{Mode: "create"} }

func (s *rosterStub) EditForm(ctx context.Context, id int) (*roster.FormView, error) {
	return nil, s.detailErr
}

func (s *rosterStub) Create(ctx context.Context, f roster.Form) (*studyapi.Patient, error) {
	return &studyapi.Patient{ID: 1}, nil
}

func (s *rosterStub) Update(ctx context.Context, id int, f roster.Form) (*studyapi.Patient, error) {
	return &studyapi.Patient{ID: id}, nil
}

func (s *rosterStub) Delete(ctx context.Context, id int) error { return s.detailErr }

func newPatientApp(svc roster.Service) *fiber.App {
	app := fiber.New()
	h := NewPatientHandler(svc)
	app.Get("/api/v1/views/patients", h.List)
	app.Get("/api/v1/views/patients/:id", h.Detail)
	app.Delete("/api/v1/views/patients/:id", h.Delete)
	return app
}

func TestPatientDetailNotFound(t *testing.T) {
	app := newPatientApp(&rosterStub{detailErr: roster.ErrPatientNotFound})

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/views/patients/99", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusNotFound)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != roster.ErrPatientNotFound.Error() {
		t.Errorf("error = %q, want %q", body["error"], roster.ErrPatientNotFound.Error())
	}
}

func TestPatientListUpstreamFailure(t *testing.T) {
	app := newPatientApp(&rosterStub{listErr: fmt.Errorf("load patients: %w", studyapi.ErrUpstream)})

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/views/patients", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusBadGateway {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusBadGateway)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Failed to load patients. Please try again later." {
		t.Errorf("error = %q, want the load-failure banner", body["error"])
	}
}

func TestPatientDetailInvalidID(t *testing.T) {
	app := newPatientApp(&rosterStub{})

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/views/patients/abc", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusBadRequest)
	}
}

func TestPatientDelete(t *testing.T) {
	app := newPatientApp(&rosterStub{})

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/views/patients/7", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusNoContent {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusNoContent)
	}
}
