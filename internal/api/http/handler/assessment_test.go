package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/internal/service/assessment"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// assessmentStub satisfies assessment.Service with canned responses.
type assessmentStub struct {
	createErr error
}

func (s *assessmentStub) List(ctx context.Context, patientFilter string) (*assessment.ListView, error) {
	return &assessment.ListView{PatientFilter: patientFilter}, nil
}

func (s *assessmentStub) Form(ctx context.Context, id int, preselectedPatient string) (*assessment.FormView, error) {
	return &assessment.FormView{Mode: "create", PatientLocked: preselectedPatient != ""}, nil
}

func (s *assessmentStub) Create(ctx context.Context, f assessment.Form) (*studyapi.Assessment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &studyapi.Assessment{ID: 1}, nil
}

func (s *assessmentStub) Update(ctx context.Context, id int, f assessment.Form) (*studyapi.Assessment, error) {
	return &studyapi.Assessment{ID: id}, nil
}

func newAssessmentApp(svc assessment.Service) *fiber.App {
	app := fiber.New()
	h := NewAssessmentHandler(svc)
	app.Get("/api/v1/forms/assessments/new", h.NewForm)
	app.Post("/api/v1/forms/assessments", h.Create)
	app.Patch("/api/v1/forms/assessments/:id", h.Update)
	return app
}

func postJSON(t *testing.T, app *fiber.App, target string, body any) map[string]json.RawMessage {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", target, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, fiber.StatusCreated)
	}
	var decoded map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	return decoded
}

func TestAssessmentCreateRedirectsToPatientDetail(t *testing.T) {
	app := newAssessmentApp(&assessmentStub{})

	body := postJSON(t, app, "/api/v1/forms/assessments?patient=3", assessment.Form{PatientID: "3"})

	var redirect, message string
	json.Unmarshal(body["redirect"], &redirect)
	json.Unmarshal(body["message"], &message)
	if redirect != "/patients/3" {
		t.Errorf("redirect = %q, want %q", redirect, "/patients/3")
	}
	if message != "Assessment created successfully!" {
		t.Errorf("message = %q, want the create banner", message)
	}
}

func TestAssessmentCreateRedirectsToListByDefault(t *testing.T) {
	app := newAssessmentApp(&assessmentStub{})

	body := postJSON(t, app, "/api/v1/forms/assessments", assessment.Form{PatientID: "3"})

	var redirect string
	json.Unmarshal(body["redirect"], &redirect)
	if redirect != "/assessments" {
		t.Errorf("redirect = %q, want %q", redirect, "/assessments")
	}
}

func TestAssessmentCreateWithoutPatient(t *testing.T) {
	app := newAssessmentApp(&assessmentStub{createErr: assessment.ErrPatientRequired})

	req := httptest.NewRequest("POST", "/api/v1/forms/assessments", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusBadRequest)
	}
}

func TestAssessmentNewFormLocksPreselectedPatient(t *testing.T) {
	app := newAssessmentApp(&assessmentStub{})

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/forms/assessments/new?patient=5", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var body struct {
		Data assessment.FormView `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Data.PatientLocked {
		t.Error("PatientLocked = false, want true for preselected patient")
	}
}
