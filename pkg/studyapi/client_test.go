package studyapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecnhealth/clinic_console/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.StudyAPIConfig{BaseURL: srv.URL + "/api"}), srv
}

func TestGetPatient(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients/7" {
			t.Errorf("path = %q, want /api/patients/7", r.URL.Path)
		}
		io.WriteString(w, `{
			"id": 7,
			"first_name": "Jane",
			"last_name": "Doe",
			"date_of_birth": "1990-04-02",
			"inflammatory_markers_level": null
		}`)
	})

	p, err := client.GetPatient(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if p.FullName() != "Jane Doe" {
		t.Errorf("FullName() = %q, want %q", p.FullName(), "Jane Doe")
	}
	if p.DateOfBirth.String() != "1990-04-02" {
		t.Errorf("DateOfBirth = %q, want 1990-04-02", p.DateOfBirth)
	}
	if p.InflammatoryMarkersLevel != nil {
		t.Errorf("InflammatoryMarkersLevel = %v, want nil", p.InflammatoryMarkersLevel)
	}
}

func TestGetPatientNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetPatient(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListPatients(context.Background())
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

func TestCreateTreatmentSendsExplicitNulls(t *testing.T) {
	var body map[string]json.RawMessage
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		io.WriteString(w, `{"id": 1}`)
	})

	_, err := client.CreateTreatment(context.Background(), TreatmentPayload{
		PatientID: 3,
		StartDate: NewDate(Today().Time),
		IsActive:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"end_date", "is_responder", "efficacy_rating"} {
		raw, ok := body[field]
		if !ok {
			t.Errorf("%s missing from payload, want explicit null", field)
			continue
		}
		if string(raw) != "null" {
			t.Errorf("%s = %s, want null", field, raw)
		}
	}
}

func TestListTreatmentsByPatient(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/treatments/patient/3" {
			t.Errorf("path = %q, want /api/treatments/patient/3", r.URL.Path)
		}
		io.WriteString(w, `[
			{"id": 1, "patient_id": 3, "is_responder": true},
			{"id": 2, "patient_id": 3, "is_responder": null}
		]`)
	})

	treatments, err := client.ListTreatmentsByPatient(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(treatments) != 2 {
		t.Fatalf("got %d treatments, want 2", len(treatments))
	}
	if treatments[0].IsResponder != ResponseResponder {
		t.Errorf("IsResponder = %v, want responder", treatments[0].IsResponder)
	}
	if treatments[1].IsResponder != ResponseNotEvaluated {
		t.Errorf("IsResponder = %v, want not evaluated", treatments[1].IsResponder)
	}
}

func TestHealth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %q, want /api/health", r.URL.Path)
		}
		io.WriteString(w, `{"status": "healthy"}`)
	})

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() = %v, want nil", err)
	}
}
