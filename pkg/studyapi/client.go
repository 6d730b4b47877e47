// Package studyapi provides a minimal HTTP client for the study
// platform's REST backend. The console owns no data; this client is its
// only source of patients, assessments and treatments.
package studyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ecnhealth/clinic_console/config"
)

// Client is a lightweight study platform HTTP client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client from config. BaseURL should include the API
// prefix, e.g. "http://localhost:8000/api".
func New(cfg config.StudyAPIConfig) *Client {
	timeout := 30 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ---------------------------------------------------------------------------
// Patients
// ---------------------------------------------------------------------------

func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := c.do(ctx, http.MethodGet, "/patients", nil, &out); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return out, nil
}

func (c *Client) GetPatient(ctx context.Context, id int) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil, &out); err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, p PatientPayload) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPost, "/patients", p, &out); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id int, p PatientPayload) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/patients/%d", id), p, &out); err != nil {
		return nil, fmt.Errorf("update patient %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeletePatient(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete patient %d: %w", id, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Assessments
// ---------------------------------------------------------------------------

func (c *Client) ListAssessments(ctx context.Context) ([]Assessment, error) {
	var out []Assessment
	if err := c.do(ctx, http.MethodGet, "/assessments", nil, &out); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return out, nil
}

func (c *Client) GetAssessment(ctx context.Context, id int) (*Assessment, error) {
	var out Assessment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/assessments/%d", id), nil, &out); err != nil {
		return nil, fmt.Errorf("get assessment %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) ListAssessmentsByPatient(ctx context.Context, patientID int) ([]Assessment, error) {
	var out []Assessment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/assessments/patient/%d", patientID), nil, &out); err != nil {
		return nil, fmt.Errorf("list assessments for patient %d: %w", patientID, err)
	}
	return out, nil
}

func (c *Client) CreateAssessment(ctx context.Context, a AssessmentPayload) (*Assessment, error) {
	var out Assessment
	if err := c.do(ctx, http.MethodPost, "/assessments", a, &out); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateAssessment(ctx context.Context, id int, a AssessmentPayload) (*Assessment, error) {
	var out Assessment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/assessments/%d", id), a, &out); err != nil {
		return nil, fmt.Errorf("update assessment %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteAssessment(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/assessments/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete assessment %d: %w", id, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Treatments
// ---------------------------------------------------------------------------

func (c *Client) ListTreatments(ctx context.Context) ([]Treatment, error) {
	var out []Treatment
	if err := c.do(ctx, http.MethodGet, "/treatments", nil, &out); err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	return out, nil
}

func (c *Client) GetTreatment(ctx context.Context, id int) (*Treatment, error) {
	var out Treatment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/treatments/%d", id), nil, &out); err != nil {
		return nil, fmt.Errorf("get treatment %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) ListTreatmentsByPatient(ctx context.Context, patientID int) ([]Treatment, error) {
	var out []Treatment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/treatments/patient/%d", patientID), nil, &out); err != nil {
		return nil, fmt.Errorf("list treatments for patient %d: %w", patientID, err)
	}
	return out, nil
}

func (c *Client) CreateTreatment(ctx context.Context, t TreatmentPayload) (*Treatment, error) {
	var out Treatment
	if err := c.do(ctx, http.MethodPost, "/treatments", t, &out); err != nil {
		return nil, fmt.Errorf("create treatment: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateTreatment(ctx context.Context, id int, t TreatmentPayload) (*Treatment, error) {
	var out Treatment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/treatments/%d", id), t, &out); err != nil {
		return nil, fmt.Errorf("update treatment %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteTreatment(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/treatments/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete treatment %d: %w", id, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

// Health pings the upstream health endpoint; the console's readiness
// probe delegates to it.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

// do sends a JSON request to baseURL+path and decodes the JSON response
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode >= 400:
		return fmt.Errorf("%w (status=%d)", ErrUpstream, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
