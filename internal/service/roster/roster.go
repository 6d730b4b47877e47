// Package roster derives the patient list, detail and form views from
// the study API. Every call re-fetches from upstream; the console keeps
// no copy of the data between requests.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ecnhealth/clinic_console/internal/forms"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// MarkerStatus classifies a patient's inflammatory markers level.
type MarkerStatus string

const (
	MarkerHigh        MarkerStatus = "High"
	MarkerNormal      MarkerStatus = "Normal"
	MarkerNotMeasured MarkerStatus = "Not Measured"
)

// markerThreshold separates High from Normal. Exactly 2.0 is Normal.
const markerThreshold = 2.0

// ClassifyMarkers maps a measured level to its display classification.
func ClassifyMarkers(level *float64) MarkerStatus {
	switch {
	case level == nil:
		return MarkerNotMeasured
	case *level > markerThreshold:
		return MarkerHigh
	default:
		return MarkerNormal
	}
}

// ---------------------------------------------------------------------------
// View models
// ---------------------------------------------------------------------------

type Row struct {
	ID                      int          `json:"id"`
	Name                    string       `json:"name"`
	Email                   string       `json:"email"`
	Phone                   string       `json:"phone"`
	DateOfBirth             string       `json:"date_of_birth"`
	ECNDysfunctionConfirmed bool         `json:"ecn_dysfunction_confirmed"`
	MarkerStatus            MarkerStatus `json:"marker_status"`
	MarkerLevel             string       `json:"marker_level"`
}

// Detail is the patient detail view: the patient plus their own
// assessments and treatments, each most-recent-first.
type Detail struct {
	Patient     Row                   `json:"patient"`
	Assessments []studyapi.Assessment `json:"assessments"`
	Treatments  []studyapi.Treatment  `json:"treatments"`
}

// Form carries patient fields the way the UI submits them. The
// inflammatory markers level stays a string here; emptiness means
// "not measured", never zero.
type Form struct {
	FirstName                string `json:"first_name"`
	LastName                 string `json:"last_name"`
	DateOfBirth              string `json:"date_of_birth"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	ECNDysfunctionConfirmed  bool   `json:"ecn_dysfunction_confirmed"`
	InflammatoryMarkersLevel string `json:"inflammatory_markers_level"`
}

// Payload normalizes the form for transmission.
func (f Form) Payload() studyapi.PatientPayload {
	return studyapi.PatientPayload{
		FirstName:                strings.TrimSpace(f.FirstName),
		LastName:                 strings.TrimSpace(f.LastName),
		DateOfBirth:              forms.DateField(f.DateOfBirth),
		Email:                    strings.TrimSpace(f.Email),
		Phone:                    strings.TrimSpace(f.Phone),
		ECNDysfunctionConfirmed:  f.ECNDysfunctionConfirmed,
		InflammatoryMarkersLevel: forms.OptionalDecimal(f.InflammatoryMarkersLevel),
	}
}

type FormView struct {
	Mode   string `json:"mode"` // create | edit
	Values Form   `json:"values"`
}

// ---------------------------------------------------------------------------
// Filtering
// ---------------------------------------------------------------------------

// Filter keeps patients whose full name or email contains the search
// term, case-insensitively. Either field matching is enough.
func Filter(patients []studyapi.Patient, search string) []studyapi.Patient {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return patients
	}

	out := make([]studyapi.Patient, 0, len(patients))
	for _, p := range patients {
		fullName := strings.ToLower(p.FullName())
		email := strings.ToLower(p.Email)
		if strings.Contains(fullName, term) || strings.Contains(email, term) {
			out = append(out, p)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, search string) ([]Row, error)
	Detail(ctx context.Context, id int) (*Detail, error)
	NewForm() *FormView
	EditForm(ctx context.Context, id int) (*FormView, error)
	Create(ctx context.Context, f Form) (*studyapi.Patient, error)
	Update(ctx context.Context, id int, f Form) (*studyapi.Patient, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	api *studyapi.Client
}

func New(api *studyapi.Client) Service {
	return &service{api: api}
}

func (s *service) List(ctx context.Context, search string) ([]Row, error) {
	patients, err := s.api.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}

	filtered := Filter(patients, search)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	rows := make([]Row, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, rowFromPatient(p))
	}
	return rows, nil
}

func (s *service) Detail(ctx context.Context, id int) (*Detail, error) {
	var (
		patient     *studyapi.Patient
		assessments []studyapi.Assessment
		treatments  []studyapi.Treatment
	)

	// All three fetches must land before the view renders; a failure in
	// any one fails the whole view.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patient, err = s.api.GetPatient(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		assessments, err = s.api.ListAssessmentsByPatient(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		treatments, err = s.api.ListTreatmentsByPatient(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient %d: %w", id, err)
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].AssessmentDate.After(assessments[j].AssessmentDate.Time)
	})
	sort.SliceStable(treatments, func(i, j int) bool {
		return treatments[i].StartDate.After(treatments[j].StartDate.Time)
	})

	return &Detail{
		Patient:     rowFromPatient(*patient),
		Assessments: assessments,
		Treatments:  treatments,
	}, nil
}

func (s *service) NewForm() *FormView {
	return &FormView{Mode: "create", Values: Form{}}
}

func (s *service) EditForm(ctx context.Context, id int) (*FormView, error) {
	p, err := s.api.GetPatient(ctx, id)
	if err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient %d: %w", id, err)
	}
	return &FormView{Mode: "edit", Values: formFromPatient(*p)}, nil
}

func (s *service) Create(ctx context.Context, f Form) (*studyapi.Patient, error) {
	p, err := s.api.CreatePatient(ctx, f.Payload())
	if err != nil {
		return nil, fmt.Errorf("save patient: %w", err)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id int, f Form) (*studyapi.Patient, error) {
	p, err := s.api.UpdatePatient(ctx, id, f.Payload())
	if err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("save patient %d: %w", id, err)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.api.DeletePatient(ctx, id); err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("delete patient %d: %w", id, err)
	}
	return nil
}

func rowFromPatient(p studyapi.Patient) Row {
	return Row{
		ID:                      p.ID,
		Name:                    p.FullName(),
		Email:                   p.Email,
		Phone:                   p.Phone,
		DateOfBirth:             p.DateOfBirth.String(),
		ECNDysfunctionConfirmed: p.ECNDysfunctionConfirmed,
		MarkerStatus:            ClassifyMarkers(p.InflammatoryMarkersLevel),
		MarkerLevel:             forms.DecimalString(p.InflammatoryMarkersLevel),
	}
}

func formFromPatient(p studyapi.Patient) Form {
	return Form{
		FirstName:                p.FirstName,
		LastName:                 p.LastName,
		DateOfBirth:              p.DateOfBirth.String(),
		Email:                    p.Email,
		Phone:                    p.Phone,
		ECNDysfunctionConfirmed:  p.ECNDysfunctionConfirmed,
		InflammatoryMarkersLevel: forms.DecimalString(p.InflammatoryMarkersLevel),
	}
}
