// Package treatment derives the treatment list and form views, and owns
// the responder-rate formula used by both the list and the dashboard.
package treatment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ecnhealth/clinic_console/internal/charts"
	"github.com/ecnhealth/clinic_console/internal/forms"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// Dropdown options offered by the forms. "Other" requires the detail to
// be spelled out in notes.
var (
	Medications = []string{"Ibuprofen", "Naproxen", "Aspirin", "Celecoxib", "Other"}
	Dosages     = []string{"400mg", "600mg", "800mg", "Other"}
	Frequencies = []string{"QD", "BID", "TID", "QID", "PRN", "Other"}
)

// ---------------------------------------------------------------------------
// Response statistics
// ---------------------------------------------------------------------------

// ResponseStats summarizes treatment outcomes. Only evaluated
// treatments count: not-evaluated is excluded from both the numerator
// and the denominator.
type ResponseStats struct {
	Responders    int     `json:"responders"`
	NonResponders int     `json:"non_responders"`
	Rate          float64 `json:"-"`
	ResponderRate string  `json:"responder_rate"` // percentage, one decimal place
}

// ComputeResponseStats is the single implementation of the responder
// rate; the dashboard and the treatment list both go through it so the
// two views always agree.
func ComputeResponseStats(treatments []studyapi.Treatment) ResponseStats {
	var responders, nonResponders int
	for _, t := range treatments {
		switch t.IsResponder {
		case studyapi.ResponseResponder:
			responders++
		case studyapi.ResponseNonResponder:
			nonResponders++
		}
	}

	var rate float64
	if evaluated := responders + nonResponders; evaluated > 0 {
		rate = float64(responders) / float64(evaluated) * 100
	}

	return ResponseStats{
		Responders:    responders,
		NonResponders: nonResponders,
		Rate:          rate,
		ResponderRate: strconv.FormatFloat(rate, 'f', 1, 64),
	}
}

// ---------------------------------------------------------------------------
// Filtering
// ---------------------------------------------------------------------------

// Filter keeps treatments matching both the patient and the status
// selection. "all" (or empty) disables the corresponding predicate;
// "active" selects running treatments, "completed" finished ones.
func Filter(treatments []studyapi.Treatment, patientFilter, statusFilter string) []studyapi.Treatment {
	out := make([]studyapi.Treatment, 0, len(treatments))
	for _, t := range treatments {
		patientMatch := patientFilter == "" || patientFilter == "all"
		if !patientMatch {
			if id, ok := forms.PatientID(patientFilter); ok {
				patientMatch = t.PatientID == id
			}
		}

		statusMatch := true
		switch statusFilter {
		case "active":
			statusMatch = t.IsActive
		case "completed":
			statusMatch = !t.IsActive
		}

		if patientMatch && statusMatch {
			out = append(out, t)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Form
// ---------------------------------------------------------------------------

// Form carries treatment fields the way the UI submits them: numerics
// and dates as strings, the tri-state outcome as its radio value.
type Form struct {
	PatientID      string `json:"patient_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	IsActive       bool   `json:"is_active"`
	IsResponder    string `json:"is_responder"` // "null" | "true" | "false"
	EfficacyRating string `json:"efficacy_rating"`
	Notes          string `json:"notes"`
}

// Defaults is the create-mode form state.
func Defaults(preselectedPatient string) Form {
	return Form{
		PatientID:      preselectedPatient,
		StartDate:      studyapi.Today().String(),
		MedicationName: "Ibuprofen",
		Dosage:         "400mg",
		Frequency:      "TID",
		IsActive:       true,
		IsResponder:    "null",
	}
}

// ToggleActive applies the coupling between the active flag and the end
// date in one transition: deactivating with no end date set fills in
// today; activating clears the end date.
func ToggleActive(f Form, active bool, today studyapi.Date) Form {
	f.IsActive = active
	if active {
		f.EndDate = ""
	} else if f.EndDate == "" {
		f.EndDate = today.String()
	}
	return f
}

// Payload normalizes the form for transmission, re-applying the
// active/end-date coupling so an active treatment never carries an end
// date upstream.
func (f Form) Payload(today studyapi.Date) (studyapi.TreatmentPayload, error) {
	pid, ok := forms.PatientID(f.PatientID)
	if !ok {
		return studyapi.TreatmentPayload{}, ErrPatientRequired
	}

	f = ToggleActive(f, f.IsActive, today)

	return studyapi.TreatmentPayload{
		PatientID:      pid,
		StartDate:      forms.DateField(f.StartDate),
		EndDate:        forms.OptionalDateField(f.EndDate),
		MedicationName: f.MedicationName,
		Dosage:         f.Dosage,
		Frequency:      f.Frequency,
		IsActive:       f.IsActive,
		IsResponder:    forms.Response(f.IsResponder),
		EfficacyRating: forms.OptionalDecimal(f.EfficacyRating),
		Notes:          f.Notes,
	}, nil
}

// ---------------------------------------------------------------------------
// View models
// ---------------------------------------------------------------------------

type PatientOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Row struct {
	ID             int    `json:"id"`
	PatientID      int    `json:"patient_id"`
	PatientName    string `json:"patient_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	IsActive       bool   `json:"is_active"`
	Response       string `json:"response"`
	EfficacyRating string `json:"efficacy_rating"`
}

type ListView struct {
	Rows          []Row           `json:"rows"`
	Patients      []PatientOption `json:"patients"`
	Stats         ResponseStats   `json:"stats"`
	Chart         charts.Config   `json:"chart"`
	PatientFilter string          `json:"patient_filter"`
	StatusFilter  string          `json:"status_filter"`
}

type FormView struct {
	Mode          string          `json:"mode"` // create | edit
	Values        Form            `json:"values"`
	Patients      []PatientOption `json:"patients"`
	PatientLocked bool            `json:"patient_locked"`
	Medications   []string        `json:"medications"`
	Dosages       []string        `json:"dosages"`
	Frequencies   []string        `json:"frequencies"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, patientFilter, statusFilter string) (*ListView, error)
	Form(ctx context.Context, id int, preselectedPatient string) (*FormView, error)
	Create(ctx context.Context, f Form) (*studyapi.Treatment, error)
	Update(ctx context.Context, id int, f Form) (*studyapi.Treatment, error)
}

type service struct {
	api *studyapi.Client
}

func New(api *studyapi.Client) Service {
	return &service{api: api}
}

func (s *service) List(ctx context.Context, patientFilter, statusFilter string) (*ListView, error) {
	var (
		treatments []studyapi.Treatment
		patients   []studyapi.Patient
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		treatments, err = s.api.ListTreatments(gctx)
		return err
	})
	g.Go(func() (err error) {
		patients, err = s.api.ListPatients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load treatments: %w", err)
	}

	// Response stats cover the full collection, not the filtered subset.
	stats := ComputeResponseStats(treatments)

	filtered := Filter(treatments, patientFilter, statusFilter)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartDate.After(filtered[j].StartDate.Time)
	})

	names := patientNames(patients)
	rows := make([]Row, 0, len(filtered))
	for _, t := range filtered {
		rows = append(rows, rowFromTreatment(t, names))
	}

	return &ListView{
		Rows:          rows,
		Patients:      patientOptions(patients),
		Stats:         stats,
		Chart:         charts.ResponseDistributionDoughnut(stats.Responders, stats.NonResponders),
		PatientFilter: patientFilter,
		StatusFilter:  statusFilter,
	}, nil
}

func (s *service) Form(ctx context.Context, id int, preselectedPatient string) (*FormView, error) {
	var (
		patients []studyapi.Patient
		existing *studyapi.Treatment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patients, err = s.api.ListPatients(gctx)
		return err
	})
	if id > 0 {
		g.Go(func() (err error) {
			existing, err = s.api.GetTreatment(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return nil, ErrTreatmentNotFound
		}
		return nil, fmt.Errorf("load treatment form: %w", err)
	}

	view := &FormView{
		Patients:      patientOptions(patients),
		PatientLocked: preselectedPatient != "",
		Medications:   Medications,
		Dosages:       Dosages,
		Frequencies:   Frequencies,
	}
	if existing != nil {
		view.Mode = "edit"
		view.Values = formFromTreatment(*existing)
	} else {
		view.Mode = "create"
		view.Values = Defaults(preselectedPatient)
	}
	return view, nil
}

func (s *service) Create(ctx context.Context, f Form) (*studyapi.Treatment, error) {
	payload, err := f.Payload(studyapi.Today())
	if err != nil {
		return nil, err
	}
	t, err := s.api.CreateTreatment(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("save treatment: %w", err)
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, id int, f Form) (*studyapi.Treatment, error) {
	payload, err := f.Payload(studyapi.Today())
	if err != nil {
		return nil, err
	}
	t, err := s.api.UpdateTreatment(ctx, id, payload)
	if err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return nil, ErrTreatmentNotFound
		}
		return nil, fmt.Errorf("save treatment %d: %w", id, err)
	}
	return t, nil
}

func patientNames(patients []studyapi.Patient) map[int]string {
	names := make(map[int]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.FullName()
	}
	return names
}

func patientOptions(patients []studyapi.Patient) []PatientOption {
	opts := make([]PatientOption, 0, len(patients))
	for _, p := range patients {
		opts = append(opts, PatientOption{ID: p.ID, Name: p.FullName()})
	}
	return opts
}

func rowFromTreatment(t studyapi.Treatment, names map[int]string) Row {
	name, ok := names[t.PatientID]
	if !ok {
		// the patient may have been deleted between fetches
		name = "Unknown Patient"
	}

	endDate := ""
	if t.EndDate != nil {
		endDate = t.EndDate.String()
	}

	return Row{
		ID:             t.ID,
		PatientID:      t.PatientID,
		PatientName:    name,
		StartDate:      t.StartDate.String(),
		EndDate:        endDate,
		MedicationName: t.MedicationName,
		Dosage:         t.Dosage,
		Frequency:      t.Frequency,
		IsActive:       t.IsActive,
		Response:       t.IsResponder.String(),
		EfficacyRating: forms.DecimalString(t.EfficacyRating),
	}
}

func formFromTreatment(t studyapi.Treatment) Form {
	endDate := ""
	if t.EndDate != nil {
		endDate = t.EndDate.String()
	}
	return Form{
		PatientID:      strconv.Itoa(t.PatientID),
		StartDate:      t.StartDate.String(),
		EndDate:        endDate,
		MedicationName: t.MedicationName,
		Dosage:         t.Dosage,
		Frequency:      t.Frequency,
		IsActive:       t.IsActive,
		IsResponder:    forms.ResponseString(t.IsResponder),
		EfficacyRating: forms.DecimalString(t.EfficacyRating),
		Notes:          t.Notes,
	}
}
