// Package assessment derives the assessment list and form views from
// the study API, joining rows against the patient roster for display
// names and summarizing the inflammatory biomarkers per row.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ecnhealth/clinic_console/internal/forms"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// Types is the fixed set of assessment types offered by the form.
var Types = []string{"fMRI", "N-back Task", "WPAI", "Blood Test", "Comprehensive"}

// BiomarkerSummary renders the inflammatory markers of one assessment
// as a single cell: only present values appear, separated by ", ".
// When none are present the placeholder "N/A" is returned so the cell
// is never blank.
func BiomarkerSummary(a studyapi.Assessment) string {
	var parts []string
	if a.CRPLevel != nil {
		parts = append(parts, "CRP: "+forms.DecimalString(a.CRPLevel))
	}
	if a.IL6Level != nil {
		parts = append(parts, "IL-6: "+forms.DecimalString(a.IL6Level))
	}
	if a.TNFAlphaLevel != nil {
		parts = append(parts, "TNF-α: "+forms.DecimalString(a.TNFAlphaLevel))
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}

// Filter keeps assessments for the selected patient; "all" (or empty)
// keeps everything. An unparseable selection matches nothing, same as
// the treatment filter.
func Filter(assessments []studyapi.Assessment, patientFilter string) []studyapi.Assessment {
	if patientFilter == "" || patientFilter == "all" {
		return assessments
	}
	id, _ := forms.PatientID(patientFilter)

	out := make([]studyapi.Assessment, 0, len(assessments))
	for _, a := range assessments {
		if a.PatientID == id {
			out = append(out, a)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Form
// ---------------------------------------------------------------------------

type Form struct {
	PatientID      string          `json:"patient_id"`
	AssessmentDate string          `json:"assessment_date"`
	AssessmentType string          `json:"assessment_type"`
	FMRIData       json.RawMessage `json:"fmri_data"`
	NBackTaskScore string          `json:"n_back_task_score"`
	WPAIScore      string          `json:"wpai_score"`
	CRPLevel       string          `json:"crp_level"`
	IL6Level       string          `json:"il6_level"`
	TNFAlphaLevel  string          `json:"tnf_alpha_level"`
	Notes          string          `json:"notes"`
}

// Defaults is the create-mode form state.
func Defaults(preselectedPatient string) Form {
	return Form{
		PatientID:      preselectedPatient,
		AssessmentDate: studyapi.Today().String(),
		FMRIData:       json.RawMessage(`{}`),
	}
}

// Payload normalizes the form for transmission: empty numeric inputs
// become explicit nulls and the patient reference becomes an integer.
func (f Form) Payload() (studyapi.AssessmentPayload, error) {
	pid, ok := forms.PatientID(f.PatientID)
	if !ok {
		return studyapi.AssessmentPayload{}, ErrPatientRequired
	}

	fmri := f.FMRIData
	if len(fmri) == 0 {
		fmri = json.RawMessage(`{}`)
	}

	return studyapi.AssessmentPayload{
		PatientID:      pid,
		AssessmentDate: forms.DateField(f.AssessmentDate),
		AssessmentType: f.AssessmentType,
		FMRIData:       fmri,
		NBackTaskScore: forms.OptionalDecimal(f.NBackTaskScore),
		WPAIScore:      forms.OptionalDecimal(f.WPAIScore),
		CRPLevel:       forms.OptionalDecimal(f.CRPLevel),
		IL6Level:       forms.OptionalDecimal(f.IL6Level),
		TNFAlphaLevel:  forms.OptionalDecimal(f.TNFAlphaLevel),
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
	AssessmentDate string `json:"assessment_date"`
	AssessmentType string `json:"assessment_type"`
	NBackTaskScore string `json:"n_back_task_score"`
	WPAIScore      string `json:"wpai_score"`
	Biomarkers     string `json:"biomarkers"`
}

type ListView struct {
	Rows          []Row           `json:"rows"`
	Patients      []PatientOption `json:"patients"`
	PatientFilter string          `json:"patient_filter"`
}

type FormView struct {
	Mode          string          `json:"mode"` // create | edit
	Values        Form            `json:"values"`
	Patients      []PatientOption `json:"patients"`
	PatientLocked bool            `json:"patient_locked"`
	Types         []string        `json:"types"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, patientFilter string) (*ListView, error)
	Form(ctx context.Context, id int, preselectedPatient string) (*FormView, error)
	Create(ctx context.Context, f Form) (*studyapi.Assessment, error)
	Update(ctx context.Context, id int, f Form) (*studyapi.Assessment, error)
}

type service struct {
	api *studyapi.Client
}

func New(api *studyapi.Client) Service {
	return &service{api: api}
}

func (s *service) List(ctx context.Context, patientFilter string) (*ListView, error) {
	var (
		assessments []studyapi.Assessment
		patients    []studyapi.Patient
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assessments, err = s.api.ListAssessments(gctx)
		return err
	})
	g.Go(func() (err error) {
		patients, err = s.api.ListPatients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}

	filtered := Filter(assessments, patientFilter)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AssessmentDate.After(filtered[j].AssessmentDate.Time)
	})

	names := make(map[int]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.FullName()
	}

	rows := make([]Row, 0, len(filtered))
	for _, a := range filtered {
		name, ok := names[a.PatientID]
		if !ok {
			// the patient may have been deleted between fetches
			name = "Unknown Patient"
		}
		rows = append(rows, Row{
			ID:             a.ID,
			PatientID:      a.PatientID,
			PatientName:    name,
			AssessmentDate: a.AssessmentDate.String(),
			AssessmentType: a.AssessmentType,
			NBackTaskScore: scoreOrPlaceholder(a.NBackTaskScore),
			WPAIScore:      scoreOrPlaceholder(a.WPAIScore),
			Biomarkers:     BiomarkerSummary(a),
		})
	}

	return &ListView{
		Rows:          rows,
		Patients:      options(patients),
		PatientFilter: patientFilter,
	}, nil
}

func (s *service) Form(ctx context.Context, id int, preselectedPatient string) (*FormView, error) {
	var (
		patients []studyapi.Patient
		existing *studyapi.Assessment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patients, err = s.api.ListPatients(gctx)
		return err
	})
	if id > 0 {
		g.Go(func() (err error) {
			existing, err = s.api.GetAssessment(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("load assessment form: %w", err)
	}

	view := &FormView{
		Patients:      options(patients),
		PatientLocked: preselectedPatient != "",
		Types:         Types,
	}
	if existing != nil {
		view.Mode = "edit"
		view.Values = formFromAssessment(*existing)
	} else {
		view.Mode = "create"
		view.Values = Defaults(preselectedPatient)
	}
	return view, nil
}

func (s *service) Create(ctx context.Context, f Form) (*studyapi.Assessment, error) {
	payload, err := f.Payload()
	if err != nil {
		return nil, err
	}
	a, err := s.api.CreateAssessment(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id int, f Form) (*studyapi.Assessment, error) {
	payload, err := f.Payload()
	if err != nil {
		return nil, err
	}
	a, err := s.api.UpdateAssessment(ctx, id, payload)
	if err != nil {
		if errors.Is(err, studyapi.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("save assessment %d: %w", id, err)
	}
	return a, nil
}

func options(patients []studyapi.Patient) []PatientOption {
	opts := make([]PatientOption, 0, len(patients))
	for _, p := range patients {
		opts = append(opts, PatientOption{ID: p.ID, Name: p.FullName()})
	}
	return opts
}

func scoreOrPlaceholder(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return forms.DecimalString(v)
}

func formFromAssessment(a studyapi.Assessment) Form {
	fmri := a.FMRIData
	if len(fmri) == 0 {
		fmri = json.RawMessage(`{}`)
	}
	return Form{
		PatientID:      strconv.Itoa(a.PatientID),
		AssessmentDate: a.AssessmentDate.String(),
		AssessmentType: a.AssessmentType,
		FMRIData:       fmri,
		NBackTaskScore: forms.DecimalString(a.NBackTaskScore),
		WPAIScore:      forms.DecimalString(a.WPAIScore),
		CRPLevel:       forms.DecimalString(a.CRPLevel),
		IL6Level:       forms.DecimalString(a.IL6Level),
		TNFAlphaLevel:  forms.DecimalString(a.TNFAlphaLevel),
		Notes:          a.Notes,
	}
}
