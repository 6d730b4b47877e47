// Package dashboard aggregates study-wide counters and response
// statistics into the overview screen. All three collections are
// fetched concurrently and the view is only produced when every
// fetch succeeded, so the counters always describe one consistent
// snapshot.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ecnhealth/clinic_console/internal/charts"
	"github.com/ecnhealth/clinic_console/internal/service/treatment"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

type Summary struct {
	PatientCount    int    `json:"patientCount"`
	AssessmentCount int    `json:"assessmentCount"`
	TreatmentCount  int    `json:"treatmentCount"`
	ActivePatients  int    `json:"activePatients"`
	ResponderRate   string `json:"responderRate"`

	ActivePatientsChart charts.Config `json:"activePatientsChart"`
	ResponderRateChart  charts.Config `json:"responderRateChart"`
}

// Aggregate derives the dashboard counters from full collections.
// Active patients counts distinct patients with at least one active
// treatment, not active treatments themselves.
func Aggregate(patients []studyapi.Patient, assessments []studyapi.Assessment, treatments []studyapi.Treatment) Summary {
	activeSet := make(map[int]struct{})
	for _, t := range treatments {
		if t.IsActive {
			activeSet[t.PatientID] = struct{}{}
		}
	}

	stats := treatment.ComputeResponseStats(treatments)

	return Summary{
		PatientCount:        len(patients),
		AssessmentCount:     len(assessments),
		TreatmentCount:      len(treatments),
		ActivePatients:      len(activeSet),
		ResponderRate:       stats.ResponderRate,
		ActivePatientsChart: charts.ActivePatientsDoughnut(len(activeSet), len(patients)),
		ResponderRateChart:  charts.ResponderRateBar(stats.Rate),
	}
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	api *studyapi.Client
}

func New(api *studyapi.Client) Service {
	return &service{api: api}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var (
		patients    []studyapi.Patient
		assessments []studyapi.Assessment
		treatments  []studyapi.Treatment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patients, err = s.api.ListPatients(gctx)
		return err
	})
	g.Go(func() (err error) {
		assessments, err = s.api.ListAssessments(gctx)
		return err
	})
	g.Go(func() (err error) {
		treatments, err = s.api.ListTreatments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	summary := Aggregate(patients, assessments, treatments)
	return &summary, nil
}
