package dashboard

import (
	"testing"

	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

func TestAggregate(t *testing.T) {
	patients := []studyapi.Patient{{ID: 1}, {ID: 2}, {ID: 3}}
	assessments := []studyapi.Assessment{{ID: 1}, {ID: 2}}
	treatments := []studyapi.Treatment{
		{ID: 1, PatientID: 1, IsActive: true, IsResponder: studyapi.ResponseResponder},
		{ID: 2, PatientID: 1, IsActive: true, IsResponder: studyapi.ResponseNotEvaluated},
		{ID: 3, PatientID: 2, IsActive: false, IsResponder: studyapi.ResponseNonResponder},
	}

	got := Aggregate(patients, assessments, treatments)

	if got.PatientCount != 3 {
		t.Errorf("PatientCount = %d, want 3", got.PatientCount)
	}
	if got.AssessmentCount != 2 {
		t.Errorf("AssessmentCount = %d, want 2", got.AssessmentCount)
	}
	if got.TreatmentCount != 3 {
		t.Errorf("TreatmentCount = %d, want 3", got.TreatmentCount)
	}
	// patient 1 has two active treatments but counts once
	if got.ActivePatients != 1 {
		t.Errorf("ActivePatients = %d, want 1", got.ActivePatients)
	}
	if got.ResponderRate != "50.0" {
		t.Errorf("ResponderRate = %q, want %q", got.ResponderRate, "50.0")
	}
}

func TestAggregateEmptyStudy(t *testing.T) {
	got := Aggregate(nil, nil, nil)

	if got.PatientCount != 0 || got.AssessmentCount != 0 || got.TreatmentCount != 0 {
		t.Errorf("counts = %d/%d/%d, want zeros", got.PatientCount, got.AssessmentCount, got.TreatmentCount)
	}
	if got.ActivePatients != 0 {
		t.Errorf("ActivePatients = %d, want 0", got.ActivePatients)
	}
	if got.ResponderRate != "0.0" {
		t.Errorf("ResponderRate = %q, want %q", got.ResponderRate, "0.0")
	}
}

func TestAggregateChartData(t *testing.T) {
	patients := []studyapi.Patient{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	treatments := []studyapi.Treatment{
		{ID: 1, PatientID: 1, IsActive: true},
		{ID: 2, PatientID: 2, IsActive: true},
	}

	got := Aggregate(patients, nil, treatments)

	data := got.ActivePatientsChart.Data.Datasets[0].Data
	if len(data) != 2 || data[0] != 2 || data[1] != 2 {
		t.Errorf("active patients chart data = %v, want [2 2]", data)
	}
}
