package assessment

import (
	"encoding/json"
	"testing"

	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

func f64(v float64) *float64 { return &v }

func TestBiomarkerSummary(t *testing.T) {
	tests := []struct {
		name       string
		assessment studyapi.Assessment
		want       string
	}{
		{
			name: "all present",
			assessment: studyapi.Assessment{
				CRPLevel:      f64(2.5),
				IL6Level:      f64(1.8),
				TNFAlphaLevel: f64(3),
			},
			want: "CRP: 2.5, IL-6: 1.8, TNF-α: 3",
		},
		{
			name:       "partial",
			assessment: studyapi.Assessment{IL6Level: f64(1.2)},
			want:       "IL-6: 1.2",
		},
		{
			name:       "none measured",
			assessment: studyapi.Assessment{},
			want:       "N/A",
		},
		{
			name:       "zero is a measurement",
			assessment: studyapi.Assessment{CRPLevel: f64(0)},
			want:       "CRP: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BiomarkerSummary(tt.assessment); got != tt.want {
				t.Errorf("BiomarkerSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	assessments := []studyapi.Assessment{
		{ID: 1, PatientID: 1},
		{ID: 2, PatientID: 2},
		{ID: 3, PatientID: 1},
	}

	tests := []struct {
		name    string
		filter  string
		wantIDs []int
	}{
		{"all", "all", []int{1, 2, 3}},
		{"empty filter", "", []int{1, 2, 3}},
		{"by patient", "1", []int{1, 3}},
		{"no matches", "9", nil},
		{"unparseable selection matches nothing", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(assessments, tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d assessments, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("assessment[%d].ID = %d, want %d", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	f := Defaults("4")
	if f.PatientID != "4" {
		t.Errorf("PatientID = %q, want %q", f.PatientID, "4")
	}
	if f.AssessmentDate != studyapi.Today().String() {
		t.Errorf("AssessmentDate = %q, want today", f.AssessmentDate)
	}
	if string(f.FMRIData) != "{}" {
		t.Errorf("FMRIData = %s, want {}", f.FMRIData)
	}
}

func TestFormPayload(t *testing.T) {
	t.Run("patient is required", func(t *testing.T) {
		_, err := Form{PatientID: "abc"}.Payload()
		if err != ErrPatientRequired {
			t.Errorf("err = %v, want ErrPatientRequired", err)
		}
	})

	t.Run("empty numerics become absent", func(t *testing.T) {
		f := Form{
			PatientID:      "2",
			AssessmentDate: "2026-02-10",
			AssessmentType: "Blood Test",
			CRPLevel:       "3.1",
		}
		p, err := f.Payload()
		if err != nil {
			t.Fatal(err)
		}
		if p.NBackTaskScore != nil || p.WPAIScore != nil || p.IL6Level != nil || p.TNFAlphaLevel != nil {
			t.Error("empty scores should be nil")
		}
		if p.CRPLevel == nil || *p.CRPLevel != 3.1 {
			t.Errorf("CRPLevel = %v, want 3.1", p.CRPLevel)
		}

		b, err := json.Marshal(p)
		if err != nil {
			t.Fatal(err)
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			t.Fatal(err)
		}
		if string(raw["wpai_score"]) != "null" {
			t.Errorf("wpai_score serialized as %s, want null", raw["wpai_score"])
		}
	})

	t.Run("empty fmri data defaults to an empty object", func(t *testing.T) {
		p, err := Form{PatientID: "2", AssessmentDate: "2026-02-10"}.Payload()
		if err != nil {
			t.Fatal(err)
		}
		if string(p.FMRIData) != "{}" {
			t.Errorf("FMRIData = %s, want {}", p.FMRIData)
		}
	})
}
