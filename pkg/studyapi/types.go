package studyapi

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component. The upstream
// API serializes it as "YYYY-MM-DD" but may return full timestamps on
// some fields; both are accepted on decode. A malformed date decodes to
// the zero Date rather than failing the whole payload.
type Date struct {
	time.Time
}

// NewDate builds a Date from a time.Time, dropping the time-of-day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses a "YYYY-MM-DD" or RFC 3339 string. ok is false when
// the input is empty or malformed.
func ParseDate(s string) (Date, bool) {
	if s == "" {
		return Date{}, false
	}
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), true
		}
	}
	return Date{}, false
}

// String renders the date as "YYYY-MM-DD", or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{}
		return nil
	}
	parsed, ok := ParseDate(s)
	if !ok {
		// fail closed: leave the field unset
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

// ResponseStatus is the tri-state treatment outcome. "Not evaluated" is
// a first-class state and must never collapse into "non-responder"; it
// is excluded from both sides of the responder-rate fraction.
// On the wire it is null, true or false.
type ResponseStatus int

const (
	ResponseNotEvaluated ResponseStatus = iota
	ResponseResponder
	ResponseNonResponder
)

// Evaluated reports whether the treatment outcome has been recorded.
func (s ResponseStatus) Evaluated() bool {
	return s != ResponseNotEvaluated
}

func (s ResponseStatus) String() string {
	switch s {
	case ResponseResponder:
		return "Responder"
	case ResponseNonResponder:
		return "Non-Responder"
	default:
		return "Not Evaluated"
	}
}

func (s ResponseStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case ResponseResponder:
		return []byte("true"), nil
	case ResponseNonResponder:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (s *ResponseStatus) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ResponseNotEvaluated
		return nil
	}
	switch {
	case v == nil:
		*s = ResponseNotEvaluated
	case *v:
		*s = ResponseResponder
	default:
		*s = ResponseNonResponder
	}
	return nil
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

type Patient struct {
	ID                       int       `json:"id"`
	FirstName                string    `json:"first_name"`
	LastName                 string    `json:"last_name"`
	DateOfBirth              Date      `json:"date_of_birth"`
	Email                    string    `json:"email"`
	Phone                    string    `json:"phone"`
	ECNDysfunctionConfirmed  bool      `json:"ecn_dysfunction_confirmed"`
	InflammatoryMarkersLevel *float64  `json:"inflammatory_markers_level"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// FullName is the display name used everywhere a patient is referenced.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Assessment struct {
	ID             int             `json:"id"`
	PatientID      int             `json:"patient_id"`
	AssessmentDate Date            `json:"assessment_date"`
	AssessmentType string          `json:"assessment_type"`
	FMRIData       json.RawMessage `json:"fmri_data"`
	NBackTaskScore *float64        `json:"n_back_task_score"`
	WPAIScore      *float64        `json:"wpai_score"`
	CRPLevel       *float64        `json:"crp_level"`
	IL6Level       *float64        `json:"il6_level"`
	TNFAlphaLevel  *float64        `json:"tnf_alpha_level"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Treatment struct {
	ID             int            `json:"id"`
	PatientID      int            `json:"patient_id"`
	StartDate      Date           `json:"start_date"`
	EndDate        *Date          `json:"end_date"`
	MedicationName string         `json:"medication_name"`
	Dosage         string         `json:"dosage"`
	Frequency      string         `json:"frequency"`
	IsActive       bool           `json:"is_active"`
	IsResponder    ResponseStatus `json:"is_responder"`
	EfficacyRating *float64       `json:"efficacy_rating"`
	Notes          string         `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Write payloads
// ---------------------------------------------------------------------------

// Payload structs mirror what the forms submit. Optional numerics are
// pointers so absence marshals as an explicit JSON null, never as zero.

type PatientPayload struct {
	FirstName                string   `json:"first_name"`
	LastName                 string   `json:"last_name"`
	DateOfBirth              Date     `json:"date_of_birth"`
	Email                    string   `json:"email"`
	Phone                    string   `json:"phone"`
	ECNDysfunctionConfirmed  bool     `json:"ecn_dysfunction_confirmed"`
	InflammatoryMarkersLevel *float64 `json:"inflammatory_markers_level"`
}

type AssessmentPayload struct {
	PatientID      int             `json:"patient_id"`
	AssessmentDate Date            `json:"assessment_date"`
	AssessmentType string          `json:"assessment_type"`
	FMRIData       json.RawMessage `json:"fmri_data"`
	NBackTaskScore *float64        `json:"n_back_task_score"`
	WPAIScore      *float64        `json:"wpai_score"`
	CRPLevel       *float64        `json:"crp_level"`
	IL6Level       *float64        `json:"il6_level"`
	TNFAlphaLevel  *float64        `json:"tnf_alpha_level"`
	Notes          string          `json:"notes"`
}

type TreatmentPayload struct {
	PatientID      int            `json:"patient_id"`
	StartDate      Date           `json:"start_date"`
	EndDate        *Date          `json:"end_date"`
	MedicationName string         `json:"medication_name"`
	Dosage         string         `json:"dosage"`
	Frequency      string         `json:"frequency"`
	IsActive       bool           `json:"is_active"`
	IsResponder    ResponseStatus `json:"is_responder"`
	EfficacyRating *float64       `json:"efficacy_rating"`
	Notes          string         `json:"notes"`
}
