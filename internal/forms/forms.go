// Package forms holds the pure conversions between what the UI submits
// (string-typed inputs) and the wire representation the study API
// expects. Absence is always explicit: an empty or unparseable numeric
// input becomes nil (JSON null), never zero.
package forms

import (
	"strconv"
	"strings"

	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// OptionalDecimal converts a free-typed numeric input to its wire form.
// Empty or invalid input yields nil (absent), not zero and not an error.
func OptionalDecimal(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// DecimalString converts a wire numeric back to its form representation.
// nil becomes the empty editable state, distinct from "0".
func DecimalString(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// PatientID coerces the form-bound string value to the integer the API
// requires. ok is false for empty or non-numeric input.
func PatientID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DateField parses a "YYYY-MM-DD" input. Malformed input fails closed
// to the zero Date.
func DateField(s string) studyapi.Date {
	d, _ := studyapi.ParseDate(s)
	return d
}

// OptionalDateField parses an optional date input; empty or malformed
// input yields nil.
func OptionalDateField(s string) *studyapi.Date {
	d, ok := studyapi.ParseDate(s)
	if !ok {
		return nil
	}
	return &d
}

// Response maps the three radio values to the tri-state outcome.
// Anything other than "true" or "false" (including "null" and "")
// means not evaluated.
func Response(s string) studyapi.ResponseStatus {
	switch s {
	case "true":
		return studyapi.ResponseResponder
	case "false":
		return studyapi.ResponseNonResponder
	default:
		return studyapi.ResponseNotEvaluated
	}
}

// ResponseString converts the tri-state outcome back to its form value.
func ResponseString(s studyapi.ResponseStatus) string {
	switch s {
	case studyapi.ResponseResponder:
		return "true"
	case studyapi.ResponseNonResponder:
		return "false"
	default:
		return "null"
	}
}
