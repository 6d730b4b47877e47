package assessment

import "errors"

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrPatientRequired    = errors.New("a patient must be selected")
)
