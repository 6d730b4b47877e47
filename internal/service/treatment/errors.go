package treatment

import "errors"

var (
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrPatientRequired   = errors.New("a patient must be selected")
)
