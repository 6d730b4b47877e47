package studyapi

import "errors"

var (
	ErrNotFound = errors.New("studyapi: resource not found")
	ErrUpstream = errors.New("studyapi: upstream request failed")
)
