package alert

import "errors"

var (
	ErrAlertNotFound          = errors.New("alert not found")
	ErrResolveFailed          = errors.New("error resolving alert")
	ErrNoEmployees            = errors.New("no employees found to generate alerts for")
	ErrSampleGenerationFailed = errors.New("error generating sample alerts")
)
