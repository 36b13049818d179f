package application

import "errors"

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrAlreadyApplied       = errors.New("already applied to this job")
	ErrApplicationProcessed = errors.New("application already processed")
)
