package job

import "errors"

var (
	ErrJobNotFound             = errors.New("job not found")
	ErrNotJobOwner             = errors.New("not your job")
	ErrJobNotOpen              = errors.New("job is not open")
	ErrJobFilled               = errors.New("job is already filled")
	ErrJobStatusChanged        = errors.New("job status changed, reload and retry")
	ErrInvalidApprovalDecision = errors.New("approval_status must be approved or rejected")
	ErrInvalidApprovalFilter   = errors.New("approval_status filter must be pending, approved or rejected")
)
