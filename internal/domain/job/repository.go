package job

import (
	"context"
	"time"
)

// Filter narrows List. Zero values do not filter.
type Filter struct {
	BrandUserID    string
	Category       string
	Platform       string
	ApprovalStatus ApprovalStatus
	// PublicAt restricts to jobs visible in the public catalog at that instant.
	PublicAt *time.Time
}

// JobRepository - interface for jobs table
type JobRepository interface {
	Create(ctx context.Context, job Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	// List returns matching jobs newest first.
	List(ctx context.Context, filter Filter) ([]Job, error)
	// Update persists the descriptive fields of job. Status, moderation and
	// expiry only move through the guarded methods below.
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, id string) error

	// IncrementViewCount atomically bumps view_count and returns the job.
	IncrementViewCount(ctx context.Context, id string) (Job, error)
	// IncrementApplicationCount bumps application_count of an open job and
	// returns ErrJobNotOpen otherwise. Inside a transaction it holds the row
	// until commit, so the job cannot be filled under a pending application.
	IncrementApplicationCount(ctx context.Context, id string) error

	// MarkFilled flips open to filled. It returns ErrJobNotOpen when the job
	// was not open, leaving it untouched.
	MarkFilled(ctx context.Context, id string) error
	// TransitionStatus moves the job from one status to another. It returns
	// ErrJobFilled when the job was filled meanwhile and ErrJobStatusChanged
	// when it left from for any other status.
	TransitionStatus(ctx context.Context, id string, from, to Status, at time.Time) error
	// SetApproval records a moderation decision without touching status.
	SetApproval(ctx context.Context, id string, decision ApprovalStatus, reason *string, at time.Time) (Job, error)
	// Renew reopens the job for moderation with a fresh expiry. Filled jobs
	// are left untouched and yield ErrJobFilled.
	Renew(ctx context.Context, id string, expiresAt time.Time, at time.Time) (Job, error)
	// ForceFilled sets filled regardless of the current status.
	ForceFilled(ctx context.Context, id string) error
	// ExpireStale flips open jobs whose expires_at is at or before now to
	// expired. An empty brandUserID covers every brand.
	ExpireStale(ctx context.Context, brandUserID string, now time.Time) (int64, error)
}
