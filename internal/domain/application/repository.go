package application

import "context"

// ApplicationRepository - interface for applications table
type ApplicationRepository interface {
	// Create returns ErrAlreadyApplied when the influencer already applied
	// to the job, whatever that application's status.
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	// ListByInfluencer and ListByJob return newest first.
	ListByInfluencer(ctx context.Context, influencerUserID string) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	// CountByJobIDs returns application counts keyed by job id.
	CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error)
	// MarkAccepted flips pending to accepted. It returns
	// ErrApplicationProcessed when the application was no longer pending.
	MarkAccepted(ctx context.Context, id string) error
}
