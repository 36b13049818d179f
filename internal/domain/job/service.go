package job

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

type JobService interface {
	CreateJob(ctx context.Context, actor identity.Identity, req CreateJobRequest) (JobResponse, error)
	ListPublic(ctx context.Context, filter ListPublicFilter) ([]JobResponse, error)
	// ListOwned lazily expires the brand's stale open jobs before listing.
	ListOwned(ctx context.Context, actor identity.Identity) ([]JobResponse, error)
	// GetJob counts as a view.
	GetJob(ctx context.Context, id string) (JobResponse, error)
	UpdateJob(ctx context.Context, actor identity.Identity, id string, req UpdateJobRequest) (JobResponse, error)
	DeleteJob(ctx context.Context, actor identity.Identity, id string) error
	RenewJob(ctx context.Context, actor identity.Identity, id string) (JobResponse, error)

	// Moderation
	SetApproval(ctx context.Context, actor identity.Identity, id string, req ApprovalRequest) (JobResponse, error)
	AdminList(ctx context.Context, actor identity.Identity, approvalStatus string) ([]JobResponse, error)
	SweepExpired(ctx context.Context) (int64, error)
}
