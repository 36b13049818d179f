package application

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

type ApplicationService interface {
	Apply(ctx context.Context, actor identity.Identity, req ApplyRequest) (ApplicationResponse, error)
	ListForInfluencer(ctx context.Context, actor identity.Identity) ([]ApplicationResponse, error)
	ListForJob(ctx context.Context, actor identity.Identity, jobID string) ([]ApplicationResponse, error)
	// Accept creates the match and fills the job in one transaction.
	Accept(ctx context.Context, actor identity.Identity, applicationID string) (AcceptResponse, error)
}
