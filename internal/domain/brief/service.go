package brief

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

type BriefService interface {
	CreateBrief(ctx context.Context, actor identity.Identity, req CreateBriefRequest) (BriefResponse, error)
	ListOpen(ctx context.Context, category string) ([]BriefResponse, error)
	ListOwned(ctx context.Context, actor identity.Identity) ([]BriefResponse, error)
	// GetBrief includes proposals when actor owns the brief or is an admin.
	GetBrief(ctx context.Context, actor identity.Identity, id string) (BriefResponse, error)

	// Proposals
	SubmitProposal(ctx context.Context, actor identity.Identity, briefID string, req SubmitProposalRequest) (ProposalResponse, error)
	ListProposals(ctx context.Context, actor identity.Identity, briefID string) ([]ProposalResponse, error)
	ListMyProposals(ctx context.Context, actor identity.Identity) ([]ProposalResponse, error)
	// AcceptProposal rejects the sibling proposals, closes the brief and
	// creates the match in one transaction.
	AcceptProposal(ctx context.Context, actor identity.Identity, briefID, proposalID string) (AcceptProposalResponse, error)
}
