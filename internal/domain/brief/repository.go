package brief

import "context"

// Filter narrows List. Zero values do not filter.
type Filter struct {
	BrandUserID string
	Category    string
	Status      Status
}

// BriefRepository - interface for briefs table
type BriefRepository interface {
	Create(ctx context.Context, b Brief) (Brief, error)
	GetByID(ctx context.Context, id string) (Brief, error)
	// List returns newest first.
	List(ctx context.Context, filter Filter) ([]Brief, error)
	// IncrementProposalCount bumps proposal_count of an open brief and
	// returns ErrBriefNotOpen otherwise.
	IncrementProposalCount(ctx context.Context, id string) error
	// MarkClosed flips open to closed. It returns ErrBriefNotOpen when the
	// brief was not open.
	MarkClosed(ctx context.Context, id string) error
}

// ProposalRepository - interface for proposals table
type ProposalRepository interface {
	// Create returns ErrAlreadyProposed for a second proposal by the same
	// influencer on the same brief.
	Create(ctx context.Context, p Proposal) (Proposal, error)
	GetByID(ctx context.Context, id string) (Proposal, error)
	// List methods return newest first.
	ListByBrief(ctx context.Context, briefID string) ([]Proposal, error)
	ListByInfluencer(ctx context.Context, influencerUserID string) ([]Proposal, error)
	// MarkAccepted flips pending to accepted, or returns ErrProposalProcessed.
	MarkAccepted(ctx context.Context, id string) error
	// RejectSiblings rejects every other pending proposal of the brief.
	RejectSiblings(ctx context.Context, briefID, acceptedID string) (int64, error)
}
