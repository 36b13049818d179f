package memory

import (
	"context"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/brief"
)

type briefRepository struct {
	s *Store
}

func NewBriefRepository(s *Store) brief.BriefRepository {
	return &briefRepository{s: s}
}

func (r *briefRepository) Create(ctx context.Context, b brief.Brief) (brief.Brief, error) {
	defer r.s.lock(ctx)()

	b.Platforms = copyStrings(b.Platforms)
	r.s.data.briefs[b.ID] = b
	r.s.data.track(b.ID)
	return brief.Normalize(b), nil
}

func (r *briefRepository) GetByID(ctx context.Context, id string) (brief.Brief, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.data.briefs[id]
	if !ok {
		return brief.Brief{}, brief.ErrBriefNotFound
	}
	return brief.Normalize(b), nil
}

func (r *briefRepository) List(ctx context.Context, filter brief.Filter) ([]brief.Brief, error) {
	defer r.s.lock(ctx)()

	out := make([]brief.Brief, 0)
	for _, b := range r.s.data.briefs {
		b = brief.Normalize(b)
		if filter.BrandUserID != "" && b.BrandUserID != filter.BrandUserID {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	newestFirst(r.s.data, out, func(b brief.Brief) string { return b.ID }, func(b brief.Brief) time.Time { return b.CreatedAt })
	return out, nil
}

func (r *briefRepository) IncrementProposalCount(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	b, ok := r.s.data.briefs[id]
	if !ok {
		return brief.ErrBriefNotFound
	}
	if brief.Normalize(b).Status != brief.StatusOpen {
		return brief.ErrBriefNotOpen
	}
	b.ProposalCount++
	r.s.data.briefs[id] = b
	return nil
}

func (r *briefRepository) MarkClosed(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	b, ok := r.s.data.briefs[id]
	if !ok {
		return brief.ErrBriefNotFound
	}
	if brief.Normalize(b).Status != brief.StatusOpen {
		return brief.ErrBriefNotOpen
	}
	b.Status = brief.StatusClosed
	b.UpdatedAt = time.Now()
	r.s.data.briefs[id] = b
	return nil
}

type proposalRepository struct {
	s *Store
}

func NewProposalRepository(s *Store) brief.ProposalRepository {
	return &proposalRepository{s: s}
}

func (r *proposalRepository) Create(ctx context.Context, p brief.Proposal) (brief.Proposal, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.data.proposals {
		if existing.BriefID == p.BriefID && existing.InfluencerUserID == p.InfluencerUserID {
			return brief.Proposal{}, brief.ErrAlreadyProposed
		}
	}
	r.s.data.proposals[p.ID] = p
	r.s.data.track(p.ID)
	return brief.NormalizeProposal(p), nil
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (brief.Proposal, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.data.proposals[id]
	if !ok {
		return brief.Proposal{}, brief.ErrProposalNotFound
	}
	return brief.NormalizeProposal(p), nil
}

func (r *proposalRepository) list(keep func(brief.Proposal) bool) []brief.Proposal {
	out := make([]brief.Proposal, 0)
	for _, p := range r.s.data.proposals {
		if keep(p) {
			out = append(out, brief.NormalizeProposal(p))
		}
	}
	newestFirst(r.s.data, out, func(p brief.Proposal) string { return p.ID }, func(p brief.Proposal) time.Time { return p.CreatedAt })
	return out
}

func (r *proposalRepository) ListByBrief(ctx context.Context, briefID string) ([]brief.Proposal, error) {
	defer r.s.lock(ctx)()
	return r.list(func(p brief.Proposal) bool { return p.BriefID == briefID }), nil
}

func (r *proposalRepository) ListByInfluencer(ctx context.Context, influencerUserID string) ([]brief.Proposal, error) {
	defer r.s.lock(ctx)()
	return r.list(func(p brief.Proposal) bool { return p.InfluencerUserID == influencerUserID }), nil
}

func (r *proposalRepository) MarkAccepted(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	p, ok := r.s.data.proposals[id]
	if !ok {
		return brief.ErrProposalNotFound
	}
	if brief.NormalizeProposal(p).Status != brief.ProposalPending {
		return brief.ErrProposalProcessed
	}
	p.Status = brief.ProposalAccepted
	p.UpdatedAt = time.Now()
	r.s.data.proposals[id] = p
	return nil
}

func (r *proposalRepository) RejectSiblings(ctx context.Context, briefID, acceptedID string) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	now := time.Now()
	for id, p := range r.s.data.proposals {
		if p.BriefID != briefID || id == acceptedID || brief.NormalizeProposal(p).Status != brief.ProposalPending {
			continue
		}
		p.Status = brief.ProposalRejected
		p.UpdatedAt = now
		r.s.data.proposals[id] = p
		n++
	}
	return n, nil
}
