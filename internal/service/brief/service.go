package brief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
	"github.com/flulance/flulance-backend-go/internal/pkg/idgen"
	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

type BriefServiceImpl struct {
	tx           database.Transactor
	briefRepo    brief.BriefRepository
	proposalRepo brief.ProposalRepository
	matchRepo    match.MatchRepository
	notifier     notification.Notifier
}

func NewBriefService(
	tx database.Transactor,
	briefRepo brief.BriefRepository,
	proposalRepo brief.ProposalRepository,
	matchRepo match.MatchRepository,
	notifier notification.Notifier,
) brief.BriefService {
	return &BriefServiceImpl{
		tx:           tx,
		briefRepo:    briefRepo,
		proposalRepo: proposalRepo,
		matchRepo:    matchRepo,
		notifier:     notifier,
	}
}

// CreateBrief implements brief.BriefService.
func (s *BriefServiceImpl) CreateBrief(ctx context.Context, actor identity.Identity, req brief.CreateBriefRequest) (brief.BriefResponse, error) {
	if !actor.IsBrand() {
		return brief.BriefResponse{}, identity.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return brief.BriefResponse{}, err
	}

	var deadline *time.Time
	if req.Deadline != nil {
		d, _ := validator.ParseDeadline(*req.Deadline)
		deadline = &d
	}

	now := time.Now()
	created, err := s.briefRepo.Create(ctx, brief.Brief{
		ID:           idgen.New(idgen.PrefixBrief),
		BrandUserID:  actor.UserID,
		BrandName:    actor.Name,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		BudgetMin:    req.BudgetMin,
		BudgetMax:    req.BudgetMax,
		Platforms:    job.Dedupe(req.Platforms),
		Deadline:     deadline,
		Requirements: req.Requirements,
		Status:       brief.StatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return brief.BriefResponse{}, fmt.Errorf("failed to create brief: %w", err)
	}
	return brief.ToResponse(created), nil
}

// ListOpen implements brief.BriefService.
func (s *BriefServiceImpl) ListOpen(ctx context.Context, category string) ([]brief.BriefResponse, error) {
	briefs, err := s.briefRepo.List(ctx, brief.Filter{Category: category, Status: brief.StatusOpen})
	if err != nil {
		return nil, fmt.Errorf("failed to list briefs: %w", err)
	}
	return brief.ToResponses(briefs), nil
}

// ListOwned implements brief.BriefService.
func (s *BriefServiceImpl) ListOwned(ctx context.Context, actor identity.Identity) ([]brief.BriefResponse, error) {
	if !actor.IsBrand() {
		return nil, identity.ErrInsufficientPermissions
	}
	briefs, err := s.briefRepo.List(ctx, brief.Filter{BrandUserID: actor.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to list briefs: %w", err)
	}
	return brief.ToResponses(briefs), nil
}

// GetBrief implements brief.BriefService.
func (s *BriefServiceImpl) GetBrief(ctx context.Context, actor identity.Identity, id string) (brief.BriefResponse, error) {
	b, err := s.briefRepo.GetByID(ctx, id)
	if err != nil {
		return brief.BriefResponse{}, err
	}
	resp := brief.ToResponse(b)
	if actor.IsAdmin() || b.IsOwnedBy(actor.UserID) {
		proposals, err := s.proposalRepo.ListByBrief(ctx, id)
		if err != nil {
			return brief.BriefResponse{}, fmt.Errorf("failed to list proposals: %w", err)
		}
		resp.Proposals = brief.ToProposalResponses(proposals)
	}
	return resp, nil
}

// SubmitProposal implements brief.BriefService.
func (s *BriefServiceImpl) SubmitProposal(ctx context.Context, actor identity.Identity, briefID string, req brief.SubmitProposalRequest) (brief.ProposalResponse, error) {
	if !actor.IsInfluencer() {
		return brief.ProposalResponse{}, identity.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return brief.ProposalResponse{}, err
	}

	b, err := s.briefRepo.GetByID(ctx, briefID)
	if err != nil {
		return brief.ProposalResponse{}, err
	}
	if b.Status != brief.StatusOpen {
		return brief.ProposalResponse{}, brief.ErrBriefNotOpen
	}

	now := time.Now()
	var created brief.Proposal
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.briefRepo.IncrementProposalCount(ctx, b.ID); err != nil {
			return err
		}
		var err error
		created, err = s.proposalRepo.Create(ctx, brief.Proposal{
			ID:               idgen.New(idgen.PrefixProposal),
			BriefID:          b.ID,
			InfluencerUserID: actor.UserID,
			InfluencerName:   actor.Name,
			ProposedPrice:    req.ProposedPrice,
			Message:          req.Message,
			DeliveryTime:     strings.TrimSpace(req.DeliveryTime),
			Status:           brief.ProposalPending,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		return err
	})
	if err != nil {
		return brief.ProposalResponse{}, err
	}

	s.notifier.Notify(ctx, b.BrandUserID, notification.Message{
		Type:  notification.TypeProposalReceived,
		Title: "New proposal",
		Body:  fmt.Sprintf("%s sent a proposal of %.2f for %q.", actor.Name, req.ProposedPrice, b.Title),
		Data:  map[string]interface{}{"brief_id": b.ID, "proposal_id": created.ID},
		Email: true,
	})

	return brief.ToProposalResponse(created), nil
}

// ListProposals implements brief.BriefService.
func (s *BriefServiceImpl) ListProposals(ctx context.Context, actor identity.Identity, briefID string) ([]brief.ProposalResponse, error) {
	b, err := s.briefRepo.GetByID(ctx, briefID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsOwnedBy(actor.UserID) {
		return nil, brief.ErrNotBriefOwner
	}
	proposals, err := s.proposalRepo.ListByBrief(ctx, briefID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return brief.ToProposalResponses(proposals), nil
}

// ListMyProposals implements brief.BriefService.
func (s *BriefServiceImpl) ListMyProposals(ctx context.Context, actor identity.Identity) ([]brief.ProposalResponse, error) {
	if !actor.IsInfluencer() {
		return nil, identity.ErrInsufficientPermissions
	}
	proposals, err := s.proposalRepo.ListByInfluencer(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return brief.ToProposalResponses(proposals), nil
}

// AcceptProposal implements brief.BriefService.
func (s *BriefServiceImpl) AcceptProposal(ctx context.Context, actor identity.Identity, briefID, proposalID string) (brief.AcceptProposalResponse, error) {
	if !actor.IsBrand() {
		return brief.AcceptProposalResponse{}, identity.ErrInsufficientPermissions
	}

	b, err := s.briefRepo.GetByID(ctx, briefID)
	if err != nil {
		return brief.AcceptProposalResponse{}, err
	}
	if !b.IsOwnedBy(actor.UserID) {
		return brief.AcceptProposalResponse{}, brief.ErrNotBriefOwner
	}
	p, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return brief.AcceptProposalResponse{}, err
	}
	if p.BriefID != b.ID {
		return brief.AcceptProposalResponse{}, brief.ErrProposalBriefMismatch
	}
	if p.Status != brief.ProposalPending {
		return brief.AcceptProposalResponse{}, brief.ErrProposalProcessed
	}
	if b.Status != brief.StatusOpen {
		return brief.AcceptProposalResponse{}, brief.ErrBriefNotOpen
	}

	var (
		created  match.Match
		rejected int64
	)
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.proposalRepo.MarkAccepted(ctx, p.ID); err != nil {
			return err
		}
		var err error
		rejected, err = s.proposalRepo.RejectSiblings(ctx, b.ID, p.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		price := p.ProposedPrice
		created, err = s.matchRepo.Create(ctx, match.Match{
			ID:               idgen.New(idgen.PrefixMatch),
			SourceType:       match.SourceBrief,
			SourceID:         b.ID,
			Title:            b.Title,
			BrandUserID:      b.BrandUserID,
			BrandName:        b.BrandName,
			InfluencerUserID: p.InfluencerUserID,
			InfluencerName:   p.InfluencerName,
			AgreedPrice:      &price,
			Status:           match.StatusActive,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		if errors.Is(err, match.ErrMatchAlreadyExists) {
			return brief.ErrBriefNotOpen
		}
		if err != nil {
			return err
		}

		return s.briefRepo.MarkClosed(ctx, b.ID)
	})
	if err != nil {
		return brief.AcceptProposalResponse{}, err
	}

	slog.Info("Proposal accepted", "proposal_id", p.ID, "brief_id", b.ID, "match_id", created.ID, "rejected", rejected)

	s.notifier.Notify(ctx, p.InfluencerUserID, notification.Message{
		Type:  notification.TypeProposalAccepted,
		Title: "Your proposal was accepted",
		Body:  fmt.Sprintf("%s accepted your proposal for %q.", b.BrandName, b.Title),
		Data:  map[string]interface{}{"brief_id": b.ID, "match_id": created.ID},
		Email: true,
	})

	return brief.AcceptProposalResponse{
		Message: "Proposal accepted",
		Match:   match.ToResponse(created),
	}, nil
}
