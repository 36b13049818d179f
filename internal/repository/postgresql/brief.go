package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

const briefColumns = `id, brand_user_id, brand_name, title, description, category, budget_min, budget_max,
	platforms, deadline, requirements, status, proposal_count, created_at, updated_at`

const proposalColumns = `id, brief_id, influencer_user_id, influencer_name, proposed_price, message,
	delivery_time, status, created_at, updated_at`

type briefRepositoryImpl struct {
	db *database.DB
}

func NewBriefRepository(db *database.DB) brief.BriefRepository {
	return &briefRepositoryImpl{db: db}
}

func scanBrief(row pgx.Row) (brief.Brief, error) {
	var (
		b         brief.Brief
		platforms []byte
		status    string
	)
	err := row.Scan(
		&b.ID,
		&b.BrandUserID,
		&b.BrandName,
		&b.Title,
		&b.Description,
		&b.Category,
		&b.BudgetMin,
		&b.BudgetMax,
		&platforms,
		&b.Deadline,
		&b.Requirements,
		&status,
		&b.ProposalCount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return brief.Brief{}, err
	}
	b.Status = brief.Status(status)
	if b.Platforms, err = unmarshalStrings(platforms); err != nil {
		return brief.Brief{}, fmt.Errorf("failed to decode platforms: %w", err)
	}
	return brief.Normalize(b), nil
}

// Create implements brief.BriefRepository.
func (r *briefRepositoryImpl) Create(ctx context.Context, b brief.Brief) (brief.Brief, error) {
	q := GetQuerier(ctx, r.db)

	platforms, err := marshalStrings(b.Platforms)
	if err != nil {
		return brief.Brief{}, fmt.Errorf("failed to encode platforms: %w", err)
	}

	query := `
		INSERT INTO briefs (id, brand_user_id, brand_name, title, description, category, budget_min, budget_max,
			platforms, deadline, requirements, status, proposal_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + briefColumns

	created, err := scanBrief(q.QueryRow(ctx, query,
		b.ID,
		b.BrandUserID,
		b.BrandName,
		b.Title,
		b.Description,
		b.Category,
		b.BudgetMin,
		b.BudgetMax,
		platforms,
		b.Deadline,
		b.Requirements,
		string(b.Status),
		b.ProposalCount,
		b.CreatedAt,
		b.UpdatedAt,
	))
	if err != nil {
		return brief.Brief{}, fmt.Errorf("failed to create brief: %w", err)
	}
	return created, nil
}

// GetByID implements brief.BriefRepository.
func (r *briefRepositoryImpl) GetByID(ctx context.Context, id string) (brief.Brief, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBrief(q.QueryRow(ctx, `SELECT `+briefColumns+` FROM briefs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return brief.Brief{}, brief.ErrBriefNotFound
		}
		return brief.Brief{}, fmt.Errorf("failed to get brief: %w", err)
	}
	return b, nil
}

// List implements brief.BriefRepository.
func (r *briefRepositoryImpl) List(ctx context.Context, filter brief.Filter) ([]brief.Brief, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.BrandUserID != "" {
		args = append(args, filter.BrandUserID)
		conditions = append(conditions, fmt.Sprintf("brand_user_id = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + briefColumns + ` FROM briefs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list briefs: %w", err)
	}
	defer rows.Close()

	var briefs []brief.Brief
	for rows.Next() {
		b, err := scanBrief(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brief: %w", err)
		}
		briefs = append(briefs, b)
	}
	return briefs, rows.Err()
}

// IncrementProposalCount implements brief.BriefRepository.
func (r *briefRepositoryImpl) IncrementProposalCount(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE briefs SET proposal_count = proposal_count + 1
		WHERE id = $1 AND status = 'open'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to increment proposal count: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := exists(ctx, q, "briefs", id)
	if err != nil {
		return err
	}
	if !found {
		return brief.ErrBriefNotFound
	}
	return brief.ErrBriefNotOpen
}

// MarkClosed implements brief.BriefRepository.
func (r *briefRepositoryImpl) MarkClosed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE briefs SET status = 'closed', updated_at = $2
		WHERE id = $1 AND status = 'open'
	`, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to close brief: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := exists(ctx, q, "briefs", id)
	if err != nil {
		return err
	}
	if !found {
		return brief.ErrBriefNotFound
	}
	return brief.ErrBriefNotOpen
}

type proposalRepositoryImpl struct {
	db *database.DB
}

func NewProposalRepository(db *database.DB) brief.ProposalRepository {
	return &proposalRepositoryImpl{db: db}
}

func scanProposal(row pgx.Row) (brief.Proposal, error) {
	var (
		p      brief.Proposal
		status string
	)
	err := row.Scan(
		&p.ID,
		&p.BriefID,
		&p.InfluencerUserID,
		&p.InfluencerName,
		&p.ProposedPrice,
		&p.Message,
		&p.DeliveryTime,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return brief.Proposal{}, err
	}
	p.Status = brief.ProposalStatus(status)
	return brief.NormalizeProposal(p), nil
}

// Create implements brief.ProposalRepository.
func (r *proposalRepositoryImpl) Create(ctx context.Context, p brief.Proposal) (brief.Proposal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO proposals (id, brief_id, influencer_user_id, influencer_name, proposed_price, message,
			delivery_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + proposalColumns

	created, err := scanProposal(q.QueryRow(ctx, query,
		p.ID,
		p.BriefID,
		p.InfluencerUserID,
		p.InfluencerName,
		p.ProposedPrice,
		p.Message,
		p.DeliveryTime,
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err, "uq_proposals_brief_influencer") {
			return brief.Proposal{}, brief.ErrAlreadyProposed
		}
		return brief.Proposal{}, fmt.Errorf("failed to create proposal: %w", err)
	}
	return created, nil
}

// GetByID implements brief.ProposalRepository.
func (r *proposalRepositoryImpl) GetByID(ctx context.Context, id string) (brief.Proposal, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanProposal(q.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return brief.Proposal{}, brief.ErrProposalNotFound
		}
		return brief.Proposal{}, fmt.Errorf("failed to get proposal: %w", err)
	}
	return p, nil
}

func (r *proposalRepositoryImpl) list(ctx context.Context, where string, arg interface{}) ([]brief.Proposal, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE `+where+` ORDER BY created_at DESC, id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []brief.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// ListByBrief implements brief.ProposalRepository.
func (r *proposalRepositoryImpl) ListByBrief(ctx context.Context, briefID string) ([]brief.Proposal, error) {
	return r.list(ctx, "brief_id = $1", briefID)
}

// ListByInfluencer implements brief.ProposalRepository.
func (r *proposalRepositoryImpl) ListByInfluencer(ctx context.Context, influencerUserID string) ([]brief.Proposal, error) {
	return r.list(ctx, "influencer_user_id = $1", influencerUserID)
}

// MarkAccepted implements brief.ProposalRepository.
func (r *proposalRepositoryImpl) MarkAccepted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE proposals SET status = 'accepted', updated_at = $2
		WHERE id = $1 AND status = 'pending'
	`, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to accept proposal: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := exists(ctx, q, "proposals", id)
	if err != nil {
		return err
	}
	if !found {
		return brief.ErrProposalNotFound
	}
	return brief.ErrProposalProcessed
}

// RejectSiblings implements brief.ProposalRepository.
func (r *proposalRepositoryImpl) RejectSiblings(ctx context.Context, briefID, acceptedID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE proposals SET status = 'rejected', updated_at = $3
		WHERE brief_id = $1 AND id <> $2 AND status = 'pending'
	`, briefID, acceptedID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to reject sibling proposals: %w", err)
	}
	return result.RowsAffected(), nil
}
