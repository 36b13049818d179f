package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

const matchColumns = `id, source_type, source_id, title, brand_user_id, brand_name, influencer_user_id,
	influencer_name, agreed_price, status, completed_by, completed_at, created_at, updated_at`

type matchRepositoryImpl struct {
	db *database.DB
}

func NewMatchRepository(db *database.DB) match.MatchRepository {
	return &matchRepositoryImpl{db: db}
}

func scanMatch(row pgx.Row) (match.Match, error) {
	var (
		m          match.Match
		sourceType string
		status     string
	)
	err := row.Scan(
		&m.ID,
		&sourceType,
		&m.SourceID,
		&m.Title,
		&m.BrandUserID,
		&m.BrandName,
		&m.InfluencerUserID,
		&m.InfluencerName,
		&m.AgreedPrice,
		&status,
		&m.CompletedBy,
		&m.CompletedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return match.Match{}, err
	}
	m.SourceType = match.SourceType(sourceType)
	m.Status = match.Status(status)
	return match.Normalize(m), nil
}

// Create implements match.MatchRepository.
func (r *matchRepositoryImpl) Create(ctx context.Context, m match.Match) (match.Match, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO matches (id, source_type, source_id, title, brand_user_id, brand_name, influencer_user_id,
			influencer_name, agreed_price, status, completed_by, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + matchColumns

	created, err := scanMatch(q.QueryRow(ctx, query,
		m.ID,
		string(m.SourceType),
		m.SourceID,
		m.Title,
		m.BrandUserID,
		m.BrandName,
		m.InfluencerUserID,
		m.InfluencerName,
		m.AgreedPrice,
		string(m.Status),
		m.CompletedBy,
		m.CompletedAt,
		m.CreatedAt,
		m.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err, "uq_matches_source") {
			return match.Match{}, match.ErrMatchAlreadyExists
		}
		return match.Match{}, fmt.Errorf("failed to create match: %w", err)
	}
	return created, nil
}

// GetByID implements match.MatchRepository.
func (r *matchRepositoryImpl) GetByID(ctx context.Context, id string) (match.Match, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanMatch(q.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, match.ErrMatchNotFound
		}
		return match.Match{}, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

func (r *matchRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]match.Match, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + matchColumns + ` FROM matches`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []match.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ListByBrand implements match.MatchRepository.
func (r *matchRepositoryImpl) ListByBrand(ctx context.Context, brandUserID string) ([]match.Match, error) {
	return r.list(ctx, "brand_user_id = $1", brandUserID)
}

// ListByInfluencer implements match.MatchRepository.
func (r *matchRepositoryImpl) ListByInfluencer(ctx context.Context, influencerUserID string) ([]match.Match, error) {
	return r.list(ctx, "influencer_user_id = $1", influencerUserID)
}

// ListAll implements match.MatchRepository.
func (r *matchRepositoryImpl) ListAll(ctx context.Context) ([]match.Match, error) {
	return r.list(ctx, "")
}

// MarkCompleted implements match.MatchRepository.
func (r *matchRepositoryImpl) MarkCompleted(ctx context.Context, id, completedBy string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE matches SET status = 'completed', completed_by = $2, completed_at = $3, updated_at = $3
		WHERE id = $1 AND status = 'active'
	`, id, completedBy, at)
	if err != nil {
		return fmt.Errorf("failed to complete match: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := exists(ctx, q, "matches", id)
	if err != nil {
		return err
	}
	if !found {
		return match.ErrMatchNotFound
	}
	return match.ErrMatchNotActive
}

type messageRepositoryImpl struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) match.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

// Create implements match.MessageRepository.
func (r *messageRepositoryImpl) Create(ctx context.Context, msg match.Message) (match.Message, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO match_messages (id, match_id, sender_user_id, sender_name, body, attachment_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, msg.ID, msg.MatchID, msg.SenderUserID, msg.SenderName, msg.Body, msg.AttachmentURL, msg.CreatedAt)
	if err != nil {
		return match.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

// ListByMatch implements match.MessageRepository.
func (r *messageRepositoryImpl) ListByMatch(ctx context.Context, matchID string) ([]match.Message, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, match_id, sender_user_id, sender_name, body, attachment_url, created_at
		FROM match_messages
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []match.Message
	for rows.Next() {
		var m match.Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderUserID, &m.SenderName, &m.Body, &m.AttachmentURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
