package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

type directoryImpl struct {
	db *database.DB
}

// NewDirectory returns an identity.Directory over the users table.
func NewDirectory(db *database.DB) identity.Directory {
	return &directoryImpl{db: db}
}

func (r *directoryImpl) GetByID(ctx context.Context, userID string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	var (
		id   identity.Identity
		role string
	)
	err := q.QueryRow(ctx, `SELECT id, email, name, role FROM users WHERE id = $1`, userID).
		Scan(&id.UserID, &id.Email, &id.Name, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrUserNotFound
		}
		return identity.Identity{}, fmt.Errorf("failed to get user: %w", err)
	}
	id.Role = identity.Role(role)
	return id, nil
}

func (r *directoryImpl) InfluencerProfileID(ctx context.Context, userID string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	var profileID *string
	err := q.QueryRow(ctx, `SELECT influencer_profile_id FROM users WHERE id = $1`, userID).Scan(&profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get influencer profile: %w", err)
	}
	return profileID, nil
}
