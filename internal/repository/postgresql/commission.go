package postgresql

import (
	"context"
	"fmt"

	"github.com/flulance/flulance-backend-go/internal/domain/commission"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

type commissionRepositoryImpl struct {
	db *database.DB
}

func NewCommissionRepository(db *database.DB) commission.CommissionRepository {
	return &commissionRepositoryImpl{db: db}
}

// GetOrCreate implements commission.CommissionRepository.
func (r *commissionRepositoryImpl) GetOrCreate(ctx context.Context, def commission.Settings) (commission.Settings, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO commission_settings (id, percentage, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING
	`, def.Percentage, def.UpdatedAt)
	if err != nil {
		return commission.Settings{}, fmt.Errorf("failed to seed commission settings: %w", err)
	}

	var s commission.Settings
	err = q.QueryRow(ctx, `SELECT percentage, updated_at FROM commission_settings WHERE id = 1`).
		Scan(&s.Percentage, &s.UpdatedAt)
	if err != nil {
		return commission.Settings{}, fmt.Errorf("failed to get commission settings: %w", err)
	}
	return s, nil
}

// Upsert implements commission.CommissionRepository.
func (r *commissionRepositoryImpl) Upsert(ctx context.Context, s commission.Settings) (commission.Settings, error) {
	q := GetQuerier(ctx, r.db)

	var saved commission.Settings
	err := q.QueryRow(ctx, `
		INSERT INTO commission_settings (id, percentage, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET percentage = EXCLUDED.percentage, updated_at = EXCLUDED.updated_at
		RETURNING percentage, updated_at
	`, s.Percentage, s.UpdatedAt).Scan(&saved.Percentage, &saved.UpdatedAt)
	if err != nil {
		return commission.Settings{}, fmt.Errorf("failed to save commission settings: %w", err)
	}
	return saved, nil
}
