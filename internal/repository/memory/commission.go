package memory

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/commission"
)

type commissionRepository struct {
	s *Store
}

func NewCommissionRepository(s *Store) commission.CommissionRepository {
	return &commissionRepository{s: s}
}

func (r *commissionRepository) GetOrCreate(ctx context.Context, def commission.Settings) (commission.Settings, error) {
	defer r.s.lock(ctx)()

	if r.s.data.commission == nil {
		settings := def
		r.s.data.commission = &settings
	}
	return *r.s.data.commission, nil
}

func (r *commissionRepository) Upsert(ctx context.Context, settings commission.Settings) (commission.Settings, error) {
	defer r.s.lock(ctx)()

	stored := settings
	r.s.data.commission = &stored
	return stored, nil
}
