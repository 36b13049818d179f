package commission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/commission"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

type CommissionServiceImpl struct {
	repo commission.CommissionRepository
}

func NewCommissionService(repo commission.CommissionRepository) commission.CommissionService {
	return &CommissionServiceImpl{repo: repo}
}

// Get implements commission.CommissionService.
func (s *CommissionServiceImpl) Get(ctx context.Context, actor identity.Identity) (commission.CommissionResponse, error) {
	if !actor.IsAdmin() {
		return commission.CommissionResponse{}, identity.ErrInsufficientPermissions
	}
	settings, err := s.repo.GetOrCreate(ctx, commission.Settings{
		Percentage: commission.DefaultPercentage,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		return commission.CommissionResponse{}, fmt.Errorf("failed to load commission settings: %w", err)
	}
	return commission.ToResponse(settings), nil
}

// Set implements commission.CommissionService.
func (s *CommissionServiceImpl) Set(ctx context.Context, actor identity.Identity, req commission.UpdateCommissionRequest) (commission.CommissionResponse, error) {
	if !actor.IsAdmin() {
		return commission.CommissionResponse{}, identity.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return commission.CommissionResponse{}, err
	}

	settings, err := s.repo.Upsert(ctx, commission.Settings{
		Percentage: *req.Percentage,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		return commission.CommissionResponse{}, fmt.Errorf("failed to save commission settings: %w", err)
	}

	slog.Info("Commission percentage updated", "percentage", settings.Percentage, "admin_user_id", actor.UserID)
	return commission.ToResponse(settings), nil
}
