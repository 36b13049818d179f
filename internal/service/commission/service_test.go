package commission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flulance/flulance-backend-go/internal/domain/commission"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
	"github.com/flulance/flulance-backend-go/internal/repository/memory"
	"github.com/flulance/flulance-backend-go/internal/service/servicetest"
)

func pct(v float64) *float64 { return &v }

func TestGet_LazilyCreatesDefault(t *testing.T) {
	svc := NewCommissionService(memory.NewCommissionRepository(memory.NewStore()))

	first, err := svc.Get(context.Background(), servicetest.Admin)
	require.NoError(t, err)
	assert.Equal(t, 10.0, first.Percentage)
	assert.False(t, first.UpdatedAt.IsZero())

	second, err := svc.Get(context.Background(), servicetest.Admin)
	require.NoError(t, err)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestSet_Bounds(t *testing.T) {
	svc := NewCommissionService(memory.NewCommissionRepository(memory.NewStore()))

	for _, v := range []float64{-1, 101, 100.5} {
		_, err := svc.Set(context.Background(), servicetest.Admin, commission.UpdateCommissionRequest{Percentage: pct(v)})
		assert.ErrorIs(t, err, commission.ErrInvalidPercentage, "percentage %v", v)
	}

	for _, v := range []float64{0, 100, 12.5} {
		resp, err := svc.Set(context.Background(), servicetest.Admin, commission.UpdateCommissionRequest{Percentage: pct(v)})
		require.NoError(t, err)
		assert.Equal(t, v, resp.Percentage)

		got, err := svc.Get(context.Background(), servicetest.Admin)
		require.NoError(t, err)
		assert.Equal(t, v, got.Percentage)
	}

	_, err := svc.Set(context.Background(), servicetest.Admin, commission.UpdateCommissionRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestCommission_AdminOnly(t *testing.T) {
	svc := NewCommissionService(memory.NewCommissionRepository(memory.NewStore()))

	for _, actor := range []identity.Identity{servicetest.Brand, servicetest.Influencer} {
		_, err := svc.Get(context.Background(), actor)
		assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)
		_, err = svc.Set(context.Background(), actor, commission.UpdateCommissionRequest{Percentage: pct(5)})
		assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)
	}
}
