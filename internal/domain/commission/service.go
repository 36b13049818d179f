package commission

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

type CommissionService interface {
	// Get lazily creates the default settings.
	Get(ctx context.Context, actor identity.Identity) (CommissionResponse, error)
	Set(ctx context.Context, actor identity.Identity, req UpdateCommissionRequest) (CommissionResponse, error)
}
