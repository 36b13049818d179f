package dashboard

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

// DashboardService defines the interface for the admin overview
type DashboardService interface {
	// GetStats runs the aggregate queries in parallel.
	GetStats(ctx context.Context, actor identity.Identity) (*StatsResponse, error)
}
