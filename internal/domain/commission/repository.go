package commission

import "context"

// CommissionRepository - interface for the commission_settings singleton
type CommissionRepository interface {
	// GetOrCreate returns the stored settings, inserting def first when
	// none exist. Concurrent first reads converge on one row.
	GetOrCreate(ctx context.Context, def Settings) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}
