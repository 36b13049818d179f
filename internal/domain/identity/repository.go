package identity

import "context"

// Directory resolves user ids issued by the auth provider to contact data.
// Registration and credential issuance live outside this service.
type Directory interface {
	// GetByID returns the identity for userID or ErrUserNotFound.
	GetByID(ctx context.Context, userID string) (Identity, error)

	// InfluencerProfileID returns the influencer's profile id, or nil when the
	// influencer has not created a profile yet.
	InfluencerProfileID(ctx context.Context, userID string) (*string, error)
}
