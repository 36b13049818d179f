package memory

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

type directory struct {
	s *Store
}

// NewDirectory returns an identity.Directory over the users registered with
// PutUser.
func NewDirectory(s *Store) identity.Directory {
	return &directory{s: s}
}

// PutUser registers or replaces a user, optionally with an influencer
// profile id.
func (s *Store) PutUser(id identity.Identity, profileID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.users[id.UserID] = id
	if profileID != nil {
		s.data.profiles[id.UserID] = *profileID
	} else {
		delete(s.data.profiles, id.UserID)
	}
}

func (d *directory) GetByID(ctx context.Context, userID string) (identity.Identity, error) {
	defer d.s.lock(ctx)()

	id, ok := d.s.data.users[userID]
	if !ok {
		return identity.Identity{}, identity.ErrUserNotFound
	}
	return id, nil
}

func (d *directory) InfluencerProfileID(ctx context.Context, userID string) (*string, error) {
	defer d.s.lock(ctx)()

	profileID, ok := d.s.data.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profileID, nil
}
