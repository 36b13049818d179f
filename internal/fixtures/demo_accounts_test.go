package fixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/repository/memory"
)

func TestSeedDemoAccounts(t *testing.T) {
	store := memory.NewStore()
	n := SeedDemoAccounts(store)
	require.Equal(t, len(GetDemoAccounts()), n)

	dir := memory.NewDirectory(store)
	ctx := context.Background()

	roles := map[identity.Role]int{}
	for _, a := range GetDemoAccounts() {
		got, err := dir.GetByID(ctx, a.Identity.UserID)
		require.NoError(t, err)
		assert.Equal(t, a.Identity, got)
		roles[a.Identity.Role]++

		profile, err := dir.InfluencerProfileID(ctx, a.Identity.UserID)
		require.NoError(t, err)
		if a.Identity.Role == identity.RoleInfluencer {
			require.NotNil(t, profile)
			assert.Equal(t, *a.ProfileID, *profile)
		} else {
			assert.Nil(t, profile)
		}
	}
	assert.Equal(t, 1, roles[identity.RoleAdmin])
	assert.Equal(t, 2, roles[identity.RoleBrand])
	assert.Equal(t, 2, roles[identity.RoleInfluencer])
}
