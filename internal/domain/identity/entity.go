package identity

// Role is the marketplace role carried by an access token.
type Role string

const (
	RoleBrand      Role = "marka"      // Posts jobs and briefs
	RoleInfluencer Role = "influencer" // Applies to jobs, submits proposals
	RoleAdmin      Role = "admin"      // Moderates jobs, manages commission
)

// IsValid reports whether r is one of the known marketplace roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleBrand, RoleInfluencer, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the caller resolved from a credential.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

func (i Identity) IsBrand() bool      { return i.Role == RoleBrand }
func (i Identity) IsInfluencer() bool { return i.Role == RoleInfluencer }
func (i Identity) IsAdmin() bool      { return i.Role == RoleAdmin }

// HasRole reports whether the identity holds any of roles.
func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
