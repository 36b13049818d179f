package brief

import "time"

type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCompleted Status = "completed"
)

// Brief is a reverse posting: a brand states a budget band and invites
// priced proposals. Briefs are not moderated and do not expire.
type Brief struct {
	ID            string
	BrandUserID   string
	BrandName     string
	Title         string
	Description   string
	Category      string
	BudgetMin     float64
	BudgetMax     float64
	Platforms     []string
	Deadline      *time.Time
	Requirements  *string
	Status        Status
	ProposalCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b Brief) IsOwnedBy(userID string) bool {
	return b.BrandUserID == userID
}

func Normalize(b Brief) Brief {
	if b.Status == "" {
		b.Status = StatusOpen
	}
	if b.Platforms == nil {
		b.Platforms = []string{}
	}
	if b.ProposalCount < 0 {
		b.ProposalCount = 0
	}
	return b
}

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

// Proposal is an influencer's priced offer against a brief.
type Proposal struct {
	ID               string
	BriefID          string
	InfluencerUserID string
	InfluencerName   string
	ProposedPrice    float64
	Message          string
	DeliveryTime     string
	Status           ProposalStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NormalizeProposal(p Proposal) Proposal {
	if p.Status == "" {
		p.Status = ProposalPending
	}
	return p
}
