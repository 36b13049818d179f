package match

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// SourceType names the flow that produced a match.
type SourceType string

const (
	SourceJob   SourceType = "job"
	SourceBrief SourceType = "brief"
)

// Match is the working relationship created when an application or a
// proposal is accepted.
type Match struct {
	ID               string
	SourceType       SourceType
	SourceID         string
	Title            string
	BrandUserID      string
	BrandName        string
	InfluencerUserID string
	InfluencerName   string
	// AgreedPrice is only set on the proposal path.
	AgreedPrice *float64
	Status      Status
	CompletedBy *string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsParty reports whether userID is the brand or the influencer of m.
func (m Match) IsParty(userID string) bool {
	return m.BrandUserID == userID || m.InfluencerUserID == userID
}

// Counterpart returns the other party's user id.
func (m Match) Counterpart(userID string) string {
	if m.BrandUserID == userID {
		return m.InfluencerUserID
	}
	return m.BrandUserID
}

func Normalize(m Match) Match {
	if m.Status == "" {
		m.Status = StatusActive
	}
	if m.SourceType == "" {
		m.SourceType = SourceJob
	}
	return m
}

// Message is one entry of a match's polled chat.
type Message struct {
	ID            string
	MatchID       string
	SenderUserID  string
	SenderName    string
	Body          string
	AttachmentURL *string
	CreatedAt     time.Time
}
