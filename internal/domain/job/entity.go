package job

import "time"

type Status string

const (
	StatusOpen    Status = "open"
	StatusFilled  Status = "filled"
	StatusClosed  Status = "closed"
	StatusExpired Status = "expired"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

const (
	MaxDurationDays     = 15
	DefaultDurationDays = 15
	RenewalDays         = 15
)

// Platforms a job may target.
var Platforms = []string{"instagram", "tiktok", "youtube", "twitter", "linkedin", "facebook"}

// Job entity
type Job struct {
	ID          string
	BrandUserID string
	BrandName   string

	Title       string
	Description string
	Category    string
	Budget      float64
	Platforms   []string
	IsFeatured  bool
	IsUrgent    bool

	Status          Status
	ApprovalStatus  ApprovalStatus
	RejectionReason *string
	DurationDays    int
	ExpiresAt       *time.Time

	ViewCount        int
	ApplicationCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClampDuration applies the default to a missing value and bounds the
// result to [1, MaxDurationDays].
func ClampDuration(days *int) int {
	if days == nil {
		return DefaultDurationDays
	}
	switch {
	case *days < 1:
		return 1
	case *days > MaxDurationDays:
		return MaxDurationDays
	default:
		return *days
	}
}

// IsExpiredAt reports whether the expiry deadline has passed at now.
func (j Job) IsExpiredAt(now time.Time) bool {
	return j.ExpiresAt != nil && !j.ExpiresAt.After(now)
}

// IsPublicAt reports whether the job belongs in the public catalog at now.
func (j Job) IsPublicAt(now time.Time) bool {
	return j.Status == StatusOpen &&
		j.ApprovalStatus == ApprovalApproved &&
		!j.IsExpiredAt(now)
}

// IsOwnedBy reports whether userID is the owning brand.
func (j Job) IsOwnedBy(userID string) bool {
	return j.BrandUserID == userID
}

// Normalize fills defaults for records written before moderation and
// counters existed. Every read path goes through it.
func Normalize(j Job) Job {
	if j.Status == "" {
		j.Status = StatusOpen
	}
	if j.ApprovalStatus == "" {
		j.ApprovalStatus = ApprovalApproved
	}
	if j.Platforms == nil {
		j.Platforms = []string{}
	}
	if j.ViewCount < 0 {
		j.ViewCount = 0
	}
	if j.ApplicationCount < 0 {
		j.ApplicationCount = 0
	}
	if j.ApprovalStatus != ApprovalRejected {
		j.RejectionReason = nil
	}
	return j
}
