package notification

import (
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeJobCreated          NotificationType = "job_created"
	TypeJobPendingReview    NotificationType = "job_pending_review"
	TypeJobApproved         NotificationType = "job_approved"
	TypeJobRejected         NotificationType = "job_rejected"
	TypeJobRenewed          NotificationType = "job_renewed"
	TypeApplicationReceived NotificationType = "application_received"
	TypeApplicationAccepted NotificationType = "application_accepted"
	TypeProposalReceived    NotificationType = "proposal_received"
	TypeProposalAccepted    NotificationType = "proposal_accepted"
	TypeMatchCompleted      NotificationType = "match_completed"
	TypeMessageReceived     NotificationType = "message_received"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeJobCreated,
		TypeJobPendingReview,
		TypeJobApproved,
		TypeJobRejected,
		TypeJobRenewed,
		TypeApplicationReceived,
		TypeApplicationAccepted,
		TypeProposalReceived,
		TypeProposalAccepted,
		TypeMatchCompleted,
		TypeMessageReceived,
	}
}

func (t NotificationType) IsValid() bool {
	for _, known := range AllNotificationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Notification is addressed either to one user or to every holder of a role.
type Notification struct {
	ID            string
	RecipientID   *string
	RecipientRole *identity.Role
	Type          NotificationType
	Title         string
	Message       string
	Data          map[string]interface{}
	IsRead        bool
	ReadAt        *time.Time
	CreatedAt     time.Time
}

// NotificationPreference represents user preference for a notification type
type NotificationPreference struct {
	UserID           string
	NotificationType NotificationType
	EmailEnabled     bool
	InAppEnabled     bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Message is what the marketplace hands to the Notifier.
type Message struct {
	Type  NotificationType
	Title string
	Body  string
	Data  map[string]interface{}
	// Email also mirrors the message to the recipient's inbox, best effort.
	Email bool
}
