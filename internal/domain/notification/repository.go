package notification

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

// Repository defines the notification repository interface. A recipient's
// inbox is the union of rows addressed to their id and to their role.
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	ListForRecipient(ctx context.Context, userID string, role identity.Role, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string, role identity.Role) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string, role identity.Role) error
	MarkAllAsRead(ctx context.Context, userID string, role identity.Role) error
	// Delete removes a notification addressed to userID.
	Delete(ctx context.Context, id string, userID string) error

	// Preferences
	GetPreferences(ctx context.Context, userID string) ([]*NotificationPreference, error)
	UpsertPreference(ctx context.Context, pref *NotificationPreference) error
	// GetPreference returns ErrNotificationNotFound when the user kept the defaults.
	GetPreference(ctx context.Context, userID string, notifType NotificationType) (*NotificationPreference, error)
}
