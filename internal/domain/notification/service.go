package notification

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
)

// Notifier delivers fire-and-forget messages. Failures are logged and never
// surface to the caller.
type Notifier interface {
	Notify(ctx context.Context, userID string, msg Message)
	NotifyRole(ctx context.Context, role identity.Role, msg Message)
}

// Service defines the notification service interface
type Service interface {
	Notifier

	// Inbox
	GetNotifications(ctx context.Context, actor identity.Identity, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, actor identity.Identity) (int, error)
	MarkAsRead(ctx context.Context, actor identity.Identity, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, actor identity.Identity) error
	Delete(ctx context.Context, actor identity.Identity, notificationID string) error

	// Preferences
	GetPreferences(ctx context.Context, userID string) ([]PreferenceResponse, error)
	UpdatePreference(ctx context.Context, userID string, req UpdatePreferenceRequest) error

	// Lifecycle
	Stop()
}
