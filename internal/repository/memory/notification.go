package memory

import (
	"context"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
)

type notificationRepository struct {
	s *Store
}

func NewNotificationRepository(s *Store) notification.Repository {
	return &notificationRepository{s: s}
}

func addressedTo(n notification.Notification, userID string, role identity.Role) bool {
	if n.RecipientID != nil && *n.RecipientID == userID {
		return true
	}
	return n.RecipientRole != nil && role != "" && *n.RecipientRole == role
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	defer r.s.lock(ctx)()

	r.s.data.notifications[n.ID] = *n
	r.s.data.track(n.ID)
	return nil
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	defer r.s.lock(ctx)()

	for _, n := range notifications {
		r.s.data.notifications[n.ID] = *n
		r.s.data.track(n.ID)
	}
	return nil
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, userID string, role identity.Role, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	defer r.s.lock(ctx)()

	matched := make([]notification.Notification, 0)
	for _, n := range r.s.data.notifications {
		if !addressedTo(n, userID, role) || (unreadOnly && n.IsRead) {
			continue
		}
		matched = append(matched, n)
	}
	newestFirst(r.s.data, matched,
		func(n notification.Notification) string { return n.ID },
		func(n notification.Notification) time.Time { return n.CreatedAt })

	total := len(matched)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]*notification.Notification, 0, end-start)
	for i := start; i < end; i++ {
		n := matched[i]
		out = append(out, &n)
	}
	return out, total, nil
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string, role identity.Role) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, n := range r.s.data.notifications {
		if addressedTo(n, userID, role) && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string, role identity.Role) error {
	defer r.s.lock(ctx)()

	now := time.Now()
	for _, id := range ids {
		n, ok := r.s.data.notifications[id]
		if !ok || !addressedTo(n, userID, role) || n.IsRead {
			continue
		}
		n.IsRead = true
		n.ReadAt = &now
		r.s.data.notifications[id] = n
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string, role identity.Role) error {
	defer r.s.lock(ctx)()

	now := time.Now()
	for id, n := range r.s.data.notifications {
		if !addressedTo(n, userID, role) || n.IsRead {
			continue
		}
		n.IsRead = true
		n.ReadAt = &now
		r.s.data.notifications[id] = n
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string, userID string) error {
	defer r.s.lock(ctx)()

	n, ok := r.s.data.notifications[id]
	if !ok || n.RecipientID == nil || *n.RecipientID != userID {
		return notification.ErrNotificationNotFound
	}
	delete(r.s.data.notifications, id)
	return nil
}

func preferenceKey(userID string, t notification.NotificationType) string {
	return userID + "|" + string(t)
}

func (r *notificationRepository) GetPreferences(ctx context.Context, userID string) ([]*notification.NotificationPreference, error) {
	defer r.s.lock(ctx)()

	var out []*notification.NotificationPreference
	for _, t := range notification.AllNotificationTypes() {
		if p, ok := r.s.data.preferences[preferenceKey(userID, t)]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *notificationRepository) GetPreference(ctx context.Context, userID string, t notification.NotificationType) (*notification.NotificationPreference, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.data.preferences[preferenceKey(userID, t)]
	if !ok {
		return nil, notification.ErrNotificationNotFound
	}
	return &p, nil
}

func (r *notificationRepository) UpsertPreference(ctx context.Context, pref *notification.NotificationPreference) error {
	defer r.s.lock(ctx)()

	key := preferenceKey(pref.UserID, pref.NotificationType)
	stored := *pref
	if existing, ok := r.s.data.preferences[key]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	r.s.data.preferences[key] = stored
	return nil
}
