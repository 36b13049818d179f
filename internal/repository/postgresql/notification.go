package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

const notificationColumns = `id, recipient_id, recipient_role, type, title, message, data, is_read, read_at, created_at`

// recipientClause matches rows addressed to the user ($1) or their role ($2).
const recipientClause = `(recipient_id = $1 OR ($2 <> '' AND recipient_role = $2))`

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func notificationArgs(n *notification.Notification) ([]interface{}, error) {
	dataJSON, err := json.Marshal(n.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	var role *string
	if n.RecipientRole != nil {
		r := string(*n.RecipientRole)
		role = &r
	}

	return []interface{}{
		n.ID,
		n.RecipientID,
		role,
		string(n.Type),
		n.Title,
		n.Message,
		dataJSON,
		n.IsRead,
		n.ReadAt,
		n.CreatedAt,
	}, nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var (
		n         notification.Notification
		role      *string
		notifType string
		dataJSON  []byte
	)
	if err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&role,
		&notifType,
		&n.Title,
		&n.Message,
		&dataJSON,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}

	n.Type = notification.NotificationType(notifType)
	if role != nil {
		r := identity.Role(*role)
		n.RecipientRole = &r
	}
	if dataJSON != nil {
		if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
		}
	}
	return &n, nil
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.CreateBatch(ctx, []*notification.Notification{n})
}

// CreateBatch inserts notifications with one multi-row INSERT
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	const width = 10
	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*width)

	for i, n := range notifications {
		args, err := notificationArgs(n)
		if err != nil {
			return err
		}

		placeholders := make([]string, width)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", i*width+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs, args...)
	}

	query := fmt.Sprintf(`INSERT INTO notifications (%s) VALUES %s`, notificationColumns, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create notifications: %w", err)
	}
	return nil
}

// ListForRecipient returns one page of the recipient's inbox, newest first
func (r *notificationRepository) ListForRecipient(ctx context.Context, userID string, role identity.Role, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := recipientClause
	if unreadOnly {
		whereClause += " AND is_read = false"
	}
	args := []interface{}{userID, string(role)}

	var total int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, notificationColumns, whereClause)

	rows, err := q.Query(ctx, query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// GetUnreadCount returns the count of unread notifications for a recipient
func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string, role identity.Role) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := "SELECT COUNT(*) FROM notifications WHERE " + recipientClause + " AND is_read = false"
	if err := q.QueryRow(ctx, query, userID, string(role)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks specific notifications as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string, role identity.Role) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = $3
		WHERE ` + recipientClause + ` AND id = ANY($4) AND is_read = false
	`
	if _, err := q.Exec(ctx, query, userID, string(role), time.Now(), ids); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks all notifications as read for a recipient
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string, role identity.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = $3
		WHERE ` + recipientClause + ` AND is_read = false
	`
	if _, err := q.Exec(ctx, query, userID, string(role), time.Now()); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

// Delete deletes a notification addressed to userID
func (r *notificationRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// ============= Preferences =============

const preferenceColumns = `user_id, notification_type, email_enabled, in_app_enabled, created_at, updated_at`

func scanPreference(row pgx.Row) (*notification.NotificationPreference, error) {
	var (
		p         notification.NotificationPreference
		notifType string
	)
	if err := row.Scan(
		&p.UserID,
		&notifType,
		&p.EmailEnabled,
		&p.InAppEnabled,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.NotificationType = notification.NotificationType(notifType)
	return &p, nil
}

// GetPreferences retrieves all notification preferences for a user
func (r *notificationRepository) GetPreferences(ctx context.Context, userID string) ([]*notification.NotificationPreference, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+preferenceColumns+` FROM notification_preferences WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*notification.NotificationPreference
	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// GetPreference retrieves a specific notification preference
func (r *notificationRepository) GetPreference(ctx context.Context, userID string, notifType notification.NotificationType) (*notification.NotificationPreference, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPreference(q.QueryRow(ctx,
		`SELECT `+preferenceColumns+` FROM notification_preferences WHERE user_id = $1 AND notification_type = $2`,
		userID, string(notifType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return p, nil
}

// UpsertPreference creates or updates a notification preference
func (r *notificationRepository) UpsertPreference(ctx context.Context, pref *notification.NotificationPreference) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notification_preferences (user_id, notification_type, email_enabled, in_app_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, notification_type)
		DO UPDATE SET email_enabled = $3, in_app_enabled = $4, updated_at = $5
	`

	updatedAt := pref.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	if _, err := q.Exec(ctx, query,
		pref.UserID,
		string(pref.NotificationType),
		pref.EmailEnabled,
		pref.InAppEnabled,
		updatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}
	return nil
}
