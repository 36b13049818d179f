package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/email"
	"github.com/flulance/flulance-backend-go/internal/repository/memory"
	"github.com/flulance/flulance-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) SendNotification(to string, data email.NotificationEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return m.err
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func newTestService(t *testing.T, mailer email.EmailService) (notification.Service, notification.Repository) {
	t.Helper()
	store := memory.NewStore()
	store.PutUser(servicetest.Brand, nil)
	store.PutUser(servicetest.Admin, nil)
	repo := memory.NewNotificationRepository(store)
	svc := NewNotificationService(repo, memory.NewDirectory(store), mailer, Config{
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     10,
	})
	t.Cleanup(svc.Stop)
	return svc, repo
}

func TestNotify_PersistsAndEmailsOnStop(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newTestService(t, mailer)
	ctx := context.Background()

	svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{
		Type:  notification.TypeApplicationReceived,
		Title: "New application",
		Body:  "Deniz applied to Launch video",
		Email: true,
	})
	svc.Stop()

	list, err := svc.GetNotifications(ctx, servicetest.Brand, 1, 20, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, notification.TypeApplicationReceived, list.Notifications[0].Type)
	assert.Equal(t, 1, list.UnreadCount)
	assert.Equal(t, []string{servicetest.Brand.Email}, mailer.recipients())
}

func TestNotifyRole_VisibleToRoleOnly(t *testing.T) {
	svc, _ := newTestService(t, &fakeMailer{})
	ctx := context.Background()

	svc.NotifyRole(ctx, identity.RoleAdmin, notification.Message{Type: notification.TypeJobPendingReview, Title: "Review"})
	svc.Stop()

	adminInbox, err := svc.GetNotifications(ctx, servicetest.Admin, 1, 20, false)
	require.NoError(t, err)
	assert.Len(t, adminInbox.Notifications, 1)

	brandInbox, err := svc.GetNotifications(ctx, servicetest.Brand, 1, 20, false)
	require.NoError(t, err)
	assert.Empty(t, brandInbox.Notifications)
}

func TestNotify_RespectsPreferences(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newTestService(t, mailer)
	ctx := context.Background()

	require.NoError(t, svc.UpdatePreference(ctx, servicetest.Brand.UserID, notification.UpdatePreferenceRequest{
		NotificationType: notification.TypeJobApproved,
		EmailEnabled:     false,
		InAppEnabled:     true,
	}))
	require.NoError(t, svc.UpdatePreference(ctx, servicetest.Brand.UserID, notification.UpdatePreferenceRequest{
		NotificationType: notification.TypeJobRejected,
		EmailEnabled:     false,
		InAppEnabled:     false,
	}))

	svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{Type: notification.TypeJobApproved, Title: "Approved", Email: true})
	svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{Type: notification.TypeJobRejected, Title: "Rejected", Email: true})
	svc.Stop()

	list, err := svc.GetNotifications(ctx, servicetest.Brand, 1, 20, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, notification.TypeJobApproved, list.Notifications[0].Type)
	assert.Empty(t, mailer.recipients())

	prefs, err := svc.GetPreferences(ctx, servicetest.Brand.UserID)
	require.NoError(t, err)
	assert.Len(t, prefs, len(notification.AllNotificationTypes()))
}

func TestNotify_EmailFailureIsSwallowed(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc, _ := newTestService(t, mailer)
	ctx := context.Background()

	svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{Type: notification.TypeJobApproved, Title: "Approved", Email: true})
	svc.Stop()

	count, err := svc.GetUnreadCount(ctx, servicetest.Brand)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotify_AfterStopDeliversInline(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	svc.Stop()

	svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{Type: notification.TypeMatchCompleted, Title: "Done"})

	count, err := svc.GetUnreadCount(ctx, servicetest.Brand)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// stalledMailer blocks every send until release is closed.
type stalledMailer struct {
	started chan string
	release chan struct{}
}

func (m *stalledMailer) SendNotification(to string, _ email.NotificationEmail) error {
	m.started <- to
	<-m.release
	return nil
}

func TestNotify_InlineDeliveryDoesNotWaitForEmail(t *testing.T) {
	store := memory.NewStore()
	store.PutUser(servicetest.Brand, nil)
	repo := memory.NewNotificationRepository(store)
	mailer := &stalledMailer{started: make(chan string, 1), release: make(chan struct{})}
	defer close(mailer.release)

	tests := []struct {
		name string
		svc  *service
	}{
		{
			// Unbuffered queue with no workers is always full.
			name: "queue full",
			svc: &service{repo: repo, directory: memory.NewDirectory(store), mailer: mailer,
				queue: make(chan delivery), stopCh: make(chan struct{})},
		},
		{
			name: "stopped",
			svc: func() *service {
				s := NewNotificationService(repo, memory.NewDirectory(store), mailer, Config{WorkerCount: 1}).(*service)
				s.Stop()
				return s
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			before, err := repo.GetUnreadCount(ctx, servicetest.Brand.UserID, servicetest.Brand.Role)
			require.NoError(t, err)

			done := make(chan struct{})
			go func() {
				tt.svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{
					Type: notification.TypeJobApproved, Title: "Approved", Email: true,
				})
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("Notify blocked on the mail server")
			}

			after, err := repo.GetUnreadCount(ctx, servicetest.Brand.UserID, servicetest.Brand.Role)
			require.NoError(t, err)
			assert.Equal(t, before+1, after)

			select {
			case to := <-mailer.started:
				assert.Equal(t, servicetest.Brand.Email, to)
			case <-time.After(2 * time.Second):
				t.Fatal("email was never attempted")
			}
		})
	}
}

func TestMarkAsRead(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{Type: notification.TypeJobApproved, Title: "a"})
	svc.Notify(ctx, servicetest.Brand.UserID, notification.Message{Type: notification.TypeJobRenewed, Title: "b"})
	svc.Stop()

	assert.Error(t, svc.MarkAsRead(ctx, servicetest.Brand, notification.MarkAsReadRequest{}))

	list, err := svc.GetNotifications(ctx, servicetest.Brand, 1, 20, true)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)

	require.NoError(t, svc.MarkAsRead(ctx, servicetest.Brand, notification.MarkAsReadRequest{
		NotificationIDs: []string{list.Notifications[0].ID},
	}))
	count, err := svc.GetUnreadCount(ctx, servicetest.Brand)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllAsRead(ctx, servicetest.Brand))
	count, err = svc.GetUnreadCount(ctx, servicetest.Brand)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDelete_OwnNotificationsOnly(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	svc.Notify(ctx, servicetest.Admin.UserID, notification.Message{Type: notification.TypeJobCreated, Title: "mine"})
	svc.NotifyRole(ctx, identity.RoleAdmin, notification.Message{Type: notification.TypeJobPendingReview, Title: "shared"})
	svc.Stop()

	list, err := svc.GetNotifications(ctx, servicetest.Admin, 1, 20, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)

	for _, n := range list.Notifications {
		err := svc.Delete(ctx, servicetest.Brand, n.ID)
		assert.ErrorIs(t, err, notification.ErrNotificationNotFound)

		err = svc.Delete(ctx, servicetest.Admin, n.ID)
		if n.Type == notification.TypeJobPendingReview {
			assert.ErrorIs(t, err, notification.ErrNotificationNotFound, "role broadcasts are not deletable")
		} else {
			assert.NoError(t, err)
		}
	}

	list, err = svc.GetNotifications(ctx, servicetest.Admin, 1, 20, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, notification.TypeJobPendingReview, list.Notifications[0].Type)
}

func TestPreferences(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	prefs, err := svc.GetPreferences(ctx, servicetest.Brand.UserID)
	require.NoError(t, err)
	for _, p := range prefs {
		assert.True(t, p.EmailEnabled && p.InAppEnabled, "%s defaults to enabled", p.NotificationType)
	}

	err = svc.UpdatePreference(ctx, servicetest.Brand.UserID, notification.UpdatePreferenceRequest{NotificationType: "nope"})
	assert.ErrorIs(t, err, notification.ErrInvalidNotificationType)

	require.NoError(t, svc.UpdatePreference(ctx, servicetest.Brand.UserID, notification.UpdatePreferenceRequest{
		NotificationType: notification.TypeMessageReceived,
		EmailEnabled:     false,
		InAppEnabled:     true,
	}))
	prefs, err = svc.GetPreferences(ctx, servicetest.Brand.UserID)
	require.NoError(t, err)
	for _, p := range prefs {
		if p.NotificationType == notification.TypeMessageReceived {
			assert.False(t, p.EmailEnabled)
			assert.True(t, p.InAppEnabled)
		} else {
			assert.True(t, p.EmailEnabled)
		}
	}
}
