package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/email"
	"github.com/flulance/flulance-backend-go/internal/pkg/idgen"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
	FrontendURL   string        // link target in emails
}

// delivery is one queued notification. n is nil when the recipient muted
// in-app delivery for the type but still wants the email.
type delivery struct {
	n       *notification.Notification
	userID  string
	msg     notification.Message
	mailing bool
}

type service struct {
	repo      notification.Repository
	directory identity.Directory
	mailer    email.EmailService
	config    Config

	queue    chan delivery
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, directory identity.Directory, mailer email.EmailService, cfg Config) notification.Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:      repo,
		directory: directory,
		mailer:    mailer,
		config:    cfg,
		queue:     make(chan delivery, cfg.QueueSize),
		stopCh:    make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]delivery, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.deliver(ctx, batch, id)
		batch = batch[:0]
	}

	for {
		select {
		case d := <-s.queue:
			batch = append(batch, d)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			for {
				select {
				case d := <-s.queue:
					batch = append(batch, d)
				default:
					flush()
					return
				}
			}
		}
	}
}

// deliver persists the in-app rows of batch, then sends the emails.
func (s *service) deliver(ctx context.Context, batch []delivery, worker int) {
	s.persist(ctx, batch, worker)

	for _, d := range batch {
		if d.mailing {
			s.sendEmail(ctx, d.userID, d.msg)
		}
	}
}

func (s *service) persist(ctx context.Context, batch []delivery, worker int) {
	rows := make([]*notification.Notification, 0, len(batch))
	for _, d := range batch {
		if d.n != nil {
			rows = append(rows, d.n)
		}
	}
	if len(rows) > 0 {
		if err := s.repo.CreateBatch(ctx, rows); err != nil {
			slog.Error("Failed to insert notifications", "worker", worker, "count", len(rows), "error", err)
		} else {
			slog.Debug("Inserted notifications", "worker", worker, "count", len(rows))
		}
	}
}

func (s *service) sendEmail(ctx context.Context, userID string, msg notification.Message) {
	if s.mailer == nil || s.directory == nil {
		return
	}
	recipient, err := s.directory.GetByID(ctx, userID)
	if err != nil {
		slog.Warn("Skipping notification email, recipient lookup failed", "user_id", userID, "error", err)
		return
	}
	if recipient.Email == "" {
		return
	}
	if err := s.mailer.SendNotification(recipient.Email, email.NotificationEmail{
		RecipientName: recipient.Name,
		Title:         msg.Title,
		Body:          msg.Body,
		ActionURL:     s.config.FrontendURL,
	}); err != nil {
		slog.Error("Failed to send notification email", "user_id", userID, "type", msg.Type, "error", err)
	}
}

func (s *service) enqueue(ctx context.Context, d delivery) {
	select {
	case <-s.stopCh:
		s.deliverInline(ctx, d)
		return
	default:
	}

	select {
	case s.queue <- d:
	default:
		slog.Warn("Notification queue full, delivering inline", "user_id", d.userID, "type", d.msg.Type)
		s.deliverInline(ctx, d)
	}
}

// deliverInline persists d on the caller's goroutine. The email goes out
// on its own goroutine so a slow mail server never holds up the request.
func (s *service) deliverInline(ctx context.Context, d delivery) {
	s.persist(ctx, []delivery{d}, -1)
	if !d.mailing {
		return
	}
	go func() {
		mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		s.sendEmail(mailCtx, d.userID, d.msg)
	}()
}

func newNotification(msg notification.Message) *notification.Notification {
	return &notification.Notification{
		ID:        idgen.New(idgen.PrefixNotification),
		Type:      msg.Type,
		Title:     msg.Title,
		Message:   msg.Body,
		Data:      msg.Data,
		CreatedAt: time.Now(),
	}
}

// Notify queues msg for userID, honouring the user's preferences.
func (s *service) Notify(ctx context.Context, userID string, msg notification.Message) {
	inApp, mail := true, msg.Email
	pref, err := s.repo.GetPreference(ctx, userID, msg.Type)
	switch {
	case err == nil:
		inApp = pref.InAppEnabled
		mail = mail && pref.EmailEnabled
	case errors.Is(err, notification.ErrNotificationNotFound):
	default:
		slog.Warn("Failed to load notification preference, using defaults", "user_id", userID, "error", err)
	}

	if !inApp && !mail {
		return
	}

	d := delivery{userID: userID, msg: msg, mailing: mail}
	if inApp {
		d.n = newNotification(msg)
		d.n.RecipientID = &userID
	}
	s.enqueue(ctx, d)
}

// NotifyRole stores one notification visible to every holder of role.
func (s *service) NotifyRole(ctx context.Context, role identity.Role, msg notification.Message) {
	n := newNotification(msg)
	n.RecipientRole = &role
	s.enqueue(ctx, delivery{n: n, msg: msg})
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, actor identity.Identity, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.ListForRecipient(ctx, actor.UserID, actor.Role, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, actor.UserID, actor.Role)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.ToResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *service) GetUnreadCount(ctx context.Context, actor identity.Identity) (int, error) {
	return s.repo.GetUnreadCount(ctx, actor.UserID, actor.Role)
}

func (s *service) MarkAsRead(ctx context.Context, actor identity.Identity, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, actor.UserID, actor.Role)
}

func (s *service) MarkAllAsRead(ctx context.Context, actor identity.Identity) error {
	return s.repo.MarkAllAsRead(ctx, actor.UserID, actor.Role)
}

func (s *service) Delete(ctx context.Context, actor identity.Identity, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, actor.UserID)
}

// GetPreferences returns every notification type, defaulting unset ones to enabled.
func (s *service) GetPreferences(ctx context.Context, userID string) ([]notification.PreferenceResponse, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefMap := make(map[notification.NotificationType]*notification.NotificationPreference)
	for _, p := range prefs {
		prefMap[p.NotificationType] = p
	}

	allTypes := notification.AllNotificationTypes()
	responses := make([]notification.PreferenceResponse, len(allTypes))
	for i, t := range allTypes {
		responses[i] = notification.PreferenceResponse{NotificationType: t, EmailEnabled: true, InAppEnabled: true}
		if p, ok := prefMap[t]; ok {
			responses[i].EmailEnabled = p.EmailEnabled
			responses[i].InAppEnabled = p.InAppEnabled
		}
	}
	return responses, nil
}

func (s *service) UpdatePreference(ctx context.Context, userID string, req notification.UpdatePreferenceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpsertPreference(ctx, &notification.NotificationPreference{
		UserID:           userID,
		NotificationType: req.NotificationType,
		EmailEnabled:     req.EmailEnabled,
		InAppEnabled:     req.InAppEnabled,
		UpdatedAt:        time.Now(),
	})
}

// Stop drains the queue and waits for the workers.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
