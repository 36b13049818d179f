package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
	"github.com/flulance/flulance-backend-go/internal/pkg/idgen"
	"github.com/flulance/flulance-backend-go/internal/pkg/storage"
)

type MatchServiceImpl struct {
	tx        database.Transactor
	matchRepo match.MatchRepository
	msgRepo   match.MessageRepository
	jobRepo   job.JobRepository
	files     storage.BlobStore
	notifier  notification.Notifier
}

func NewMatchService(
	tx database.Transactor,
	matchRepo match.MatchRepository,
	msgRepo match.MessageRepository,
	jobRepo job.JobRepository,
	files storage.BlobStore,
	notifier notification.Notifier,
) match.MatchService {
	return &MatchServiceImpl{
		tx:        tx,
		matchRepo: matchRepo,
		msgRepo:   msgRepo,
		jobRepo:   jobRepo,
		files:     files,
		notifier:  notifier,
	}
}

// ListForUser implements match.MatchService.
func (s *MatchServiceImpl) ListForUser(ctx context.Context, actor identity.Identity) ([]match.MatchResponse, error) {
	var (
		matches []match.Match
		err     error
	)
	switch actor.Role {
	case identity.RoleBrand:
		matches, err = s.matchRepo.ListByBrand(ctx, actor.UserID)
	case identity.RoleInfluencer:
		matches, err = s.matchRepo.ListByInfluencer(ctx, actor.UserID)
	default:
		return nil, identity.ErrInsufficientPermissions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return match.ToResponses(matches), nil
}

// GetMatch implements match.MatchService.
func (s *MatchServiceImpl) GetMatch(ctx context.Context, actor identity.Identity, id string) (match.MatchResponse, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return match.MatchResponse{}, err
	}
	if !actor.IsAdmin() && !m.IsParty(actor.UserID) {
		return match.MatchResponse{}, match.ErrNotMatchParty
	}
	return match.ToResponse(m), nil
}

// Complete implements match.MatchService.
func (s *MatchServiceImpl) Complete(ctx context.Context, actor identity.Identity, id string) (match.MatchResponse, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return match.MatchResponse{}, err
	}
	if !m.IsParty(actor.UserID) {
		return match.MatchResponse{}, match.ErrNotMatchParty
	}
	if m.Status != match.StatusActive {
		return match.MatchResponse{}, match.ErrMatchNotActive
	}

	now := time.Now()
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.matchRepo.MarkCompleted(ctx, m.ID, actor.UserID, now); err != nil {
			return err
		}
		if m.BrandUserID != actor.UserID || m.SourceType != match.SourceJob {
			return nil
		}
		// The job is normally filled already; it may also have been deleted.
		if err := s.jobRepo.ForceFilled(ctx, m.SourceID); err != nil && !errors.Is(err, job.ErrJobNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return match.MatchResponse{}, err
	}

	completedBy := actor.UserID
	m.Status = match.StatusCompleted
	m.CompletedBy = &completedBy
	m.CompletedAt = &now
	m.UpdatedAt = now

	s.notifier.Notify(ctx, m.Counterpart(actor.UserID), notification.Message{
		Type:  notification.TypeMatchCompleted,
		Title: "Collaboration completed",
		Body:  fmt.Sprintf("%s marked %q as completed.", actor.Name, m.Title),
		Data:  map[string]interface{}{"match_id": m.ID},
		Email: true,
	})

	return match.ToResponse(m), nil
}

// AdminList implements match.MatchService.
func (s *MatchServiceImpl) AdminList(ctx context.Context, actor identity.Identity) ([]match.MatchResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrInsufficientPermissions
	}
	matches, err := s.matchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return match.ToResponses(matches), nil
}

// ListMessages implements match.MatchService.
func (s *MatchServiceImpl) ListMessages(ctx context.Context, actor identity.Identity, matchID string) ([]match.MessageResponse, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsParty(actor.UserID) {
		return nil, match.ErrNotMatchParty
	}
	msgs, err := s.msgRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return match.ToMessageResponses(msgs), nil
}

// SendMessage implements match.MatchService.
func (s *MatchServiceImpl) SendMessage(ctx context.Context, actor identity.Identity, matchID string, req match.SendMessageRequest) (match.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return match.MessageResponse{}, err
	}
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.MessageResponse{}, err
	}
	if !m.IsParty(actor.UserID) {
		return match.MessageResponse{}, match.ErrNotMatchParty
	}

	msg := match.Message{
		ID:           idgen.New(idgen.PrefixMessage),
		MatchID:      m.ID,
		SenderUserID: actor.UserID,
		SenderName:   actor.Name,
		Body:         strings.TrimSpace(req.Message),
		CreatedAt:    time.Now(),
	}

	var key string
	if req.Attachment != nil {
		key, err = s.upload(ctx, m.ID, msg.ID, req.Attachment)
		if err != nil {
			return match.MessageResponse{}, err
		}
		url := s.files.URL(key)
		msg.AttachmentURL = &url
	}

	created, err := s.msgRepo.Create(ctx, msg)
	if err != nil {
		if key != "" {
			if delErr := s.files.Delete(ctx, key); delErr != nil {
				slog.Warn("Failed to remove orphaned attachment", "key", key, "error", delErr)
			}
		}
		return match.MessageResponse{}, fmt.Errorf("failed to store message: %w", err)
	}

	s.notifier.Notify(ctx, m.Counterpart(actor.UserID), notification.Message{
		Type:  notification.TypeMessageReceived,
		Title: "New message",
		Body:  fmt.Sprintf("%s sent you a message about %q.", actor.Name, m.Title),
		Data:  map[string]interface{}{"match_id": m.ID, "message_id": created.ID},
	})

	return match.ToMessageResponse(created), nil
}

func (s *MatchServiceImpl) upload(ctx context.Context, matchID, messageID string, a *match.Attachment) (string, error) {
	opts := storage.MessageAttachmentOptions
	if a.Size > opts.MaxSize {
		return "", match.ErrAttachmentTooLarge
	}
	if !opts.Allows(a.ContentType) {
		return "", match.ErrAttachmentType
	}

	name := path.Base(strings.ReplaceAll(a.Filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "attachment"
	}
	key := fmt.Sprintf("matches/%s/%s-%s", matchID, messageID, name)

	// Size is client-supplied.
	body := io.LimitReader(a.File, opts.MaxSize+1)
	counted := &countingReader{r: body}
	if _, err := s.files.Put(ctx, counted, key, a.ContentType); err != nil {
		return "", fmt.Errorf("failed to store attachment: %w", err)
	}
	if counted.n > opts.MaxSize {
		if err := s.files.Delete(ctx, key); err != nil {
			slog.Warn("Failed to remove oversized attachment", "key", key, "error", err)
		}
		return "", match.ErrAttachmentTooLarge
	}
	return key, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
