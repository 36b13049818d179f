package memory

import (
	"context"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/match"
)

type matchRepository struct {
	s *Store
}

func NewMatchRepository(s *Store) match.MatchRepository {
	return &matchRepository{s: s}
}

func (r *matchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	defer r.s.lock(ctx)()

	m = match.Normalize(m)
	for _, existing := range r.s.data.matches {
		if existing.SourceType == m.SourceType && existing.SourceID == m.SourceID {
			return match.Match{}, match.ErrMatchAlreadyExists
		}
	}
	r.s.data.matches[m.ID] = m
	r.s.data.track(m.ID)
	return m, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (match.Match, error) {
	defer r.s.lock(ctx)()

	m, ok := r.s.data.matches[id]
	if !ok {
		return match.Match{}, match.ErrMatchNotFound
	}
	return match.Normalize(m), nil
}

func (r *matchRepository) list(keep func(match.Match) bool) []match.Match {
	out := make([]match.Match, 0)
	for _, m := range r.s.data.matches {
		if keep(m) {
			out = append(out, match.Normalize(m))
		}
	}
	newestFirst(r.s.data, out, func(m match.Match) string { return m.ID }, func(m match.Match) time.Time { return m.CreatedAt })
	return out
}

func (r *matchRepository) ListByBrand(ctx context.Context, brandUserID string) ([]match.Match, error) {
	defer r.s.lock(ctx)()
	return r.list(func(m match.Match) bool { return m.BrandUserID == brandUserID }), nil
}

func (r *matchRepository) ListByInfluencer(ctx context.Context, influencerUserID string) ([]match.Match, error) {
	defer r.s.lock(ctx)()
	return r.list(func(m match.Match) bool { return m.InfluencerUserID == influencerUserID }), nil
}

func (r *matchRepository) ListAll(ctx context.Context) ([]match.Match, error) {
	defer r.s.lock(ctx)()
	return r.list(func(match.Match) bool { return true }), nil
}

func (r *matchRepository) MarkCompleted(ctx context.Context, id, completedBy string, at time.Time) error {
	defer r.s.lock(ctx)()

	m, ok := r.s.data.matches[id]
	if !ok {
		return match.ErrMatchNotFound
	}
	if match.Normalize(m).Status != match.StatusActive {
		return match.ErrMatchNotActive
	}
	m.Status = match.StatusCompleted
	m.CompletedBy = &completedBy
	m.CompletedAt = &at
	m.UpdatedAt = at
	r.s.data.matches[id] = m
	return nil
}

type messageRepository struct {
	s *Store
}

func NewMessageRepository(s *Store) match.MessageRepository {
	return &messageRepository{s: s}
}

func (r *messageRepository) Create(ctx context.Context, msg match.Message) (match.Message, error) {
	defer r.s.lock(ctx)()

	r.s.data.messages[msg.ID] = msg
	r.s.data.track(msg.ID)
	return msg, nil
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID string) ([]match.Message, error) {
	defer r.s.lock(ctx)()

	out := make([]match.Message, 0)
	for _, msg := range r.s.data.messages {
		if msg.MatchID == matchID {
			out = append(out, msg)
		}
	}
	oldestFirst(r.s.data, out, func(m match.Message) string { return m.ID }, func(m match.Message) time.Time { return m.CreatedAt })
	return out, nil
}
