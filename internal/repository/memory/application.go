package memory

import (
	"context"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
)

type applicationRepository struct {
	s *Store
}

func NewApplicationRepository(s *Store) application.ApplicationRepository {
	return &applicationRepository{s: s}
}

func (r *applicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.data.applications {
		if existing.JobID == a.JobID && existing.InfluencerUserID == a.InfluencerUserID {
			return application.Application{}, application.ErrAlreadyApplied
		}
	}
	r.s.data.applications[a.ID] = a
	r.s.data.track(a.ID)
	return application.Normalize(a), nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (application.Application, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.data.applications[id]
	if !ok {
		return application.Application{}, application.ErrApplicationNotFound
	}
	return application.Normalize(a), nil
}

func (r *applicationRepository) list(keep func(application.Application) bool) []application.Application {
	out := make([]application.Application, 0)
	for _, a := range r.s.data.applications {
		if keep(a) {
			out = append(out, application.Normalize(a))
		}
	}
	newestFirst(r.s.data, out,
		func(a application.Application) string { return a.ID },
		func(a application.Application) time.Time { return a.CreatedAt })
	return out
}

func (r *applicationRepository) ListByInfluencer(ctx context.Context, influencerUserID string) ([]application.Application, error) {
	defer r.s.lock(ctx)()
	return r.list(func(a application.Application) bool { return a.InfluencerUserID == influencerUserID }), nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]application.Application, error) {
	defer r.s.lock(ctx)()
	return r.list(func(a application.Application) bool { return a.JobID == jobID }), nil
}

func (r *applicationRepository) CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error) {
	defer r.s.lock(ctx)()

	counts := make(map[string]int, len(jobIDs))
	wanted := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = struct{}{}
		counts[id] = 0
	}
	for _, a := range r.s.data.applications {
		if _, ok := wanted[a.JobID]; ok {
			counts[a.JobID]++
		}
	}
	return counts, nil
}

func (r *applicationRepository) MarkAccepted(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	a, ok := r.s.data.applications[id]
	if !ok {
		return application.ErrApplicationNotFound
	}
	if application.Normalize(a).Status != application.StatusPending {
		return application.ErrApplicationProcessed
	}
	a.Status = application.StatusAccepted
	a.UpdatedAt = time.Now()
	r.s.data.applications[id] = a
	return nil
}
