package memory

import (
	"context"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

type jobRepository struct {
	s *Store
}

func NewJobRepository(s *Store) job.JobRepository {
	return &jobRepository{s: s}
}

func (r *jobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	defer r.s.lock(ctx)()

	j.Platforms = copyStrings(j.Platforms)
	r.s.data.jobs[j.ID] = j
	r.s.data.track(j.ID)
	return job.Normalize(j), nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (job.Job, error) {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	return job.Normalize(j), nil
}

func (r *jobRepository) List(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	defer r.s.lock(ctx)()

	var out []job.Job
	for _, j := range r.s.data.jobs {
		j = job.Normalize(j)
		if filter.BrandUserID != "" && j.BrandUserID != filter.BrandUserID {
			continue
		}
		if filter.Category != "" && j.Category != filter.Category {
			continue
		}
		if filter.Platform != "" && !validator.IsInSlice(filter.Platform, j.Platforms) {
			continue
		}
		if filter.ApprovalStatus != "" && j.ApprovalStatus != filter.ApprovalStatus {
			continue
		}
		if filter.PublicAt != nil && !j.IsPublicAt(*filter.PublicAt) {
			continue
		}
		out = append(out, j)
	}
	newestFirst(r.s.data, out, func(j job.Job) string { return j.ID }, func(j job.Job) time.Time { return j.CreatedAt })
	return out, nil
}

func (r *jobRepository) Update(ctx context.Context, j job.Job) error {
	defer r.s.lock(ctx)()

	existing, ok := r.s.data.jobs[j.ID]
	if !ok {
		return job.ErrJobNotFound
	}
	existing.Title = j.Title
	existing.Description = j.Description
	existing.Category = j.Category
	existing.Budget = j.Budget
	existing.Platforms = copyStrings(j.Platforms)
	existing.IsFeatured = j.IsFeatured
	existing.IsUrgent = j.IsUrgent
	existing.UpdatedAt = j.UpdatedAt
	r.s.data.jobs[j.ID] = existing
	return nil
}

func (r *jobRepository) TransitionStatus(ctx context.Context, id string, from, to job.Status, at time.Time) error {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.ErrJobNotFound
	}
	switch current := job.Normalize(j).Status; {
	case current == from:
	case current == job.StatusFilled:
		return job.ErrJobFilled
	default:
		return job.ErrJobStatusChanged
	}
	j.Status = to
	j.UpdatedAt = at
	r.s.data.jobs[id] = j
	return nil
}

func (r *jobRepository) SetApproval(ctx context.Context, id string, decision job.ApprovalStatus, reason *string, at time.Time) (job.Job, error) {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	j.ApprovalStatus = decision
	j.RejectionReason = reason
	j.UpdatedAt = at
	r.s.data.jobs[id] = j
	return job.Normalize(j), nil
}

func (r *jobRepository) Renew(ctx context.Context, id string, expiresAt time.Time, at time.Time) (job.Job, error) {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	if job.Normalize(j).Status == job.StatusFilled {
		return job.Job{}, job.ErrJobFilled
	}
	j.Status = job.StatusOpen
	j.ApprovalStatus = job.ApprovalPending
	j.RejectionReason = nil
	j.DurationDays = job.RenewalDays
	j.ExpiresAt = &expiresAt
	j.UpdatedAt = at
	r.s.data.jobs[id] = j
	return job.Normalize(j), nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.data.jobs[id]; !ok {
		return job.ErrJobNotFound
	}
	delete(r.s.data.jobs, id)
	return nil
}

func (r *jobRepository) IncrementViewCount(ctx context.Context, id string) (job.Job, error) {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	j.ViewCount++
	r.s.data.jobs[id] = j
	return job.Normalize(j), nil
}

func (r *jobRepository) IncrementApplicationCount(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.ErrJobNotFound
	}
	if job.Normalize(j).Status != job.StatusOpen {
		return job.ErrJobNotOpen
	}
	j.ApplicationCount++
	r.s.data.jobs[id] = j
	return nil
}

func (r *jobRepository) MarkFilled(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.ErrJobNotFound
	}
	if job.Normalize(j).Status != job.StatusOpen {
		return job.ErrJobNotOpen
	}
	j.Status = job.StatusFilled
	j.UpdatedAt = time.Now()
	r.s.data.jobs[id] = j
	return nil
}

func (r *jobRepository) ForceFilled(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.ErrJobNotFound
	}
	if j.Status != job.StatusFilled {
		j.Status = job.StatusFilled
		j.UpdatedAt = time.Now()
		r.s.data.jobs[id] = j
	}
	return nil
}

func (r *jobRepository) ExpireStale(ctx context.Context, brandUserID string, now time.Time) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for id, j := range r.s.data.jobs {
		if brandUserID != "" && j.BrandUserID != brandUserID {
			continue
		}
		if job.Normalize(j).Status != job.StatusOpen || !j.IsExpiredAt(now) {
			continue
		}
		j.Status = job.StatusExpired
		j.UpdatedAt = now
		r.s.data.jobs[id] = j
		n++
	}
	return n, nil
}
