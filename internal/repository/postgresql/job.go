package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

const jobColumns = `id, brand_user_id, brand_name, title, description, category, budget, platforms,
	is_featured, is_urgent, status, approval_status, rejection_reason, duration_days, expires_at,
	view_count, application_count, created_at, updated_at`

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}

func scanJob(row pgx.Row) (job.Job, error) {
	var (
		j              job.Job
		platforms      []byte
		status         *string
		approvalStatus *string
	)
	err := row.Scan(
		&j.ID,
		&j.BrandUserID,
		&j.BrandName,
		&j.Title,
		&j.Description,
		&j.Category,
		&j.Budget,
		&platforms,
		&j.IsFeatured,
		&j.IsUrgent,
		&status,
		&approvalStatus,
		&j.RejectionReason,
		&j.DurationDays,
		&j.ExpiresAt,
		&j.ViewCount,
		&j.ApplicationCount,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	if status != nil {
		j.Status = job.Status(*status)
	}
	if approvalStatus != nil {
		j.ApprovalStatus = job.ApprovalStatus(*approvalStatus)
	}
	if j.Platforms, err = unmarshalStrings(platforms); err != nil {
		return job.Job{}, fmt.Errorf("failed to decode platforms: %w", err)
	}
	return job.Normalize(j), nil
}

// Create implements job.JobRepository.
func (r *jobRepositoryImpl) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	platforms, err := marshalStrings(j.Platforms)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to encode platforms: %w", err)
	}

	query := `
		INSERT INTO jobs (
			id, brand_user_id, brand_name, title, description, category, budget, platforms,
			is_featured, is_urgent, status, approval_status, rejection_reason, duration_days, expires_at,
			view_count, application_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + jobColumns

	created, err := scanJob(q.QueryRow(ctx, query,
		j.ID,
		j.BrandUserID,
		j.BrandName,
		j.Title,
		j.Description,
		j.Category,
		j.Budget,
		platforms,
		j.IsFeatured,
		j.IsUrgent,
		string(j.Status),
		string(j.ApprovalStatus),
		j.RejectionReason,
		j.DurationDays,
		j.ExpiresAt,
		j.ViewCount,
		j.ApplicationCount,
		j.CreatedAt,
		j.UpdatedAt,
	))
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepositoryImpl) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// List implements job.JobRepository.
func (r *jobRepositoryImpl) List(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.BrandUserID != "" {
		add("brand_user_id = $%d", filter.BrandUserID)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Platform != "" {
		add("platforms @> jsonb_build_array($%d::text)", filter.Platform)
	}
	if filter.ApprovalStatus != "" {
		add("COALESCE(approval_status, 'approved') = $%d", string(filter.ApprovalStatus))
	}
	if filter.PublicAt != nil {
		conditions = append(conditions,
			"COALESCE(status, 'open') = 'open'",
			"COALESCE(approval_status, 'approved') = 'approved'",
		)
		add("(expires_at IS NULL OR expires_at > $%d)", *filter.PublicAt)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Update implements job.JobRepository. Counters, status, moderation and
// expiry are left to the guarded methods.
func (r *jobRepositoryImpl) Update(ctx context.Context, j job.Job) error {
	q := GetQuerier(ctx, r.db)

	platforms, err := marshalStrings(j.Platforms)
	if err != nil {
		return fmt.Errorf("failed to encode platforms: %w", err)
	}

	query := `
		UPDATE jobs SET
			title = $2, description = $3, category = $4, budget = $5, platforms = $6,
			is_featured = $7, is_urgent = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := q.Exec(ctx, query,
		j.ID,
		j.Title,
		j.Description,
		j.Category,
		j.Budget,
		platforms,
		j.IsFeatured,
		j.IsUrgent,
		j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

// TransitionStatus implements job.JobRepository.
func (r *jobRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to job.Status, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE jobs SET status = $3, updated_at = $4
		WHERE id = $1 AND COALESCE(status, 'open') = $2
	`, id, string(from), string(to), at)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = q.QueryRow(ctx, `SELECT COALESCE(status, 'open') FROM jobs WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.ErrJobNotFound
		}
		return fmt.Errorf("failed to read job status: %w", err)
	}
	if job.Status(current) == job.StatusFilled {
		return job.ErrJobFilled
	}
	return job.ErrJobStatusChanged
}

// SetApproval implements job.JobRepository.
func (r *jobRepositoryImpl) SetApproval(ctx context.Context, id string, decision job.ApprovalStatus, reason *string, at time.Time) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx, `
		UPDATE jobs SET approval_status = $2, rejection_reason = $3, updated_at = $4
		WHERE id = $1
		RETURNING `+jobColumns, id, string(decision), reason, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to set approval: %w", err)
	}
	return j, nil
}

// Renew implements job.JobRepository.
func (r *jobRepositoryImpl) Renew(ctx context.Context, id string, expiresAt time.Time, at time.Time) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx, `
		UPDATE jobs SET
			status = 'open', approval_status = 'pending', rejection_reason = NULL,
			duration_days = $2, expires_at = $3, updated_at = $4
		WHERE id = $1 AND COALESCE(status, 'open') <> 'filled'
		RETURNING `+jobColumns, id, job.RenewalDays, expiresAt, at))
	if err == nil {
		return j, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return job.Job{}, fmt.Errorf("failed to renew job: %w", err)
	}

	found, err := exists(ctx, q, "jobs", id)
	if err != nil {
		return job.Job{}, err
	}
	if !found {
		return job.Job{}, job.ErrJobNotFound
	}
	return job.Job{}, job.ErrJobFilled
}

// Delete implements job.JobRepository.
func (r *jobRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

// IncrementViewCount implements job.JobRepository.
func (r *jobRepositoryImpl) IncrementViewCount(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx,
		`UPDATE jobs SET view_count = view_count + 1 WHERE id = $1 RETURNING `+jobColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to increment view count: %w", err)
	}
	return j, nil
}

// IncrementApplicationCount implements job.JobRepository.
func (r *jobRepositoryImpl) IncrementApplicationCount(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE jobs SET application_count = application_count + 1
		WHERE id = $1 AND COALESCE(status, 'open') = 'open'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to increment application count: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := exists(ctx, q, "jobs", id)
	if err != nil {
		return err
	}
	if !found {
		return job.ErrJobNotFound
	}
	return job.ErrJobNotOpen
}

// MarkFilled implements job.JobRepository.
func (r *jobRepositoryImpl) MarkFilled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE jobs SET status = 'filled', updated_at = $2
		WHERE id = $1 AND COALESCE(status, 'open') = 'open'
	`, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark job filled: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := exists(ctx, q, "jobs", id)
	if err != nil {
		return err
	}
	if !found {
		return job.ErrJobNotFound
	}
	return job.ErrJobNotOpen
}

// ForceFilled implements job.JobRepository.
func (r *jobRepositoryImpl) ForceFilled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE jobs SET status = 'filled',
			updated_at = CASE WHEN status = 'filled' THEN updated_at ELSE $2 END
		WHERE id = $1
	`, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to force job filled: %w", err)
	}
	if result.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

// ExpireStale implements job.JobRepository.
func (r *jobRepositoryImpl) ExpireStale(ctx context.Context, brandUserID string, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE jobs SET status = 'expired', updated_at = $1
		WHERE COALESCE(status, 'open') = 'open'
			AND expires_at IS NOT NULL
			AND expires_at <= $1
			AND ($2 = '' OR brand_user_id = $2)
	`, now, brandUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale jobs: %w", err)
	}
	return result.RowsAffected(), nil
}
