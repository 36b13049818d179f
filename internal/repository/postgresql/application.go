package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

const applicationColumns = `id, job_id, influencer_user_id, influencer_name, influencer_profile_id,
	message, status, created_at, updated_at`

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) application.ApplicationRepository {
	return &applicationRepositoryImpl{db: db}
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.InfluencerUserID,
		&a.InfluencerName,
		&a.InfluencerProfileID,
		&a.Message,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return application.Normalize(a), nil
}

// Create implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) Create(ctx context.Context, a application.Application) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO applications (id, job_id, influencer_user_id, influencer_name, influencer_profile_id,
			message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + applicationColumns

	created, err := scanApplication(q.QueryRow(ctx, query,
		a.ID,
		a.JobID,
		a.InfluencerUserID,
		a.InfluencerName,
		a.InfluencerProfileID,
		a.Message,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err, "uq_applications_job_influencer") {
			return application.Application{}, application.ErrAlreadyApplied
		}
		return application.Application{}, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

// GetByID implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByID(ctx context.Context, id string) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanApplication(q.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrApplicationNotFound
		}
		return application.Application{}, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

func (r *applicationRepositoryImpl) list(ctx context.Context, where string, arg interface{}) ([]application.Application, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE `+where+` ORDER BY created_at DESC, id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []application.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// ListByInfluencer implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ListByInfluencer(ctx context.Context, influencerUserID string) ([]application.Application, error) {
	return r.list(ctx, "influencer_user_id = $1", influencerUserID)
}

// ListByJob implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ListByJob(ctx context.Context, jobID string) ([]application.Application, error) {
	return r.list(ctx, "job_id = $1", jobID)
}

// CountByJobIDs implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT job_id, COUNT(*) FROM applications
		WHERE job_id = ANY($1)
		GROUP BY job_id
	`, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			jobID string
			n     int
		)
		if err := rows.Scan(&jobID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan application count: %w", err)
		}
		counts[jobID] = n
	}
	return counts, rows.Err()
}

// MarkAccepted implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) MarkAccepted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `
		UPDATE applications SET status = 'accepted', updated_at = $2
		WHERE id = $1 AND status = 'pending'
	`, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to accept application: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := exists(ctx, q, "applications", id)
	if err != nil {
		return err
	}
	if !found {
		return application.ErrApplicationNotFound
	}
	return application.ErrApplicationProcessed
}
