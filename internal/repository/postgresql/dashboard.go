package postgresql

import (
	"context"
	"fmt"

	"github.com/flulance/flulance-backend-go/internal/domain/dashboard"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetJobStats returns total, open and pending-approval jobs in single query
func (r *dashboardRepositoryImpl) GetJobStats(ctx context.Context) (dashboard.JobStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN COALESCE(status, 'open') = 'open' THEN 1 ELSE 0 END), 0) as open_count,
			COALESCE(SUM(CASE WHEN COALESCE(approval_status, 'approved') = 'pending' THEN 1 ELSE 0 END), 0) as pending_count
		FROM jobs
	`

	var stats dashboard.JobStats
	if err := q.QueryRow(ctx, query).Scan(&stats.Total, &stats.Open, &stats.PendingApproval); err != nil {
		return dashboard.JobStats{}, fmt.Errorf("failed to get job stats: %w", err)
	}
	return stats, nil
}

// CountApplications returns the number of applications across all jobs
func (r *dashboardRepositoryImpl) CountApplications(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// GetBriefStats returns brief totals and the proposal count in single query
func (r *dashboardRepositoryImpl) GetBriefStats(ctx context.Context) (dashboard.BriefStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = 'open' THEN 1 ELSE 0 END), 0) as open_count,
			(SELECT COUNT(*) FROM proposals) as proposal_count
		FROM briefs
	`

	var stats dashboard.BriefStats
	if err := q.QueryRow(ctx, query).Scan(&stats.Total, &stats.Open, &stats.Proposals); err != nil {
		return dashboard.BriefStats{}, fmt.Errorf("failed to get brief stats: %w", err)
	}
	return stats, nil
}

// GetMatchStats returns match counts by status in single query
func (r *dashboardRepositoryImpl) GetMatchStats(ctx context.Context) (dashboard.MatchStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) as active_count,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) as completed_count
		FROM matches
	`

	var stats dashboard.MatchStats
	if err := q.QueryRow(ctx, query).Scan(&stats.Total, &stats.Active, &stats.Completed); err != nil {
		return dashboard.MatchStats{}, fmt.Errorf("failed to get match stats: %w", err)
	}
	return stats, nil
}
