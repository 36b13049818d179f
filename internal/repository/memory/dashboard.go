package memory

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/domain/dashboard"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
)

type dashboardRepository struct {
	s *Store
}

func NewDashboardRepository(s *Store) dashboard.DashboardRepository {
	return &dashboardRepository{s: s}
}

func (r *dashboardRepository) GetJobStats(ctx context.Context) (dashboard.JobStats, error) {
	defer r.s.lock(ctx)()

	var stats dashboard.JobStats
	for _, j := range r.s.data.jobs {
		j = job.Normalize(j)
		stats.Total++
		if j.Status == job.StatusOpen {
			stats.Open++
		}
		if j.ApprovalStatus == job.ApprovalPending {
			stats.PendingApproval++
		}
	}
	return stats, nil
}

func (r *dashboardRepository) CountApplications(ctx context.Context) (int64, error) {
	defer r.s.lock(ctx)()
	return int64(len(r.s.data.applications)), nil
}

func (r *dashboardRepository) GetBriefStats(ctx context.Context) (dashboard.BriefStats, error) {
	defer r.s.lock(ctx)()

	stats := dashboard.BriefStats{Proposals: int64(len(r.s.data.proposals))}
	for _, b := range r.s.data.briefs {
		stats.Total++
		if brief.Normalize(b).Status == brief.StatusOpen {
			stats.Open++
		}
	}
	return stats, nil
}

func (r *dashboardRepository) GetMatchStats(ctx context.Context) (dashboard.MatchStats, error) {
	defer r.s.lock(ctx)()

	var stats dashboard.MatchStats
	for _, m := range r.s.data.matches {
		stats.Total++
		switch match.Normalize(m).Status {
		case match.StatusActive:
			stats.Active++
		case match.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}
