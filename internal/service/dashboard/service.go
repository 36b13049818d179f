package dashboard

import (
	"context"

	"github.com/flulance/flulance-backend-go/internal/domain/dashboard"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

// GetStats returns the admin overview using parallel goroutines, one
// aggregate query each.
func (s *DashboardServiceImpl) GetStats(ctx context.Context, actor identity.Identity) (*dashboard.StatsResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrInsufficientPermissions
	}

	var (
		jobs         dashboard.JobStats
		applications int64
		briefs       dashboard.BriefStats
		matches      dashboard.MatchStats
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Jobs (total, open, pending approval)
	g.Go(func() error {
		var err error
		jobs, err = s.GetJobStats(gCtx)
		return err
	})

	// 2. Applications
	g.Go(func() error {
		var err error
		applications, err = s.CountApplications(gCtx)
		return err
	})

	// 3. Briefs and proposals
	g.Go(func() error {
		var err error
		briefs, err = s.GetBriefStats(gCtx)
		return err
	})

	// 4. Matches by status
	g.Go(func() error {
		var err error
		matches, err = s.GetMatchStats(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.StatsResponse{
		Jobs: dashboard.JobStatsResponse{
			Total:           jobs.Total,
			Open:            jobs.Open,
			PendingApproval: jobs.PendingApproval,
		},
		Applications: applications,
		Briefs: dashboard.BriefStatsResponse{
			Total:     briefs.Total,
			Open:      briefs.Open,
			Proposals: briefs.Proposals,
		},
		Matches: dashboard.MatchStatsResponse{
			Total:     matches.Total,
			Active:    matches.Active,
			Completed: matches.Completed,
		},
	}, nil
}
