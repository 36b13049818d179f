package dashboard

import "context"

// JobStats combines job counts in a single query
type JobStats struct {
	Total           int64
	Open            int64
	PendingApproval int64
}

// BriefStats combines brief and proposal counts
type BriefStats struct {
	Total     int64
	Open      int64
	Proposals int64
}

// MatchStats combines match counts by status
type MatchStats struct {
	Total     int64
	Active    int64
	Completed int64
}

// DashboardRepository - aggregate counts for the admin overview
type DashboardRepository interface {
	GetJobStats(ctx context.Context) (JobStats, error)
	CountApplications(ctx context.Context) (int64, error)
	GetBriefStats(ctx context.Context) (BriefStats, error)
	GetMatchStats(ctx context.Context) (MatchStats, error)
}
