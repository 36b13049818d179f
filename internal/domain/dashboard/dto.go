package dashboard

// StatsResponse is the admin overview of marketplace activity.
type StatsResponse struct {
	Jobs         JobStatsResponse   `json:"jobs"`
	Applications int64              `json:"applications"`
	Briefs       BriefStatsResponse `json:"briefs"`
	Matches      MatchStatsResponse `json:"matches"`
}

type JobStatsResponse struct {
	Total           int64 `json:"total"`
	Open            int64 `json:"open"`
	PendingApproval int64 `json:"pending_approval"`
}

type BriefStatsResponse struct {
	Total     int64 `json:"total"`
	Open      int64 `json:"open"`
	Proposals int64 `json:"proposals"`
}

type MatchStatsResponse struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}
