package application

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Application is an influencer's request to be selected for a job.
type Application struct {
	ID                  string
	JobID               string
	InfluencerUserID    string
	InfluencerName      string
	InfluencerProfileID *string
	Message             string
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func Normalize(a Application) Application {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return a
}
