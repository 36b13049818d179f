package application

import (
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{Field: "job_id", Message: "job_id is required"})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message is required"})
	}
	if len(r.Message) > 5000 {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message must not exceed 5000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApplicationResponse struct {
	ID                  string    `json:"application_id"`
	JobID               string    `json:"job_id"`
	InfluencerUserID    string    `json:"influencer_user_id"`
	InfluencerName      string    `json:"influencer_name"`
	InfluencerProfileID *string   `json:"influencer_profile_id,omitempty"`
	Message             string    `json:"message"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

type AcceptResponse struct {
	Message string              `json:"message"`
	Match   match.MatchResponse `json:"match"`
}

func ToResponse(a Application) ApplicationResponse {
	a = Normalize(a)
	return ApplicationResponse{
		ID:                  a.ID,
		JobID:               a.JobID,
		InfluencerUserID:    a.InfluencerUserID,
		InfluencerName:      a.InfluencerName,
		InfluencerProfileID: a.InfluencerProfileID,
		Message:             a.Message,
		Status:              string(a.Status),
		CreatedAt:           a.CreatedAt,
	}
}

func ToResponses(apps []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, ToResponse(a))
	}
	return out
}
