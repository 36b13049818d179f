package brief

import (
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

type CreateBriefRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	BudgetMin    float64  `json:"budget_min"`
	BudgetMax    float64  `json:"budget_max"`
	Platforms    []string `json:"platforms"`
	Deadline     *string  `json:"deadline,omitempty"`
	Requirements *string  `json:"requirements,omitempty"`
}

func (r *CreateBriefRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not exceed 255 characters"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}
	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category is required"})
	}
	if r.BudgetMin < 0 {
		errs = append(errs, validator.ValidationError{Field: "budget_min", Message: "budget_min must not be negative"})
	}
	if r.BudgetMax < r.BudgetMin {
		errs = append(errs, validator.ValidationError{Field: "budget_max", Message: "budget_max must not be less than budget_min"})
	}
	if bad, found := validator.FirstNotIn(r.Platforms, job.Platforms); found {
		errs = append(errs, validator.ValidationError{Field: "platforms", Message: "unsupported platform: " + bad})
	}
	if r.Deadline != nil {
		if _, ok := validator.ParseDeadline(*r.Deadline); !ok {
			errs = append(errs, validator.ValidationError{Field: "deadline", Message: "deadline must be YYYY-MM-DD or RFC3339"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitProposalRequest struct {
	ProposedPrice float64 `json:"proposed_price"`
	Message       string  `json:"message"`
	DeliveryTime  string  `json:"delivery_time"`
}

func (r *SubmitProposalRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ProposedPrice < 0 {
		errs = append(errs, validator.ValidationError{Field: "proposed_price", Message: "proposed_price must not be negative"})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message is required"})
	}
	if validator.IsEmpty(r.DeliveryTime) {
		errs = append(errs, validator.ValidationError{Field: "delivery_time", Message: "delivery_time is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BriefResponse struct {
	ID            string             `json:"brief_id"`
	BrandUserID   string             `json:"brand_user_id"`
	BrandName     string             `json:"brand_name"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	BudgetMin     float64            `json:"budget_min"`
	BudgetMax     float64            `json:"budget_max"`
	Platforms     []string           `json:"platforms"`
	Deadline      *time.Time         `json:"deadline,omitempty"`
	Requirements  *string            `json:"requirements,omitempty"`
	Status        string             `json:"status"`
	ProposalCount int                `json:"proposal_count"`
	CreatedAt     time.Time          `json:"created_at"`
	Proposals     []ProposalResponse `json:"proposals,omitempty"`
}

type ProposalResponse struct {
	ID               string    `json:"proposal_id"`
	BriefID          string    `json:"brief_id"`
	InfluencerUserID string    `json:"influencer_user_id"`
	InfluencerName   string    `json:"influencer_name"`
	ProposedPrice    float64   `json:"proposed_price"`
	Message          string    `json:"message"`
	DeliveryTime     string    `json:"delivery_time"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type AcceptProposalResponse struct {
	Message string              `json:"message"`
	Match   match.MatchResponse `json:"match"`
}

func ToResponse(b Brief) BriefResponse {
	b = Normalize(b)
	return BriefResponse{
		ID:            b.ID,
		BrandUserID:   b.BrandUserID,
		BrandName:     b.BrandName,
		Title:         b.Title,
		Description:   b.Description,
		Category:      b.Category,
		BudgetMin:     b.BudgetMin,
		BudgetMax:     b.BudgetMax,
		Platforms:     b.Platforms,
		Deadline:      b.Deadline,
		Requirements:  b.Requirements,
		Status:        string(b.Status),
		ProposalCount: b.ProposalCount,
		CreatedAt:     b.CreatedAt,
	}
}

func ToResponses(briefs []Brief) []BriefResponse {
	out := make([]BriefResponse, 0, len(briefs))
	for _, b := range briefs {
		out = append(out, ToResponse(b))
	}
	return out
}

func ToProposalResponse(p Proposal) ProposalResponse {
	p = NormalizeProposal(p)
	return ProposalResponse{
		ID:               p.ID,
		BriefID:          p.BriefID,
		InfluencerUserID: p.InfluencerUserID,
		InfluencerName:   p.InfluencerName,
		ProposedPrice:    p.ProposedPrice,
		Message:          p.Message,
		DeliveryTime:     p.DeliveryTime,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
	}
}

func ToProposalResponses(proposals []Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, ToProposalResponse(p))
	}
	return out
}
