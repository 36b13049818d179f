package job

import (
	"strings"
	"time"

	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

type CreateJobRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Budget       float64  `json:"budget"`
	Platforms    []string `json:"platforms"`
	DurationDays *int     `json:"duration_days,omitempty"`
	IsFeatured   bool     `json:"is_featured"`
	IsUrgent     bool     `json:"is_urgent"`
}

func (r *CreateJobRequest) Validate() error {
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
	if r.Budget < 0 {
		errs = append(errs, validator.ValidationError{Field: "budget", Message: "budget must not be negative"})
	}
	errs = append(errs, validatePlatforms(r.Platforms)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateJobRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Budget      *float64  `json:"budget,omitempty"`
	Platforms   *[]string `json:"platforms,omitempty"`
	IsFeatured  *bool     `json:"is_featured,omitempty"`
	IsUrgent    *bool     `json:"is_urgent,omitempty"`
	// Status may only toggle between open and closed.
	Status *string `json:"status,omitempty"`
}

func (r *UpdateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil {
		if validator.IsEmpty(*r.Title) {
			errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not be empty"})
		}
		if len(*r.Title) > 255 {
			errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not exceed 255 characters"})
		}
	}
	if r.Description != nil && validator.IsEmpty(*r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not be empty"})
	}
	if r.Category != nil && validator.IsEmpty(*r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category must not be empty"})
	}
	if r.Budget != nil && *r.Budget < 0 {
		errs = append(errs, validator.ValidationError{Field: "budget", Message: "budget must not be negative"})
	}
	if r.Platforms != nil {
		errs = append(errs, validatePlatforms(*r.Platforms)...)
	}
	if r.Status != nil && *r.Status != string(StatusOpen) && *r.Status != string(StatusClosed) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be open or closed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the supplied fields onto j.
func (r *UpdateJobRequest) Apply(j *Job) {
	if r.Title != nil {
		j.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		j.Description = *r.Description
	}
	if r.Category != nil {
		j.Category = *r.Category
	}
	if r.Budget != nil {
		j.Budget = *r.Budget
	}
	if r.Platforms != nil {
		j.Platforms = Dedupe(*r.Platforms)
	}
	if r.IsFeatured != nil {
		j.IsFeatured = *r.IsFeatured
	}
	if r.IsUrgent != nil {
		j.IsUrgent = *r.IsUrgent
	}
	if r.Status != nil {
		j.Status = Status(*r.Status)
	}
}

type ApprovalRequest struct {
	ApprovalStatus  string  `json:"approval_status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// Decision returns the requested decision or ErrInvalidApprovalDecision.
func (r *ApprovalRequest) Decision() (ApprovalStatus, error) {
	switch ApprovalStatus(r.ApprovalStatus) {
	case ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(r.ApprovalStatus), nil
	default:
		return "", ErrInvalidApprovalDecision
	}
}

type ListPublicFilter struct {
	Category string
	Platform string
}

type JobResponse struct {
	ID               string     `json:"job_id"`
	BrandUserID      string     `json:"brand_user_id"`
	BrandName        string     `json:"brand_name"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	Budget           float64    `json:"budget"`
	Platforms        []string   `json:"platforms"`
	IsFeatured       bool       `json:"is_featured"`
	IsUrgent         bool       `json:"is_urgent"`
	Status           string     `json:"status"`
	ApprovalStatus   string     `json:"approval_status"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	DurationDays     int        `json:"duration_days"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	ViewCount        int        `json:"view_count"`
	ApplicationCount int        `json:"application_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToResponse(j Job) JobResponse {
	j = Normalize(j)
	return JobResponse{
		ID:               j.ID,
		BrandUserID:      j.BrandUserID,
		BrandName:        j.BrandName,
		Title:            j.Title,
		Description:      j.Description,
		Category:         j.Category,
		Budget:           j.Budget,
		Platforms:        j.Platforms,
		IsFeatured:       j.IsFeatured,
		IsUrgent:         j.IsUrgent,
		Status:           string(j.Status),
		ApprovalStatus:   string(j.ApprovalStatus),
		RejectionReason:  j.RejectionReason,
		DurationDays:     j.DurationDays,
		ExpiresAt:        j.ExpiresAt,
		ViewCount:        j.ViewCount,
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func ToResponses(jobs []Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ToResponse(j))
	}
	return out
}

func validatePlatforms(platforms []string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if len(platforms) == 0 {
		errs = append(errs, validator.ValidationError{Field: "platforms", Message: "at least one platform is required"})
	} else if bad, found := validator.FirstNotIn(platforms, Platforms); found {
		errs = append(errs, validator.ValidationError{Field: "platforms", Message: "unsupported platform: " + bad})
	}
	return errs
}

// Dedupe returns values without repeats, preserving order.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
