package commission

import (
	"time"

	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

type UpdateCommissionRequest struct {
	Percentage *float64 `json:"percentage"`
}

func (r *UpdateCommissionRequest) Validate() error {
	if r.Percentage == nil {
		return validator.ValidationErrors{{Field: "percentage", Message: "percentage is required"}}
	}
	if !validator.IsInRange(*r.Percentage, 0, 100) {
		return ErrInvalidPercentage
	}
	return nil
}

type CommissionResponse struct {
	Percentage float64   `json:"percentage"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToResponse(s Settings) CommissionResponse {
	return CommissionResponse{
		Percentage: s.Percentage,
		UpdatedAt:  s.UpdatedAt,
	}
}
