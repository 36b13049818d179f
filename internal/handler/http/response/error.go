package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/domain/commission"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/jwt"
	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, identity.ErrUnauthenticated), errors.Is(err, jwt.ErrInvalidClaims):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, identity.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, identity.ErrUserNotFound):
		NotFound(w, "User not found")

	// Job domain errors
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, job.ErrNotJobOwner):
		Forbidden(w, "You do not own this job")
	case errors.Is(err, job.ErrJobNotOpen):
		BadRequest(w, "Job is not open", nil)
	case errors.Is(err, job.ErrJobFilled):
		BadRequest(w, "Job is already filled", nil)
	case errors.Is(err, job.ErrJobStatusChanged):
		BadRequest(w, "Job status changed, reload and retry", nil)
	case errors.Is(err, job.ErrInvalidApprovalDecision), errors.Is(err, job.ErrInvalidApprovalFilter):
		BadRequest(w, err.Error(), nil)

	// Application domain errors
	case errors.Is(err, application.ErrApplicationNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, application.ErrAlreadyApplied):
		Conflict(w, "You have already applied to this job")
	case errors.Is(err, application.ErrApplicationProcessed):
		BadRequest(w, "Application already processed", nil)

	// Brief domain errors
	case errors.Is(err, brief.ErrBriefNotFound):
		NotFound(w, "Brief not found")
	case errors.Is(err, brief.ErrNotBriefOwner):
		Forbidden(w, "You do not own this brief")
	case errors.Is(err, brief.ErrBriefNotOpen):
		BadRequest(w, "Brief is not open", nil)
	case errors.Is(err, brief.ErrProposalNotFound), errors.Is(err, brief.ErrProposalBriefMismatch):
		NotFound(w, "Proposal not found")
	case errors.Is(err, brief.ErrAlreadyProposed):
		Conflict(w, "You have already submitted a proposal for this brief")
	case errors.Is(err, brief.ErrProposalProcessed):
		BadRequest(w, "Proposal already processed", nil)

	// Match domain errors
	case errors.Is(err, match.ErrMatchNotFound):
		NotFound(w, "Match not found")
	case errors.Is(err, match.ErrNotMatchParty):
		Forbidden(w, "You are not a party to this match")
	case errors.Is(err, match.ErrMatchNotActive):
		BadRequest(w, "Match is not active", nil)
	case errors.Is(err, match.ErrMatchAlreadyExists):
		Conflict(w, "A match already exists")
	case errors.Is(err, match.ErrAttachmentTooLarge), errors.Is(err, match.ErrAttachmentType):
		BadRequest(w, err.Error(), nil)

	// Commission errors
	case errors.Is(err, commission.ErrInvalidPercentage):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, commission.ErrSettingsNotFound):
		NotFound(w, "Commission settings not found")

	// Notification errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
