package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
	"github.com/flulance/flulance-backend-go/internal/pkg/idgen"
)

type ApplicationServiceImpl struct {
	tx        database.Transactor
	jobRepo   job.JobRepository
	appRepo   application.ApplicationRepository
	matchRepo match.MatchRepository
	directory identity.Directory
	notifier  notification.Notifier
}

func NewApplicationService(
	tx database.Transactor,
	jobRepo job.JobRepository,
	appRepo application.ApplicationRepository,
	matchRepo match.MatchRepository,
	directory identity.Directory,
	notifier notification.Notifier,
) application.ApplicationService {
	return &ApplicationServiceImpl{
		tx:        tx,
		jobRepo:   jobRepo,
		appRepo:   appRepo,
		matchRepo: matchRepo,
		directory: directory,
		notifier:  notifier,
	}
}

// Apply implements application.ApplicationService.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, actor identity.Identity, req application.ApplyRequest) (application.ApplicationResponse, error) {
	if !actor.IsInfluencer() {
		return application.ApplicationResponse{}, identity.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return application.ApplicationResponse{}, err
	}

	j, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return application.ApplicationResponse{}, err
	}
	if j.Status != job.StatusOpen {
		return application.ApplicationResponse{}, job.ErrJobNotOpen
	}

	profileID, err := s.directory.InfluencerProfileID(ctx, actor.UserID)
	if err != nil && !errors.Is(err, identity.ErrUserNotFound) {
		return application.ApplicationResponse{}, fmt.Errorf("failed to resolve influencer profile: %w", err)
	}

	now := time.Now()
	var created application.Application
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		// Re-checks the job is open under the transaction.
		if err := s.jobRepo.IncrementApplicationCount(ctx, j.ID); err != nil {
			return err
		}
		var err error
		created, err = s.appRepo.Create(ctx, application.Application{
			ID:                  idgen.New(idgen.PrefixApplication),
			JobID:               j.ID,
			InfluencerUserID:    actor.UserID,
			InfluencerName:      actor.Name,
			InfluencerProfileID: profileID,
			Message:             req.Message,
			Status:              application.StatusPending,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		return err
	})
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	s.notifier.Notify(ctx, j.BrandUserID, notification.Message{
		Type:  notification.TypeApplicationReceived,
		Title: "New application",
		Body:  fmt.Sprintf("%s applied to %q.", actor.Name, j.Title),
		Data:  map[string]interface{}{"job_id": j.ID, "application_id": created.ID},
		Email: true,
	})

	return application.ToResponse(created), nil
}

// ListForInfluencer implements application.ApplicationService.
func (s *ApplicationServiceImpl) ListForInfluencer(ctx context.Context, actor identity.Identity) ([]application.ApplicationResponse, error) {
	if !actor.IsInfluencer() {
		return nil, identity.ErrInsufficientPermissions
	}
	apps, err := s.appRepo.ListByInfluencer(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return application.ToResponses(apps), nil
}

// ListForJob implements application.ApplicationService.
func (s *ApplicationServiceImpl) ListForJob(ctx context.Context, actor identity.Identity, jobID string) ([]application.ApplicationResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !j.IsOwnedBy(actor.UserID) {
		return nil, job.ErrNotJobOwner
	}
	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return application.ToResponses(apps), nil
}

// Accept implements application.ApplicationService.
func (s *ApplicationServiceImpl) Accept(ctx context.Context, actor identity.Identity, applicationID string) (application.AcceptResponse, error) {
	if !actor.IsBrand() {
		return application.AcceptResponse{}, identity.ErrInsufficientPermissions
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return application.AcceptResponse{}, err
	}
	j, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return application.AcceptResponse{}, err
	}
	if !j.IsOwnedBy(actor.UserID) {
		return application.AcceptResponse{}, job.ErrNotJobOwner
	}
	if app.Status != application.StatusPending {
		return application.AcceptResponse{}, application.ErrApplicationProcessed
	}
	if j.Status != job.StatusOpen {
		return application.AcceptResponse{}, job.ErrJobNotOpen
	}

	// Application, match and job move together. The job flip runs last and
	// is guarded, so a racing accept on a sibling application rolls back.
	var created match.Match
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.appRepo.MarkAccepted(ctx, app.ID); err != nil {
			return err
		}

		now := time.Now()
		var err error
		created, err = s.matchRepo.Create(ctx, match.Match{
			ID:               idgen.New(idgen.PrefixMatch),
			SourceType:       match.SourceJob,
			SourceID:         j.ID,
			Title:            j.Title,
			BrandUserID:      j.BrandUserID,
			BrandName:        j.BrandName,
			InfluencerUserID: app.InfluencerUserID,
			InfluencerName:   app.InfluencerName,
			Status:           match.StatusActive,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		if errors.Is(err, match.ErrMatchAlreadyExists) {
			return job.ErrJobNotOpen
		}
		if err != nil {
			return err
		}

		return s.jobRepo.MarkFilled(ctx, j.ID)
	})
	if err != nil {
		return application.AcceptResponse{}, err
	}

	slog.Info("Application accepted", "application_id", app.ID, "job_id", j.ID, "match_id", created.ID)

	s.notifier.Notify(ctx, app.InfluencerUserID, notification.Message{
		Type:  notification.TypeApplicationAccepted,
		Title: "Your application was accepted",
		Body:  fmt.Sprintf("%s accepted your application for %q.", j.BrandName, j.Title),
		Data:  map[string]interface{}{"job_id": j.ID, "match_id": created.ID},
		Email: true,
	})

	return application.AcceptResponse{
		Message: "Application accepted",
		Match:   match.ToResponse(created),
	}, nil
}
