package job

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/idgen"
)

type JobServiceImpl struct {
	jobRepo  job.JobRepository
	appRepo  application.ApplicationRepository
	notifier notification.Notifier
}

func NewJobService(jobRepo job.JobRepository, appRepo application.ApplicationRepository, notifier notification.Notifier) job.JobService {
	return &JobServiceImpl{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		notifier: notifier,
	}
}

// CreateJob implements job.JobService.
func (s *JobServiceImpl) CreateJob(ctx context.Context, actor identity.Identity, req job.CreateJobRequest) (job.JobResponse, error) {
	if !actor.IsBrand() {
		return job.JobResponse{}, identity.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	now := time.Now()
	duration := job.ClampDuration(req.DurationDays)
	expiresAt := now.Add(time.Duration(duration) * 24 * time.Hour)

	created, err := s.jobRepo.Create(ctx, job.Job{
		ID:             idgen.New(idgen.PrefixJob),
		BrandUserID:    actor.UserID,
		BrandName:      actor.Name,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Category:       req.Category,
		Budget:         req.Budget,
		Platforms:      job.Dedupe(req.Platforms),
		IsFeatured:     req.IsFeatured,
		IsUrgent:       req.IsUrgent,
		Status:         job.StatusOpen,
		ApprovalStatus: job.ApprovalPending,
		DurationDays:   duration,
		ExpiresAt:      &expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return job.JobResponse{}, fmt.Errorf("failed to create job: %w", err)
	}

	data := map[string]interface{}{"job_id": created.ID}
	s.notifier.NotifyRole(ctx, identity.RoleAdmin, notification.Message{
		Type:  notification.TypeJobPendingReview,
		Title: "New job awaiting approval",
		Body:  fmt.Sprintf("%s posted %q and it is waiting for review.", created.BrandName, created.Title),
		Data:  data,
	})
	s.notifier.Notify(ctx, actor.UserID, notification.Message{
		Type:  notification.TypeJobCreated,
		Title: "Job submitted for review",
		Body:  fmt.Sprintf("%q will be visible once an admin approves it.", created.Title),
		Data:  data,
	})

	return job.ToResponse(created), nil
}

// ListPublic implements job.JobService.
func (s *JobServiceImpl) ListPublic(ctx context.Context, filter job.ListPublicFilter) ([]job.JobResponse, error) {
	now := time.Now()
	jobs, err := s.jobRepo.List(ctx, job.Filter{
		Category: filter.Category,
		Platform: filter.Platform,
		PublicAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if err := s.withApplicationCounts(ctx, jobs); err != nil {
		return nil, err
	}
	return job.ToResponses(jobs), nil
}

// ListOwned implements job.JobService.
func (s *JobServiceImpl) ListOwned(ctx context.Context, actor identity.Identity) ([]job.JobResponse, error) {
	if !actor.IsBrand() {
		return nil, identity.ErrInsufficientPermissions
	}

	expired, err := s.jobRepo.ExpireStale(ctx, actor.UserID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to expire stale jobs: %w", err)
	}
	if expired > 0 {
		slog.Info("Expired stale jobs on owner read", "brand_user_id", actor.UserID, "count", expired)
	}

	jobs, err := s.jobRepo.List(ctx, job.Filter{BrandUserID: actor.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if err := s.withApplicationCounts(ctx, jobs); err != nil {
		return nil, err
	}
	return job.ToResponses(jobs), nil
}

// GetJob implements job.JobService.
func (s *JobServiceImpl) GetJob(ctx context.Context, id string) (job.JobResponse, error) {
	j, err := s.jobRepo.IncrementViewCount(ctx, id)
	if err != nil {
		return job.JobResponse{}, err
	}
	jobs := []job.Job{j}
	if err := s.withApplicationCounts(ctx, jobs); err != nil {
		return job.JobResponse{}, err
	}
	return job.ToResponse(jobs[0]), nil
}

// UpdateJob implements job.JobService.
func (s *JobServiceImpl) UpdateJob(ctx context.Context, actor identity.Identity, id string, req job.UpdateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	j, err := s.ownedOrAdmin(ctx, actor, id)
	if err != nil {
		return job.JobResponse{}, err
	}
	if req.Status != nil && j.Status == job.StatusFilled {
		return job.JobResponse{}, job.ErrJobFilled
	}

	from := j.Status
	req.Apply(&j)
	j.UpdatedAt = time.Now()

	// Guarded on the status read above.
	if j.Status != from {
		if err := s.jobRepo.TransitionStatus(ctx, id, from, j.Status, j.UpdatedAt); err != nil {
			return job.JobResponse{}, err
		}
	}
	if err := s.jobRepo.Update(ctx, j); err != nil {
		return job.JobResponse{}, fmt.Errorf("failed to update job: %w", err)
	}
	return job.ToResponse(j), nil
}

// DeleteJob implements job.JobService.
func (s *JobServiceImpl) DeleteJob(ctx context.Context, actor identity.Identity, id string) error {
	if _, err := s.ownedOrAdmin(ctx, actor, id); err != nil {
		return err
	}
	return s.jobRepo.Delete(ctx, id)
}

// RenewJob implements job.JobService.
func (s *JobServiceImpl) RenewJob(ctx context.Context, actor identity.Identity, id string) (job.JobResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return job.JobResponse{}, err
	}
	if !j.IsOwnedBy(actor.UserID) {
		return job.JobResponse{}, job.ErrNotJobOwner
	}
	// A filled job already produced its match.
	if j.Status == job.StatusFilled {
		return job.JobResponse{}, job.ErrJobFilled
	}

	now := time.Now()
	renewed, err := s.jobRepo.Renew(ctx, id, now.Add(job.RenewalDays*24*time.Hour), now)
	if err != nil {
		return job.JobResponse{}, err
	}
	j = renewed

	s.notifier.NotifyRole(ctx, identity.RoleAdmin, notification.Message{
		Type:  notification.TypeJobRenewed,
		Title: "Renewed job awaiting approval",
		Body:  fmt.Sprintf("%s renewed %q and it is waiting for review.", j.BrandName, j.Title),
		Data:  map[string]interface{}{"job_id": j.ID},
	})

	return job.ToResponse(j), nil
}

// SetApproval implements job.JobService.
func (s *JobServiceImpl) SetApproval(ctx context.Context, actor identity.Identity, id string, req job.ApprovalRequest) (job.JobResponse, error) {
	if !actor.IsAdmin() {
		return job.JobResponse{}, identity.ErrInsufficientPermissions
	}
	decision, err := req.Decision()
	if err != nil {
		return job.JobResponse{}, err
	}

	var reason *string
	if decision == job.ApprovalRejected && req.RejectionReason != nil {
		if trimmed := strings.TrimSpace(*req.RejectionReason); trimmed != "" {
			reason = &trimmed
		}
	}

	j, err := s.jobRepo.SetApproval(ctx, id, decision, reason, time.Now())
	if err != nil {
		return job.JobResponse{}, err
	}

	msg := notification.Message{
		Type:  notification.TypeJobApproved,
		Title: "Your job was approved",
		Body:  fmt.Sprintf("%q is now visible to influencers.", j.Title),
		Data:  map[string]interface{}{"job_id": j.ID},
		Email: true,
	}
	if decision == job.ApprovalRejected {
		msg.Type = notification.TypeJobRejected
		msg.Title = "Your job was rejected"
		msg.Body = fmt.Sprintf("%q was not approved.", j.Title)
		if j.RejectionReason != nil {
			msg.Body += " Reason: " + *j.RejectionReason
			msg.Data["rejection_reason"] = *j.RejectionReason
		}
	}
	s.notifier.Notify(ctx, j.BrandUserID, msg)

	return job.ToResponse(j), nil
}

// AdminList implements job.JobService.
func (s *JobServiceImpl) AdminList(ctx context.Context, actor identity.Identity, approvalStatus string) ([]job.JobResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrInsufficientPermissions
	}

	filter := job.Filter{}
	if approvalStatus != "" {
		switch status := job.ApprovalStatus(approvalStatus); status {
		case job.ApprovalPending, job.ApprovalApproved, job.ApprovalRejected:
			filter.ApprovalStatus = status
		default:
			return nil, job.ErrInvalidApprovalFilter
		}
	}

	jobs, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if err := s.withApplicationCounts(ctx, jobs); err != nil {
		return nil, err
	}
	return job.ToResponses(jobs), nil
}

// SweepExpired implements job.JobService.
func (s *JobServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.jobRepo.ExpireStale(ctx, "", time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired jobs: %w", err)
	}
	if n > 0 {
		slog.Info("Expired stale jobs", "count", n)
	}
	return n, nil
}

func (s *JobServiceImpl) ownedOrAdmin(ctx context.Context, actor identity.Identity, id string) (job.Job, error) {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if !actor.IsAdmin() && !j.IsOwnedBy(actor.UserID) {
		return job.Job{}, job.ErrNotJobOwner
	}
	return j, nil
}

// withApplicationCounts replaces the stored counter with the live count.
func (s *JobServiceImpl) withApplicationCounts(ctx context.Context, jobs []job.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	counts, err := s.appRepo.CountByJobIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to count applications: %w", err)
	}
	for i := range jobs {
		jobs[i].ApplicationCount = counts[jobs[i].ID]
	}
	return nil
}
