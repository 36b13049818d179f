package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/repository/memory"
	"github.com/flulance/flulance-backend-go/internal/service/servicetest"
)

type fixture struct {
	svc      application.ApplicationService
	jobs     job.JobRepository
	apps     application.ApplicationRepository
	matches  match.MatchRepository
	notifier *servicetest.RecordingNotifier
}

func newFixture() *fixture {
	store := memory.NewStore()
	profileID := "profile_inf1"
	store.PutUser(servicetest.Influencer, &profileID)
	store.PutUser(servicetest.OtherInfluencer, nil)

	f := &fixture{
		jobs:     memory.NewJobRepository(store),
		apps:     memory.NewApplicationRepository(store),
		matches:  memory.NewMatchRepository(store),
		notifier: &servicetest.RecordingNotifier{},
	}
	f.svc = NewApplicationService(store, f.jobs, f.apps, f.matches, memory.NewDirectory(store), f.notifier)
	return f
}

func (f *fixture) seedJob(t *testing.T, id string, status job.Status) {
	t.Helper()
	now := time.Now()
	expires := now.Add(24 * time.Hour)
	_, err := f.jobs.Create(context.Background(), job.Job{
		ID:             id,
		BrandUserID:    servicetest.Brand.UserID,
		BrandName:      servicetest.Brand.Name,
		Title:          "Unboxing video",
		Description:    "One unboxing video",
		Category:       "tech",
		Budget:         5000,
		Platforms:      []string{"youtube"},
		Status:         status,
		ApprovalStatus: job.ApprovalApproved,
		DurationDays:   1,
		ExpiresAt:      &expires,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
}

func (f *fixture) apply(t *testing.T, actor identity.Identity, jobID string) application.ApplicationResponse {
	t.Helper()
	resp, err := f.svc.Apply(context.Background(), actor, application.ApplyRequest{JobID: jobID, Message: "I'd love to do this"})
	require.NoError(t, err)
	return resp
}

func TestApply(t *testing.T) {
	f := newFixture()
	f.seedJob(t, "job_1", job.StatusOpen)

	resp := f.apply(t, servicetest.Influencer, "job_1")
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, servicetest.Influencer.Name, resp.InfluencerName)
	require.NotNil(t, resp.InfluencerProfileID)
	assert.Equal(t, "profile_inf1", *resp.InfluencerProfileID)

	other := f.apply(t, servicetest.OtherInfluencer, "job_1")
	assert.Nil(t, other.InfluencerProfileID)

	// Influencers unknown to the directory still apply, without a profile.
	third := f.apply(t, servicetest.ThirdInfluencer, "job_1")
	assert.Nil(t, third.InfluencerProfileID)

	j, err := f.jobs.GetByID(context.Background(), "job_1")
	require.NoError(t, err)
	assert.Equal(t, 3, j.ApplicationCount)

	last, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, servicetest.Brand.UserID, last.UserID)
	assert.Equal(t, notification.TypeApplicationReceived, last.Msg.Type)
	assert.True(t, last.Msg.Email)
}

func TestApply_Rejections(t *testing.T) {
	f := newFixture()
	f.seedJob(t, "job_open", job.StatusOpen)
	f.seedJob(t, "job_closed", job.StatusClosed)
	f.seedJob(t, "job_filled", job.StatusFilled)

	_, err := f.svc.Apply(context.Background(), servicetest.Brand, application.ApplyRequest{JobID: "job_open", Message: "hi"})
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	_, err = f.svc.Apply(context.Background(), servicetest.Influencer, application.ApplyRequest{JobID: "job_missing", Message: "hi"})
	assert.ErrorIs(t, err, job.ErrJobNotFound)

	for _, id := range []string{"job_closed", "job_filled"} {
		_, err = f.svc.Apply(context.Background(), servicetest.Influencer, application.ApplyRequest{JobID: id, Message: "hi"})
		assert.ErrorIs(t, err, job.ErrJobNotOpen, id)
	}

	_, err = f.svc.Apply(context.Background(), servicetest.Influencer, application.ApplyRequest{JobID: "job_open"})
	assert.Error(t, err)
}

func TestApply_DuplicateGuard(t *testing.T) {
	f := newFixture()
	f.seedJob(t, "job_1", job.StatusOpen)

	first := f.apply(t, servicetest.Influencer, "job_1")

	_, err := f.svc.Apply(context.Background(), servicetest.Influencer, application.ApplyRequest{JobID: "job_1", Message: "again"})
	assert.ErrorIs(t, err, application.ErrAlreadyApplied)

	// The counter only moves for applications that were stored.
	j, err := f.jobs.GetByID(context.Background(), "job_1")
	require.NoError(t, err)
	assert.Equal(t, 1, j.ApplicationCount)

	// Still a conflict after the first application was accepted and the job
	// reopened by hand.
	_, err = f.svc.Accept(context.Background(), servicetest.Brand, first.ID)
	require.NoError(t, err)
	require.NoError(t, f.jobs.TransitionStatus(context.Background(), "job_1", job.StatusFilled, job.StatusOpen, time.Now()))

	_, err = f.svc.Apply(context.Background(), servicetest.Influencer, application.ApplyRequest{JobID: "job_1", Message: "third time"})
	assert.ErrorIs(t, err, application.ErrAlreadyApplied)
}

func TestListForJob_Ownership(t *testing.T) {
	f := newFixture()
	f.seedJob(t, "job_1", job.StatusOpen)
	f.apply(t, servicetest.Influencer, "job_1")
	f.apply(t, servicetest.OtherInfluencer, "job_1")

	apps, err := f.svc.ListForJob(context.Background(), servicetest.Brand, "job_1")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, servicetest.OtherInfluencer.UserID, apps[0].InfluencerUserID)

	_, err = f.svc.ListForJob(context.Background(), servicetest.Admin, "job_1")
	assert.NoError(t, err)

	_, err = f.svc.ListForJob(context.Background(), servicetest.OtherBrand, "job_1")
	assert.ErrorIs(t, err, job.ErrNotJobOwner)

	mine, err := f.svc.ListForInfluencer(context.Background(), servicetest.Influencer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "job_1", mine[0].JobID)

	_, err = f.svc.ListForInfluencer(context.Background(), servicetest.Brand)
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)
}

func TestAccept(t *testing.T) {
	f := newFixture()
	f.seedJob(t, "job_1", job.StatusOpen)
	app := f.apply(t, servicetest.Influencer, "job_1")

	resp, err := f.svc.Accept(context.Background(), servicetest.Brand, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Match.Status)
	require.NotNil(t, resp.Match.JobID)
	assert.Equal(t, "job_1", *resp.Match.JobID)
	assert.Equal(t, "Unboxing video", resp.Match.Title)
	assert.Equal(t, servicetest.Brand.UserID, resp.Match.BrandUserID)
	assert.Equal(t, servicetest.Influencer.UserID, resp.Match.InfluencerUserID)
	assert.Nil(t, resp.Match.AgreedPrice)

	stored, err := f.apps.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusAccepted, stored.Status)

	j, err := f.jobs.GetByID(context.Background(), "job_1")
	require.NoError(t, err)
	assert.Equal(t, job.StatusFilled, j.Status)

	assert.Equal(t, []notification.NotificationType{notification.TypeApplicationAccepted}, f.notifier.ToUser(servicetest.Influencer.UserID))

	_, err = f.svc.Accept(context.Background(), servicetest.Brand, app.ID)
	assert.ErrorIs(t, err, application.ErrApplicationProcessed)
}

func TestAccept_Rejections(t *testing.T) {
	f := newFixture()
	f.seedJob(t, "job_1", job.StatusOpen)
	app := f.apply(t, servicetest.Influencer, "job_1")

	_, err := f.svc.Accept(context.Background(), servicetest.Brand, "app_missing")
	assert.ErrorIs(t, err, application.ErrApplicationNotFound)

	_, err = f.svc.Accept(context.Background(), servicetest.OtherBrand, app.ID)
	assert.ErrorIs(t, err, job.ErrNotJobOwner)

	_, err = f.svc.Accept(context.Background(), servicetest.Influencer, app.ID)
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	matches, err := f.matches.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAccept_SecondApplicationAfterFill(t *testing.T) {
	f := newFixture()
	f.seedJob(t, "job_1", job.StatusOpen)
	first := f.apply(t, servicetest.Influencer, "job_1")
	second := f.apply(t, servicetest.OtherInfluencer, "job_1")

	_, err := f.svc.Accept(context.Background(), servicetest.Brand, first.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), servicetest.Brand, second.ID)
	assert.ErrorIs(t, err, job.ErrJobNotOpen)

	stored, err := f.apps.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, stored.Status)
}

func TestAccept_ConcurrentAcceptsFillOnce(t *testing.T) {
	for round := 0; round < 20; round++ {
		f := newFixture()
		f.seedJob(t, "job_race", job.StatusOpen)

		applicants := []identity.Identity{servicetest.Influencer, servicetest.OtherInfluencer, servicetest.ThirdInfluencer}
		ids := make([]string, len(applicants))
		for i, inf := range applicants {
			ids[i] = f.apply(t, inf, "job_race").ID
		}

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			failures  []error
		)
		start := make(chan struct{})
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				<-start
				_, err := f.svc.Accept(context.Background(), servicetest.Brand, id)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					succeeded++
				} else {
					failures = append(failures, err)
				}
			}(id)
		}
		close(start)
		wg.Wait()

		require.Equal(t, 1, succeeded)
		for _, err := range failures {
			assert.ErrorIs(t, err, job.ErrJobNotOpen)
		}

		matches, err := f.matches.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, matches, 1)

		j, err := f.jobs.GetByID(context.Background(), "job_race")
		require.NoError(t, err)
		assert.Equal(t, job.StatusFilled, j.Status)

		accepted := 0
		apps, err := f.apps.ListByJob(context.Background(), "job_race")
		require.NoError(t, err)
		for _, a := range apps {
			if a.Status == application.StatusAccepted {
				accepted++
				assert.Equal(t, matches[0].InfluencerUserID, a.InfluencerUserID)
			}
		}
		assert.Equal(t, 1, accepted)
	}
}

// fillingJobs fills the job right after Apply has read it open.
type fillingJobs struct {
	job.JobRepository
}

func (r fillingJobs) GetByID(ctx context.Context, id string) (job.Job, error) {
	j, err := r.JobRepository.GetByID(ctx, id)
	if err != nil {
		return j, err
	}
	return j, r.JobRepository.MarkFilled(ctx, id)
}

func TestApply_JobFilledAfterCheck(t *testing.T) {
	store := memory.NewStore()
	store.PutUser(servicetest.Influencer, nil)
	f := &fixture{
		jobs:     memory.NewJobRepository(store),
		apps:     memory.NewApplicationRepository(store),
		matches:  memory.NewMatchRepository(store),
		notifier: &servicetest.RecordingNotifier{},
	}
	f.seedJob(t, "job_1", job.StatusOpen)
	svc := NewApplicationService(store, fillingJobs{f.jobs}, f.apps, f.matches, memory.NewDirectory(store), f.notifier)

	ctx := context.Background()
	_, err := svc.Apply(ctx, servicetest.Influencer, application.ApplyRequest{JobID: "job_1", Message: "I'd love to do this"})
	assert.ErrorIs(t, err, job.ErrJobNotOpen)

	apps, err := f.apps.ListByJob(ctx, "job_1")
	require.NoError(t, err)
	assert.Empty(t, apps)

	j, err := f.jobs.GetByID(ctx, "job_1")
	require.NoError(t, err)
	assert.Equal(t, job.StatusFilled, j.Status)
	assert.Zero(t, j.ApplicationCount)
	_, notified := f.notifier.Last()
	assert.False(t, notified)
}
