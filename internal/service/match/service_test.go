package match

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/storage"
	"github.com/flulance/flulance-backend-go/internal/repository/memory"
	"github.com/flulance/flulance-backend-go/internal/service/servicetest"
)

type fixture struct {
	svc      match.MatchService
	matches  match.MatchRepository
	jobs     job.JobRepository
	files    *storage.LocalStorage
	notifier *servicetest.RecordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	files, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	f := &fixture{
		matches:  memory.NewMatchRepository(store),
		jobs:     memory.NewJobRepository(store),
		files:    files,
		notifier: &servicetest.RecordingNotifier{},
	}
	f.svc = NewMatchService(store, f.matches, memory.NewMessageRepository(store), f.jobs, files, f.notifier)
	return f
}

func (f *fixture) seedMatch(t *testing.T, id string, source match.SourceType, sourceID string) {
	t.Helper()
	now := time.Now()
	_, err := f.matches.Create(context.Background(), match.Match{
		ID:               id,
		SourceType:       source,
		SourceID:         sourceID,
		Title:            "Unboxing video",
		BrandUserID:      servicetest.Brand.UserID,
		BrandName:        servicetest.Brand.Name,
		InfluencerUserID: servicetest.Influencer.UserID,
		InfluencerName:   servicetest.Influencer.Name,
		Status:           match.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	require.NoError(t, err)
}

func (f *fixture) seedJob(t *testing.T, id string, status job.Status) {
	t.Helper()
	now := time.Now()
	_, err := f.jobs.Create(context.Background(), job.Job{
		ID:             id,
		BrandUserID:    servicetest.Brand.UserID,
		Title:          "Unboxing video",
		Platforms:      []string{"youtube"},
		Status:         status,
		ApprovalStatus: job.ApprovalApproved,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
}

func TestListForUser(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	brandMatches, err := f.svc.ListForUser(context.Background(), servicetest.Brand)
	require.NoError(t, err)
	assert.Len(t, brandMatches, 1)

	infMatches, err := f.svc.ListForUser(context.Background(), servicetest.Influencer)
	require.NoError(t, err)
	assert.Len(t, infMatches, 1)

	none, err := f.svc.ListForUser(context.Background(), servicetest.OtherBrand)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.ListForUser(context.Background(), servicetest.Admin)
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	all, err := f.svc.AdminList(context.Background(), servicetest.Admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.svc.AdminList(context.Background(), servicetest.Brand)
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)
}

func TestGetMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	for _, actor := range []identity.Identity{servicetest.Brand, servicetest.Influencer, servicetest.Admin} {
		_, err := f.svc.GetMatch(context.Background(), actor, "match_1")
		assert.NoError(t, err, actor.UserID)
	}

	_, err := f.svc.GetMatch(context.Background(), servicetest.OtherInfluencer, "match_1")
	assert.ErrorIs(t, err, match.ErrNotMatchParty)

	_, err = f.svc.GetMatch(context.Background(), servicetest.Brand, "match_missing")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestComplete_ByInfluencer(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "job_1", job.StatusFilled)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	resp, err := f.svc.Complete(context.Background(), servicetest.Influencer, "match_1")
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.CompletedBy)
	assert.Equal(t, servicetest.Influencer.UserID, *resp.CompletedBy)
	assert.NotNil(t, resp.CompletedAt)

	stored, err := f.matches.GetByID(context.Background(), "match_1")
	require.NoError(t, err)
	assert.Equal(t, match.StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedBy)
	assert.Equal(t, servicetest.Influencer.UserID, *stored.CompletedBy)

	assert.Equal(t, []notification.NotificationType{notification.TypeMatchCompleted}, f.notifier.ToUser(servicetest.Brand.UserID))

	_, err = f.svc.Complete(context.Background(), servicetest.Brand, "match_1")
	assert.ErrorIs(t, err, match.ErrMatchNotActive)
}

func TestComplete_ByBrandFillsJob(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "job_1", job.StatusClosed)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	_, err := f.svc.Complete(context.Background(), servicetest.Brand, "match_1")
	require.NoError(t, err)

	j, err := f.jobs.GetByID(context.Background(), "job_1")
	require.NoError(t, err)
	assert.Equal(t, job.StatusFilled, j.Status)

	assert.Equal(t, []notification.NotificationType{notification.TypeMatchCompleted}, f.notifier.ToUser(servicetest.Influencer.UserID))
}

func TestComplete_BrandPathToleratesMissingSources(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, "match_deleted_job", match.SourceJob, "job_gone")
	f.seedMatch(t, "match_brief", match.SourceBrief, "brief_1")

	_, err := f.svc.Complete(context.Background(), servicetest.Brand, "match_deleted_job")
	assert.NoError(t, err)
	_, err = f.svc.Complete(context.Background(), servicetest.Brand, "match_brief")
	assert.NoError(t, err)
}

func TestComplete_Rejections(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	_, err := f.svc.Complete(context.Background(), servicetest.OtherBrand, "match_1")
	assert.ErrorIs(t, err, match.ErrNotMatchParty)
	_, err = f.svc.Complete(context.Background(), servicetest.Admin, "match_1")
	assert.ErrorIs(t, err, match.ErrNotMatchParty)
	_, err = f.svc.Complete(context.Background(), servicetest.Brand, "match_missing")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)

	stored, err := f.matches.GetByID(context.Background(), "match_1")
	require.NoError(t, err)
	assert.Equal(t, match.StatusActive, stored.Status)
}

func TestMessages(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	_, err := f.svc.SendMessage(context.Background(), servicetest.Brand, "match_1", match.SendMessageRequest{Message: "Welcome aboard"})
	require.NoError(t, err)
	_, err = f.svc.SendMessage(context.Background(), servicetest.Influencer, "match_1", match.SendMessageRequest{Message: "Thanks!"})
	require.NoError(t, err)

	msgs, err := f.svc.ListMessages(context.Background(), servicetest.Influencer, "match_1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Welcome aboard", msgs[0].Message)
	assert.Equal(t, "Thanks!", msgs[1].Message)
	assert.Nil(t, msgs[0].AttachmentURL)

	assert.Equal(t, []notification.NotificationType{notification.TypeMessageReceived}, f.notifier.ToUser(servicetest.Influencer.UserID))
	assert.Equal(t, []notification.NotificationType{notification.TypeMessageReceived}, f.notifier.ToUser(servicetest.Brand.UserID))

	_, err = f.svc.ListMessages(context.Background(), servicetest.OtherInfluencer, "match_1")
	assert.ErrorIs(t, err, match.ErrNotMatchParty)
	_, err = f.svc.SendMessage(context.Background(), servicetest.OtherInfluencer, "match_1", match.SendMessageRequest{Message: "hi"})
	assert.ErrorIs(t, err, match.ErrNotMatchParty)
	_, err = f.svc.SendMessage(context.Background(), servicetest.Brand, "match_1", match.SendMessageRequest{Message: "  "})
	assert.Error(t, err)
}

func TestSendMessage_Attachment(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	content := []byte("%PDF-1.4 brief")
	resp, err := f.svc.SendMessage(context.Background(), servicetest.Brand, "match_1", match.SendMessageRequest{
		Attachment: &match.Attachment{
			File:        bytes.NewReader(content),
			Filename:    "../../etc/brief.pdf",
			ContentType: "application/pdf",
			Size:        int64(len(content)),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.AttachmentURL)

	prefix := "http://localhost:8080/uploads/matches/match_1/"
	require.True(t, strings.HasPrefix(*resp.AttachmentURL, prefix), *resp.AttachmentURL)
	assert.True(t, strings.HasSuffix(*resp.AttachmentURL, "-brief.pdf"))

	rc, err := f.files.Open(context.Background(), strings.TrimPrefix(*resp.AttachmentURL, "http://localhost:8080/uploads/"))
	require.NoError(t, err)
	defer rc.Close()
	stored, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestSendMessage_AttachmentLimits(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, "match_1", match.SourceJob, "job_1")

	_, err := f.svc.SendMessage(context.Background(), servicetest.Brand, "match_1", match.SendMessageRequest{
		Attachment: &match.Attachment{
			File:        strings.NewReader("MZ"),
			Filename:    "setup.exe",
			ContentType: "application/x-msdownload",
			Size:        2,
		},
	})
	assert.ErrorIs(t, err, match.ErrAttachmentType)

	_, err = f.svc.SendMessage(context.Background(), servicetest.Brand, "match_1", match.SendMessageRequest{
		Attachment: &match.Attachment{
			File:        strings.NewReader("x"),
			Filename:    "huge.mp4",
			ContentType: "video/mp4",
			Size:        storage.MessageAttachmentOptions.MaxSize + 1,
		},
	})
	assert.ErrorIs(t, err, match.ErrAttachmentTooLarge)

	// Declared small, actually larger than the limit.
	big := bytes.Repeat([]byte{0}, int(storage.MessageAttachmentOptions.MaxSize)+10)
	_, err = f.svc.SendMessage(context.Background(), servicetest.Brand, "match_1", match.SendMessageRequest{
		Attachment: &match.Attachment{
			File:        bytes.NewReader(big),
			Filename:    "sneaky.png",
			ContentType: "image/png",
			Size:        10,
		},
	})
	assert.ErrorIs(t, err, match.ErrAttachmentTooLarge)

	msgs, err := f.svc.ListMessages(context.Background(), servicetest.Brand, "match_1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
