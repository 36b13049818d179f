package brief

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/pkg/validator"
	"github.com/flulance/flulance-backend-go/internal/repository/memory"
	"github.com/flulance/flulance-backend-go/internal/service/servicetest"
)

type fixture struct {
	svc       brief.BriefService
	briefs    brief.BriefRepository
	proposals brief.ProposalRepository
	matches   match.MatchRepository
	notifier  *servicetest.RecordingNotifier
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{
		briefs:    memory.NewBriefRepository(store),
		proposals: memory.NewProposalRepository(store),
		matches:   memory.NewMatchRepository(store),
		notifier:  &servicetest.RecordingNotifier{},
	}
	f.svc = NewBriefService(store, f.briefs, f.proposals, f.matches, f.notifier)
	return f
}

func (f *fixture) createBrief(t *testing.T) brief.BriefResponse {
	t.Helper()
	deadline := "2026-12-01"
	resp, err := f.svc.CreateBrief(context.Background(), servicetest.Brand, brief.CreateBriefRequest{
		Title:       "Holiday gift guide",
		Description: "A carousel post featuring our gift sets",
		Category:    "lifestyle",
		BudgetMin:   1000,
		BudgetMax:   3000,
		Platforms:   []string{"instagram"},
		Deadline:    &deadline,
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) propose(t *testing.T, actor identity.Identity, briefID string, price float64) brief.ProposalResponse {
	t.Helper()
	resp, err := f.svc.SubmitProposal(context.Background(), actor, briefID, brief.SubmitProposalRequest{
		ProposedPrice: price,
		Message:       "Happy to help",
		DeliveryTime:  "5 days",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateBrief(t *testing.T) {
	f := newFixture()
	b := f.createBrief(t)

	assert.Equal(t, "open", b.Status)
	assert.Zero(t, b.ProposalCount)
	require.NotNil(t, b.Deadline)
	assert.Equal(t, 2026, b.Deadline.Year())

	_, err := f.svc.CreateBrief(context.Background(), servicetest.Influencer, brief.CreateBriefRequest{})
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	_, err = f.svc.CreateBrief(context.Background(), servicetest.Brand, brief.CreateBriefRequest{
		Title:       "Bad band",
		Description: "x",
		Category:    "x",
		BudgetMin:   500,
		BudgetMax:   100,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "budget_max")
}

func TestSubmitProposal(t *testing.T) {
	f := newFixture()
	b := f.createBrief(t)

	p := f.propose(t, servicetest.Influencer, b.ID, 1500)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "5 days", p.DeliveryTime)

	stored, err := f.briefs.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ProposalCount)

	last, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, servicetest.Brand.UserID, last.UserID)
	assert.Equal(t, notification.TypeProposalReceived, last.Msg.Type)

	_, err = f.svc.SubmitProposal(context.Background(), servicetest.Influencer, b.ID, brief.SubmitProposalRequest{
		ProposedPrice: 1200, Message: "again", DeliveryTime: "3 days",
	})
	assert.ErrorIs(t, err, brief.ErrAlreadyProposed)

	stored, err = f.briefs.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ProposalCount)

	_, err = f.svc.SubmitProposal(context.Background(), servicetest.Brand, b.ID, brief.SubmitProposalRequest{
		ProposedPrice: 1, Message: "x", DeliveryTime: "x",
	})
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	_, err = f.svc.SubmitProposal(context.Background(), servicetest.OtherInfluencer, "brief_missing", brief.SubmitProposalRequest{
		ProposedPrice: 1, Message: "x", DeliveryTime: "x",
	})
	assert.ErrorIs(t, err, brief.ErrBriefNotFound)
}

func TestAcceptProposal_BulkRejectsSiblings(t *testing.T) {
	f := newFixture()
	b := f.createBrief(t)
	p1 := f.propose(t, servicetest.Influencer, b.ID, 1200)
	p2 := f.propose(t, servicetest.OtherInfluencer, b.ID, 2500)
	p3 := f.propose(t, servicetest.ThirdInfluencer, b.ID, 2900)

	resp, err := f.svc.AcceptProposal(context.Background(), servicetest.Brand, b.ID, p2.ID)
	require.NoError(t, err)

	assert.Equal(t, "brief", resp.Match.SourceType)
	require.NotNil(t, resp.Match.BriefID)
	assert.Equal(t, b.ID, *resp.Match.BriefID)
	assert.Nil(t, resp.Match.JobID)
	assert.Equal(t, servicetest.OtherInfluencer.UserID, resp.Match.InfluencerUserID)
	require.NotNil(t, resp.Match.AgreedPrice)
	assert.Equal(t, 2500.0, *resp.Match.AgreedPrice)

	want := map[string]brief.ProposalStatus{
		p1.ID: brief.ProposalRejected,
		p2.ID: brief.ProposalAccepted,
		p3.ID: brief.ProposalRejected,
	}
	for id, status := range want {
		p, err := f.proposals.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, status, p.Status, id)
	}

	stored, err := f.briefs.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, brief.StatusClosed, stored.Status)

	matches, err := f.matches.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	assert.Equal(t, []notification.NotificationType{notification.TypeProposalAccepted}, f.notifier.ToUser(servicetest.OtherInfluencer.UserID))

	_, err = f.svc.SubmitProposal(context.Background(), servicetest.Admin, b.ID, brief.SubmitProposalRequest{ProposedPrice: 1, Message: "x", DeliveryTime: "x"})
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)
	_, err = f.svc.AcceptProposal(context.Background(), servicetest.Brand, b.ID, p1.ID)
	assert.ErrorIs(t, err, brief.ErrProposalProcessed)

	open, err := f.svc.ListOpen(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAcceptProposal_Rejections(t *testing.T) {
	f := newFixture()
	b := f.createBrief(t)
	other := f.createBrief(t)
	p := f.propose(t, servicetest.Influencer, b.ID, 1200)

	_, err := f.svc.AcceptProposal(context.Background(), servicetest.OtherBrand, b.ID, p.ID)
	assert.ErrorIs(t, err, brief.ErrNotBriefOwner)

	_, err = f.svc.AcceptProposal(context.Background(), servicetest.Influencer, b.ID, p.ID)
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	_, err = f.svc.AcceptProposal(context.Background(), servicetest.Brand, other.ID, p.ID)
	assert.ErrorIs(t, err, brief.ErrProposalBriefMismatch)

	_, err = f.svc.AcceptProposal(context.Background(), servicetest.Brand, b.ID, "prop_missing")
	assert.ErrorIs(t, err, brief.ErrProposalNotFound)

	stored, err := f.proposals.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, brief.ProposalPending, stored.Status)
}

func TestAcceptProposal_ConcurrentAcceptsCloseOnce(t *testing.T) {
	f := newFixture()
	b := f.createBrief(t)
	ids := []string{
		f.propose(t, servicetest.Influencer, b.ID, 1000).ID,
		f.propose(t, servicetest.OtherInfluencer, b.ID, 2000).ID,
		f.propose(t, servicetest.ThirdInfluencer, b.ID, 3000).ID,
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := f.svc.AcceptProposal(context.Background(), servicetest.Brand, b.ID, id); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	matches, err := f.matches.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	accepted := 0
	proposals, err := f.proposals.ListByBrief(context.Background(), b.ID)
	require.NoError(t, err)
	for _, p := range proposals {
		if p.Status == brief.ProposalAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestGetBrief_ProposalsVisibleToOwner(t *testing.T) {
	f := newFixture()
	b := f.createBrief(t)
	f.propose(t, servicetest.Influencer, b.ID, 1200)

	owner, err := f.svc.GetBrief(context.Background(), servicetest.Brand, b.ID)
	require.NoError(t, err)
	assert.Len(t, owner.Proposals, 1)

	admin, err := f.svc.GetBrief(context.Background(), servicetest.Admin, b.ID)
	require.NoError(t, err)
	assert.Len(t, admin.Proposals, 1)

	stranger, err := f.svc.GetBrief(context.Background(), servicetest.OtherInfluencer, b.ID)
	require.NoError(t, err)
	assert.Empty(t, stranger.Proposals)

	_, err = f.svc.ListProposals(context.Background(), servicetest.OtherBrand, b.ID)
	assert.ErrorIs(t, err, brief.ErrNotBriefOwner)

	mine, err := f.svc.ListMyProposals(context.Background(), servicetest.Influencer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	owned, err := f.svc.ListOwned(context.Background(), servicetest.Brand)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.createBrief(t)
	p1 := f.propose(t, servicetest.Influencer, b.ID, 1500)
	f.propose(t, servicetest.OtherInfluencer, b.ID, 2500)

	open, err := f.svc.ListOpen(ctx, "")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 2, open[0].ProposalCount)

	open, err = f.svc.ListOpen(ctx, "gaming")
	require.NoError(t, err)
	assert.Empty(t, open)

	owned, err := f.svc.ListOwned(ctx, servicetest.Brand)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
	owned, err = f.svc.ListOwned(ctx, servicetest.OtherBrand)
	require.NoError(t, err)
	assert.Empty(t, owned)
	_, err = f.svc.ListOwned(ctx, servicetest.Influencer)
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	proposals, err := f.svc.ListProposals(ctx, servicetest.Brand, b.ID)
	require.NoError(t, err)
	assert.Len(t, proposals, 2)
	proposals, err = f.svc.ListProposals(ctx, servicetest.Admin, b.ID)
	require.NoError(t, err)
	assert.Len(t, proposals, 2)
	_, err = f.svc.ListProposals(ctx, servicetest.OtherBrand, b.ID)
	assert.ErrorIs(t, err, brief.ErrNotBriefOwner)
	_, err = f.svc.ListProposals(ctx, servicetest.Brand, "brief_missing")
	assert.ErrorIs(t, err, brief.ErrBriefNotFound)

	mine, err := f.svc.ListMyProposals(ctx, servicetest.Influencer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p1.ID, mine[0].ID)
	_, err = f.svc.ListMyProposals(ctx, servicetest.Brand)
	assert.ErrorIs(t, err, identity.ErrInsufficientPermissions)

	_, err = f.svc.AcceptProposal(ctx, servicetest.Brand, b.ID, p1.ID)
	require.NoError(t, err)
	open, err = f.svc.ListOpen(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, open, "closed briefs leave the open listing")
}

// closingBriefs closes the brief right after SubmitProposal has read it open.
type closingBriefs struct {
	brief.BriefRepository
}

func (r closingBriefs) GetByID(ctx context.Context, id string) (brief.Brief, error) {
	b, err := r.BriefRepository.GetByID(ctx, id)
	if err != nil {
		return b, err
	}
	return b, r.BriefRepository.MarkClosed(ctx, id)
}

func TestSubmitProposal_BriefClosedAfterCheck(t *testing.T) {
	store := memory.NewStore()
	f := &fixture{
		briefs:    memory.NewBriefRepository(store),
		proposals: memory.NewProposalRepository(store),
		matches:   memory.NewMatchRepository(store),
		notifier:  &servicetest.RecordingNotifier{},
	}
	f.svc = NewBriefService(store, f.briefs, f.proposals, f.matches, f.notifier)
	b := f.createBrief(t)

	svc := NewBriefService(store, closingBriefs{f.briefs}, f.proposals, f.matches, f.notifier)
	ctx := context.Background()
	_, err := svc.SubmitProposal(ctx, servicetest.Influencer, b.ID, brief.SubmitProposalRequest{
		ProposedPrice: 1500,
		Message:       "Happy to help",
		DeliveryTime:  "5 days",
	})
	assert.ErrorIs(t, err, brief.ErrBriefNotOpen)

	proposals, err := f.proposals.ListByBrief(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, proposals)

	stored, err := f.briefs.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, brief.StatusClosed, stored.Status)
	assert.Zero(t, stored.ProposalCount)
	assert.Empty(t, f.notifier.ToUser(servicetest.Brand.UserID))
}
