package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/inbound"
	"marketplace-bidding-service/internal/ports/outbound"
	"marketplace-bidding-service/internal/ports/outbound/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestCreateProjectValidation(t *testing.T) {
	valid := inbound.CreateProjectRequest{
		Title:           "Roof repair",
		Category:        project.CategoryMaintenance,
		Location:        "Denver, CO",
		BiddingDeadline: testStart.Add(week),
	}

	tests := []struct {
		name   string
		mutate func(req *inbound.CreateProjectRequest)
		field  string
	}{
		{name: "blank_title", mutate: func(req *inbound.CreateProjectRequest) { req.Title = "   " }, field: "title"},
		{name: "unknown_category", mutate: func(req *inbound.CreateProjectRequest) { req.Category = "garden" }, field: "category"},
		{name: "blank_location", mutate: func(req *inbound.CreateProjectRequest) { req.Location = "" }, field: "location"},
		{name: "negative_budget", mutate: func(req *inbound.CreateProjectRequest) { req.BudgetMin = floatPtr(-1) }, field: "budget_min"},
		{name: "inverted_budget", mutate: func(req *inbound.CreateProjectRequest) {
			req.BudgetMin = floatPtr(5000)
			req.BudgetMax = floatPtr(1000)
		}, field: "budget_min"},
		{name: "deadline_now", mutate: func(req *inbound.CreateProjectRequest) { req.BiddingDeadline = testStart }, field: "bidding_deadline"},
		{name: "missing_deadline", mutate: func(req *inbound.CreateProjectRequest) { req.BiddingDeadline = time.Time{} }, field: "bidding_deadline"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			req := valid
			tc.mutate(&req)

			_, err := f.lifecycle.CreateProject(context.Background(), f.owner, req)
			require.ErrorIs(t, err, shared.ErrValidation)
			var validation *shared.ValidationError
			require.True(t, errors.As(err, &validation))
			require.Equal(t, tc.field, validation.Field)

			listed, err := f.lifecycle.ListProjects(context.Background(), inbound.ListProjectsRequest{})
			require.NoError(t, err)
			require.Empty(t, listed)
		})
	}

	t.Run("valid", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		req := valid
		req.Title = "  Roof repair  "
		p, err := f.lifecycle.CreateProject(context.Background(), f.owner, req)
		require.NoError(t, err)
		require.Equal(t, project.StatusDraft, p.Status)
		require.Equal(t, "Roof repair", p.Title)
		require.Equal(t, f.owner.ID, p.OwnerID)
	})
}

func TestActivate(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.draftProject(t, testStart.Add(week))

	stranger := shared.Actor{ID: uuid.New(), Role: shared.RoleProjectPoster}
	_, err := f.lifecycle.Activate(context.Background(), stranger, p.ID)
	require.ErrorIs(t, err, shared.ErrForbidden)

	active, err := f.lifecycle.Activate(context.Background(), f.owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, active.Status)

	_, err = f.lifecycle.Activate(context.Background(), f.owner, p.ID)
	require.ErrorIs(t, err, shared.ErrInvalidStateTransition)

	_, err = f.lifecycle.Activate(context.Background(), f.owner, uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestActivateRevalidatesDeadline(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.draftProject(t, testStart.Add(time.Hour))

	f.clock.Advance(2 * time.Hour)
	_, err := f.lifecycle.Activate(context.Background(), f.owner, p.ID)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Equal(t, project.StatusDraft, f.project(t, p.ID).Status)
}

func TestExtendDeadline(t *testing.T) {
	deadline := testStart.Add(week)

	t.Run("moves_deadline_out", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		p := f.activeProject(t, deadline)

		extended, err := f.lifecycle.ExtendDeadline(context.Background(), f.owner, p.ID, deadline.Add(48*time.Hour))
		require.NoError(t, err)
		require.True(t, extended.BiddingDeadline.Equal(deadline.Add(48*time.Hour)))
		require.Equal(t, project.StatusActive, extended.Status)
	})

	t.Run("rejects_earlier_or_equal_deadline", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		p := f.activeProject(t, deadline)

		for _, candidate := range []time.Time{deadline, deadline.Add(-time.Hour)} {
			_, err := f.lifecycle.ExtendDeadline(context.Background(), f.owner, p.ID, candidate)
			require.ErrorIs(t, err, shared.ErrValidation)
		}
		require.True(t, f.project(t, p.ID).BiddingDeadline.Equal(deadline))
	})

	t.Run("rejects_after_deadline_passed", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		p := f.activeProject(t, deadline)

		f.clock.Set(deadline)
		_, err := f.lifecycle.ExtendDeadline(context.Background(), f.owner, p.ID, deadline.Add(week))
		require.ErrorIs(t, err, shared.ErrInvalidStateTransition)
	})

	t.Run("rejects_non_active", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		p := f.draftProject(t, deadline)

		_, err := f.lifecycle.ExtendDeadline(context.Background(), f.owner, p.ID, deadline.Add(week))
		require.ErrorIs(t, err, shared.ErrInvalidStateTransition)
		var transition *shared.InvalidStateTransitionError
		require.True(t, errors.As(err, &transition))
		require.Equal(t, string(project.StatusDraft), transition.Current)
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockEventSink(ctrl)
	sink.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e outbound.Event) error {
			require.Equal(t, outbound.EventProjectActivated, e.Type)
			return nil
		})
	sink.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e outbound.Event) error {
			require.Equal(t, outbound.EventProjectClosed, e.Type)
			return nil
		})

	f := newFixture(t, fixtureOptions{sink: sink})
	p := f.activeProject(t, testStart.Add(week))

	closed, err := f.lifecycle.Close(context.Background(), f.owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusBiddingClosed, closed.Status)

	f.clock.Advance(time.Minute)
	again, err := f.lifecycle.Close(context.Background(), f.owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusBiddingClosed, again.Status)
	require.Equal(t, closed.UpdatedAt, again.UpdatedAt)
}

func TestCloseRejectsDraft(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.draftProject(t, testStart.Add(week))

	_, err := f.lifecycle.Close(context.Background(), f.owner, p.ID)
	require.ErrorIs(t, err, shared.ErrInvalidStateTransition)
}

func TestCancelFromEveryOpenState(t *testing.T) {
	deadline := testStart.Add(week)

	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture) *project.Project
		// accepted bid that must come out compensated
		wantCompensated int
	}{
		{
			name: "draft",
			setup: func(t *testing.T, f *fixture) *project.Project {
				return f.draftProject(t, deadline)
			},
		},
		{
			name: "active",
			setup: func(t *testing.T, f *fixture) *project.Project {
				p := f.activeProject(t, deadline)
				f.submit(t, p.ID, 100)
				f.submit(t, p.ID, 90)
				return p
			},
		},
		{
			name: "bidding_closed",
			setup: func(t *testing.T, f *fixture) *project.Project {
				p := f.activeProject(t, deadline)
				f.submit(t, p.ID, 100)
				_, err := f.lifecycle.Close(context.Background(), f.owner, p.ID)
				require.NoError(t, err)
				return p
			},
		},
		{
			name: "awarded",
			setup: func(t *testing.T, f *fixture) *project.Project {
				p := f.activeProject(t, deadline)
				winner := f.submit(t, p.ID, 100)
				f.submit(t, p.ID, 120)
				_, _, err := f.ledger.Accept(context.Background(), f.owner, winner.ID)
				require.NoError(t, err)
				return p
			},
			wantCompensated: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			p := tc.setup(t, f)

			cancelled, err := f.lifecycle.Cancel(context.Background(), f.owner, p.ID, " permit denied ")
			require.NoError(t, err)
			require.Equal(t, project.StatusCancelled, cancelled.Status)
			require.Equal(t, "permit denied", cancelled.CancellationReason)

			bids := f.bids(t, p.ID)
			require.Zero(t, countStatus(bids, bid.StatusPending))
			require.Zero(t, countStatus(bids, bid.StatusAccepted))

			compensated := 0
			for _, b := range bids {
				if b.Compensated {
					compensated++
				}
				if b.Status == bid.StatusRejected && b.Compensated {
					require.Equal(t, reasonCancelledBy+"permit denied", b.RejectionReason)
				}
			}
			require.Equal(t, tc.wantCompensated, compensated)
		})
	}
}

func TestCancelRequiresReasonAndOpenProject(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.activeProject(t, testStart.Add(week))

	_, err := f.lifecycle.Cancel(context.Background(), f.owner, p.ID, "  \t ")
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Equal(t, project.StatusActive, f.project(t, p.ID).Status)

	_, err = f.lifecycle.Cancel(context.Background(), f.owner, p.ID, "budget cut")
	require.NoError(t, err)

	_, err = f.lifecycle.Cancel(context.Background(), f.owner, p.ID, "again")
	require.ErrorIs(t, err, shared.ErrInvalidStateTransition)
}

func TestAwardRequiresClosedBidding(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.activeProject(t, testStart.Add(week))
	b := f.submit(t, p.ID, 100)

	_, _, err := f.lifecycle.Award(context.Background(), f.owner, p.ID, b.ID)
	require.ErrorIs(t, err, shared.ErrInvalidStateTransition)

	_, err = f.lifecycle.Close(context.Background(), f.owner, p.ID)
	require.NoError(t, err)

	_, _, err = f.lifecycle.Award(context.Background(), f.owner, p.ID, uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)

	awarded, accepted, err := f.lifecycle.Award(context.Background(), f.owner, p.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusAwarded, awarded.Status)
	require.Equal(t, bid.StatusAccepted, accepted.Status)
}

func TestComplete(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.activeProject(t, testStart.Add(week))

	_, err := f.lifecycle.Complete(context.Background(), f.owner, p.ID)
	require.ErrorIs(t, err, shared.ErrInvalidStateTransition)

	b := f.submit(t, p.ID, 100)
	_, _, err = f.ledger.Accept(context.Background(), f.owner, b.ID)
	require.NoError(t, err)

	completed, err := f.lifecycle.Complete(context.Background(), f.owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusCompleted, completed.Status)
	require.Equal(t, b.ID, *completed.AwardedBidID)
}

func TestUpdateStatusDispatch(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.draftProject(t, testStart.Add(week))
	ctx := context.Background()

	active, err := f.lifecycle.UpdateStatus(ctx, f.owner, p.ID, inbound.UpdateStatusRequest{Status: project.StatusActive})
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, active.Status)

	closed, err := f.lifecycle.UpdateStatus(ctx, f.owner, p.ID, inbound.UpdateStatusRequest{Status: project.StatusBiddingClosed})
	require.NoError(t, err)
	require.Equal(t, project.StatusBiddingClosed, closed.Status)

	for _, target := range []project.Status{project.StatusAwarded, project.StatusExpired, project.StatusDraft, "bogus"} {
		_, err := f.lifecycle.UpdateStatus(ctx, f.owner, p.ID, inbound.UpdateStatusRequest{Status: target})
		require.ErrorIs(t, err, shared.ErrValidation, string(target))
	}

	_, err = f.lifecycle.UpdateStatus(ctx, f.owner, p.ID, inbound.UpdateStatusRequest{Status: project.StatusCancelled})
	require.ErrorIs(t, err, shared.ErrValidation)

	cancelled, err := f.lifecycle.UpdateStatus(ctx, f.owner, p.ID, inbound.UpdateStatusRequest{Status: project.StatusCancelled, Reason: "scope changed"})
	require.NoError(t, err)
	require.Equal(t, project.StatusCancelled, cancelled.Status)
}

func TestSweepClosesThenExpires(t *testing.T) {
	deadline := testStart.Add(week)
	f := newFixture(t, fixtureOptions{awardWindow: 48 * time.Hour})
	p := f.activeProject(t, deadline)
	f.submit(t, p.ID, 100)
	f.submit(t, p.ID, 80)

	// before the deadline nothing is due
	result, err := f.lifecycle.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, shared.SweepResult{}, result)

	f.clock.Set(deadline)
	result, err = f.lifecycle.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, shared.SweepResult{Scanned: 1, Closed: 1}, result)
	require.Equal(t, project.StatusBiddingClosed, f.project(t, p.ID).Status)
	require.Equal(t, 2, countStatus(f.bids(t, p.ID), bid.StatusPending))

	// inside the award window a second pass changes nothing
	f.clock.Advance(time.Hour)
	result, err = f.lifecycle.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, shared.SweepResult{Scanned: 1}, result)

	f.clock.Set(deadline.Add(48 * time.Hour))
	result, err = f.lifecycle.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, shared.SweepResult{Scanned: 1, Expired: 1}, result)

	require.Equal(t, project.StatusExpired, f.project(t, p.ID).Status)
	bids := f.bids(t, p.ID)
	require.Equal(t, 2, countStatus(bids, bid.StatusRejected))
	for _, b := range bids {
		require.Equal(t, reasonExpired, b.RejectionReason)
	}

	// expired projects are no longer due
	result, err = f.lifecycle.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, shared.SweepResult{}, result)
}

func TestSweepZeroWindowExpiresAtDeadline(t *testing.T) {
	deadline := testStart.Add(week)
	f := newFixture(t, fixtureOptions{})
	p := f.activeProject(t, deadline)
	f.submit(t, p.ID, 100)

	f.clock.Set(deadline)
	outcome, err := f.lifecycle.SweepProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, shared.SweepExpired, outcome)
	require.Equal(t, project.StatusExpired, f.project(t, p.ID).Status)
	require.Zero(t, countStatus(f.bids(t, p.ID), bid.StatusPending))
}

func TestSweepLeavesAwardedAndDraftProjectsAlone(t *testing.T) {
	deadline := testStart.Add(week)
	f := newFixture(t, fixtureOptions{})

	awarded := f.activeProject(t, deadline)
	winner := f.submit(t, awarded.ID, 100)
	_, _, err := f.ledger.Accept(context.Background(), f.owner, winner.ID)
	require.NoError(t, err)

	draft := f.draftProject(t, deadline)

	f.clock.Set(deadline.Add(30 * 24 * time.Hour))
	for _, id := range []uuid.UUID{awarded.ID, draft.ID} {
		outcome, err := f.lifecycle.SweepProject(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, shared.SweepUnchanged, outcome)
	}

	require.Equal(t, project.StatusAwarded, f.project(t, awarded.ID).Status)
	require.Equal(t, project.StatusDraft, f.project(t, draft.ID).Status)
	require.Equal(t, 1, countStatus(f.bids(t, awarded.ID), bid.StatusAccepted))
}

func TestSweepProjectNotYetDue(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.activeProject(t, testStart.Add(week))

	outcome, err := f.lifecycle.SweepProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, shared.SweepUnchanged, outcome)
	require.Equal(t, project.StatusActive, f.project(t, p.ID).Status)
}

func TestListProjectsPaging(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	for i := 0; i < 25; i++ {
		f.draftProject(t, testStart.Add(week))
		f.clock.Advance(time.Second)
	}

	firstPage, err := f.lifecycle.ListProjects(context.Background(), inbound.ListProjectsRequest{})
	require.NoError(t, err)
	require.Len(t, firstPage, defaultPageSize)
	require.True(t, firstPage[0].CreatedAt.After(firstPage[1].CreatedAt))

	secondPage, err := f.lifecycle.ListProjects(context.Background(), inbound.ListProjectsRequest{Page: 2})
	require.NoError(t, err)
	require.Len(t, secondPage, 5)

	capped, err := f.lifecycle.ListProjects(context.Background(), inbound.ListProjectsRequest{PageSize: 1000})
	require.NoError(t, err)
	require.Len(t, capped, 25)

	status := project.Status("unknown")
	_, err = f.lifecycle.ListProjects(context.Background(), inbound.ListProjectsRequest{Status: &status})
	require.ErrorIs(t, err, shared.ErrValidation)

	active := project.StatusActive
	none, err := f.lifecycle.ListProjects(context.Background(), inbound.ListProjectsRequest{Status: &active})
	require.NoError(t, err)
	require.Empty(t, none)
}
