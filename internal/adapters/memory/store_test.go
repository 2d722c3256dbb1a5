package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)

func seedProject(t *testing.T, s *Store, status project.Status, deadline time.Time) *project.Project {
	t.Helper()
	p := &project.Project{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		Title:           "Deck build",
		Category:        project.CategoryResidential,
		Location:        "Portland, OR",
		BiddingDeadline: deadline,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, s.Projects().Create(context.Background(), p))
	return p
}

func newBid(projectID uuid.UUID, status bid.Status) *bid.Bid {
	return &bid.Bid{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ContractorID: uuid.New(),
		Amount:       100,
		TimelineDays: 7,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	s := NewStore()
	p := seedProject(t, s, project.StatusActive, now.Add(time.Hour))
	boom := errors.New("boom")

	err := s.WithinTransaction(context.Background(), func(ctx context.Context, repos outbound.Repositories) error {
		require.NoError(t, repos.Bids.Create(ctx, newBid(p.ID, bid.StatusPending)))

		inTx, err := repos.Bids.GetByProjectID(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, inTx, 1)

		updated := p.Clone()
		updated.Status = project.StatusBiddingClosed
		require.NoError(t, repos.Projects.UpdateIfStatus(ctx, updated, project.StatusActive))
		return boom
	})
	require.ErrorIs(t, err, boom)

	bids, err := s.Bids().GetByProjectID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Empty(t, bids)

	stored, err := s.Projects().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, stored.Status)
}

func TestTransactionCommits(t *testing.T) {
	s := NewStore()
	p := seedProject(t, s, project.StatusActive, now.Add(time.Hour))

	err := s.WithinTransaction(context.Background(), func(ctx context.Context, repos outbound.Repositories) error {
		return repos.Bids.Create(ctx, newBid(p.ID, bid.StatusPending))
	})
	require.NoError(t, err)

	bids, err := s.Bids().GetByProjectID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestProjectUpdateIfStatus(t *testing.T) {
	s := NewStore()
	p := seedProject(t, s, project.StatusActive, now.Add(time.Hour))

	stale := p.Clone()
	stale.Status = project.StatusCancelled
	err := s.Projects().UpdateIfStatus(context.Background(), stale, project.StatusDraft)
	require.ErrorIs(t, err, shared.ErrConflict)

	missing := p.Clone()
	missing.ID = uuid.New()
	err = s.Projects().UpdateIfStatus(context.Background(), missing, project.StatusActive)
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, s.Projects().UpdateIfStatus(context.Background(), stale, project.StatusActive))
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	s := NewStore()
	p := seedProject(t, s, project.StatusActive, now.Add(time.Hour))

	got, err := s.Projects().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	got.Status = project.StatusExpired

	again, err := s.Projects().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, again.Status)
}

func TestBidCreateConstraints(t *testing.T) {
	s := NewStore()
	p := seedProject(t, s, project.StatusActive, now.Add(time.Hour))
	ctx := context.Background()

	first := newBid(p.ID, bid.StatusPending)
	require.NoError(t, s.Bids().Create(ctx, first))

	require.ErrorIs(t, s.Bids().Create(ctx, first), shared.ErrConflict)

	second := newBid(p.ID, bid.StatusPending)
	second.ContractorID = first.ContractorID
	err := s.Bids().Create(ctx, second)
	var duplicate *shared.DuplicateBidError
	require.ErrorAs(t, err, &duplicate)
	require.Equal(t, first.ID, duplicate.ExistingBidID)

	orphan := newBid(uuid.New(), bid.StatusPending)
	require.ErrorIs(t, s.Bids().Create(ctx, orphan), shared.ErrNotFound)
}

func TestOnlyOneAcceptedBidPerProject(t *testing.T) {
	s := NewStore()
	p := seedProject(t, s, project.StatusBiddingClosed, now.Add(-time.Hour))
	ctx := context.Background()

	a := newBid(p.ID, bid.StatusPending)
	b := newBid(p.ID, bid.StatusPending)
	require.NoError(t, s.Bids().Create(ctx, a))
	require.NoError(t, s.Bids().Create(ctx, b))

	a.Status = bid.StatusAccepted
	require.NoError(t, s.Bids().UpdateIfStatus(ctx, a, bid.StatusPending))

	b.Status = bid.StatusAccepted
	err := s.Bids().UpdateIfStatus(ctx, b, bid.StatusPending)
	require.ErrorIs(t, err, shared.ErrConflict)

	stored, err := s.Bids().GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, bid.StatusPending, stored.Status)
}

func TestListDueForSweep(t *testing.T) {
	s := NewStore()
	late := seedProject(t, s, project.StatusActive, now.Add(-2*time.Hour))
	early := seedProject(t, s, project.StatusBiddingClosed, now.Add(-3*time.Hour))
	seedProject(t, s, project.StatusActive, now.Add(time.Hour))
	seedProject(t, s, project.StatusAwarded, now.Add(-time.Hour))
	seedProject(t, s, project.StatusDraft, now.Add(-time.Hour))
	atDeadline := seedProject(t, s, project.StatusActive, now)

	due, err := s.Projects().ListDueForSweep(context.Background(), now, 10)
	require.NoError(t, err)
	require.Len(t, due, 3)
	require.Equal(t, early.ID, due[0].ID)
	require.Equal(t, late.ID, due[1].ID)
	require.Equal(t, atDeadline.ID, due[2].ID)

	limited, err := s.Projects().ListDueForSweep(context.Background(), now, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestCancelledContextIsRejected(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WithinTransaction(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		t.Fatal("fn must not run")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
