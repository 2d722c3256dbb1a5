package app

import (
	"context"
	"testing"
	"time"

	"marketplace-bidding-service/internal/adapters/memory"
	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/inbound"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	clock     *shared.ManualClock
	ledger    *BidLedger
	lifecycle *ProjectLifecycle
	owner     shared.Actor
	admin     shared.Actor
}

type fixtureOptions struct {
	sink        outbound.EventSink
	awardWindow time.Duration
}

func newFixture(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()

	store := memory.NewStore()
	clock := shared.NewManualClock(testStart)
	locks := NewProjectLocks()
	logger := zerolog.Nop()

	ledger := NewBidLedger(BidLedgerParams{
		Projects:   store.Projects(),
		Bids:       store.Bids(),
		Transactor: store,
		Events:     opts.sink,
		Locks:      locks,
		Clock:      clock,
		Logger:     logger,
	})
	lifecycle := NewProjectLifecycle(ProjectLifecycleParams{
		Projects:    store.Projects(),
		Bids:        store.Bids(),
		Transactor:  store,
		Ledger:      ledger,
		Events:      opts.sink,
		Locks:       locks,
		Clock:       clock,
		AwardWindow: opts.awardWindow,
		Logger:      logger,
	})

	return &fixture{
		store:     store,
		clock:     clock,
		ledger:    ledger,
		lifecycle: lifecycle,
		owner:     shared.Actor{ID: uuid.New(), Role: shared.RoleProjectPoster},
		admin:     shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin},
	}
}

func contractor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: shared.RoleContractor}
}

func (f *fixture) draftProject(t *testing.T, deadline time.Time) *project.Project {
	t.Helper()
	p, err := f.lifecycle.CreateProject(context.Background(), f.owner, inbound.CreateProjectRequest{
		Title:           "Kitchen renovation",
		Description:     "Replace cabinets and countertops",
		Category:        project.CategoryRenovation,
		Location:        "Austin, TX",
		BiddingDeadline: deadline,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) activeProject(t *testing.T, deadline time.Time) *project.Project {
	t.Helper()
	p := f.draftProject(t, deadline)
	p, err := f.lifecycle.Activate(context.Background(), f.owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, p.Status)
	return p
}

func (f *fixture) submit(t *testing.T, projectID uuid.UUID, amount float64) *bid.Bid {
	t.Helper()
	b, err := f.ledger.Submit(context.Background(), contractor(), inbound.SubmitBidRequest{
		ProjectID:    projectID,
		Amount:       amount,
		TimelineDays: 30,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) bids(t *testing.T, projectID uuid.UUID) []*bid.Bid {
	t.Helper()
	bids, err := f.store.Bids().GetByProjectID(context.Background(), projectID)
	require.NoError(t, err)
	return bids
}

func (f *fixture) project(t *testing.T, projectID uuid.UUID) *project.Project {
	t.Helper()
	p, err := f.store.Projects().GetByID(context.Background(), projectID)
	require.NoError(t, err)
	return p
}

func countStatus(bids []*bid.Bid, status bid.Status) int {
	n := 0
	for _, b := range bids {
		if b.Status == status {
			n++
		}
	}
	return n
}
