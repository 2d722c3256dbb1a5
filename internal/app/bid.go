package app

import (
	"context"
	"fmt"
	"strings"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/inbound"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	reasonOtherBidAccepted = "another bid was accepted"
	reasonRejectedByOwner  = "rejected by project owner"
)

// BidLedger implements the bid use cases. It is the single writer of bid
// status for a project and keeps at most one accepted bid per project.
type BidLedger struct {
	projects   outbound.ProjectRepository
	bids       outbound.BidRepository
	transactor outbound.Transactor
	locks      *ProjectLocks
	clock      shared.Clock
	events     eventPublisher
	logger     zerolog.Logger
}

type BidLedgerParams struct {
	Projects   outbound.ProjectRepository
	Bids       outbound.BidRepository
	Transactor outbound.Transactor
	Events     outbound.EventSink
	Locks      *ProjectLocks
	Clock      shared.Clock
	Logger     zerolog.Logger
}

// NewBidLedger creates a new bid ledger
func NewBidLedger(params BidLedgerParams) *BidLedger {
	logger := params.Logger.With().Str("component", "bid_ledger").Logger()
	locks := params.Locks
	if locks == nil {
		locks = NewProjectLocks()
	}
	clock := params.Clock
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &BidLedger{
		projects:   params.Projects,
		bids:       params.Bids,
		transactor: params.Transactor,
		locks:      locks,
		clock:      clock,
		events:     eventPublisher{sink: params.Events, logger: logger},
		logger:     logger,
	}
}

var _ inbound.BidService = (*BidLedger)(nil)

// Submit records a new pending bid on an active project
func (l *BidLedger) Submit(ctx context.Context, actor shared.Actor, req inbound.SubmitBidRequest) (*bid.Bid, error) {
	l.logger.Info().
		Str("project_id", req.ProjectID.String()).
		Str("contractor_id", actor.ID.String()).
		Float64("amount", req.Amount).
		Int("timeline_days", req.TimelineDays).
		Msg("Attempting to submit bid")

	if err := bid.ValidateOffer(req.Amount, req.TimelineDays); err != nil {
		l.logger.Warn().Err(err).Str("project_id", req.ProjectID.String()).Msg("Invalid bid offer")
		return nil, err
	}

	unlock := l.locks.Lock(req.ProjectID)
	defer unlock()

	now := l.clock.Now()
	newBid := &bid.Bid{
		ID:           uuid.New(),
		ProjectID:    req.ProjectID,
		ContractorID: actor.ID,
		Amount:       req.Amount,
		TimelineDays: req.TimelineDays,
		Proposal:     strings.TrimSpace(req.Proposal),
		Status:       bid.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := l.transactor.WithinTransaction(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		p, err := repos.Projects.GetForUpdate(ctx, req.ProjectID)
		if err != nil {
			return err
		}

		if !p.AcceptsBids(now) {
			detail := "project is not open for bidding"
			if p.Status == project.StatusActive {
				detail = "bidding deadline has passed"
			}
			return &shared.InvalidStateTransitionError{
				Entity:    shared.EntityProject,
				ID:        p.ID,
				Operation: "submit bid on",
				Current:   string(p.Status),
				Detail:    detail,
			}
		}

		existing, err := repos.Bids.GetByProjectID(ctx, p.ID)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.ContractorID == actor.ID && b.IsLive() {
				return &shared.DuplicateBidError{
					ProjectID:     p.ID,
					ContractorID:  actor.ID,
					ExistingBidID: b.ID,
				}
			}
		}

		return repos.Bids.Create(ctx, newBid)
	})
	if err != nil {
		failureEvent(l.logger, err).
			Str("project_id", req.ProjectID.String()).
			Str("contractor_id", actor.ID.String()).
			Msg("Failed to submit bid")
		return nil, err
	}

	l.events.publish(ctx, bidEvent(outbound.EventBidSubmitted, newBid, actor, map[string]interface{}{
		"amount":        newBid.Amount,
		"timeline_days": newBid.TimelineDays,
	}))

	l.logger.Info().
		Str("bid_id", newBid.ID.String()).
		Str("project_id", newBid.ProjectID.String()).
		Msg("Bid submitted successfully")

	return newBid, nil
}

// Withdraw lets a contractor pull back a pending bid
func (l *BidLedger) Withdraw(ctx context.Context, actor shared.Actor, bidID uuid.UUID) (*bid.Bid, error) {
	current, err := l.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if current.ContractorID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: bid %s belongs to another contractor", shared.ErrForbidden, bidID)
	}

	unlock := l.locks.Lock(current.ProjectID)
	defer unlock()

	now := l.clock.Now()
	var withdrawn *bid.Bid
	err = l.transactor.WithinTransaction(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		b, err := repos.Bids.GetByID(ctx, bidID)
		if err != nil {
			return err
		}
		if err := b.Withdraw(now); err != nil {
			return err
		}
		if err := repos.Bids.UpdateIfStatus(ctx, b, bid.StatusPending); err != nil {
			return err
		}
		withdrawn = b
		return nil
	})
	if err != nil {
		failureEvent(l.logger, err).Str("bid_id", bidID.String()).Msg("Failed to withdraw bid")
		return nil, err
	}

	l.events.publish(ctx, bidEvent(outbound.EventBidWithdrawn, withdrawn, actor, nil))
	l.logger.Info().Str("bid_id", bidID.String()).Msg("Bid withdrawn")

	return withdrawn, nil
}

// Accept awards the project to the given bid
func (l *BidLedger) Accept(ctx context.Context, actor shared.Actor, bidID uuid.UUID) (*project.Project, *bid.Bid, error) {
	target, err := l.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, nil, err
	}
	return l.accept(ctx, actor, target.ProjectID, bidID, false)
}

/*
accept applies the award as one unit of work:
 1. the project must be active or bidding_closed (bidding_closed only when
    requireClosed is set) and must not already hold an accepted bid
 2. the target bid moves pending -> accepted
 3. every other pending bid moves to rejected
 4. the project moves to awarded

Every write is a compare-and-swap on the status read in the same
transaction. A lost race surfaces as a ConflictError and rolls back.
*/
func (l *BidLedger) accept(ctx context.Context, actor shared.Actor, projectID, bidID uuid.UUID, requireClosed bool) (*project.Project, *bid.Bid, error) {
	l.logger.Info().
		Str("project_id", projectID.String()).
		Str("bid_id", bidID.String()).
		Str("actor_id", actor.ID.String()).
		Msg("Attempting to accept bid")

	unlock := l.locks.Lock(projectID)
	defer unlock()

	now := l.clock.Now()
	var (
		awarded  *project.Project
		accepted *bid.Bid
		rejected []*bid.Bid
	)

	err := l.transactor.WithinTransaction(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		p, err := repos.Projects.GetForUpdate(ctx, projectID)
		if err != nil {
			return err
		}
		if !p.CanBeManagedBy(actor) {
			return fmt.Errorf("%w: only the project owner can accept bids", shared.ErrForbidden)
		}

		switch p.Status {
		case project.StatusBiddingClosed:
		case project.StatusActive:
			if requireClosed {
				return p.TransitionError("award", project.StatusAwarded)
			}
		case project.StatusAwarded:
			return shared.NewConflictError(shared.EntityProject, p.ID, "project has already been awarded")
		default:
			return p.TransitionError("award", project.StatusAwarded)
		}

		bids, err := repos.Bids.GetByProjectID(ctx, p.ID)
		if err != nil {
			return err
		}

		var target *bid.Bid
		for _, b := range bids {
			if b.IsAccepted() {
				return shared.NewConflictError(shared.EntityProject, p.ID,
					fmt.Sprintf("bid %s is already accepted", b.ID))
			}
			if b.ID == bidID {
				target = b
			}
		}
		if target == nil {
			return shared.NewNotFoundError(shared.EntityBid, bidID)
		}
		if err := target.Accept(now); err != nil {
			return err
		}

		expected := p.Status
		if p.Status == project.StatusActive {
			if err := p.TransitionTo(project.StatusBiddingClosed, "close", now); err != nil {
				return err
			}
		}
		if err := p.TransitionTo(project.StatusAwarded, "award", now); err != nil {
			return err
		}
		p.AwardedBidID = &target.ID

		if err := repos.Projects.UpdateIfStatus(ctx, p, expected); err != nil {
			return err
		}
		if err := repos.Bids.UpdateIfStatus(ctx, target, bid.StatusPending); err != nil {
			return err
		}
		for _, other := range bids {
			if other.ID == target.ID || !other.IsPending() {
				continue
			}
			if err := other.Reject(reasonOtherBidAccepted, now); err != nil {
				return err
			}
			if err := repos.Bids.UpdateIfStatus(ctx, other, bid.StatusPending); err != nil {
				return err
			}
			rejected = append(rejected, other)
		}

		if err := verifyAward(ctx, repos, p.ID, target.ID); err != nil {
			return err
		}

		awarded = p
		accepted = target
		return nil
	})
	if err != nil {
		failureEvent(l.logger, err).
			Str("project_id", projectID.String()).
			Str("bid_id", bidID.String()).
			Msg("Failed to accept bid")
		return nil, nil, err
	}

	events := []outbound.Event{
		bidEvent(outbound.EventBidAccepted, accepted, actor, map[string]interface{}{"amount": accepted.Amount}),
		projectEvent(outbound.EventProjectAwarded, awarded, actor, map[string]interface{}{
			"bid_id":        accepted.ID.String(),
			"contractor_id": accepted.ContractorID.String(),
			"amount":        accepted.Amount,
		}),
	}
	for _, b := range rejected {
		events = append(events, bidEvent(outbound.EventBidRejected, b, actor, map[string]interface{}{"reason": b.RejectionReason}))
	}
	l.events.publish(ctx, events...)

	l.logger.Info().
		Str("project_id", awarded.ID.String()).
		Str("bid_id", accepted.ID.String()).
		Int("rejected_bids", len(rejected)).
		Msg("Bid accepted and project awarded")

	return awarded, accepted, nil
}

// verifyAward re-reads the project and its bids inside the transaction.
// Anything other than exactly one accepted bid on an awarded project is
// reported and the transaction rolls back.
func verifyAward(ctx context.Context, repos outbound.Repositories, projectID, bidID uuid.UUID) error {
	p, err := repos.Projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.Status != project.StatusAwarded || p.AwardedBidID == nil || *p.AwardedBidID != bidID {
		return fmt.Errorf("%w: project %s is %q after award of bid %s", shared.ErrInvariantViolation, projectID, p.Status, bidID)
	}

	bids, err := repos.Bids.GetByProjectID(ctx, projectID)
	if err != nil {
		return err
	}
	acceptedCount := 0
	for _, b := range bids {
		if b.IsAccepted() {
			acceptedCount++
			if b.ID != bidID {
				return fmt.Errorf("%w: bid %s accepted alongside %s", shared.ErrInvariantViolation, b.ID, bidID)
			}
		}
		if b.IsPending() {
			return fmt.Errorf("%w: bid %s still pending on awarded project %s", shared.ErrInvariantViolation, b.ID, projectID)
		}
	}
	if acceptedCount != 1 {
		return fmt.Errorf("%w: project %s has %d accepted bids", shared.ErrInvariantViolation, projectID, acceptedCount)
	}
	return nil
}

// Reject turns down a single pending bid. Rejecting an already rejected bid
// returns it unchanged.
func (l *BidLedger) Reject(ctx context.Context, actor shared.Actor, bidID uuid.UUID, reason string) (*bid.Bid, error) {
	current, err := l.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = reasonRejectedByOwner
	}

	unlock := l.locks.Lock(current.ProjectID)
	defer unlock()

	now := l.clock.Now()
	var (
		result  *bid.Bid
		changed bool
	)
	err = l.transactor.WithinTransaction(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		p, err := repos.Projects.GetForUpdate(ctx, current.ProjectID)
		if err != nil {
			return err
		}
		if !p.CanBeManagedBy(actor) {
			return fmt.Errorf("%w: only the project owner can reject bids", shared.ErrForbidden)
		}

		b, err := repos.Bids.GetByID(ctx, bidID)
		if err != nil {
			return err
		}
		if b.IsRejected() {
			result = b
			return nil
		}
		if !b.IsPending() {
			return b.TransitionError("reject", bid.StatusRejected)
		}
		if err := b.Reject(reason, now); err != nil {
			return err
		}
		if err := repos.Bids.UpdateIfStatus(ctx, b, bid.StatusPending); err != nil {
			return err
		}
		result = b
		changed = true
		return nil
	})
	if err != nil {
		failureEvent(l.logger, err).Str("bid_id", bidID.String()).Msg("Failed to reject bid")
		return nil, err
	}

	if changed {
		l.events.publish(ctx, bidEvent(outbound.EventBidRejected, result, actor, map[string]interface{}{"reason": result.RejectionReason}))
		l.logger.Info().Str("bid_id", bidID.String()).Msg("Bid rejected")
	}

	return result, nil
}

// GetBid returns a bid visible to the actor
func (l *BidLedger) GetBid(ctx context.Context, actor shared.Actor, bidID uuid.UUID) (*bid.Bid, error) {
	b, err := l.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || b.ContractorID == actor.ID {
		return b, nil
	}

	p, err := l.projects.GetByID(ctx, b.ProjectID)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(actor) {
		return nil, fmt.Errorf("%w: bid %s is not visible to this user", shared.ErrForbidden, bidID)
	}
	return b, nil
}

// ListForProject returns every bid for owners and admins, and only the
// caller's own bids for anyone else
func (l *BidLedger) ListForProject(ctx context.Context, actor shared.Actor, projectID uuid.UUID) ([]*bid.Bid, error) {
	p, err := l.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	bids, err := l.bids.GetByProjectID(ctx, projectID)
	if err != nil {
		l.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("Failed to list bids")
		return nil, err
	}
	if p.CanBeManagedBy(actor) {
		return bids, nil
	}

	own := make([]*bid.Bid, 0, 1)
	for _, b := range bids {
		if b.ContractorID == actor.ID {
			own = append(own, b)
		}
	}
	return own, nil
}

// ListForContractor returns the caller's bids across all projects
func (l *BidLedger) ListForContractor(ctx context.Context, actor shared.Actor) ([]*bid.Bid, error) {
	return l.bids.GetByContractorID(ctx, actor.ID)
}

func bidEvent(eventType outbound.EventType, b *bid.Bid, actor shared.Actor, data map[string]interface{}) outbound.Event {
	id := b.ID
	if data == nil {
		data = map[string]interface{}{}
	}
	data["status"] = string(b.Status)
	data["contractor_id"] = b.ContractorID.String()
	return outbound.Event{
		Type:      eventType,
		ProjectID: b.ProjectID,
		BidID:     &id,
		ActorID:   actor.ID,
		Data:      data,
		Timestamp: b.UpdatedAt,
	}
}

func projectEvent(eventType outbound.EventType, p *project.Project, actor shared.Actor, data map[string]interface{}) outbound.Event {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["status"] = string(p.Status)
	return outbound.Event{
		Type:      eventType,
		ProjectID: p.ID,
		ActorID:   actor.ID,
		Data:      data,
		Timestamp: p.UpdatedAt,
	}
}
