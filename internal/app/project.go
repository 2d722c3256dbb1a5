package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/inbound"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPage       = 1
	defaultPageSize   = 20
	maxPageSize       = 100
	sweepBatchSize    = 500
	reasonExpired     = "project expired"
	reasonCancelledBy = "project cancelled: "
)

// DefaultAwardWindow is how long an owner may still award after the bidding
// deadline before the sweep expires the project
const DefaultAwardWindow = 14 * 24 * time.Hour

// ProjectLifecycle implements the project use cases and the deadline sweep
type ProjectLifecycle struct {
	projects    outbound.ProjectRepository
	bids        outbound.BidRepository
	transactor  outbound.Transactor
	ledger      *BidLedger
	locks       *ProjectLocks
	clock       shared.Clock
	awardWindow time.Duration
	events      eventPublisher
	logger      zerolog.Logger
}

type ProjectLifecycleParams struct {
	Projects   outbound.ProjectRepository
	Bids       outbound.BidRepository
	Transactor outbound.Transactor
	Ledger     *BidLedger
	Events     outbound.EventSink
	Locks      *ProjectLocks
	Clock      shared.Clock
	// AwardWindow of zero expires a project as soon as its deadline passes
	AwardWindow time.Duration
	Logger      zerolog.Logger
}

// NewProjectLifecycle creates a new project lifecycle service. The ledger
// must share the same locks so award and accept serialize together.
func NewProjectLifecycle(params ProjectLifecycleParams) *ProjectLifecycle {
	logger := params.Logger.With().Str("component", "project_lifecycle").Logger()
	locks := params.Locks
	if locks == nil && params.Ledger != nil {
		locks = params.Ledger.locks
	}
	if locks == nil {
		locks = NewProjectLocks()
	}
	clock := params.Clock
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &ProjectLifecycle{
		projects:    params.Projects,
		bids:        params.Bids,
		transactor:  params.Transactor,
		ledger:      params.Ledger,
		locks:       locks,
		clock:       clock,
		awardWindow: params.AwardWindow,
		events:      eventPublisher{sink: params.Events, logger: logger},
		logger:      logger,
	}
}

var _ inbound.ProjectService = (*ProjectLifecycle)(nil)

// CreateProject stores a new draft project owned by the actor
func (service *ProjectLifecycle) CreateProject(ctx context.Context, actor shared.Actor, req inbound.CreateProjectRequest) (*project.Project, error) {
	service.logger.Info().
		Str("owner_id", actor.ID.String()).
		Str("category", string(req.Category)).
		Time("bidding_deadline", req.BiddingDeadline).
		Msg("Attempting to create project")

	now := service.clock.Now()
	p := &project.Project{
		ID:              uuid.New(),
		OwnerID:         actor.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Category:        req.Category,
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		Location:        strings.TrimSpace(req.Location),
		BiddingDeadline: req.BiddingDeadline.UTC(),
		Status:          project.StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := p.Validate(now); err != nil {
		service.logger.Warn().Err(err).Msg("Invalid project")
		return nil, err
	}

	if err := service.projects.Create(ctx, p); err != nil {
		service.logger.Error().Err(err).Str("project_id", p.ID.String()).Msg("Failed to create project")
		return nil, err
	}

	service.logger.Info().Str("project_id", p.ID.String()).Msg("Project created successfully")
	return p, nil
}

func (service *ProjectLifecycle) GetProject(ctx context.Context, projectID uuid.UUID) (*project.Project, error) {
	return service.projects.GetByID(ctx, projectID)
}

// ListProjects returns one page of projects, newest first
func (service *ProjectLifecycle) ListProjects(ctx context.Context, req inbound.ListProjectsRequest) ([]*project.Project, error) {
	filter := outbound.ProjectFilter{
		OwnerID:  req.OwnerID,
		Status:   req.Status,
		Category: req.Category,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, shared.NewValidationError("status", "unknown project status")
	}
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, shared.NewValidationError("category", "unknown project category")
	}
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return service.projects.List(ctx, filter)
}

// Activate publishes a draft project for bidding
func (service *ProjectLifecycle) Activate(ctx context.Context, actor shared.Actor, projectID uuid.UUID) (*project.Project, error) {
	return service.mutate(ctx, actor, projectID, "activate",
		func(ctx context.Context, repos outbound.Repositories, p *project.Project, now time.Time) ([]outbound.Event, error) {
			if p.Status != project.StatusDraft {
				return nil, p.TransitionError("activate", project.StatusActive)
			}
			if err := p.Validate(now); err != nil {
				return nil, err
			}
			if err := p.TransitionTo(project.StatusActive, "activate", now); err != nil {
				return nil, err
			}
			return []outbound.Event{projectEvent(outbound.EventProjectActivated, p, actor, map[string]interface{}{
				"bidding_deadline": p.BiddingDeadline,
			})}, nil
		})
}

// ExtendDeadline moves the bidding deadline of an active project further out
func (service *ProjectLifecycle) ExtendDeadline(ctx context.Context, actor shared.Actor, projectID uuid.UUID, newDeadline time.Time) (*project.Project, error) {
	newDeadline = newDeadline.UTC()
	return service.mutate(ctx, actor, projectID, "extend deadline of",
		func(ctx context.Context, repos outbound.Repositories, p *project.Project, now time.Time) ([]outbound.Event, error) {
			if p.Status != project.StatusActive {
				return nil, &shared.InvalidStateTransitionError{
					Entity:    shared.EntityProject,
					ID:        p.ID,
					Operation: "extend deadline of",
					Current:   string(p.Status),
				}
			}
			if p.DeadlinePassed(now) {
				return nil, &shared.InvalidStateTransitionError{
					Entity:    shared.EntityProject,
					ID:        p.ID,
					Operation: "extend deadline of",
					Current:   string(p.Status),
					Detail:    "bidding deadline has passed",
				}
			}
			if !newDeadline.After(p.BiddingDeadline) {
				return nil, shared.NewValidationError("bidding_deadline", "must be later than the current deadline")
			}
			if err := project.ValidateDeadline(newDeadline, now); err != nil {
				return nil, err
			}

			previous := p.BiddingDeadline
			p.BiddingDeadline = newDeadline
			p.UpdatedAt = now
			return []outbound.Event{projectEvent(outbound.EventProjectDeadlineExtended, p, actor, map[string]interface{}{
				"previous_deadline": previous,
				"bidding_deadline":  newDeadline,
			})}, nil
		})
}

// Close ends bidding early. Closing an already closed project is a no-op.
func (service *ProjectLifecycle) Close(ctx context.Context, actor shared.Actor, projectID uuid.UUID) (*project.Project, error) {
	return service.mutate(ctx, actor, projectID, "close",
		func(ctx context.Context, repos outbound.Repositories, p *project.Project, now time.Time) ([]outbound.Event, error) {
			if p.Status == project.StatusBiddingClosed {
				return nil, nil
			}
			if err := p.TransitionTo(project.StatusBiddingClosed, "close", now); err != nil {
				return nil, err
			}
			return []outbound.Event{projectEvent(outbound.EventProjectClosed, p, actor, map[string]interface{}{
				"trigger": "owner",
			})}, nil
		})
}

// Cancel moves a non-terminal project to cancelled. Pending bids are
// rejected and an accepted bid is rejected as a compensation.
func (service *ProjectLifecycle) Cancel(ctx context.Context, actor shared.Actor, projectID uuid.UUID, reason string) (*project.Project, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("reason", "is required")
	}

	return service.mutate(ctx, actor, projectID, "cancel",
		func(ctx context.Context, repos outbound.Repositories, p *project.Project, now time.Time) ([]outbound.Event, error) {
			if p.Status.IsTerminal() {
				return nil, p.TransitionError("cancel", project.StatusCancelled)
			}

			rejected, err := rejectOpenBids(ctx, repos, p.ID, reasonCancelledBy+reason, now)
			if err != nil {
				return nil, err
			}

			if err := p.TransitionTo(project.StatusCancelled, "cancel", now); err != nil {
				return nil, err
			}
			p.CancellationReason = reason

			events := []outbound.Event{projectEvent(outbound.EventProjectCancelled, p, actor, map[string]interface{}{
				"reason":        reason,
				"rejected_bids": len(rejected),
			})}
			for _, b := range rejected {
				events = append(events, bidEvent(outbound.EventBidRejected, b, actor, map[string]interface{}{
					"reason":      b.RejectionReason,
					"compensated": b.Compensated,
				}))
			}
			return events, nil
		})
}

// Complete marks the awarded work as delivered
func (service *ProjectLifecycle) Complete(ctx context.Context, actor shared.Actor, projectID uuid.UUID) (*project.Project, error) {
	return service.mutate(ctx, actor, projectID, "complete",
		func(ctx context.Context, repos outbound.Repositories, p *project.Project, now time.Time) ([]outbound.Event, error) {
			if err := p.TransitionTo(project.StatusCompleted, "complete", now); err != nil {
				return nil, err
			}
			data := map[string]interface{}{}
			if p.AwardedBidID != nil {
				data["bid_id"] = p.AwardedBidID.String()
			}
			return []outbound.Event{projectEvent(outbound.EventProjectCompleted, p, actor, data)}, nil
		})
}

// Award accepts bidID on a project whose bidding is already closed
func (service *ProjectLifecycle) Award(ctx context.Context, actor shared.Actor, projectID, bidID uuid.UUID) (*project.Project, *bid.Bid, error) {
	return service.ledger.accept(ctx, actor, projectID, bidID, true)
}

// UpdateStatus dispatches a requested target status to its operation
func (service *ProjectLifecycle) UpdateStatus(ctx context.Context, actor shared.Actor, projectID uuid.UUID, req inbound.UpdateStatusRequest) (*project.Project, error) {
	switch req.Status {
	case project.StatusActive:
		return service.Activate(ctx, actor, projectID)
	case project.StatusBiddingClosed:
		return service.Close(ctx, actor, projectID)
	case project.StatusCancelled:
		return service.Cancel(ctx, actor, projectID, req.Reason)
	case project.StatusCompleted:
		return service.Complete(ctx, actor, projectID)
	case project.StatusAwarded:
		return nil, shared.NewValidationError("status", "awarded is set by accepting a bid")
	default:
		return nil, shared.NewValidationError("status", fmt.Sprintf("cannot move a project to %q", req.Status))
	}
}

// DueForSweep lists the projects whose deadline has passed and that may
// still need closing or expiring
func (service *ProjectLifecycle) DueForSweep(ctx context.Context) ([]uuid.UUID, error) {
	due, err := service.projects.ListDueForSweep(ctx, service.clock.Now(), sweepBatchSize)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to list projects due for sweep")
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(due))
	for _, p := range due {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// SweepProject closes an active project past its deadline and expires one
// that outlived the award window. Anything else is left untouched.
func (service *ProjectLifecycle) SweepProject(ctx context.Context, projectID uuid.UUID) (shared.SweepOutcome, error) {
	outcome := shared.SweepUnchanged
	_, err := service.mutate(ctx, shared.SystemActor, projectID, "sweep",
		func(ctx context.Context, repos outbound.Repositories, p *project.Project, now time.Time) ([]outbound.Event, error) {
			if p.Status != project.StatusActive && p.Status != project.StatusBiddingClosed {
				return nil, nil
			}
			if !p.DeadlinePassed(now) {
				return nil, nil
			}

			if !now.Before(p.BiddingDeadline.Add(service.awardWindow)) {
				rejected, err := rejectOpenBids(ctx, repos, p.ID, reasonExpired, now)
				if err != nil {
					return nil, err
				}
				if err := p.TransitionTo(project.StatusExpired, "expire", now); err != nil {
					return nil, err
				}
				outcome = shared.SweepExpired

				events := []outbound.Event{projectEvent(outbound.EventProjectExpired, p, shared.SystemActor, map[string]interface{}{
					"rejected_bids": len(rejected),
				})}
				for _, b := range rejected {
					events = append(events, bidEvent(outbound.EventBidRejected, b, shared.SystemActor, map[string]interface{}{
						"reason": b.RejectionReason,
					}))
				}
				return events, nil
			}

			if p.Status == project.StatusActive {
				if err := p.TransitionTo(project.StatusBiddingClosed, "close", now); err != nil {
					return nil, err
				}
				outcome = shared.SweepClosed
				return []outbound.Event{projectEvent(outbound.EventProjectClosed, p, shared.SystemActor, map[string]interface{}{
					"trigger": "deadline",
				})}, nil
			}
			return nil, nil
		})
	if err != nil {
		return shared.SweepUnchanged, err
	}
	return outcome, nil
}

// Sweep runs one sequential pass over every project due for sweep
func (service *ProjectLifecycle) Sweep(ctx context.Context) (shared.SweepResult, error) {
	var result shared.SweepResult
	ids, err := service.DueForSweep(ctx)
	if err != nil {
		return result, err
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome, err := service.SweepProject(ctx, id)
		if err != nil {
			result.Scanned++
			result.Failed++
			continue
		}
		result.Add(outcome)
	}
	return result, nil
}

// projectMutation changes p in place inside the transaction and returns the
// events to publish. No events means nothing changed and nothing is written.
type projectMutation func(ctx context.Context, repos outbound.Repositories, p *project.Project, now time.Time) ([]outbound.Event, error)

func (service *ProjectLifecycle) mutate(ctx context.Context, actor shared.Actor, projectID uuid.UUID, operation string, fn projectMutation) (*project.Project, error) {
	service.logger.Debug().
		Str("project_id", projectID.String()).
		Str("actor_id", actor.ID.String()).
		Str("operation", operation).
		Msg("Applying project operation")

	unlock := service.locks.Lock(projectID)
	defer unlock()

	now := service.clock.Now()
	var (
		result *project.Project
		events []outbound.Event
	)
	err := service.transactor.WithinTransaction(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		p, err := repos.Projects.GetForUpdate(ctx, projectID)
		if err != nil {
			return err
		}
		if !p.CanBeManagedBy(actor) {
			return fmt.Errorf("%w: only the project owner can %s project %s", shared.ErrForbidden, operation, projectID)
		}

		expected := p.Status
		changes, err := fn(ctx, repos, p, now)
		if err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := repos.Projects.UpdateIfStatus(ctx, p, expected); err != nil {
				return err
			}
		}
		result = p
		events = changes
		return nil
	})
	if err != nil {
		failureEvent(service.logger, err).
			Str("project_id", projectID.String()).
			Str("operation", operation).
			Msgf("Failed to %s project", operation)
		return nil, err
	}

	if len(events) > 0 {
		service.events.publish(ctx, events...)
		service.logger.Info().
			Str("project_id", projectID.String()).
			Str("operation", operation).
			Str("status", string(result.Status)).
			Msg("Project updated")
	}
	return result, nil
}

// rejectOpenBids rejects every pending bid and compensates an accepted one
func rejectOpenBids(ctx context.Context, repos outbound.Repositories, projectID uuid.UUID, reason string, now time.Time) ([]*bid.Bid, error) {
	bids, err := repos.Bids.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var rejected []*bid.Bid
	for _, b := range bids {
		if !b.IsLive() {
			continue
		}
		expected := b.Status
		if err := b.Reject(reason, now); err != nil {
			return nil, err
		}
		if err := repos.Bids.UpdateIfStatus(ctx, b, expected); err != nil {
			return nil, err
		}
		rejected = append(rejected, b)
	}
	return rejected, nil
}
