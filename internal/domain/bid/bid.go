package bid

import (
	"time"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/google/uuid"
)

// Status represents the status of a bid
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// accepted -> rejected only happens as a compensation when an awarded
// project is cancelled
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted: {StatusRejected},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is a defined edge
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Bid represents a contractor's priced, timed offer on a project
type Bid struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ProjectID       uuid.UUID `json:"project_id" db:"project_id"`
	ContractorID    uuid.UUID `json:"contractor_id" db:"contractor_id"`
	Amount          float64   `json:"amount" db:"amount"`
	TimelineDays    int       `json:"timeline_days" db:"timeline_days"`
	Proposal        string    `json:"proposal,omitempty" db:"proposal"`
	Status          Status    `json:"status" db:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty" db:"rejection_reason"`
	Compensated     bool      `json:"compensated" db:"compensated"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ValidateOffer checks amount and timeline of a new bid
func ValidateOffer(amount float64, timelineDays int) error {
	if !(amount > 0) {
		return shared.NewValidationError("amount", "must be greater than 0")
	}
	if timelineDays <= 0 {
		return shared.NewValidationError("timeline_days", "must be greater than 0")
	}
	return nil
}

// IsLive returns true while the bid still takes part in the competition
func (b *Bid) IsLive() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

func (b *Bid) IsPending() bool {
	return b.Status == StatusPending
}

func (b *Bid) IsAccepted() bool {
	return b.Status == StatusAccepted
}

func (b *Bid) IsRejected() bool {
	return b.Status == StatusRejected
}

// TransitionTo moves the bid along a defined edge
func (b *Bid) TransitionTo(to Status, operation string, now time.Time) error {
	if !CanTransition(b.Status, to) {
		return b.TransitionError(operation, to)
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}

// Accept marks the bid as accepted
func (b *Bid) Accept(now time.Time) error {
	return b.TransitionTo(StatusAccepted, "accept", now)
}

// Reject marks the bid as rejected with a reason
func (b *Bid) Reject(reason string, now time.Time) error {
	compensated := b.Status == StatusAccepted
	if err := b.TransitionTo(StatusRejected, "reject", now); err != nil {
		return err
	}
	b.RejectionReason = reason
	b.Compensated = compensated
	return nil
}

// Withdraw marks a pending bid as withdrawn by its contractor
func (b *Bid) Withdraw(now time.Time) error {
	if b.Status != StatusPending {
		return b.TransitionError("withdraw", StatusWithdrawn)
	}
	return b.TransitionTo(StatusWithdrawn, "withdraw", now)
}

func (b *Bid) TransitionError(operation string, target Status) error {
	return &shared.InvalidStateTransitionError{
		Entity:    shared.EntityBid,
		ID:        b.ID,
		Operation: operation,
		Current:   string(b.Status),
		Target:    string(target),
	}
}

// Clone returns a copy safe to mutate
func (b *Bid) Clone() *Bid {
	c := *b
	return &c
}
