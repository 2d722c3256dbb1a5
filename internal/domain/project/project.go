package project

import (
	"strings"
	"time"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a project
type Status string

const (
	StatusDraft         Status = "draft"
	StatusActive        Status = "active"
	StatusBiddingClosed Status = "bidding_closed"
	StatusAwarded       Status = "awarded"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
	StatusExpired       Status = "expired"
)

// transitions lists every legal edge of the state machine
var transitions = map[Status][]Status{
	StatusDraft:         {StatusActive, StatusCancelled},
	StatusActive:        {StatusBiddingClosed, StatusCancelled, StatusExpired},
	StatusBiddingClosed: {StatusAwarded, StatusCancelled, StatusExpired},
	StatusAwarded:       {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusBiddingClosed, StatusAwarded,
		StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true for completed, cancelled and expired
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
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

// Category of construction work
type Category string

const (
	CategoryResidential Category = "residential"
	CategoryCommercial  Category = "commercial"
	CategoryRenovation  Category = "renovation"
	CategoryMaintenance Category = "maintenance"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryResidential, CategoryCommercial, CategoryRenovation, CategoryMaintenance, CategoryOther:
		return true
	}
	return false
}

// Project represents a construction job posted for competitive bidding
type Project struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	OwnerID            uuid.UUID  `json:"owner_id" db:"owner_id"`
	Title              string     `json:"title" db:"title"`
	Description        string     `json:"description" db:"description"`
	Category           Category   `json:"category" db:"category"`
	BudgetMin          *float64   `json:"budget_min,omitempty" db:"budget_min"`
	BudgetMax          *float64   `json:"budget_max,omitempty" db:"budget_max"`
	Location           string     `json:"location" db:"location"`
	BiddingDeadline    time.Time  `json:"bidding_deadline" db:"bidding_deadline"`
	Status             Status     `json:"status" db:"status"`
	CancellationReason string     `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	AwardedBidID       *uuid.UUID `json:"awarded_bid_id,omitempty" db:"awarded_bid_id"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy returns true if the actor owns the project
func (p *Project) IsOwnedBy(actor shared.Actor) bool {
	return p.OwnerID == actor.ID
}

// CanBeManagedBy returns true for the owner and for admins
func (p *Project) CanBeManagedBy(actor shared.Actor) bool {
	return actor.IsAdmin() || p.IsOwnedBy(actor)
}

// AcceptsBids returns true while the project is active and the deadline has
// not been reached
func (p *Project) AcceptsBids(now time.Time) bool {
	return p.Status == StatusActive && now.Before(p.BiddingDeadline)
}

// DeadlinePassed returns true once now is at or after the bidding deadline
func (p *Project) DeadlinePassed(now time.Time) bool {
	return !now.Before(p.BiddingDeadline)
}

// Validate checks the fields required to publish a project
func (p *Project) Validate(now time.Time) error {
	if strings.TrimSpace(p.Title) == "" {
		return shared.NewValidationError("title", "is required")
	}
	if len(p.Title) > 200 {
		return shared.NewValidationError("title", "must be at most 200 characters")
	}
	if !p.Category.Valid() {
		return shared.NewValidationError("category", "must be one of residential, commercial, renovation, maintenance, other")
	}
	if strings.TrimSpace(p.Location) == "" {
		return shared.NewValidationError("location", "is required")
	}
	if err := ValidateBudget(p.BudgetMin, p.BudgetMax); err != nil {
		return err
	}
	return ValidateDeadline(p.BiddingDeadline, now)
}

// ValidateBudget checks min <= max and both non-negative when present
func ValidateBudget(min, max *float64) error {
	if min != nil && *min < 0 {
		return shared.NewValidationError("budget_min", "must be >= 0")
	}
	if max != nil && *max < 0 {
		return shared.NewValidationError("budget_max", "must be >= 0")
	}
	if min != nil && max != nil && *min > *max {
		return shared.NewValidationError("budget_min", "must not exceed budget_max")
	}
	return nil
}

// ValidateDeadline requires the deadline to lie strictly in the future
func ValidateDeadline(deadline, now time.Time) error {
	if deadline.IsZero() {
		return shared.NewValidationError("bidding_deadline", "is required")
	}
	if !deadline.After(now) {
		return shared.NewValidationError("bidding_deadline", "must be in the future")
	}
	return nil
}

// TransitionTo moves the project along a defined edge
func (p *Project) TransitionTo(to Status, operation string, now time.Time) error {
	if !CanTransition(p.Status, to) {
		return p.TransitionError(operation, to)
	}
	p.Status = to
	p.UpdatedAt = now
	return nil
}

// TransitionError builds the error returned when operation is illegal in the
// current state
func (p *Project) TransitionError(operation string, target Status) error {
	return &shared.InvalidStateTransitionError{
		Entity:    shared.EntityProject,
		ID:        p.ID,
		Operation: operation,
		Current:   string(p.Status),
		Target:    string(target),
	}
}

// Clone returns a deep copy
func (p *Project) Clone() *Project {
	c := *p
	if p.BudgetMin != nil {
		v := *p.BudgetMin
		c.BudgetMin = &v
	}
	if p.BudgetMax != nil {
		v := *p.BudgetMax
		c.BudgetMax = &v
	}
	if p.AwardedBidID != nil {
		v := *p.AwardedBidID
		c.AwardedBidID = &v
	}
	return &c
}
