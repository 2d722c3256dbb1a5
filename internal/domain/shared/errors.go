package shared

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error categories. Typed errors below unwrap to one of these so callers can
// branch with errors.Is and still reach the details through errors.As.
var (
	ErrValidation             = errors.New("validation failed")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrConflict               = errors.New("conflict")
	ErrDuplicateBid           = errors.New("duplicate bid")
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("forbidden")
	ErrInvariantViolation     = errors.New("invariant violation")
)

// Entity names used in error details
const (
	EntityProject = "project"
	EntityBid     = "bid"
)

// ValidationError reports malformed or out-of-range input
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvalidStateTransitionError reports an operation that is not legal in the
// entity's current lifecycle state. Current is surfaced to the caller.
type InvalidStateTransitionError struct {
	Entity    string
	ID        uuid.UUID
	Operation string
	Current   string
	Target    string
	Detail    string
}

func (e *InvalidStateTransitionError) Error() string {
	var msg string
	if e.Target == "" {
		msg = fmt.Sprintf("invalid state transition: cannot %s %s %s in status %q",
			e.Operation, e.Entity, e.ID, e.Current)
	} else {
		msg = fmt.Sprintf("invalid state transition: cannot %s %s %s from %q to %q",
			e.Operation, e.Entity, e.ID, e.Current, e.Target)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *InvalidStateTransitionError) Unwrap() error { return ErrInvalidStateTransition }

// ConflictError reports a lost race. The caller should refetch and decide.
type ConflictError struct {
	Entity string
	ID     uuid.UUID
	Reason string
}

func NewConflictError(entity string, id uuid.UUID, reason string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s %s: %s", e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// DuplicateBidError reports a second live bid from the same contractor
type DuplicateBidError struct {
	ProjectID     uuid.UUID
	ContractorID  uuid.UUID
	ExistingBidID uuid.UUID
}

func (e *DuplicateBidError) Error() string {
	return fmt.Sprintf("contractor %s already has live bid %s on project %s",
		e.ContractorID, e.ExistingBidID, e.ProjectID)
}

func (e *DuplicateBidError) Unwrap() error { return ErrDuplicateBid }

// NotFoundError reports a referenced project or bid that does not exist
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func NewNotFoundError(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
