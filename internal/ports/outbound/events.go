package outbound

//go:generate mockgen -destination=mocks/mock_events.go -package=mocks . EventSink

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event
type EventType string

const (
	EventProjectActivated        EventType = "project.activated"
	EventProjectDeadlineExtended EventType = "project.deadline_extended"
	EventProjectClosed           EventType = "project.closed"
	EventProjectAwarded          EventType = "project.awarded"
	EventProjectCompleted        EventType = "project.completed"
	EventProjectCancelled        EventType = "project.cancelled"
	EventProjectExpired          EventType = "project.expired"
	EventBidSubmitted            EventType = "bid.submitted"
	EventBidAccepted             EventType = "bid.accepted"
	EventBidRejected             EventType = "bid.rejected"
	EventBidWithdrawn            EventType = "bid.withdrawn"
)

// Event is a domain event emitted after a state change commits
type Event struct {
	Type      EventType              `json:"type"`
	ProjectID uuid.UUID              `json:"project_id"`
	BidID     *uuid.UUID             `json:"bid_id,omitempty"`
	ActorID   uuid.UUID              `json:"actor_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventSink receives domain events. Transport is the sink's concern.
type EventSink interface {
	Publish(ctx context.Context, event Event) error
}
