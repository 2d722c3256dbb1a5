package app

import (
	"context"
	"errors"

	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// eventPublisher forwards committed domain events to the sink. A failed
// publish is logged and never fails the operation that produced it.
type eventPublisher struct {
	sink   outbound.EventSink
	logger zerolog.Logger
}

func (p eventPublisher) publish(ctx context.Context, events ...outbound.Event) {
	if p.sink == nil {
		return
	}
	for _, event := range events {
		if err := p.sink.Publish(ctx, event); err != nil {
			p.logger.Error().
				Err(err).
				Str("event_type", string(event.Type)).
				Str("project_id", event.ProjectID.String()).
				Msg("Failed to publish event")
		}
	}
}

// failureEvent logs caller mistakes at warn level and everything else, such
// as storage failures, at error level
func failureEvent(logger zerolog.Logger, err error) *zerolog.Event {
	switch {
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrInvalidStateTransition),
		errors.Is(err, shared.ErrConflict),
		errors.Is(err, shared.ErrDuplicateBid),
		errors.Is(err, shared.ErrNotFound),
		errors.Is(err, shared.ErrForbidden):
		return logger.Warn().Err(err)
	}
	return logger.Error().Err(err)
}
