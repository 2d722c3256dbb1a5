package broadcaster

import (
	"context"
	"errors"

	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// LogSink writes every event to the structured log
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "event_log").Logger()}
}

func (s *LogSink) Publish(ctx context.Context, event outbound.Event) error {
	e := s.logger.Info().
		Str("event_type", string(event.Type)).
		Str("project_id", event.ProjectID.String()).
		Str("actor_id", event.ActorID.String()).
		Time("timestamp", event.Timestamp)
	if event.BidID != nil {
		e = e.Str("bid_id", event.BidID.String())
	}
	e.Fields(event.Data).Msg("Domain event")
	return nil
}

// FanOut delivers each event to every sink. All sinks are tried; their
// errors are joined.
type FanOut []outbound.EventSink

func (f FanOut) Publish(ctx context.Context, event outbound.Event) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
