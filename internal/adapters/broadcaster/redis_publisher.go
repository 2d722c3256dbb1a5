package broadcaster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ChannelName returns the pub/sub channel carrying a project's events
func ChannelName(projectID uuid.UUID) string {
	return fmt.Sprintf("project:%s", projectID.String())
}

// RedisPublisher implements outbound.EventSink using Redis pub/sub
type RedisPublisher struct {
	client *redis.Client
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	logger zerolog.Logger
}

type RedisPublisherParams struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

func NewRedisPublisher(params RedisPublisherParams) *RedisPublisher {
	return &RedisPublisher{
		client: params.RedisClient,
		subs:   make(map[*Subscription]struct{}),
		logger: params.Logger.With().Str("component", "redis_publisher").Logger(),
	}
}

var _ outbound.EventSink = (*RedisPublisher)(nil)

// Publish sends the event as JSON on the project's channel
func (r *RedisPublisher) Publish(ctx context.Context, event outbound.Event) error {
	channelName := ChannelName(event.ProjectID)

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	result := r.client.Publish(ctx, channelName, eventJSON)
	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis: %w", err)
	}

	r.logger.Debug().
		Str("channel_name", channelName).
		Str("event_type", string(event.Type)).
		Int64("subscriber_count", result.Val()).
		Msg("Published event")

	return nil
}

// Subscription delivers the events of one project until closed
type Subscription struct {
	pubsub *redis.PubSub
	events chan outbound.Event
	done   chan struct{}
	once   sync.Once
	owner  *RedisPublisher
}

// Subscribe listens on a project's channel. Events that arrive while the
// buffer is full are dropped.
func (r *RedisPublisher) Subscribe(ctx context.Context, projectID uuid.UUID, buffer int) (*Subscription, error) {
	pubsub := r.client.Subscribe(ctx, ChannelName(projectID))
	// wait for the subscription to be confirmed so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to Redis channel: %w", err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan outbound.Event, buffer),
		done:   make(chan struct{}),
		owner:  r,
	}

	r.mu.Lock()
	r.subs[sub] = struct{}{}
	r.mu.Unlock()

	go r.listen(sub, projectID)
	return sub, nil
}

// Events returns the channel of received events. It is closed with the
// subscription.
func (s *Subscription) Events() <-chan outbound.Event {
	return s.events
}

// Close stops the subscription
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()

		s.owner.mu.Lock()
		delete(s.owner.subs, s)
		s.owner.mu.Unlock()
	})
	return err
}

func (r *RedisPublisher) listen(sub *Subscription, projectID uuid.UUID) {
	defer close(sub.events)
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error().Interface("panic", err).Str("project_id", projectID.String()).Msg("Redis listener panic")
		}
	}()

	ch := sub.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event outbound.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("Failed to unmarshal Redis message")
				continue
			}

			select {
			case sub.events <- event:
			default:
				r.logger.Warn().Str("project_id", projectID.String()).Msg("Subscriber buffer full, dropping event")
			}

		case <-sub.done:
			return
		}
	}
}

// Close ends every open subscription and the Redis client
func (r *RedisPublisher) Close() error {
	r.mu.Lock()
	subs := make([]*Subscription, 0, len(r.subs))
	for sub := range r.subs {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			r.logger.Error().Err(err).Msg("Error closing Redis subscription")
		}
	}

	return r.client.Close()
}
