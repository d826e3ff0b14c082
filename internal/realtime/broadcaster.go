package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

const channelName = "boteco:changes"

// Broadcaster fans collection-change events out through Redis pub/sub so
// every running instance sees writes made by any of them.
type Broadcaster struct {
	client *redis.Client
	logger *slog.Logger
}

func NewBroadcaster(client *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{client: client, logger: logger}
}

var _ portssvc.EventPublisher = (*Broadcaster)(nil)

// Publish is best effort: a down broker must never fail the write that
// triggered the event, so errors are logged and swallowed.
func (b *Broadcaster) Publish(ctx context.Context, event portssvc.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal change event", slog.String("error", err.Error()))
		return
	}
	if err := b.client.Publish(ctx, channelName, payload).Err(); err != nil {
		b.logger.Warn("Failed to publish change event",
			slog.String("collection", event.Collection),
			slog.String("entity_id", event.EntityID),
			slog.String("error", err.Error()))
	}
}

// Subscribe returns a channel of change events and a cancel function. The
// channel closes when cancel is called or the context ends.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan portssvc.ChangeEvent, func()) {
	pubsub := b.client.Subscribe(ctx, channelName)
	events := make(chan portssvc.ChangeEvent, 16)

	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event portssvc.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("Dropping malformed change event", slog.String("error", err.Error()))
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, func() { pubsub.Close() } //nolint:errcheck
}

// NoopPublisher drops all events. Used when no Redis address is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

var _ portssvc.EventPublisher = (*NoopPublisher)(nil)

func (NoopPublisher) Publish(ctx context.Context, event portssvc.ChangeEvent) {}
