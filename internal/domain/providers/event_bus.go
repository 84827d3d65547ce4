package providers

import (
	"context"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
)

// EventChannelInteractions is the pub/sub channel carrying recorded
// user-career interactions.
const EventChannelInteractions = "interactions:recorded"

// EventBus publishes and subscribes to interaction events. Publishing is
// best effort: a bus failure never fails the write that triggered it.
type EventBus interface {
	// Publish publishes an event to all subscribers of the channel.
	Publish(ctx context.Context, channel string, event *entities.InteractionEvent) error

	// Subscribe subscribes to events on a channel.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.InteractionEvent, error)

	// Close closes the event bus and all subscriptions.
	Close() error
}
