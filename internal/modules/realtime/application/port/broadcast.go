package port

import (
	"context"

	"canteenWeb/internal/modules/realtime/domain"
)

// Broadcaster sends messages to the websocket clients subscribed to msg.Topic.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles broker records of one topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
