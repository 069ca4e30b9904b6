package handler

import (
	"context"
	"strings"

	"canteenWeb/internal/modules/realtime/application/port"
	"canteenWeb/internal/modules/realtime/application/usecase"
	"canteenWeb/internal/modules/realtime/domain"
)

// OrderEventsHandler forwards order records consumed from the broker to the connected clients.
type OrderEventsHandler struct {
	topic       string
	broadcastUC *usecase.BroadcastUseCase
}

func NewOrderEventsHandler(topic string, broadcastUC *usecase.BroadcastUseCase) *OrderEventsHandler {
	return &OrderEventsHandler{topic: strings.TrimSpace(topic), broadcastUC: broadcastUC}
}

func (h *OrderEventsHandler) Topic() string { return h.topic }

func (h *OrderEventsHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg.Topic == "" && msg.Entity != "" && msg.Action != "" {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}
	h.broadcastUC.Fanout(ctx, msg)
	return nil
}

var _ port.TopicHandler = (*OrderEventsHandler)(nil)
