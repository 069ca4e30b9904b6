package usecase

import (
	"context"
	"log/slog"

	ordersport "canteenWeb/internal/modules/orders/application/port"
	orders "canteenWeb/internal/modules/orders/domain"
	"canteenWeb/internal/modules/realtime/application/port"
	"canteenWeb/internal/modules/realtime/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	uc.broadcaster.Broadcast(ctx, msg)
}

// Fanout delivers an order message to the student and the stand it concerns.
func (uc *BroadcastUseCase) Fanout(ctx context.Context, msg *domain.Message) {
	recipients := domain.RecipientTopics(msg)
	if len(recipients) == 0 {
		slog.Debug("order message without recipients", slog.String("topic", msg.Topic), slog.String("resourceId", msg.ResourceID))
		return
	}
	for _, topic := range recipients {
		delivery := *msg
		delivery.Topic = topic
		uc.Execute(ctx, &delivery)
	}
}

// Publish broadcasts an order event in process. It serves when no broker is configured.
func (uc *BroadcastUseCase) Publish(ctx context.Context, event orders.Event) error {
	uc.Fanout(ctx, domain.FromOrderEvent(event))
	return nil
}

var _ ordersport.EventPublisher = (*BroadcastUseCase)(nil)
