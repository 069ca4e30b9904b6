package port

import (
	"context"

	"canteenWeb/internal/modules/orders/domain"
)

// Receipt is the PDF the API renders for an order.
type Receipt struct {
	Filename    string
	ContentType string
	Content     []byte
}

type OrdersAPI interface {
	ListOrders(ctx context.Context, token string, filter domain.DateFilter) ([]domain.Order, error)
	PlaceOrder(ctx context.Context, token string, req domain.PlaceRequest) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, id int, status domain.Status) (domain.Order, error)
	OrderReceipt(ctx context.Context, token string, id int) (Receipt, error)
}

// EventPublisher fans order events out to connected browsers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
