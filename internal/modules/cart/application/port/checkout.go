package port

import (
	"context"

	orders "canteenWeb/internal/modules/orders/domain"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, token string, req orders.PlaceRequest) (orders.Order, error)
}
