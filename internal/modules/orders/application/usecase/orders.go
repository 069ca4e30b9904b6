package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"canteenWeb/internal/modules/orders/application/port"
	"canteenWeb/internal/modules/orders/domain"
	standsport "canteenWeb/internal/modules/stands/application/port"
	standsusecase "canteenWeb/internal/modules/stands/application/usecase"
)

// Listing is an orders page: the orders plus the filters that produced them.
type Listing struct {
	Orders []domain.View       `json:"orders"`
	Month  int                 `json:"month,omitempty"`
	Year   int                 `json:"year,omitempty"`
	Status domain.StatusFilter `json:"status,omitempty"`
	Years  []int               `json:"years"`
}

type OrdersUseCase struct {
	API       port.OrdersAPI
	Stands    standsport.StandLookup
	Publisher port.EventPublisher
	now       func() time.Time
}

func NewOrdersUseCase(api port.OrdersAPI, lookup standsport.StandLookup, publisher port.EventPublisher) *OrdersUseCase {
	return &OrdersUseCase{API: api, Stands: lookup, Publisher: publisher, now: time.Now}
}

// StandOrders lists the caller's stand orders. The date filter goes to the API, the status filter is applied here.
func (uc *OrdersUseCase) StandOrders(ctx context.Context, token string, filter domain.DateFilter, status domain.StatusFilter) (Listing, error) {
	now := uc.now()
	if err := filter.Validate(now); err != nil {
		return Listing{}, err
	}
	if _, err := standsusecase.RequireStand(ctx, uc.Stands, token); err != nil {
		return Listing{}, err
	}
	orders, err := uc.API.ListOrders(ctx, token, filter)
	if err != nil {
		return Listing{}, err
	}
	if status == "" {
		status = domain.StatusFilterAll
	}
	return Listing{
		Orders: domain.NewViews(status.Apply(orders)),
		Month:  filter.Month,
		Year:   filter.Year,
		Status: status,
		Years:  domain.Years(now),
	}, nil
}

func (uc *OrdersUseCase) StudentOrders(ctx context.Context, token string, filter domain.DateFilter) (Listing, error) {
	now := uc.now()
	if err := filter.Validate(now); err != nil {
		return Listing{}, err
	}
	orders, err := uc.API.ListOrders(ctx, token, filter)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Orders: domain.NewViews(orders), Month: filter.Month, Year: filter.Year, Years: domain.Years(now)}, nil
}

// AdvanceStatus moves one stand order to its next status. A non-empty target must be exactly that next status.
func (uc *OrdersUseCase) AdvanceStatus(ctx context.Context, token string, orderID int, target domain.Status) (domain.View, error) {
	if _, err := standsusecase.RequireStand(ctx, uc.Stands, token); err != nil {
		return domain.View{}, err
	}
	orders, err := uc.API.ListOrders(ctx, token, domain.DateFilter{})
	if err != nil {
		return domain.View{}, err
	}

	var order *domain.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return domain.View{}, fmt.Errorf("%w: %d", domain.ErrOrderNotFound, orderID)
	}

	previous := order.Status
	if target == "" {
		next, ok := domain.Next(previous)
		if !ok {
			return domain.View{}, domain.ErrOrderCompleted
		}
		target = next
	}
	if err := order.Advance(target); err != nil {
		return domain.View{}, err
	}

	updated, err := uc.API.UpdateOrderStatus(ctx, token, orderID, target)
	if err != nil {
		return domain.View{}, err
	}
	if updated.ID == 0 {
		updated = *order
	}
	if updated.Status == "" {
		updated.Status = target
	}
	slog.Info("order status advanced", slog.Int("orderId", orderID), slog.String("from", string(previous)), slog.String("to", string(target)))

	uc.publish(ctx, domain.NewStatusChangedEvent(mergeRefs(updated, *order), previous, uc.now()))
	return domain.NewView(updated), nil
}

func (uc *OrdersUseCase) Receipt(ctx context.Context, token string, orderID int) (port.Receipt, error) {
	return uc.API.OrderReceipt(ctx, token, orderID)
}

func (uc *OrdersUseCase) publish(ctx context.Context, event domain.Event) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.Publish(ctx, event); err != nil {
		slog.Warn("order event publish failed", slog.String("topic", event.Topic()), slog.Int("orderId", event.OrderID), slog.Any("error", err))
	}
}

// mergeRefs fills ids the PATCH response may omit from the order as it was listed.
func mergeRefs(updated, listed domain.Order) domain.Order {
	if updated.UserID == "" {
		updated.UserID = listed.UserID
	}
	if updated.StandID == 0 {
		updated.StandID = listed.StandID
	}
	return updated
}
