package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"canteenWeb/internal/modules/cart/application/port"
	"canteenWeb/internal/modules/cart/domain"
	menu "canteenWeb/internal/modules/menu/domain"
	ordersport "canteenWeb/internal/modules/orders/application/port"
	orders "canteenWeb/internal/modules/orders/domain"
)

var (
	ErrMenuNotFound  = errors.New("menu item not found")
	ErrStandNotFound = errors.New("stand not found")
)

// AddInput is what the catalog sends when a student taps an item.
type AddInput struct {
	StandID int  `json:"standId"`
	MenuID  int  `json:"menuId"`
	Replace bool `json:"replace"`
}

type CartUseCase struct {
	Store     port.Store
	Catalog   port.Catalog
	Orders    port.OrderPlacer
	Publisher ordersport.EventPublisher
	now       func() time.Time
}

func NewCartUseCase(store port.Store, catalog port.Catalog, placer port.OrderPlacer, publisher ordersport.EventPublisher) *CartUseCase {
	return &CartUseCase{Store: store, Catalog: catalog, Orders: placer, Publisher: publisher, now: time.Now}
}

func (uc *CartUseCase) View(ctx context.Context, userID string) (domain.View, error) {
	cart, err := uc.Store.Load(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}
	return cart.View(), nil
}

// Add looks the item up in its stand's menu and puts it in the cart. ErrDifferentStand asks the
// caller to confirm with Replace.
func (uc *CartUseCase) Add(ctx context.Context, token, userID string, in AddInput) (domain.View, error) {
	item, standName, err := uc.lookup(ctx, token, in.StandID, in.MenuID)
	if err != nil {
		return domain.View{}, err
	}
	cart, err := uc.Store.Update(ctx, userID, func(c *domain.Cart) error {
		return c.Add(item, standName, in.Replace)
	})
	if err != nil {
		return domain.View{}, err
	}
	slog.Debug("cart item added", slog.String("userId", userID), slog.Int("menuId", in.MenuID), slog.Int("count", cart.Count()))
	return cart.View(), nil
}

func (uc *CartUseCase) Decrement(ctx context.Context, userID string, menuID int) (domain.View, error) {
	return uc.mutate(ctx, userID, func(c *domain.Cart) error { return c.Decrement(menuID) })
}

func (uc *CartUseCase) Remove(ctx context.Context, userID string, menuID int) (domain.View, error) {
	return uc.mutate(ctx, userID, func(c *domain.Cart) error { return c.Remove(menuID) })
}

func (uc *CartUseCase) Clear(ctx context.Context, userID string) (domain.View, error) {
	if err := uc.Store.Delete(ctx, userID); err != nil {
		return domain.View{}, err
	}
	return domain.New(userID).View(), nil
}

// PlaceOrder submits the cart as one order. Once the API accepted it the ordered quantities
// leave the cart; anything added meanwhile stays.
func (uc *CartUseCase) PlaceOrder(ctx context.Context, token, userID string) (orders.View, error) {
	cart, err := uc.Store.Load(ctx, userID)
	if err != nil {
		return orders.View{}, err
	}
	req, err := cart.PlaceRequest()
	if err != nil {
		return orders.View{}, err
	}

	order, err := uc.Orders.PlaceOrder(ctx, token, req)
	if err != nil {
		slog.Warn("order placement failed", slog.String("userId", userID), slog.Int("standId", req.StandID), slog.Any("error", err))
		return orders.View{}, err
	}
	if order.StandID == 0 {
		order.StandID = req.StandID
	}
	if order.UserID == "" {
		order.UserID = userID
	}
	if order.Status == "" {
		order.Status = orders.StatusPending
	}
	slog.Info("order placed", slog.String("userId", userID), slog.Int("orderId", order.ID), slog.Int("standId", order.StandID))

	if _, err := uc.Store.Update(ctx, userID, func(c *domain.Cart) error {
		c.Deduct(req)
		return nil
	}); err != nil {
		slog.Error("cart clear after order failed", slog.String("userId", userID), slog.Any("error", err))
	}
	if uc.Publisher != nil {
		event := orders.NewCreatedEvent(order, uc.now())
		if err := uc.Publisher.Publish(ctx, event); err != nil {
			slog.Warn("order event publish failed", slog.String("topic", event.Topic()), slog.Int("orderId", order.ID), slog.Any("error", err))
		}
	}
	return orders.NewView(order), nil
}

func (uc *CartUseCase) mutate(ctx context.Context, userID string, fn func(*domain.Cart) error) (domain.View, error) {
	cart, err := uc.Store.Update(ctx, userID, fn)
	if err != nil {
		return domain.View{}, err
	}
	return cart.View(), nil
}

func (uc *CartUseCase) lookup(ctx context.Context, token string, standID, menuID int) (menu.MenuItem, string, error) {
	items, err := uc.Catalog.StandMenu(ctx, token, standID)
	if err != nil {
		return menu.MenuItem{}, "", err
	}
	var item *menu.MenuItem
	for i := range items {
		if items[i].ID == menuID {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return menu.MenuItem{}, "", fmt.Errorf("%w: %d in stand %d", ErrMenuNotFound, menuID, standID)
	}
	if item.StandID == 0 {
		item.StandID = standID
	}

	stands, err := uc.Catalog.ListStands(ctx, token)
	if err != nil {
		return menu.MenuItem{}, "", err
	}
	for _, stand := range stands {
		if stand.ID == standID {
			return *item, stand.StandName, nil
		}
	}
	return menu.MenuItem{}, "", fmt.Errorf("%w: %d", ErrStandNotFound, standID)
}
