package port

import (
	"context"
	"errors"

	"canteenWeb/internal/modules/cart/domain"
	menu "canteenWeb/internal/modules/menu/domain"
	stands "canteenWeb/internal/modules/stands/domain"
)

var ErrStoreConflict = errors.New("cart changed concurrently")

// Store persists one cart per user. Load returns an empty cart when none exists.
type Store interface {
	Load(ctx context.Context, userID string) (*domain.Cart, error)
	// Update applies fn to the user's cart and persists the result atomically.
	// When fn fails nothing is written.
	Update(ctx context.Context, userID string, fn func(*domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, userID string) error
}

// Catalog looks up what can be added to a cart.
type Catalog interface {
	ListStands(ctx context.Context, token string) ([]stands.Stand, error)
	StandMenu(ctx context.Context, token string, standID int) ([]menu.MenuItem, error)
}
