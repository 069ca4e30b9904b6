package infrastructure

import (
	"context"
	"sync"

	"canteenWeb/internal/modules/cart/application/port"
	"canteenWeb/internal/modules/cart/domain"
)

// MemoryStore keeps carts in process. Carts are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*domain.Cart)}
}

func (s *MemoryStore) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOf(userID), nil
}

func (s *MemoryStore) Update(ctx context.Context, userID string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.copyOf(userID)
	if err := fn(cart); err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		delete(s.carts, userID)
	} else {
		s.carts[userID] = cloneCart(cart)
	}
	return cart, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

func (s *MemoryStore) copyOf(userID string) *domain.Cart {
	if cart, ok := s.carts[userID]; ok {
		return cloneCart(cart)
	}
	return domain.New(userID)
}

func cloneCart(cart *domain.Cart) *domain.Cart {
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	return &domain.Cart{UserID: cart.UserID, Items: items}
}

var _ port.Store = (*MemoryStore)(nil)
