package port

import (
	"context"

	"canteenWeb/internal/modules/menu/domain"
)

type MenuAPI interface {
	ListMenu(ctx context.Context, token string) ([]domain.MenuItem, error)
	CreateMenu(ctx context.Context, token string, form domain.Form) (domain.MenuItem, error)
	UpdateMenu(ctx context.Context, token string, id int, form domain.Form) (domain.MenuItem, error)
	DeleteMenu(ctx context.Context, token string, id int) error
}
