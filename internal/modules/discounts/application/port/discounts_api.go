package port

import (
	"context"

	"canteenWeb/internal/modules/discounts/domain"
)

type DiscountsAPI interface {
	ListDiscounts(ctx context.Context, token string) ([]domain.Discount, error)
	GetDiscount(ctx context.Context, token string, id int) (domain.Detail, error)
	CreateDiscount(ctx context.Context, token string, input domain.Input) (domain.Discount, error)
	UpdateDiscount(ctx context.Context, token string, id int, input domain.Input) (domain.Discount, error)
	SetDiscountMenus(ctx context.Context, token string, id int, menuIDs []int) (domain.Detail, error)
	DeleteDiscount(ctx context.Context, token string, id int) error
}
