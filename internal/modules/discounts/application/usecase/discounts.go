package usecase

import (
	"context"
	"log/slog"

	"canteenWeb/internal/modules/discounts/application/port"
	"canteenWeb/internal/modules/discounts/domain"
	menuport "canteenWeb/internal/modules/menu/application/port"
	menu "canteenWeb/internal/modules/menu/domain"
	standsport "canteenWeb/internal/modules/stands/application/port"
	standsusecase "canteenWeb/internal/modules/stands/application/usecase"
)

// Overview is the discounts page: every discount plus the stand's menu to pick from.
type Overview struct {
	Discounts []domain.Discount `json:"discounts"`
	Menus     []menu.MenuItem   `json:"menus"`
}

type DiscountsUseCase struct {
	API    port.DiscountsAPI
	Menu   menuport.MenuAPI
	Stands standsport.StandLookup
}

func NewDiscountsUseCase(api port.DiscountsAPI, menuAPI menuport.MenuAPI, lookup standsport.StandLookup) *DiscountsUseCase {
	return &DiscountsUseCase{API: api, Menu: menuAPI, Stands: lookup}
}

func (uc *DiscountsUseCase) Overview(ctx context.Context, token string) (Overview, error) {
	if _, err := standsusecase.RequireStand(ctx, uc.Stands, token); err != nil {
		return Overview{}, err
	}
	discounts, err := uc.API.ListDiscounts(ctx, token)
	if err != nil {
		return Overview{}, err
	}
	menus, err := uc.Menu.ListMenu(ctx, token)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Discounts: discounts, Menus: menus}, nil
}

func (uc *DiscountsUseCase) Detail(ctx context.Context, token string, id int) (domain.Detail, error) {
	return uc.API.GetDiscount(ctx, token, id)
}

// Create stores the discount and then attaches the selected menus, if any.
func (uc *DiscountsUseCase) Create(ctx context.Context, token string, input domain.Input, menuIDs []int) (domain.Detail, error) {
	if err := input.Validate(); err != nil {
		return domain.Detail{}, err
	}
	discount, err := uc.API.CreateDiscount(ctx, token, input)
	if err != nil {
		return domain.Detail{}, err
	}
	slog.Info("discount created", slog.Int("discountId", discount.ID))
	if len(menuIDs) == 0 {
		return domain.Detail{Discount: discount}, nil
	}
	return uc.API.SetDiscountMenus(ctx, token, discount.ID, menuIDs)
}

func (uc *DiscountsUseCase) Update(ctx context.Context, token string, id int, input domain.Input) (domain.Discount, error) {
	if err := input.Validate(); err != nil {
		return domain.Discount{}, err
	}
	discount, err := uc.API.UpdateDiscount(ctx, token, id, input)
	if err != nil {
		return domain.Discount{}, err
	}
	slog.Info("discount updated", slog.Int("discountId", id))
	return discount, nil
}

// SetMenus replaces the menus the discount applies to.
func (uc *DiscountsUseCase) SetMenus(ctx context.Context, token string, id int, menuIDs []int) (domain.Detail, error) {
	return uc.API.SetDiscountMenus(ctx, token, id, menuIDs)
}

// ToggleMenu flips one menu in the discount's current selection and saves it.
func (uc *DiscountsUseCase) ToggleMenu(ctx context.Context, token string, id, menuID int) (domain.Detail, error) {
	detail, err := uc.API.GetDiscount(ctx, token, id)
	if err != nil {
		return domain.Detail{}, err
	}
	return uc.API.SetDiscountMenus(ctx, token, id, domain.ToggleMenu(detail.MenuIDs(), menuID))
}

func (uc *DiscountsUseCase) Delete(ctx context.Context, token string, id int) error {
	if err := uc.API.DeleteDiscount(ctx, token, id); err != nil {
		return err
	}
	slog.Info("discount deleted", slog.Int("discountId", id))
	return nil
}
