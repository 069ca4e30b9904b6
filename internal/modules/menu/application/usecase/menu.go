package usecase

import (
	"context"
	"log/slog"

	"canteenWeb/internal/modules/menu/application/port"
	"canteenWeb/internal/modules/menu/domain"
	standsport "canteenWeb/internal/modules/stands/application/port"
	standsusecase "canteenWeb/internal/modules/stands/application/usecase"
	stands "canteenWeb/internal/modules/stands/domain"
)

// Listing is the stand menu page.
type Listing struct {
	Stand stands.Stand      `json:"stand"`
	Items []domain.MenuItem `json:"items"`
}

type MenuUseCase struct {
	API    port.MenuAPI
	Stands standsport.StandLookup
}

func NewMenuUseCase(api port.MenuAPI, lookup standsport.StandLookup) *MenuUseCase {
	return &MenuUseCase{API: api, Stands: lookup}
}

func (uc *MenuUseCase) List(ctx context.Context, token string) (Listing, error) {
	stand, err := standsusecase.RequireStand(ctx, uc.Stands, token)
	if err != nil {
		return Listing{}, err
	}
	items, err := uc.API.ListMenu(ctx, token)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Stand: stand, Items: items}, nil
}

func (uc *MenuUseCase) Create(ctx context.Context, token string, form domain.Form) (domain.MenuItem, error) {
	if err := form.Validate(true); err != nil {
		return domain.MenuItem{}, err
	}
	item, err := uc.API.CreateMenu(ctx, token, form)
	if err != nil {
		return domain.MenuItem{}, err
	}
	slog.Info("menu item created", slog.Int("menuId", item.ID), slog.Int("standId", item.StandID))
	return item, nil
}

func (uc *MenuUseCase) Update(ctx context.Context, token string, id int, form domain.Form) (domain.MenuItem, error) {
	if err := form.Validate(false); err != nil {
		return domain.MenuItem{}, err
	}
	item, err := uc.API.UpdateMenu(ctx, token, id, form)
	if err != nil {
		return domain.MenuItem{}, err
	}
	slog.Info("menu item updated", slog.Int("menuId", id))
	return item, nil
}

func (uc *MenuUseCase) Delete(ctx context.Context, token string, id int) error {
	if err := uc.API.DeleteMenu(ctx, token, id); err != nil {
		return err
	}
	slog.Info("menu item deleted", slog.Int("menuId", id))
	return nil
}
