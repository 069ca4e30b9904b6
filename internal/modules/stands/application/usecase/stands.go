package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	menu "canteenWeb/internal/modules/menu/domain"
	"canteenWeb/internal/modules/stands/application/port"
	"canteenWeb/internal/modules/stands/domain"
	"canteenWeb/internal/shared/apierr"
)

// MenuLoadFailed is shown on a catalog entry whose menu could not be fetched.
const MenuLoadFailed = "Failed to fetch menu items"

const catalogConcurrency = 4

type StandsUseCase struct {
	API port.StandsAPI
}

func NewStandsUseCase(api port.StandsAPI) *StandsUseCase {
	return &StandsUseCase{API: api}
}

// Profile returns the caller's stand, or nil when it has not been created yet.
func (uc *StandsUseCase) Profile(ctx context.Context, token string) (*domain.Stand, error) {
	stand, err := uc.API.MyStand(ctx, token)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stand, nil
}

// SaveProfile creates the stand on first save and updates it afterwards.
func (uc *StandsUseCase) SaveProfile(ctx context.Context, token string, profile domain.Profile) (domain.Stand, bool, error) {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return domain.Stand{}, false, err
	}

	existing, err := uc.Profile(ctx, token)
	if err != nil {
		return domain.Stand{}, false, err
	}
	if existing == nil {
		stand, err := uc.API.CreateStand(ctx, token, profile)
		if err != nil {
			return domain.Stand{}, false, err
		}
		slog.Info("stand profile created", slog.Int("standId", stand.ID))
		return stand, true, nil
	}

	stand, err := uc.API.UpdateStand(ctx, token, profile)
	if err != nil {
		return domain.Stand{}, false, err
	}
	slog.Info("stand profile updated", slog.Int("standId", stand.ID))
	return stand, false, nil
}

// Dashboard builds the statistics page for the caller's stand.
func (uc *StandsUseCase) Dashboard(ctx context.Context, token string) (domain.Dashboard, error) {
	if _, err := RequireStand(ctx, uc.API, token); err != nil {
		return domain.Dashboard{}, err
	}
	stats, err := uc.API.StandStats(ctx, token)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.NewDashboard(stats), nil
}

func (uc *StandsUseCase) Stands(ctx context.Context, token string) ([]domain.Stand, error) {
	return uc.API.ListStands(ctx, token)
}

func (uc *StandsUseCase) Menu(ctx context.Context, token string, standID int) ([]menu.MenuItem, error) {
	return uc.API.StandMenu(ctx, token, standID)
}

// Catalog lists every stand with its menu. A stand whose menu fails to load is kept with MenuError set.
func (uc *StandsUseCase) Catalog(ctx context.Context, token string) ([]domain.StandWithMenu, error) {
	stands, err := uc.API.ListStands(ctx, token)
	if err != nil {
		return nil, err
	}

	catalog := make([]domain.StandWithMenu, len(stands))
	sem := make(chan struct{}, catalogConcurrency)
	var wg sync.WaitGroup
	for i, stand := range stands {
		catalog[i] = domain.StandWithMenu{Stand: stand, Menu: []menu.MenuItem{}}
		wg.Add(1)
		go func(entry *domain.StandWithMenu) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			items, err := uc.API.StandMenu(ctx, token, entry.ID)
			if err != nil {
				slog.Warn("stand menu fetch failed", slog.Int("standId", entry.ID), slog.Any("error", err))
				entry.MenuError = MenuLoadFailed
				return
			}
			entry.Menu = items
		}(&catalog[i])
	}
	wg.Wait()
	return catalog, nil
}
