package port

import (
	"context"

	menu "canteenWeb/internal/modules/menu/domain"
	"canteenWeb/internal/modules/stands/domain"
)

// StandLookup resolves the stand owned by the caller. A missing stand surfaces as apierr.ErrNotFound.
type StandLookup interface {
	MyStand(ctx context.Context, token string) (domain.Stand, error)
}

type StandsAPI interface {
	StandLookup
	ListStands(ctx context.Context, token string) ([]domain.Stand, error)
	StandMenu(ctx context.Context, token string, standID int) ([]menu.MenuItem, error)
	CreateStand(ctx context.Context, token string, profile domain.Profile) (domain.Stand, error)
	UpdateStand(ctx context.Context, token string, profile domain.Profile) (domain.Stand, error)
	StandStats(ctx context.Context, token string) (domain.Stats, error)
}
