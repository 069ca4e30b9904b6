package usecase

import (
	"context"
	"errors"
	"fmt"

	"canteenWeb/internal/modules/stands/application/port"
	"canteenWeb/internal/modules/stands/domain"
	"canteenWeb/internal/shared/apierr"
)

// ErrNoStand is returned to stand owners who have not created their stand profile yet.
var ErrNoStand = errors.New("stand profile not created")

// RequireStand loads the caller's stand and turns a 404 into ErrNoStand.
func RequireStand(ctx context.Context, lookup port.StandLookup, token string) (domain.Stand, error) {
	stand, err := lookup.MyStand(ctx, token)
	if errors.Is(err, apierr.ErrNotFound) {
		return domain.Stand{}, fmt.Errorf("%w: %w", ErrNoStand, err)
	}
	return stand, err
}
