package canteenapi

import (
	"context"
	"net/http"
	"strconv"

	menu "canteenWeb/internal/modules/menu/domain"
	"canteenWeb/internal/modules/stands/application/port"
	"canteenWeb/internal/modules/stands/domain"
)

func (c *Client) ListStands(ctx context.Context, token string) ([]domain.Stand, error) {
	stands := []domain.Stand{}
	_, err := c.call(ctx, token, http.MethodGet, "/stands", nil, nil, &stands)
	return stands, err
}

func (c *Client) StandMenu(ctx context.Context, token string, standID int) ([]menu.MenuItem, error) {
	items := []menu.MenuItem{}
	_, err := c.call(ctx, token, http.MethodGet, "/menu/stand/"+strconv.Itoa(standID), nil, nil, &items)
	return items, err
}

func (c *Client) MyStand(ctx context.Context, token string) (domain.Stand, error) {
	var stand domain.Stand
	_, err := c.call(ctx, token, http.MethodGet, "/stands/me", nil, nil, &stand)
	return stand, err
}

func (c *Client) CreateStand(ctx context.Context, token string, profile domain.Profile) (domain.Stand, error) {
	var stand domain.Stand
	_, err := c.call(ctx, token, http.MethodPost, "/stands", nil, profile, &stand)
	return stand, err
}

func (c *Client) UpdateStand(ctx context.Context, token string, profile domain.Profile) (domain.Stand, error) {
	var stand domain.Stand
	_, err := c.call(ctx, token, http.MethodPatch, "/stands/me", nil, profile, &stand)
	return stand, err
}

func (c *Client) StandStats(ctx context.Context, token string) (domain.Stats, error) {
	var stats domain.Stats
	_, err := c.call(ctx, token, http.MethodGet, "/stands/stats", nil, nil, &stats)
	return stats, err
}

var _ port.StandsAPI = (*Client)(nil)
