package canteenapi

import (
	"context"
	"net/http"
	"strconv"

	"canteenWeb/internal/modules/menu/application/port"
	"canteenWeb/internal/modules/menu/domain"
)

func (c *Client) ListMenu(ctx context.Context, token string) ([]domain.MenuItem, error) {
	items := []domain.MenuItem{}
	_, err := c.call(ctx, token, http.MethodGet, "/menu", nil, nil, &items)
	return items, err
}

func (c *Client) CreateMenu(ctx context.Context, token string, form domain.Form) (domain.MenuItem, error) {
	return c.submitMenu(ctx, token, http.MethodPost, "/menu", form)
}

func (c *Client) UpdateMenu(ctx context.Context, token string, id int, form domain.Form) (domain.MenuItem, error) {
	return c.submitMenu(ctx, token, http.MethodPatch, "/menu/"+strconv.Itoa(id), form)
}

func (c *Client) submitMenu(ctx context.Context, token, method, endpoint string, form domain.Form) (domain.MenuItem, error) {
	var item domain.MenuItem
	body, err := newMultipart(form.Fields(), "photo", form.Photo)
	if err != nil {
		return item, err
	}
	_, err = c.call(ctx, token, method, endpoint, nil, body, &item)
	return item, err
}

func (c *Client) DeleteMenu(ctx context.Context, token string, id int) error {
	_, err := c.call(ctx, token, http.MethodDelete, "/menu/"+strconv.Itoa(id), nil, nil, nil)
	return err
}

var _ port.MenuAPI = (*Client)(nil)
