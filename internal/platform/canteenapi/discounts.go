package canteenapi

import (
	"context"
	"net/http"
	"strconv"

	"canteenWeb/internal/modules/discounts/application/port"
	"canteenWeb/internal/modules/discounts/domain"
)

func discountPath(id int) string {
	return "/discounts/" + strconv.Itoa(id)
}

func (c *Client) ListDiscounts(ctx context.Context, token string) ([]domain.Discount, error) {
	discounts := []domain.Discount{}
	_, err := c.call(ctx, token, http.MethodGet, "/discounts", nil, nil, &discounts)
	return discounts, err
}

func (c *Client) GetDiscount(ctx context.Context, token string, id int) (domain.Detail, error) {
	var detail domain.Detail
	_, err := c.call(ctx, token, http.MethodGet, discountPath(id), nil, nil, &detail)
	return detail, err
}

func (c *Client) CreateDiscount(ctx context.Context, token string, input domain.Input) (domain.Discount, error) {
	var discount domain.Discount
	_, err := c.call(ctx, token, http.MethodPost, "/discounts", nil, input, &discount)
	return discount, err
}

func (c *Client) UpdateDiscount(ctx context.Context, token string, id int, input domain.Input) (domain.Discount, error) {
	var discount domain.Discount
	_, err := c.call(ctx, token, http.MethodPatch, discountPath(id), nil, input, &discount)
	return discount, err
}

func (c *Client) SetDiscountMenus(ctx context.Context, token string, id int, menuIDs []int) (domain.Detail, error) {
	if menuIDs == nil {
		menuIDs = []int{}
	}
	var detail domain.Detail
	_, err := c.call(ctx, token, http.MethodPatch, discountPath(id), nil, map[string][]int{"menus": menuIDs}, &detail)
	return detail, err
}

func (c *Client) DeleteDiscount(ctx context.Context, token string, id int) error {
	_, err := c.call(ctx, token, http.MethodDelete, discountPath(id), nil, nil, nil)
	return err
}

var _ port.DiscountsAPI = (*Client)(nil)
