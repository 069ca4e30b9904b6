package canteenapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	cartport "canteenWeb/internal/modules/cart/application/port"
	"canteenWeb/internal/modules/orders/application/port"
	"canteenWeb/internal/modules/orders/domain"
)

func (c *Client) ListOrders(ctx context.Context, token string, filter domain.DateFilter) ([]domain.Order, error) {
	orders := []domain.Order{}
	_, err := c.call(ctx, token, http.MethodGet, "/orders", filter.Query(), nil, &orders)
	return orders, err
}

func (c *Client) PlaceOrder(ctx context.Context, token string, req domain.PlaceRequest) (domain.Order, error) {
	var order domain.Order
	envelope, err := c.call(ctx, token, http.MethodPost, "/orders", nil, req, &order)
	if err != nil {
		return order, err
	}
	if envelope.StatusCode != http.StatusCreated {
		return order, fmt.Errorf("place order: unexpected status %d", envelope.StatusCode)
	}
	return order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, id int, status domain.Status) (domain.Order, error) {
	var order domain.Order
	_, err := c.call(ctx, token, http.MethodPatch, "/orders/"+strconv.Itoa(id), nil, map[string]domain.Status{"status": status}, &order)
	return order, err
}

func (c *Client) OrderReceipt(ctx context.Context, token string, id int) (port.Receipt, error) {
	content, contentType, err := c.download(ctx, token, fmt.Sprintf("/orders/%d/receipt", id))
	if err != nil {
		return port.Receipt{}, err
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return port.Receipt{
		Filename:    fmt.Sprintf("receipt-order-%d.pdf", id),
		ContentType: contentType,
		Content:     content,
	}, nil
}

var (
	_ port.OrdersAPI       = (*Client)(nil)
	_ cartport.OrderPlacer = (*Client)(nil)
	_ cartport.Catalog     = (*Client)(nil)
)
