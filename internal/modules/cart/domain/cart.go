package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	menu "canteenWeb/internal/modules/menu/domain"
	orders "canteenWeb/internal/modules/orders/domain"
	"canteenWeb/internal/shared/money"
)

var (
	ErrDifferentStand = errors.New("item belongs to a different stand")
	ErrItemNotInCart  = errors.New("invalid item")
	ErrEmptyCart      = errors.New("cart is empty")
)

type CartItem struct {
	menu.MenuItem
	Quantity  int    `json:"quantity"`
	StandName string `json:"standName"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return money.LineTotal(i.Price, i.DiscountPercentage(), i.Quantity)
}

type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

func New(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// StandID is the stand of the first row, or zero for an empty cart.
func (c *Cart) StandID() int {
	if c.IsEmpty() {
		return 0
	}
	return c.Items[0].StandID
}

func (c *Cart) index(menuID int) int {
	for i, item := range c.Items {
		if item.ID == menuID {
			return i
		}
	}
	return -1
}

// Add increments the row for item or appends it with quantity 1. Items from another stand are
// refused unless replace is set, in which case the cart is emptied first.
func (c *Cart) Add(item menu.MenuItem, standName string, replace bool) error {
	if !c.IsEmpty() && c.StandID() != item.StandID {
		if !replace {
			return ErrDifferentStand
		}
		c.Clear()
	}
	if idx := c.index(item.ID); idx >= 0 {
		c.Items[idx].Quantity++
		return nil
	}
	c.Items = append(c.Items, CartItem{MenuItem: item, Quantity: 1, StandName: standName})
	return nil
}

// Decrement removes one unit and drops the row when it reaches zero.
func (c *Cart) Decrement(menuID int) error {
	idx := c.index(menuID)
	if idx < 0 {
		return ErrItemNotInCart
	}
	c.Items[idx].Quantity--
	if c.Items[idx].Quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}
	return nil
}

func (c *Cart) Remove(menuID int) error {
	idx := c.index(menuID)
	if idx < 0 {
		return ErrItemNotInCart
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Total is the discount-aware sum of all rows.
func (c *Cart) Total() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(c.Items))
	for _, item := range c.Items {
		amounts = append(amounts, item.LineTotal())
	}
	return money.Sum(amounts...)
}

func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// PlaceRequest turns the cart into the body of POST /orders.
func (c *Cart) PlaceRequest() (orders.PlaceRequest, error) {
	if c.IsEmpty() {
		return orders.PlaceRequest{}, ErrEmptyCart
	}
	req := orders.PlaceRequest{StandID: c.StandID(), Items: make([]orders.PlaceItem, 0, len(c.Items))}
	for _, item := range c.Items {
		req.Items = append(req.Items, orders.PlaceItem{MenuID: item.ID, Quantity: item.Quantity})
	}
	return req, nil
}

// Deduct takes the quantities of a placed order out of the cart. Units added after the order
// was built stay in the cart.
func (c *Cart) Deduct(req orders.PlaceRequest) {
	if c.StandID() != req.StandID {
		return
	}
	for _, placed := range req.Items {
		idx := c.index(placed.MenuID)
		if idx < 0 {
			continue
		}
		c.Items[idx].Quantity -= placed.Quantity
		if c.Items[idx].Quantity <= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		}
	}
}

// View is the cart drawer view model.
type View struct {
	Items        []CartItem      `json:"items"`
	StandID      int             `json:"standId,omitempty"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
}

func (c *Cart) View() View {
	total := c.Total()
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return View{Items: items, StandID: c.StandID(), Count: c.Count(), Total: total, TotalDisplay: money.FormatRupiah(total)}
}
