package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"canteenWeb/internal/shared/money"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusCooking    Status = "COOKING"
	StatusOnDelivery Status = "ON_DELIVERY"
	StatusCompleted  Status = "COMPLETED"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderCompleted    = errors.New("order already completed")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrOrderNotFound     = errors.New("order not found")
)

var ladder = []Status{StatusPending, StatusCooking, StatusOnDelivery, StatusCompleted}

func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range ladder {
		if status == candidate {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// Next returns the status that follows s. COMPLETED and unknown statuses have none.
func Next(s Status) (Status, bool) {
	for i, status := range ladder {
		if status == s && i+1 < len(ladder) {
			return ladder[i+1], true
		}
	}
	return "", false
}

// ValidTransition reports whether to is the single step after from.
func ValidTransition(from, to Status) bool {
	next, ok := Next(from)
	return ok && next == to
}

type OrderItem struct {
	ID       int     `json:"id"`
	OrderID  int     `json:"orderId"`
	MenuID   int     `json:"menuId"`
	MenuName string  `json:"menuName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type StandRef struct {
	StandName string `json:"standName"`
}

type StudentRef struct {
	Name string `json:"name"`
}

type UserRef struct {
	Student StudentRef `json:"student"`
}

type Order struct {
	ID        int         `json:"id"`
	UserID    string      `json:"userId"`
	StandID   int         `json:"standId"`
	Status    Status      `json:"status"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
	Items     []OrderItem `json:"items"`
	Stand     StandRef    `json:"stand"`
	User      UserRef     `json:"user"`
}

// Total is the sum of price times quantity over the order's items.
func (o Order) Total() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(o.Items))
	for _, item := range o.Items {
		amounts = append(amounts, money.LineTotal(item.Price, 0, item.Quantity))
	}
	return money.Sum(amounts...)
}

// Advance moves the order one step along the ladder. Only the immediate next status is accepted.
func (o *Order) Advance(to Status) error {
	if o.Status == StatusCompleted {
		return ErrOrderCompleted
	}
	if !ValidTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	return nil
}

// View decorates an order with its computed total.
type View struct {
	Order
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
	NextStatus   Status          `json:"nextStatus,omitempty"`
}

func NewView(o Order) View {
	total := o.Total()
	next, _ := Next(o.Status)
	return View{Order: o, Total: total, TotalDisplay: money.FormatRupiah(total), NextStatus: next}
}

func NewViews(orders []Order) []View {
	views := make([]View, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewView(o))
	}
	return views
}

// PlaceItem is one line of a new order.
type PlaceItem struct {
	MenuID   int `json:"menuId"`
	Quantity int `json:"quantity"`
}

type PlaceRequest struct {
	StandID int         `json:"standId"`
	Items   []PlaceItem `json:"items"`
}
