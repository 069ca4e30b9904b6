package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/money"
	"canteenWeb/internal/shared/upload"
)

type MenuType string

const (
	MenuTypeFood  MenuType = "FOOD"
	MenuTypeDrink MenuType = "DRINK"
)

func (t MenuType) Valid() bool {
	return t == MenuTypeFood || t == MenuTypeDrink
}

// AppliedDiscount is the discount the API attaches to a menu item while it is active.
type AppliedDiscount struct {
	ID         int     `json:"id"`
	StandID    int     `json:"standId"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}

type MenuItem struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Type        MenuType         `json:"type"`
	Photo       string           `json:"photo"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
	StandID     int              `json:"standId"`
	Discount    *AppliedDiscount `json:"discount,omitempty"`
}

func (m MenuItem) DiscountPercentage() float64 {
	if m.Discount == nil {
		return 0
	}
	return m.Discount.Percentage
}

// FinalPrice is the unit price after the active discount.
func (m MenuItem) FinalPrice() decimal.Decimal {
	return money.Discounted(m.Price, m.DiscountPercentage())
}

// Form is the create/update form of a menu item.
type Form struct {
	Name        string
	Description string
	Price       string
	Type        string
	Photo       *upload.File
}

// Validate checks the form; the photo is only mandatory when creating.
func (f Form) Validate(creating bool) error {
	var errs apierr.Collector
	errs.Add(strings.TrimSpace(f.Name) == "", "Name is required")
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	errs.Add(err != nil, "Price must be a number")
	errs.Add(err == nil && price.IsNegative(), "Price must not be negative")
	errs.Add(!MenuType(strings.ToUpper(strings.TrimSpace(f.Type))).Valid(), "Type must be FOOD or DRINK")
	errs.Add(creating && f.Photo.Empty(), "Photo is required")
	return errs.Err()
}

// Fields returns the text fields in the shape the API expects.
func (f Form) Fields() map[string]string {
	return map[string]string{
		"name":        strings.TrimSpace(f.Name),
		"description": strings.TrimSpace(f.Description),
		"price":       strings.TrimSpace(f.Price),
		"type":        strings.ToUpper(strings.TrimSpace(f.Type)),
	}
}
