package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/upload"
)

func TestFormValidate(t *testing.T) {
	t.Parallel()

	photo := &upload.File{Filename: "nasi.jpg", Content: []byte{0xff, 0xd8}}
	cases := []struct {
		name     string
		form     Form
		creating bool
		count    int
	}{
		{"valid create", Form{Name: "Nasi Goreng", Price: "12000", Type: "food", Photo: photo}, true, 0},
		{"update without photo", Form{Name: "Es Teh", Price: "3000", Type: "DRINK"}, false, 0},
		{"create without photo", Form{Name: "Es Teh", Price: "3000", Type: "DRINK"}, true, 1},
		{"everything wrong", Form{Price: "-1", Type: "SNACK"}, false, 3},
		{"price not a number", Form{Name: "Bakso", Price: "murah", Type: "FOOD"}, false, 1},
	}

	for _, tc := range cases {
		err := tc.form.Validate(tc.creating)
		if tc.count == 0 {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		var validation *apierr.Validation
		if !errors.As(err, &validation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if len(validation.Messages) != tc.count {
			t.Fatalf("%s: expected %d messages, got %v", tc.name, tc.count, validation.Messages)
		}
	}
}

func TestMenuItemFinalPrice(t *testing.T) {
	t.Parallel()

	item := MenuItem{Price: 20000}
	if !item.FinalPrice().Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("unexpected price %s", item.FinalPrice())
	}
	item.Discount = &AppliedDiscount{Percentage: 15}
	if !item.FinalPrice().Equal(decimal.NewFromInt(17000)) {
		t.Fatalf("unexpected discounted price %s", item.FinalPrice())
	}
}
