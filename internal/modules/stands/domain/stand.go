package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	menu "canteenWeb/internal/modules/menu/domain"
	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/money"
)

type Stand struct {
	ID        int    `json:"id"`
	StandName string `json:"standName"`
	OwnerName string `json:"ownerName"`
	Phone     string `json:"phone"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// StandWithMenu is one entry of the student catalog.
type StandWithMenu struct {
	Stand
	Menu []menu.MenuItem `json:"menu"`
	// MenuError is set when the stand's menu could not be loaded.
	MenuError string `json:"menuError,omitempty"`
}

type Profile struct {
	StandName string `json:"standName"`
	OwnerName string `json:"ownerName"`
	Phone     string `json:"phone"`
}

func (p Profile) Normalize() Profile {
	return Profile{
		StandName: strings.TrimSpace(p.StandName),
		OwnerName: strings.TrimSpace(p.OwnerName),
		Phone:     strings.TrimSpace(p.Phone),
	}
}

func (p Profile) Validate() error {
	var errs apierr.Collector
	errs.Add(strings.TrimSpace(p.StandName) == "", "Stand name is required")
	errs.Add(strings.TrimSpace(p.OwnerName) == "", "Owner name is required")
	errs.Add(strings.TrimSpace(p.Phone) == "", "Phone is required")
	return errs.Err()
}

type MonthlyIncome struct {
	Month string  `json:"month"`
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

type TopSellingMenu struct {
	MenuID      int     `json:"menuId"`
	MenuName    string  `json:"menuName"`
	TotalSold   int     `json:"totalSold"`
	TotalIncome float64 `json:"totalIncome"`
}

type Stats struct {
	MonthlyIncome         []MonthlyIncome  `json:"monthlyIncome"`
	TotalOrders           int              `json:"totalOrders"`
	AverageIncomePerOrder float64          `json:"averageIncomePerOrder"`
	TotalItemsSold        int              `json:"totalItemsSold"`
	TopSellingMenus       []TopSellingMenu `json:"topSellingMenus"`
}

// TotalIncome sums the monthly income the API reports for the last 12 months.
func (s Stats) TotalIncome() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(s.MonthlyIncome))
	for _, month := range s.MonthlyIncome {
		amounts = append(amounts, decimal.NewFromFloat(month.Total))
	}
	return money.Sum(amounts...)
}

// Dashboard is the stats page view model.
type Dashboard struct {
	Stats
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalIncomeDisplay string          `json:"totalIncomeDisplay"`
	AverageDisplay     string          `json:"averageIncomePerOrderDisplay"`
}

func NewDashboard(stats Stats) Dashboard {
	total := stats.TotalIncome()
	return Dashboard{
		Stats:              stats,
		TotalIncome:        total,
		TotalIncomeDisplay: money.FormatRupiah(total),
		AverageDisplay:     money.FormatRupiah(decimal.NewFromFloat(stats.AverageIncomePerOrder)),
	}
}
