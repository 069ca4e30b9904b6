package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewDashboardSumsMonthlyIncome(t *testing.T) {
	t.Parallel()

	stats := Stats{
		MonthlyIncome: []MonthlyIncome{
			{Month: "January", Year: 2026, Total: 150000},
			{Month: "February", Year: 2026, Total: 250000},
		},
		AverageIncomePerOrder: 12500,
	}

	dashboard := NewDashboard(stats)
	if !dashboard.TotalIncome.Equal(decimal.NewFromInt(400000)) {
		t.Fatalf("unexpected total: %s", dashboard.TotalIncome)
	}
	if dashboard.TotalIncomeDisplay != "Rp 400,000" {
		t.Fatalf("unexpected display: %s", dashboard.TotalIncomeDisplay)
	}
	if dashboard.AverageDisplay != "Rp 12,500" {
		t.Fatalf("unexpected average: %s", dashboard.AverageDisplay)
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	if err := (Profile{StandName: "Warung Bu Siti", OwnerName: "Siti", Phone: "0812"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Profile{StandName: " "}).Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}
