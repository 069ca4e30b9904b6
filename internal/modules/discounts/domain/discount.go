package domain

import (
	"strings"
	"time"

	menu "canteenWeb/internal/modules/menu/domain"
	"canteenWeb/internal/shared/apierr"
)

type Discount struct {
	ID         int     `json:"id"`
	StandID    int     `json:"standId"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}

type Detail struct {
	Discount
	Menus []menu.MenuItem `json:"menus"`
}

// MenuIDs lists the menus the discount currently covers.
func (d Detail) MenuIDs() []int {
	ids := make([]int, 0, len(d.Menus))
	for _, item := range d.Menus {
		ids = append(ids, item.ID)
	}
	return ids
}

// Input is the create/update body.
type Input struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func (in Input) Validate() error {
	var errs apierr.Collector
	errs.Add(strings.TrimSpace(in.Name) == "", "Name is required")
	errs.Add(in.Percentage < 0 || in.Percentage > 100, "Percentage must be between 0 and 100")
	start, okStart := parseDate(in.StartDate)
	end, okEnd := parseDate(in.EndDate)
	errs.Add(!okStart, "Start date is invalid")
	errs.Add(!okEnd, "End date is invalid")
	errs.Add(okStart && okEnd && end.Before(start), "End date must be after start date")
	return errs.Err()
}

// ToggleMenu adds id to the selection when missing and removes it when present.
func ToggleMenu(selection []int, id int) []int {
	out := make([]int, 0, len(selection)+1)
	found := false
	for _, existing := range selection {
		if existing == id {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
