package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	StatusFilterAll = "ALL"
	yearsBack       = 10
)

var ErrInvalidFilter = errors.New("invalid order filter")

// DateFilter narrows the order list by month and year. Zero values mean no filter.
type DateFilter struct {
	Month int
	Year  int
}

// Validate accepts months 1-12 and one of the last ten years relative to now.
func (f DateFilter) Validate(now time.Time) error {
	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		return fmt.Errorf("%w: month %d", ErrInvalidFilter, f.Month)
	}
	current := now.Year()
	if f.Year != 0 && (f.Year > current || f.Year <= current-yearsBack) {
		return fmt.Errorf("%w: year %d", ErrInvalidFilter, f.Year)
	}
	return nil
}

// Query renders the filter as the API's year/month query parameters.
func (f DateFilter) Query() url.Values {
	values := url.Values{}
	if f.Year != 0 {
		values.Set("year", strconv.Itoa(f.Year))
	}
	if f.Month != 0 {
		values.Set("month", strconv.Itoa(f.Month))
	}
	return values
}

// Years lists the selectable years, newest first.
func Years(now time.Time) []int {
	years := make([]int, 0, yearsBack)
	for i := 0; i < yearsBack; i++ {
		years = append(years, now.Year()-i)
	}
	return years
}

// ParseDateFilter reads month and year from query strings; blanks mean no filter.
func ParseDateFilter(month, year string) (DateFilter, error) {
	var f DateFilter
	var err error
	if trimmed := strings.TrimSpace(month); trimmed != "" {
		if f.Month, err = strconv.Atoi(trimmed); err != nil {
			return DateFilter{}, fmt.Errorf("%w: month %q", ErrInvalidFilter, month)
		}
	}
	if trimmed := strings.TrimSpace(year); trimmed != "" {
		if f.Year, err = strconv.Atoi(trimmed); err != nil {
			return DateFilter{}, fmt.Errorf("%w: year %q", ErrInvalidFilter, year)
		}
	}
	return f, nil
}

// StatusFilter is either ALL or a single status.
type StatusFilter string

func ParseStatusFilter(raw string) (StatusFilter, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" || trimmed == StatusFilterAll {
		return StatusFilterAll, nil
	}
	status, err := ParseStatus(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return StatusFilter(status), nil
}

func (f StatusFilter) Match(o Order) bool {
	return f == "" || f == StatusFilterAll || Status(f) == o.Status
}

func (f StatusFilter) Apply(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}
