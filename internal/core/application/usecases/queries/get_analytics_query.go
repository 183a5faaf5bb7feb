package queries

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAnalyticsQueryIsNotConstructed = errors.New(
	"GetAnalyticsQuery must be created via NewGetAnalyticsQuery constructor",
)

// AnalyticsFilter selects the window of the analytics summary.
type AnalyticsFilter string

const (
	Daily   AnalyticsFilter = "daily"
	Weekly  AnalyticsFilter = "weekly"
	Monthly AnalyticsFilter = "monthly"
	Yearly  AnalyticsFilter = "yearly"
)

// ParseAnalyticsFilter maps a wire value to a filter. An empty value means Daily.
func ParseAnalyticsFilter(s string) (AnalyticsFilter, error) {
	switch f := AnalyticsFilter(s); f {
	case "":
		return Daily, nil
	case Daily, Weekly, Monthly, Yearly:
		return f, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("filter",
			fmt.Errorf("%q is not one of daily, weekly, monthly, yearly", s))
	}
}

// WindowStart returns the first instant covered by the filter at now:
// midnight UTC for Daily, otherwise now minus a week, a month or a year.
func (f AnalyticsFilter) WindowStart(now time.Time) time.Time {
	now = now.UTC()
	switch f {
	case Weekly:
		return now.AddDate(0, 0, -7)
	case Monthly:
		return now.AddDate(0, -1, 0)
	case Yearly:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// GetAnalyticsQuery asks for the dashboard snapshot of one window.
//
// Example:
//
//	filter, err := ParseAnalyticsFilter(c.QueryParam("filter"))
//	if err != nil {
//	    return err
//	}
//	stats, err := handler.Handle(ctx, NewGetAnalyticsQuery(filter))
type GetAnalyticsQuery struct {
	filter AnalyticsFilter
	guard  guard.ConstructorGuard
}

func NewGetAnalyticsQuery(filter AnalyticsFilter) GetAnalyticsQuery {
	if filter == "" {
		filter = Daily
	}
	return GetAnalyticsQuery{filter: filter, guard: guard.NewConstructorGuard()}
}

func (q GetAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetAnalyticsQueryIsNotConstructed)
}

func (q GetAnalyticsQuery) Filter() AnalyticsFilter {
	return q.filter
}

// GetAnalyticsQueryResponse is the dashboard snapshot. All-time figures cover
// every stored order; Window covers orders created since WindowStart.
type GetAnalyticsQueryResponse struct {
	Filter              AnalyticsFilter
	WindowStart         time.Time
	TotalOrders         int64
	TotalRevenue        decimal.Decimal
	TotalRevenueDisplay string
	TotalCustomers      int64
	ActiveChefs         int64
	ChefLoads           []ChefLoad
	Tables              []TableOccupancy
	Window              WindowSummary
	RevenueGraph        []DailyRevenue
}

// ChefLoad is the current load of one active chef.
type ChefLoad struct {
	ChefID            kernel.UUID
	Name              string
	CurrentOrderCount int
}

// TableOccupancy tells whether a table is taken.
type TableOccupancy struct {
	Number     int
	IsReserved bool
}

// WindowSummary counts the orders created inside the window.
type WindowSummary struct {
	Total      int64
	Served     int64
	Processing int64
	Pending    int64
	DineIn     int64
	Takeaway   int64
	Revenue    decimal.Decimal
}

// DailyRevenue is the revenue of served orders created on one UTC day.
type DailyRevenue struct {
	Day     time.Time
	Revenue decimal.Decimal
}

var (
	lakh     = decimal.NewFromInt(100000)
	thousand = decimal.NewFromInt(1000)
)

// FormatRevenue renders an amount compactly: "1.5L" from one lakh (100000)
// up, "2.3K" from one thousand up, otherwise the integer part.
func FormatRevenue(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(lakh):
		return amount.Div(lakh).StringFixed(1) + "L"
	case amount.GreaterThanOrEqual(thousand):
		return amount.Div(thousand).StringFixed(1) + "K"
	default:
		return amount.Truncate(0).String()
	}
}
