package queries

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAnalyticsQueryHandler aggregates orders, chefs and tables for the
// dashboard. The statements run one after another without a shared snapshot,
// so figures may straddle a concurrent write.
type GetAnalyticsQueryHandler struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewGetAnalyticsQueryHandler creates the handler. clock decides "now" for the window.
func NewGetAnalyticsQueryHandler(db *gorm.DB, clock func() time.Time) GetAnalyticsQueryHandler {
	return GetAnalyticsQueryHandler{db: db, clock: clock}
}

func (h GetAnalyticsQueryHandler) Handle(ctx context.Context, query GetAnalyticsQuery) (GetAnalyticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp := GetAnalyticsQueryResponse{
		Filter:      query.Filter(),
		WindowStart: query.Filter().WindowStart(h.clock()),
	}

	if err := h.allTime(db, &resp); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if err := h.chefLoads(db, &resp); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if err := h.tables(db, &resp); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if err := h.window(db, &resp); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if err := h.revenueGraph(db, &resp); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}

	return resp, nil
}

func (h GetAnalyticsQueryHandler) allTime(db *gorm.DB, resp *GetAnalyticsQueryResponse) error {
	row := db.Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN grand_total ELSE 0 END), 0),
			COUNT(DISTINCT customer_phone)
		FROM orders
	`, order.Done.String()).Row()

	if err := row.Scan(&resp.TotalOrders, &resp.TotalRevenue, &resp.TotalCustomers); err != nil {
		return fmt.Errorf("all-time totals: %w", err)
	}

	resp.TotalRevenue = resp.TotalRevenue.Round(2)
	resp.TotalRevenueDisplay = FormatRevenue(resp.TotalRevenue)
	return nil
}

func (h GetAnalyticsQueryHandler) chefLoads(db *gorm.DB, resp *GetAnalyticsQueryResponse) error {
	rows, err := db.Raw(`
		SELECT id, name, current_order_count
		FROM chefs
		WHERE status = ?
		ORDER BY created_at, id
	`, chef.Active.String()).Rows()
	if err != nil {
		return fmt.Errorf("chef loads: %w", err)
	}
	defer rows.Close()

	resp.ChefLoads = make([]ChefLoad, 0)
	for rows.Next() {
		var load ChefLoad
		var id uuid.UUID
		if err = rows.Scan(&id, &load.Name, &load.CurrentOrderCount); err != nil {
			return err
		}
		if load.ChefID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return err
		}
		resp.ChefLoads = append(resp.ChefLoads, load)
	}
	resp.ActiveChefs = int64(len(resp.ChefLoads))
	return rows.Err()
}

func (h GetAnalyticsQueryHandler) tables(db *gorm.DB, resp *GetAnalyticsQueryResponse) error {
	rows, err := db.Raw(`
		SELECT table_number, is_reserved
		FROM restaurant_tables
		ORDER BY table_number
	`).Rows()
	if err != nil {
		return fmt.Errorf("table occupancy: %w", err)
	}
	defer rows.Close()

	resp.Tables = make([]TableOccupancy, 0)
	for rows.Next() {
		var t TableOccupancy
		if err = rows.Scan(&t.Number, &t.IsReserved); err != nil {
			return err
		}
		resp.Tables = append(resp.Tables, t)
	}
	return rows.Err()
}

func (h GetAnalyticsQueryHandler) window(db *gorm.DB, resp *GetAnalyticsQueryResponse) error {
	done := order.Done.String()
	row := db.Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN grand_total ELSE 0 END), 0)
		FROM orders
		WHERE created_at >= ?
	`,
		done, order.Processing.String(), order.Pending.String(),
		order.DineIn.String(), order.Takeaway.String(),
		done, resp.WindowStart,
	).Row()

	w := &resp.Window
	if err := row.Scan(&w.Total, &w.Served, &w.Processing, &w.Pending, &w.DineIn, &w.Takeaway, &w.Revenue); err != nil {
		return fmt.Errorf("window summary: %w", err)
	}
	w.Revenue = w.Revenue.Round(2)
	return nil
}

// revenueGraph buckets served orders by UTC day in Go, which keeps the date
// arithmetic identical across SQL dialects.
func (h GetAnalyticsQueryHandler) revenueGraph(db *gorm.DB, resp *GetAnalyticsQueryResponse) error {
	rows, err := db.Raw(`
		SELECT created_at, grand_total
		FROM orders
		WHERE status = ? AND created_at >= ?
		ORDER BY created_at
	`, order.Done.String(), resp.WindowStart).Rows()
	if err != nil {
		return fmt.Errorf("revenue graph: %w", err)
	}
	defer rows.Close()

	resp.RevenueGraph = make([]DailyRevenue, 0)
	for rows.Next() {
		var createdAt time.Time
		var amount decimal.Decimal
		if err = rows.Scan(&createdAt, &amount); err != nil {
			return err
		}

		createdAt = createdAt.UTC()
		day := time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, time.UTC)
		last := len(resp.RevenueGraph) - 1
		if last >= 0 && resp.RevenueGraph[last].Day.Equal(day) {
			resp.RevenueGraph[last].Revenue = resp.RevenueGraph[last].Revenue.Add(amount)
			continue
		}
		resp.RevenueGraph = append(resp.RevenueGraph, DailyRevenue{Day: day, Revenue: amount})
	}
	return rows.Err()
}
