package queries

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")
	ErrGetOrderQueryIsNotConstructed   = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")
)

// ListOrdersQuery lists orders newest first, optionally only those in one status.
type ListOrdersQuery struct {
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery creates the query. A nil status lists every order.
func NewListOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	return ListOrdersQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryHandler reads orders for the order board.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery(nil)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select(orderColumns)
	if query.status != nil {
		tx = tx.Where("status = ?", query.status.String())
	}

	var rows []orderRow
	if err := tx.Order("created_at DESC, number DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view()
		if err != nil {
			return nil, err
		}
		orders = append(orders, view)
	}
	return orders, nil
}

// GetOrderQuery reads one order by id.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).Table("orders").Select(orderColumns).
		Where("id = ?", query.orderID.Bytes()).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return OrderView{}, fmt.Errorf("get order: %w", err)
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("orderID", query.orderID)
	}
	return rows[0].view()
}
