package queries

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListTablesQueryIsNotConstructed          = errors.New("ListTablesQuery must be created via NewListTablesQuery constructor")
	ErrListAvailableTablesQueryIsNotConstructed = errors.New(
		"ListAvailableTablesQuery must be created via NewListAvailableTablesQuery constructor",
	)
)

// ListTablesQuery lists every table by number.
type ListTablesQuery struct {
	guard guard.ConstructorGuard
}

func NewListTablesQuery() ListTablesQuery {
	return ListTablesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListTablesQuery) Validate() error {
	return q.guard.Validate(ErrListTablesQueryIsNotConstructed)
}

type ListTablesQueryHandler struct {
	db *gorm.DB
}

func NewListTablesQueryHandler(db *gorm.DB) ListTablesQueryHandler {
	return ListTablesQueryHandler{db: db}
}

func (h ListTablesQueryHandler) Handle(ctx context.Context, query ListTablesQuery) ([]TableView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return selectTables(h.db.WithContext(ctx).Table("restaurant_tables"))
}

// ListAvailableTablesQuery lists unreserved tables, optionally of one size
// and/or large enough for a party.
type ListAvailableTablesQuery struct {
	size    *int
	members *int
	guard   guard.ConstructorGuard
}

func NewListAvailableTablesQuery(size, members *int) (ListAvailableTablesQuery, error) {
	var errList []error
	if size != nil {
		errList = append(errList, table.ValidateSize(*size))
	}
	if members != nil && *members < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("members", *members, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return ListAvailableTablesQuery{}, err
	}

	return ListAvailableTablesQuery{size: size, members: members, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailableTablesQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableTablesQueryIsNotConstructed)
}

type ListAvailableTablesQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableTablesQueryHandler(db *gorm.DB) ListAvailableTablesQueryHandler {
	return ListAvailableTablesQueryHandler{db: db}
}

func (h ListAvailableTablesQueryHandler) Handle(ctx context.Context, query ListAvailableTablesQuery) ([]TableView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("restaurant_tables").Where("is_reserved = ?", false)
	if query.size != nil {
		tx = tx.Where("size = ?", *query.size)
	}
	if query.members != nil {
		tx = tx.Where("size >= ?", *query.members)
	}
	return selectTables(tx)
}

func selectTables(tx *gorm.DB) ([]TableView, error) {
	rows, err := tx.
		Select("id, table_number, size, name, is_reserved, reserved_by, number_of_members").
		Order("table_number").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("select tables: %w", err)
	}
	defer rows.Close()

	tables := make([]TableView, 0)
	for rows.Next() {
		var view TableView
		var id uuid.UUID
		err = rows.Scan(&id, &view.Number, &view.Size, &view.Name, &view.IsReserved, &view.ReservedBy, &view.NumberOfMembers)
		if err != nil {
			return nil, err
		}

		view.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		tables = append(tables, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}
