package queries

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListChefsQueryIsNotConstructed = errors.New("ListChefsQuery must be created via NewListChefsQuery constructor")
	ErrGetChefQueryIsNotConstructed   = errors.New("GetChefQuery must be created via NewGetChefQuery constructor")
)

// ListChefsQuery lists the roster in the order chefs were added.
type ListChefsQuery struct {
	guard guard.ConstructorGuard
}

func NewListChefsQuery() ListChefsQuery {
	return ListChefsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListChefsQuery) Validate() error {
	return q.guard.Validate(ErrListChefsQueryIsNotConstructed)
}

type ListChefsQueryHandler struct {
	db *gorm.DB
}

func NewListChefsQueryHandler(db *gorm.DB) ListChefsQueryHandler {
	return ListChefsQueryHandler{db: db}
}

func (h ListChefsQueryHandler) Handle(ctx context.Context, query ListChefsQuery) ([]ChefView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return selectChefs(h.db.WithContext(ctx).Raw(`
		SELECT id, name, status, current_order_count
		FROM chefs
		ORDER BY created_at, id
	`))
}

// GetChefQuery reads one chef by id.
type GetChefQuery struct {
	chefID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetChefQuery(chefID kernel.UUID) (GetChefQuery, error) {
	if err := chefID.Validate(); err != nil {
		return GetChefQuery{}, err
	}
	return GetChefQuery{chefID: chefID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetChefQuery) Validate() error {
	return q.guard.Validate(ErrGetChefQueryIsNotConstructed)
}

type GetChefQueryHandler struct {
	db *gorm.DB
}

func NewGetChefQueryHandler(db *gorm.DB) GetChefQueryHandler {
	return GetChefQueryHandler{db: db}
}

func (h GetChefQueryHandler) Handle(ctx context.Context, query GetChefQuery) (ChefView, error) {
	if err := query.Validate(); err != nil {
		return ChefView{}, err
	}

	chefs, err := selectChefs(h.db.WithContext(ctx).Raw(`
		SELECT id, name, status, current_order_count
		FROM chefs
		WHERE id = ?
	`, query.chefID.Bytes()))
	if err != nil {
		return ChefView{}, err
	}
	if len(chefs) == 0 {
		return ChefView{}, errs.NewObjectNotFoundError("chefID", query.chefID)
	}
	return chefs[0], nil
}

func selectChefs(tx *gorm.DB) ([]ChefView, error) {
	rows, err := tx.Rows()
	if err != nil {
		return nil, fmt.Errorf("select chefs: %w", err)
	}
	defer rows.Close()

	chefs := make([]ChefView, 0)
	for rows.Next() {
		var view ChefView
		var id uuid.UUID
		if err = rows.Scan(&id, &view.Name, &view.Status, &view.CurrentOrderCount); err != nil {
			return nil, err
		}

		view.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		chefs = append(chefs, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return chefs, nil
}
