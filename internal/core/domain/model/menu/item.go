// Package menu models the read-only catalog entries orders are priced from.
// Menu content management lives outside this service.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a catalog entry.
type Item struct {
	id                     kernel.UUID
	name                   string
	price                  decimal.Decimal
	averagePreparationTime int
	category               string

	isConstructed bool
}

// NewItem builds a catalog entry. averagePreparationTime is in minutes.
func NewItem(id kernel.UUID, name string, price decimal.Decimal, averagePreparationTime int, category string) (*Item, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price)))
	}
	if averagePreparationTime < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("averagePreparationTime", averagePreparationTime, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Item{
		id:                     id,
		name:                   name,
		price:                  price,
		averagePreparationTime: averagePreparationTime,
		category:               strings.TrimSpace(category),
		isConstructed:          true,
	}, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Price() decimal.Decimal {
	return i.price
}

// AveragePreparationTime is in minutes.
func (i *Item) AveragePreparationTime() int {
	return i.averagePreparationTime
}

func (i *Item) Category() string {
	return i.category
}
