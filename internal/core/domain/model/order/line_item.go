package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxInstructionsLength bounds special and cooking instructions, in characters.
const MaxInstructionsLength = 500

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one menu item of an order with the name and price copied from
// the catalog at the time of ordering.
type LineItem struct { //nolint:recvcheck //using for validation
	menuItemID          kernel.UUID
	name                string
	price               decimal.Decimal
	quantity            int
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewLineItem validates and builds a line item.
func NewLineItem(
	menuItemID kernel.UUID,
	name string,
	price decimal.Decimal,
	quantity int,
	specialInstructions string,
) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setPrice(price),
		item.setQuantity(quantity),
		item.setSpecialInstructions(specialInstructions),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

func (l LineItem) MenuItemID() kernel.UUID {
	return l.menuItemID
}

func (l LineItem) Name() string {
	return l.name
}

func (l LineItem) Price() decimal.Decimal {
	return l.price
}

func (l LineItem) Quantity() int {
	return l.quantity
}

func (l LineItem) SpecialInstructions() string {
	return l.specialInstructions
}

// Subtotal is price times quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.price.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l *LineItem) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("menuItemId", err)
	}
	l.menuItemID = id
	return nil
}

func (l *LineItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	l.name = name
	return nil
}

func (l *LineItem) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	l.price = price
	return nil
}

func (l *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	l.quantity = quantity
	return nil
}

func (l *LineItem) setSpecialInstructions(s string) error {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n > MaxInstructionsLength {
		return errs.NewValueIsOutOfRangeError("specialInstructions length", n, 0, MaxInstructionsLength)
	}
	l.specialInstructions = s
	return nil
}
