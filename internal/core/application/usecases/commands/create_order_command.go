package commands

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItem is one requested line: which menu item and how many. Name and
// price are never taken from the client; they come from the menu catalog.
type OrderItem struct {
	MenuItemID          kernel.UUID
	Quantity            int
	SpecialInstructions string
}

// CreateOrderCommand represents a customer's order submission.
//
// Example:
//
//	phone, _ := kernel.NewPhone("+91 98765 43210")
//	cmd, err := NewCreateOrderCommand(order.DineIn, 4, 2, "Asha", phone, "", "less salt",
//	    []OrderItem{{MenuItemID: paneerTikkaID, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderType           order.Type
	tableNumber         int
	numberOfMembers     int
	customerName        string
	customerPhone       kernel.Phone
	customerAddress     string
	cookingInstructions string
	items               []OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Placement rules (table
// iff dine-in, address iff takeaway) are checked again by the order aggregate.
func NewCreateOrderCommand(
	orderType order.Type,
	tableNumber, numberOfMembers int,
	customerName string,
	customerPhone kernel.Phone,
	customerAddress, cookingInstructions string,
	items []OrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		tableNumber:         tableNumber,
		numberOfMembers:     numberOfMembers,
		customerName:        customerName,
		customerAddress:     customerAddress,
		cookingInstructions: cookingInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderType(orderType),
		cmd.setCustomerPhone(customerPhone),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

func (c CreateOrderCommand) TableNumber() int {
	return c.tableNumber
}

func (c CreateOrderCommand) NumberOfMembers() int {
	return c.numberOfMembers
}

func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

func (c CreateOrderCommand) CustomerPhone() kernel.Phone {
	return c.customerPhone
}

func (c CreateOrderCommand) CustomerAddress() string {
	return c.customerAddress
}

func (c CreateOrderCommand) CookingInstructions() string {
	return c.cookingInstructions
}

// Items returns a copy of the requested lines.
func (c CreateOrderCommand) Items() []OrderItem {
	items := make([]OrderItem, len(c.items))
	copy(items, c.items)
	return items
}

// MenuItemIDs returns the distinct menu items referenced by the order.
func (c CreateOrderCommand) MenuItemIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.items))
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.MenuItemID]; ok {
			continue
		}
		seen[item.MenuItemID] = struct{}{}
		ids = append(ids, item.MenuItemID)
	}
	return ids
}

func (c *CreateOrderCommand) setOrderType(t order.Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.orderType = t
	return nil
}

func (c *CreateOrderCommand) setCustomerPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerPhone", err)
	}
	c.customerPhone = phone
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}

	var errList []error
	for i, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].menuItemId", i), err))
		}
		if item.Quantity < 1 {
			errList = append(errList, errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), item.Quantity, 1, "unbounded"))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = make([]OrderItem, len(items))
	copy(c.items, items)
	return nil
}
