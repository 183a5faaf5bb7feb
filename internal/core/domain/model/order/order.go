package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"restaurant/internal/core/domain/model/billing"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const (
	// MaxCustomerNameLength bounds the customer name, in characters.
	MaxCustomerNameLength = 100

	// MaxNumberOfMembers bounds the party size of a dine-in order.
	MaxNumberOfMembers = 8
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Draft carries everything a caller decides about a new order. The remaining
// attributes (status, bill, version) are owned by the aggregate.
type Draft struct {
	ID                  kernel.UUID
	Number              string
	Type                Type
	TableNumber         int
	NumberOfMembers     int
	CustomerName        string
	CustomerPhone       kernel.Phone
	CustomerAddress     string
	CookingInstructions string
	Items               []LineItem
	ProcessingTime      int
	ChefID              *kernel.UUID
	CreatedAt           time.Time
}

// Order is the aggregate root of a restaurant order. It is created once,
// afterwards only its status and countdown change, and it is never deleted.
//
// Order follows these invariants:
//   - Dine-in orders have a table number and a party size and no address
//   - Takeaway orders have an address and no table number
//   - At least one line item; the bill is derived from the line items
//   - Processing time is a countdown in minutes and never negative
//   - Status only moves forward (see Status)
type Order struct {
	id                  kernel.UUID
	number              string
	orderType           Type
	tableNumber         int
	numberOfMembers     int
	customerName        string
	customerPhone       kernel.Phone
	customerAddress     string
	cookingInstructions string
	items               []LineItem
	bill                billing.Bill
	processingTime      int
	status              Status
	chefID              *kernel.UUID
	createdAt           time.Time

	// version is the optimistic concurrency counter maintained by persistence.
	version int

	isConstructed bool
}

// NewOrder validates d and creates a pending order whose bill is computed by calc.
//
// Example:
//
//	item, _ := order.NewLineItem(menuItemID, "Paneer Tikka", decimal.NewFromInt(100), 2, "")
//	o, err := order.NewOrder(order.Draft{
//	    ID:             kernel.NewUUID(),
//	    Number:         order.NewNumber(now, nil),
//	    Type:           order.Takeaway,
//	    CustomerName:   "Asha",
//	    CustomerPhone:  phone,
//	    CustomerAddress: "12 MG Road",
//	    Items:          []order.LineItem{item},
//	    ProcessingTime: 15,
//	    CreatedAt:      now,
//	}, billing.DefaultCalculator())
//	// o.Bill().GrandTotal = 200 + 10 + 50
func NewOrder(d Draft, calc billing.Calculator) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := o.apply(d); err != nil {
		return nil, err
	}

	lines := make([]billing.Line, 0, len(o.items))
	for _, item := range o.items {
		lines = append(lines, billing.Line{Price: item.Price(), Quantity: item.Quantity()})
	}

	bill, err := calc.Compute(lines, o.orderType == Takeaway)
	if err != nil {
		return nil, err
	}
	o.bill = bill

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. The stored bill is trusted.
func RestoreOrder(d Draft, bill billing.Bill, status Status, version int) (*Order, error) {
	o := &Order{
		bill:          bill,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.apply(d),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) apply(d Draft) error {
	return errors.Join(
		o.setID(d.ID),
		o.setNumber(d.Number),
		o.setPlacement(d.Type, d.TableNumber, d.NumberOfMembers, d.CustomerAddress),
		o.setCustomer(d.CustomerName, d.CustomerPhone),
		o.setCookingInstructions(d.CookingInstructions),
		o.setItems(d.Items),
		o.setProcessingTime(d.ProcessingTime),
		o.setChefID(d.ChefID),
		o.setCreatedAt(d.CreatedAt),
	)
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number is the human readable order number.
func (o *Order) Number() string {
	return o.number
}

func (o *Order) Type() Type {
	return o.orderType
}

// TableNumber returns the reserved table and true for dine-in orders.
func (o *Order) TableNumber() (int, bool) {
	if o.orderType != DineIn {
		return 0, false
	}
	return o.tableNumber, true
}

// NumberOfMembers is the party size of a dine-in order; 0 for takeaway.
func (o *Order) NumberOfMembers() int {
	return o.numberOfMembers
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) CustomerPhone() kernel.Phone {
	return o.customerPhone
}

// CustomerAddress is the delivery address of a takeaway order; empty for dine-in.
func (o *Order) CustomerAddress() string {
	return o.customerAddress
}

func (o *Order) CookingInstructions() string {
	return o.cookingInstructions
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Bill() billing.Bill {
	return o.bill
}

// ProcessingTime is the remaining countdown in minutes.
func (o *Order) ProcessingTime() int {
	return o.processingTime
}

func (o *Order) Status() Status {
	return o.status
}

// ChefID returns the assigned chef, or nil.
func (o *Order) ChefID() *kernel.UUID {
	return o.chefID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version is the optimistic concurrency counter read from persistence.
func (o *Order) Version() int {
	return o.version
}

// ChangeStatus moves the order to target. This, together with Tick, is the only
// way to change an order after creation.
//
// Returns:
//   - a Transition with From == To when target is the current status (no-op)
//   - a Transition whose Completed() is true on the first entry into Done
//   - ValueIsInvalidError for a backward move or an invalid target
//
// Example:
//
//	tr, err := o.ChangeStatus(order.Done)
//	if err != nil {
//	    return err
//	}
//	if tr.Completed() {
//	    // release the table and the chef slot, in the same transaction as the status write
//	}
func (o *Order) ChangeStatus(target Status) (Transition, error) {
	if err := o.status.ValidateMoveTo(target); err != nil {
		return Transition{}, err
	}

	tr := Transition{From: o.status, To: target}
	o.status = target
	if tr.Completed() {
		o.processingTime = 0
	}
	return tr, nil
}

// Tick applies one countdown step. Only processing orders are affected: the
// remaining time is decremented when positive and the order completes once it
// is 0. Pending and done orders are left untouched, which makes duplicate or
// late ticks harmless.
func (o *Order) Tick() Transition {
	tr := Transition{From: o.status, To: o.status}
	if o.status != Processing {
		return tr
	}

	if o.processingTime > 0 {
		o.processingTime--
		tr.CountdownChanged = true
	}

	if o.processingTime == 0 {
		o.status = Done
		tr.To = Done
	}
	return tr
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setPlacement(t Type, tableNumber, members int, address string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	address = strings.TrimSpace(address)

	switch t {
	case DineIn:
		if tableNumber <= 0 {
			return errs.NewValueIsRequiredErrorWithCause("tableNumber", errors.New("dine-in orders need a table"))
		}
		if address != "" {
			return errs.NewValueIsInvalidErrorWithCause("customerAddress", errors.New("only takeaway orders are delivered"))
		}
		if members == 0 {
			members = 1
		}
		if members < 1 || members > MaxNumberOfMembers {
			return errs.NewValueIsOutOfRangeError("numberOfMembers", members, 1, MaxNumberOfMembers)
		}
	case Takeaway:
		if tableNumber != 0 {
			return errs.NewValueIsInvalidErrorWithCause("tableNumber", errors.New("takeaway orders have no table"))
		}
		if address == "" {
			return errs.NewValueIsRequiredErrorWithCause("customerAddress", errors.New("takeaway orders are delivered"))
		}
		members = 0
	case UnknownType:
		return errs.NewValueIsInvalidError("orderType")
	}

	o.orderType = t
	o.tableNumber = tableNumber
	o.numberOfMembers = members
	o.customerAddress = address
	return nil
}

func (o *Order) setCustomer(name string, phone kernel.Phone) error {
	name = strings.TrimSpace(name)
	var nameErr error
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		nameErr = errs.NewValueIsRequiredError("customerName")
	case n > MaxCustomerNameLength:
		nameErr = errs.NewValueIsOutOfRangeError("customerName length", n, 1, MaxCustomerNameLength)
	}

	var phoneErr error
	if err := phone.Validate(); err != nil {
		phoneErr = errs.NewValueIsRequiredErrorWithCause("customerPhone", err)
	}

	if err := errors.Join(nameErr, phoneErr); err != nil {
		return err
	}

	o.customerName = name
	o.customerPhone = phone
	return nil
}

func (o *Order) setCookingInstructions(s string) error {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n > MaxInstructionsLength {
		return errs.NewValueIsOutOfRangeError("cookingInstructions length", n, 0, MaxInstructionsLength)
	}
	o.cookingInstructions = s
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setProcessingTime(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsOutOfRangeError("processingTime", minutes, 0, "unbounded")
	}
	o.processingTime = minutes
	return nil
}

func (o *Order) setChefID(id *kernel.UUID) error {
	if id == nil {
		o.chefID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	chefID := *id
	o.chefID = &chefID
	return nil
}

func (o *Order) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = at.UTC()
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
