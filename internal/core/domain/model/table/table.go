package table

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const (
	// MaxTables caps the number of tables in the restaurant.
	MaxTables = 30

	// MaxNameLength bounds the optional display name, in characters.
	MaxNameLength = 50
)

var (
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")

	allowedSizes = map[int]struct{}{2: {}, 4: {}, 6: {}, 8: {}}
)

// Table is a physical table that can be reserved by one customer at a time.
type Table struct {
	id              kernel.UUID
	number          int
	size            int
	name            string
	isReserved      bool
	reservedBy      string
	numberOfMembers int

	isConstructed bool
}

// NewTable creates an unreserved table.
//
// Example:
//
//	t, err := table.NewTable(kernel.NewUUID(), maxNumber+1, 4, "Window")
func NewTable(id kernel.UUID, number, size int, name string) (*Table, error) {
	t := &Table{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setSize(size),
		t.setName(name),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTable rebuilds a table, including its reservation, from persistence.
func RestoreTable(
	id kernel.UUID,
	number, size int,
	name string,
	isReserved bool,
	reservedBy string,
	numberOfMembers int,
) (*Table, error) {
	t, err := NewTable(id, number, size, name)
	if err != nil {
		return nil, err
	}
	if isReserved {
		t.isReserved = true
		t.reservedBy = reservedBy
		t.numberOfMembers = numberOfMembers
	}
	return t, nil
}

// ValidateSize checks that size is one of the supported seat counts.
func ValidateSize(size int) error {
	if _, ok := allowedSizes[size]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not one of 2, 4, 6, 8", size))
	}
	return nil
}

func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

func (t *Table) ID() kernel.UUID {
	return t.id
}

func (t *Table) Number() int {
	return t.number
}

func (t *Table) Size() int {
	return t.size
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) IsReserved() bool {
	return t.isReserved
}

// ReservedBy is the phone of the customer holding the table.
func (t *Table) ReservedBy() string {
	return t.reservedBy
}

func (t *Table) NumberOfMembers() int {
	return t.numberOfMembers
}

// CanSeat reports whether an unreserved table of this size fits members.
func (t *Table) CanSeat(members int) bool {
	return !t.isReserved && members <= t.size
}

// ValidateReservation checks a reservation request against the table without changing it.
//
// Returns:
//   - ValueIsRequiredError when phone is empty
//   - ValueIsOutOfRangeError when members < 1
//   - ConflictError when the table is reserved or members exceed its size
func (t *Table) ValidateReservation(phone kernel.Phone, members int) error {
	if err := phone.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerPhone", err)
	}
	if members < 1 {
		return errs.NewValueIsOutOfRangeError("numberOfMembers", members, 1, t.size)
	}
	if t.isReserved {
		return errs.NewConflictError("table", fmt.Sprintf("%d is already reserved", t.number))
	}
	if members > t.size {
		return errs.NewConflictError("table", fmt.Sprintf("%d seats %d, %d members requested", t.number, t.size, members))
	}
	return nil
}

// Reserve binds the table to phone for members.
func (t *Table) Reserve(phone kernel.Phone, members int) error {
	if err := t.ValidateReservation(phone, members); err != nil {
		return err
	}
	t.isReserved = true
	t.reservedBy = phone.String()
	t.numberOfMembers = members
	return nil
}

// Release clears the reservation. Releasing a free table is a no-op.
func (t *Table) Release() {
	t.isReserved = false
	t.reservedBy = ""
	t.numberOfMembers = 0
}

// Resize changes the seat count. A reserved table cannot shrink below its party.
func (t *Table) Resize(size int) error {
	if err := ValidateSize(size); err != nil {
		return err
	}
	if t.isReserved && size < t.numberOfMembers {
		return errs.NewConflictError("table", fmt.Sprintf("%d seats %d members, cannot shrink to %d", t.number, t.numberOfMembers, size))
	}
	t.size = size
	return nil
}

// Rename changes the optional display name.
func (t *Table) Rename(name string) error {
	return t.setName(name)
}

// ValidateRemoval rejects removal of a reserved table.
func (t *Table) ValidateRemoval() error {
	if t.isReserved {
		return errs.NewConflictError("table", fmt.Sprintf("%d is reserved and cannot be deleted", t.number))
	}
	return nil
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setNumber(number int) error {
	if number < 1 || number > MaxTables {
		return errs.NewValueIsOutOfRangeError("tableNumber", number, 1, MaxTables)
	}
	t.number = number
	return nil
}

func (t *Table) setSize(size int) error {
	if err := ValidateSize(size); err != nil {
		return err
	}
	t.size = size
	return nil
}

func (t *Table) setName(name string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 0, MaxNameLength)
	}
	t.name = name
	return nil
}
