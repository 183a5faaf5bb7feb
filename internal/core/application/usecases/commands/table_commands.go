package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateTableCommandIsNotConstructed  = errors.New("CreateTableCommand must be created via NewCreateTableCommand constructor")
	ErrUpdateTableCommandIsNotConstructed  = errors.New("UpdateTableCommand must be created via NewUpdateTableCommand constructor")
	ErrDeleteTableCommandIsNotConstructed  = errors.New("DeleteTableCommand must be created via NewDeleteTableCommand constructor")
	ErrReserveTableCommandIsNotConstructed = errors.New("ReserveTableCommand must be created via NewReserveTableCommand constructor")
	ErrReleaseTableCommandIsNotConstructed = errors.New("ReleaseTableCommand must be created via NewReleaseTableCommand constructor")
)

// CreateTableCommand adds a table. Its number is assigned by the service.
type CreateTableCommand struct { //nolint:recvcheck //using for validation
	size int
	name string

	guard guard.ConstructorGuard
}

func NewCreateTableCommand(size int, name string) (CreateTableCommand, error) {
	if err := table.ValidateSize(size); err != nil {
		return CreateTableCommand{}, err
	}

	return CreateTableCommand{
		size:  size,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTableCommand) Validate() error {
	return c.guard.Validate(ErrCreateTableCommandIsNotConstructed)
}

func (c CreateTableCommand) Size() int {
	return c.size
}

func (c CreateTableCommand) Name() string {
	return c.name
}

// UpdateTableCommand changes size and/or name. A nil field is left unchanged.
type UpdateTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID
	size    *int
	name    *string

	guard guard.ConstructorGuard
}

func NewUpdateTableCommand(tableID kernel.UUID, size *int, name *string) (UpdateTableCommand, error) {
	var errList []error
	errList = append(errList, tableID.Validate())
	if size != nil {
		errList = append(errList, table.ValidateSize(*size))
	}
	if size == nil && name == nil {
		errList = append(errList, errs.NewValueIsRequiredError("size or name"))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateTableCommand{}, err
	}

	return UpdateTableCommand{
		tableID: tableID,
		size:    size,
		name:    name,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTableCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTableCommandIsNotConstructed)
}

func (c UpdateTableCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c UpdateTableCommand) Size() *int {
	return c.size
}

func (c UpdateTableCommand) Name() *string {
	return c.name
}

// DeleteTableCommand removes an unreserved table and closes the numbering gap.
type DeleteTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteTableCommand(tableID kernel.UUID) (DeleteTableCommand, error) {
	if err := tableID.Validate(); err != nil {
		return DeleteTableCommand{}, err
	}

	return DeleteTableCommand{
		tableID: tableID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteTableCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTableCommandIsNotConstructed)
}

func (c DeleteTableCommand) TableID() kernel.UUID {
	return c.tableID
}

// ReserveTableCommand holds a table for a customer outside of order placement.
type ReserveTableCommand struct { //nolint:recvcheck //using for validation
	tableID         kernel.UUID
	customerPhone   kernel.Phone
	numberOfMembers int

	guard guard.ConstructorGuard
}

func NewReserveTableCommand(tableID kernel.UUID, customerPhone kernel.Phone, numberOfMembers int) (ReserveTableCommand, error) {
	var errList []error
	errList = append(errList, tableID.Validate(), customerPhone.Validate())
	if numberOfMembers < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("numberOfMembers", numberOfMembers, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return ReserveTableCommand{}, err
	}

	return ReserveTableCommand{
		tableID:         tableID,
		customerPhone:   customerPhone,
		numberOfMembers: numberOfMembers,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c ReserveTableCommand) Validate() error {
	return c.guard.Validate(ErrReserveTableCommandIsNotConstructed)
}

func (c ReserveTableCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c ReserveTableCommand) CustomerPhone() kernel.Phone {
	return c.customerPhone
}

func (c ReserveTableCommand) NumberOfMembers() int {
	return c.numberOfMembers
}

// ReleaseTableCommand frees a table whoever holds it.
type ReleaseTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseTableCommand(tableID kernel.UUID) (ReleaseTableCommand, error) {
	if err := tableID.Validate(); err != nil {
		return ReleaseTableCommand{}, err
	}

	return ReleaseTableCommand{
		tableID: tableID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseTableCommand) Validate() error {
	return c.guard.Validate(ErrReleaseTableCommandIsNotConstructed)
}

func (c ReleaseTableCommand) TableID() kernel.UUID {
	return c.tableID
}
