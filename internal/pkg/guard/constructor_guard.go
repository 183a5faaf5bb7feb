// Package guard lets value objects, commands and queries detect that they were
// built through their constructor instead of as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not usable.
// Constructors set it with NewConstructorGuard; Validate methods check it.
//
// Example:
//
//	var ErrReserveTableCommandIsNotConstructed = errors.New("ReserveTableCommand must be created via NewReserveTableCommand")
//
//	type ReserveTableCommand struct {
//	    tableID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c ReserveTableCommand) Validate() error {
//	    return c.guard.Validate(ErrReserveTableCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
