package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Type tells whether the order is served at a table or delivered.
type Type int

const (
	UnknownType Type = iota
	DineIn
	Takeaway
)

var typeNames = map[Type]string{
	DineIn:   "dine-in",
	Takeaway: "takeaway",
}

// ParseType maps the wire names "dine-in" and "takeaway" to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not dine-in or takeaway", s))
}

// String returns the wire name, or "unknown".
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects UnknownType and out-of-range values.
func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}
