package chef

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status tells whether a chef receives new orders.
type Status int

const (
	UnknownStatus Status = iota
	Active
	Inactive
)

var statusNames = map[Status]string{
	Active:   "active",
	Inactive: "inactive",
}

// ParseStatus maps "active" and "inactive" to a Status. An empty string means Active.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return Active, nil
	}
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not active or inactive", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid chef status", s))
	}
	return nil
}
