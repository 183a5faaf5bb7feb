package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (forward only):
//
//	Pending ──> Processing ──> Done
//	   │                        ▲
//	   └────────────────────────┘
//
// Done is terminal. Persisted and exchanged as "pending", "processing" and "done".
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is accepted and a chef is assigned.
	Pending

	// Processing means the kitchen is cooking; the countdown runs only in this status.
	Processing

	// Done means the order was served. Its table and chef slot are released on entry.
	Done
)

var statusNames = map[Status]string{
	Pending:    "pending",
	Processing: "processing",
	Done:       "done",
}

// ParseStatus maps a wire name to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside of the state machine.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Done
}

// ValidateMoveTo checks that target is reachable from s.
// Staying in the same status is allowed; it is applied as a no-op.
//
// Returns:
//   - nil for a forward move or for target == s
//   - ValueIsInvalidError for a backward move or an invalid target
func (s Status) ValidateMoveTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target < s {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot move an order from %s back to %s", s, target),
		)
	}
	return nil
}
