// Package order provides the Order aggregate of the restaurant and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding customer, placement, line items and the derived bill
//   - Type: dine-in or takeaway, which decides whether a table or an address is required
//   - Status: the pending -> processing -> done state machine
//   - Transition: the outcome of applying a status change or a countdown tick
//   - Event and StatusChange: what the rest of the system learns about a transition
//
// Key business rules:
//   - A dine-in order has a table number and no address; a takeaway order the opposite
//   - Totals are always computed by billing.Calculator, never supplied by callers
//   - Status only moves forward; asking for the current status again is a no-op
//   - A countdown tick only affects processing orders and completes them when it reaches 0
//   - Transition.Completed is true exactly once per order: on its first entry into Done
package order
