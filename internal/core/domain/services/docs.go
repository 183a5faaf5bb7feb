// Package services provides domain services that decide across several
// aggregates without owning state themselves.
//
// The package includes:
//   - ChefSelector: picks the least-loaded active chef for a new order
package services
