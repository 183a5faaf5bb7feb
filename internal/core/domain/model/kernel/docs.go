// Package kernel provides the shared value objects of the restaurant domain.
//
// The package includes:
//   - UUID: identifier of orders, chefs, tables and menu items
//   - Phone: a normalized customer phone number, the key by which customers,
//     reservations and analytics recognise the same person
//
// Both are immutable, validate on construction and have an invalid zero value.
package kernel
