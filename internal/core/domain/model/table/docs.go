// Package table provides the dining Table aggregate.
//
// Tables are numbered densely from 1 to N. The number is assigned on creation
// (current maximum + 1) and shifted down when a lower table is removed; both
// numbering steps are performed by the reservation service under its lock.
//
// Key business rules:
//   - Size is one of 2, 4, 6 or 8 seats
//   - At most MaxTables tables exist
//   - A reservation binds the table to one customer phone for 1..size members
//   - A reserved table cannot be removed or shrunk below its party
package table
