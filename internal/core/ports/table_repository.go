package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for tables.
type TableRepository interface {
	// Add persists a new table. Its number must be unique.
	Add(ctx context.Context, aggregate *table.Table) error

	// Update persists size and name. Reservation fields are left to Reserve and Release.
	Update(ctx context.Context, aggregate *table.Table) error

	// Get retrieves a table by id.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetByNumber retrieves a table by its current number.
	GetByNumber(ctx context.Context, number int) (*table.Table, error)

	// MaxNumber returns the highest table number, 0 without tables.
	MaxNumber(ctx context.Context) (int, error)

	// Count returns the number of tables.
	Count(ctx context.Context) (int64, error)

	// Reserve binds table number to phone if it is free and seats members.
	// It reports whether the row was updated.
	Reserve(ctx context.Context, number int, phone string, members int) (bool, error)

	// Release clears the reservation of table number, whatever its state.
	Release(ctx context.Context, number int) error

	// ReleaseHeldBy clears the reservation only while it belongs to phone.
	ReleaseHeldBy(ctx context.Context, number int, phone string) error

	// DeleteAndRenumber removes the unreserved table id and shifts every higher
	// number down by one. It reports whether the table was removed.
	DeleteAndRenumber(ctx context.Context, id kernel.UUID) (bool, error)
}
