package resources

import (
	"context"
	"fmt"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// TableReservations owns table numbering and reservations.
//
// Reservations and releases are single conditional updates and may run in
// parallel with each other; creation, resizing and deletion change numbering or
// capacity and run alone. Inside a process that is a sync.RWMutex, across
// processes it is the table lock of the unit of work, taken shared or exclusive
// the same way.
type TableReservations struct {
	uowFactory TableUoWFactory
	mu         sync.RWMutex
}

// NewTableReservations creates the table reservation service.
func NewTableReservations(uowFactory TableUoWFactory) *TableReservations {
	return &TableReservations{uowFactory: uowFactory}
}

// Reserve binds table number to phone for members.
//
// Returns:
//   - ObjectNotFoundError for an unknown table
//   - ValueIsRequiredError / ValueIsOutOfRangeError for an empty phone or members < 1
//   - ConflictError when the table is reserved or too small
func (s *TableReservations) Reserve(ctx context.Context, number int, phone kernel.Phone, members int) error {
	_, err := s.reserve(ctx, func(repo ports.TableRepository) (*table.Table, error) {
		return repo.GetByNumber(ctx, number)
	}, phone, members)
	return err
}

// ReserveByID is Reserve addressed by table id. The number is resolved under
// the same lock as the reservation, so a concurrent renumbering cannot make it
// reserve a different table.
func (s *TableReservations) ReserveByID(ctx context.Context, id kernel.UUID, phone kernel.Phone, members int) (*table.Table, error) {
	return s.reserve(ctx, func(repo ports.TableRepository) (*table.Table, error) {
		return repo.Get(ctx, id)
	}, phone, members)
}

func (s *TableReservations) reserve(
	ctx context.Context,
	load func(repo ports.TableRepository) (*table.Table, error),
	phone kernel.Phone,
	members int,
) (*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reserved *table.Table
	err := s.inTx(ctx, false, func(repo ports.TableRepository) error {
		t, err := load(repo)
		if err != nil {
			return err
		}
		if err := t.ValidateReservation(phone, members); err != nil {
			return err
		}

		ok, err := repo.Reserve(ctx, t.Number(), phone.String(), members)
		if err != nil {
			return err
		}
		if !ok {
			// lost to a concurrent reservation between the read and the update
			return errs.NewConflictError("table", fmt.Sprintf("%d is already reserved", t.Number()))
		}

		if err := t.Reserve(phone, members); err != nil {
			return err
		}
		reserved = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reserved, nil
}

// Release clears the reservation of table number. Unknown or free tables are a no-op.
func (s *TableReservations) Release(ctx context.Context, number int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inTx(ctx, false, func(repo ports.TableRepository) error {
		return repo.Release(ctx, number)
	})
}

// ReleaseHeldBy clears the reservation of table number only while phone still
// holds it. Order compensation and completion use it so they never free a
// table that was meanwhile released and handed to someone else.
func (s *TableReservations) ReleaseHeldBy(ctx context.Context, number int, phone kernel.Phone) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inTx(ctx, false, func(repo ports.TableRepository) error {
		return repo.ReleaseHeldBy(ctx, number, phone.String())
	})
}

// ReleaseByID clears the reservation of the table id and returns the freed table.
func (s *TableReservations) ReleaseByID(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var released *table.Table
	err := s.inTx(ctx, false, func(repo ports.TableRepository) error {
		t, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Release(ctx, t.Number()); err != nil {
			return err
		}
		t.Release()
		released = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

// Create adds a table numbered one above the current highest.
// A ConflictError is returned once table.MaxTables exist.
func (s *TableReservations) Create(ctx context.Context, size int, name string) (*table.Table, error) {
	if err := table.ValidateSize(size); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var created *table.Table
	err := s.inTx(ctx, true, func(repo ports.TableRepository) error {
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count >= table.MaxTables {
			return errs.NewConflictError("table", fmt.Sprintf("limit of %d tables reached", table.MaxTables))
		}

		maxNumber, err := repo.MaxNumber(ctx)
		if err != nil {
			return err
		}

		t, err := table.NewTable(kernel.NewUUID(), maxNumber+1, size, name)
		if err != nil {
			return err
		}
		if err := repo.Add(ctx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update changes size and/or name of a table. A nil argument leaves the
// attribute as is. A reserved table cannot shrink below its party.
func (s *TableReservations) Update(ctx context.Context, id kernel.UUID, size *int, name *string) (*table.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *table.Table
	err := s.inTx(ctx, true, func(repo ports.TableRepository) error {
		t, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if size != nil {
			if err := t.Resize(*size); err != nil {
				return err
			}
		}
		if name != nil {
			if err := t.Rename(*name); err != nil {
				return err
			}
		}
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an unreserved table and renumbers every higher table down by one.
func (s *TableReservations) Delete(ctx context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, true, func(repo ports.TableRepository) error {
		t, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := t.ValidateRemoval(); err != nil {
			return err
		}

		deleted, err := repo.DeleteAndRenumber(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errs.NewConflictError("table", fmt.Sprintf("%d was reserved meanwhile", t.Number()))
		}
		return nil
	})
}

func (s *TableReservations) inTx(ctx context.Context, exclusive bool, fn func(repo ports.TableRepository) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.LockTables(ctx, exclusive); err != nil {
		return fmt.Errorf("lock tables: %w", err)
	}

	if err := fn(uow.TableRepository()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
