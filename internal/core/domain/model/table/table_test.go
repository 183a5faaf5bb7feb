package table_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phone(t *testing.T) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone("9876543210")
	require.NoError(t, err)
	return p
}

func TestNewTable(t *testing.T) {
	t.Run("creates an unreserved table", func(t *testing.T) {
		tbl, err := table.NewTable(kernel.NewUUID(), 1, 4, " Window ")

		require.NoError(t, err)
		require.NoError(t, tbl.Validate())
		assert.Equal(t, "Window", tbl.Name())
		assert.False(t, tbl.IsReserved())
	})

	t.Run("sizes are restricted", func(t *testing.T) {
		for _, size := range []int{0, 1, 3, 5, 10} {
			_, err := table.NewTable(kernel.NewUUID(), 1, size, "")
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, size)
		}
	})

	t.Run("numbers are within 1..MaxTables", func(t *testing.T) {
		_, err := table.NewTable(kernel.NewUUID(), 0, 2, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = table.NewTable(kernel.NewUUID(), table.MaxTables+1, 2, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestTable_Reserve(t *testing.T) {
	t.Run("reserves for a fitting party", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 2, 4, "")

		require.NoError(t, tbl.Reserve(phone(t), 4))
		assert.True(t, tbl.IsReserved())
		assert.Equal(t, "9876543210", tbl.ReservedBy())
		assert.Equal(t, 4, tbl.NumberOfMembers())
	})

	t.Run("party larger than the table conflicts and leaves it unchanged", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 2, 2, "")

		err := tbl.Reserve(phone(t), 3)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.False(t, tbl.IsReserved())
		assert.Equal(t, 0, tbl.NumberOfMembers())
	})

	t.Run("reserved table conflicts", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 2, 4, "")
		require.NoError(t, tbl.Reserve(phone(t), 2))

		require.ErrorIs(t, tbl.Reserve(phone(t), 2), errs.ErrConflict)
	})

	t.Run("input errors", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 2, 4, "")

		require.ErrorIs(t, tbl.Reserve(kernel.Phone{}, 2), errs.ErrValueIsRequired)
		require.ErrorIs(t, tbl.Reserve(phone(t), 0), errs.ErrValueIsOutOfRange)
	})

	t.Run("release is idempotent", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 2, 4, "")
		require.NoError(t, tbl.Reserve(phone(t), 2))

		tbl.Release()
		tbl.Release()

		assert.False(t, tbl.IsReserved())
		assert.Empty(t, tbl.ReservedBy())
		assert.True(t, tbl.CanSeat(4))
	})
}

func TestTable_ResizeAndRemoval(t *testing.T) {
	tbl, _ := table.NewTable(kernel.NewUUID(), 5, 6, "")
	require.NoError(t, tbl.Reserve(phone(t), 5))

	require.ErrorIs(t, tbl.Resize(4), errs.ErrConflict)
	require.NoError(t, tbl.Resize(8))
	require.ErrorIs(t, tbl.ValidateRemoval(), errs.ErrConflict)

	tbl.Release()
	require.NoError(t, tbl.Resize(2))
	require.NoError(t, tbl.ValidateRemoval())
}

func TestRestoreTable(t *testing.T) {
	tbl, err := table.RestoreTable(kernel.NewUUID(), 7, 4, "", true, "9876543210", 3)

	require.NoError(t, err)
	assert.True(t, tbl.IsReserved())
	assert.Equal(t, 3, tbl.NumberOfMembers())
	assert.False(t, tbl.CanSeat(2))
}
