package menu_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item, err := menu.NewItem(kernel.NewUUID(), "Veg Biryani", decimal.NewFromInt(220), 25, "Mains")

	require.NoError(t, err)
	require.NoError(t, item.Validate())
	assert.Equal(t, 25, item.AveragePreparationTime())
	assert.Equal(t, "Mains", item.Category())

	_, err = menu.NewItem(kernel.UUID{}, " ", decimal.NewFromInt(-1), -5, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	var zero *menu.Item
	assert.Equal(t, menu.ErrItemIsNotConstructed, zero.Validate())
}
