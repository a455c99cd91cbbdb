package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a DomainError, got %v", err)
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
	return domainErr.Field
}

func TestParseDecimal(t *testing.T) {
	d, err := parseDecimal("unit_price", " 12.50 ")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(d))

	_, err = parseDecimal("unit_price", "  ")
	assert.Equal(t, "unit_price", fieldOf(t, err))

	_, err = parseDecimal("unit_price", "twelve")
	assert.Equal(t, "unit_price", fieldOf(t, err))

	opt, err := parseOptionalDecimal("unit_price", "")
	require.NoError(t, err)
	assert.Nil(t, opt)

	opt, err = parseOptionalDecimal("unit_price", "0")
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.True(t, opt.IsZero())
}

func TestParseInt64(t *testing.T) {
	n, err := parseInt64("quantity", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = parseInt64("quantity", "4.2")
	assert.Equal(t, "quantity", fieldOf(t, err))

	_, err = parseInt64("quantity", "")
	assert.Equal(t, "quantity", fieldOf(t, err))

	opt, err := parseOptionalInt64("reorder_level", "  ")
	require.NoError(t, err)
	assert.Nil(t, opt)

	opt, err = parseOptionalInt64("reorder_level", "0")
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, int64(0), *opt)
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()
	got, err := parseUUID("customer_id", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseUUID("customer_id", "")
	assert.Equal(t, "customer_id", fieldOf(t, err))

	opt, err := parseOptionalUUID("supplier_id", "")
	require.NoError(t, err)
	assert.Nil(t, opt)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := parseOptionalDate("planned_start_date", "2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseOptionalDate("planned_start_date", "2026-03-01T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = parseOptionalDate("planned_start_date", "03/01/2026")
	assert.Equal(t, "planned_start_date", fieldOf(t, err))
}

func TestPagination(t *testing.T) {
	page, size := pagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = pagination(3, 50)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)
}

func TestOrderLinesForm(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("skips blank rows", func(t *testing.T) {
		lines, err := orderLinesForm{
			ProductIDs: []string{a.String(), " ", b.String()},
			Quantities: []string{"2", "", "5"},
			UnitPrices: []string{"1.10", "", "0.25"},
		}.lines()
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, a, lines[0].ProductID)
		assert.Equal(t, int64(2), lines[0].Quantity)
		assert.Equal(t, b, lines[1].ProductID)
		require.NotNil(t, lines[1].UnitPrice)
		assert.True(t, decimal.RequireFromString("0.25").Equal(*lines[1].UnitPrice))
	})

	t.Run("no rows", func(t *testing.T) {
		lines, err := orderLinesForm{}.lines()
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("short arrays", func(t *testing.T) {
		_, err := orderLinesForm{ProductIDs: []string{a.String()}, Quantities: []string{"1"}}.lines()
		assert.Equal(t, "items[0]", fieldOf(t, err))
	})

	t.Run("bad value names the row", func(t *testing.T) {
		_, err := orderLinesForm{
			ProductIDs: []string{"", a.String()},
			Quantities: []string{"", "many"},
			UnitPrices: []string{"", "1"},
		}.lines()
		assert.Equal(t, "quantity[1]", fieldOf(t, err))
	})

	t.Run("blank price on a product row", func(t *testing.T) {
		_, err := orderLinesForm{
			ProductIDs: []string{a.String()},
			Quantities: []string{"2"},
			UnitPrices: []string{" "},
		}.lines()
		assert.Equal(t, "unit_price[0]", fieldOf(t, err))
	})

	t.Run("blank quantity on a product row", func(t *testing.T) {
		_, err := orderLinesForm{
			ProductIDs: []string{a.String()},
			Quantities: []string{""},
			UnitPrices: []string{"1"},
		}.lines()
		assert.Equal(t, "quantity[0]", fieldOf(t, err))
	})
}
