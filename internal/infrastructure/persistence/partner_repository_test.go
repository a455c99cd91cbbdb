package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	c, err := partner.NewCustomer("Zeta Plastics", "Zeta GmbH", partner.Contact{Email: "buy@zeta.example", Phone: "555-0100", Address: "1 Main St"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))
	seedCustomer(t, db, "Acme")

	t.Run("round-trips every field", func(t *testing.T) {
		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Name, got.Name)
		assert.Equal(t, c.Company, got.Company)
		assert.Equal(t, c.Contact, got.Contact)
	})

	t.Run("updates in place", func(t *testing.T) {
		require.NoError(t, c.Update("Zeta Plastics", "Zeta AG", c.Contact))
		require.NoError(t, repo.Save(ctx, c))
		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Zeta AG", got.Company)
	})

	t.Run("lists by name", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "Acme", items[0].Name)
	})

	t.Run("finds by ids", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, []uuid.UUID{c.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("missing customer", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSupplierRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	s, err := partner.NewSupplier("Resin Co", "Dana", partner.Contact{Email: "sales@resin.example"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Resin Co", got.Name)
	assert.Equal(t, "Dana", got.ContactPerson)
	assert.Equal(t, "sales@resin.example", got.Email)

	items, total, err := repo.FindAll(ctx, shared.Filter{Search: "dana"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}
