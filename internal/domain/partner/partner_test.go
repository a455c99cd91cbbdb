package partner

import (
	"testing"

	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("  Acme Packaging ", "Acme Ltd", Contact{Email: "buyer@acme.test", Phone: " 555-0100 "})
	require.NoError(t, err)
	assert.Equal(t, "Acme Packaging", c.Name)
	assert.Equal(t, "555-0100", c.Phone)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

func TestNewCustomer_Validation(t *testing.T) {
	_, err := NewCustomer("", "", Contact{})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewCustomer("Acme", "", Contact{Email: "not-an-email"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "email", de.Field)
}

func TestSupplier_Update(t *testing.T) {
	s, err := NewSupplier("Polymer Supply", "Dana", Contact{})
	require.NoError(t, err)

	require.NoError(t, s.Update("Polymer Supply Co", "Lee", Contact{Address: "1 Resin Way"}))
	assert.Equal(t, "Polymer Supply Co", s.Name)
	assert.Equal(t, "Lee", s.ContactPerson)
	assert.Equal(t, "1 Resin Way", s.Address)

	assert.Error(t, s.Update(" ", "", Contact{}))
	assert.Equal(t, "Polymer Supply Co", s.Name)
}
