package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchaseOrder(t *testing.T) {
	o, err := NewPurchaseOrder("PUR-00001", PurchaseOrderInput{
		SupplierID: uuid.New(),
		Lines:      []LineInput{line(1000, "1.20"), line(50, "3")},
	})
	require.NoError(t, err)
	assert.Equal(t, PurchaseOrderStatusPending, o.Status)
	assert.Equal(t, "1350", o.TotalAmount.String())
}

func TestNewPurchaseOrder_Validation(t *testing.T) {
	_, err := NewPurchaseOrder("PUR-00001", PurchaseOrderInput{Lines: []LineInput{line(1, "1")}})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewPurchaseOrder("PUR-00001", PurchaseOrderInput{SupplierID: uuid.New()})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "items", de.Field)
}

func TestPurchaseOrder_Receive(t *testing.T) {
	o, err := NewPurchaseOrder("PUR-00001", PurchaseOrderInput{SupplierID: uuid.New(), Lines: []LineInput{line(1, "1")}})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, o.Receive(now))
	assert.Equal(t, PurchaseOrderStatusReceived, o.Status)
	assert.Equal(t, now, *o.ReceivedAt)
	require.Len(t, o.GetDomainEvents(), 1)

	assert.ErrorIs(t, o.Receive(now), shared.ErrInvalidState)
	assert.ErrorIs(t, o.Cancel(), shared.ErrInvalidState)
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	o, err := NewPurchaseOrder("PUR-00001", PurchaseOrderInput{SupplierID: uuid.New(), Lines: []LineInput{line(1, "1")}})
	require.NoError(t, err)
	require.NoError(t, o.Cancel())
	assert.ErrorIs(t, o.Receive(time.Now()), shared.ErrInvalidState)
	assert.Nil(t, o.ReceivedAt)
}
