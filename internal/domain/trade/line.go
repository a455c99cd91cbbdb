// Package trade holds the commercial documents: sales orders to customers
// and purchase orders to suppliers.
package trade

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineInput is one order line as entered
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal is quantity times unit price
func (l LineInput) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// ValidateLines checks every line before anything is written.
// The index in the field name points at the offending line.
func ValidateLines(lines []LineInput) error {
	for i, l := range lines {
		if l.ProductID == uuid.Nil {
			return shared.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "is required")
		}
		if l.Quantity <= 0 {
			return shared.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if l.UnitPrice.IsNegative() {
			return shared.NewValidationError(fmt.Sprintf("items[%d].unit_price", i), "cannot be negative")
		}
	}
	return nil
}

// OrderLine is a priced line of a sales or purchase order. The unit price is
// a copy taken when the order was entered.
type OrderLine struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

func newOrderLines(orderID uuid.UUID, lines []LineInput) ([]OrderLine, decimal.Decimal) {
	items := make([]OrderLine, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		sub := l.Subtotal()
		items = append(items, OrderLine{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  sub,
		})
		total = total.Add(sub)
	}
	return items, total
}

// ProductQuantities sums line quantities per product
func ProductQuantities(items []OrderLine) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(items))
	for _, it := range items {
		out[it.ProductID] += it.Quantity
	}
	return out
}
