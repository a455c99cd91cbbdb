package shared

import (
	"context"
	"fmt"
)

// OrderKind identifies a family of numbered orders
type OrderKind string

const (
	OrderKindSales      OrderKind = "sales"
	OrderKindProduction OrderKind = "production"
	OrderKindPurchase   OrderKind = "purchase"
)

// Prefix returns the order number prefix for the kind
func (k OrderKind) Prefix() string {
	switch k {
	case OrderKindSales:
		return "SO"
	case OrderKindProduction:
		return "PO"
	case OrderKindPurchase:
		return "PUR"
	default:
		return ""
	}
}

// IsValid reports whether the kind is known
func (k OrderKind) IsValid() bool {
	return k.Prefix() != ""
}

// FormatOrderNumber derives the next order number from the count of orders
// of that kind already issued: <PREFIX>-<count+1>, zero padded to 5 digits.
// Counts beyond 99999 widen naturally.
func FormatOrderNumber(kind OrderKind, count int64) string {
	return fmt.Sprintf("%s-%05d", kind.Prefix(), count+1)
}

// OrderSequenceRepository hands out order counts. NextCount must be called
// inside a TxManager transaction; the returned count stays reserved until
// that transaction ends, so concurrent callers are serialized.
type OrderSequenceRepository interface {
	NextCount(ctx context.Context, kind OrderKind) (int64, error)
}
