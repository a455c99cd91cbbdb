// Package finance holds the append-only transaction ledger.
package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of money
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid checks if the type is a known value
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Ledger categories and reference types written by the order workflows
const (
	CategorySales     = "sales"
	CategoryPurchases = "purchases"

	ReferenceSalesOrder    = "sales_order"
	ReferencePurchaseOrder = "purchase_order"
)

// Transaction is an immutable ledger row. It is written once and never
// updated or reversed, even if the referenced order is cancelled later.
type Transaction struct {
	ID              uuid.UUID
	TransactionDate time.Time
	Type            TransactionType
	Category        string
	Amount          decimal.Decimal
	Description     string
	ReferenceType   string
	ReferenceID     *uuid.UUID
	CreatedBy       *uuid.UUID
}

// Reference points a ledger row at the document that caused it
type Reference struct {
	Type string
	ID   uuid.UUID
}

// NewTransaction creates a ledger row
func NewTransaction(txType TransactionType, category string, amount decimal.Decimal, description string, ref *Reference, createdBy *uuid.UUID) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewValidationError("type", "must be income or expense")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("amount", "cannot be negative")
	}
	t := &Transaction{
		ID:              uuid.New(),
		TransactionDate: time.Now(),
		Type:            txType,
		Category:        strings.TrimSpace(category),
		Amount:          amount,
		Description:     strings.TrimSpace(description),
		CreatedBy:       createdBy,
	}
	if ref != nil {
		id := ref.ID
		t.ReferenceType = ref.Type
		t.ReferenceID = &id
	}
	return t, nil
}

// SignedAmount is positive for income and negative for expense
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Summary totals the ledger
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Count        int64
}

// Net is income minus expense
func (s Summary) Net() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// TransactionFilter narrows ledger listings
type TransactionFilter struct {
	shared.Filter
	Type          *TransactionType
	ReferenceType string
	ReferenceID   *uuid.UUID
	From          *time.Time
	To            *time.Time
}

// TransactionRepository is append-only: there is no update or delete.
type TransactionRepository interface {
	Append(ctx context.Context, tx *Transaction) error
	// FindAll returns rows newest first
	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
	Summarize(ctx context.Context, filter TransactionFilter) (Summary, error)
}
