package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for a ledger row. Rows are
// inserted once and never updated.
type TransactionModel struct {
	ID              uuid.UUID               `gorm:"type:uuid;primary_key"`
	TransactionDate time.Time               `gorm:"not null;index"`
	Type            finance.TransactionType `gorm:"type:varchar(20);not null;index"`
	Category        string                  `gorm:"type:varchar(50)"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Description     string                  `gorm:"type:text"`
	ReferenceType   string                  `gorm:"type:varchar(30);index:idx_transactions_reference,priority:1"`
	ReferenceID     *uuid.UUID              `gorm:"type:uuid;index:idx_transactions_reference,priority:2"`
	CreatedBy       *uuid.UUID              `gorm:"type:uuid"`
	CreatedAt       time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *TransactionModel) ToDomain() *finance.Transaction {
	return &finance.Transaction{
		ID:              m.ID,
		TransactionDate: m.TransactionDate,
		Type:            m.Type,
		Category:        m.Category,
		Amount:          m.Amount,
		Description:     m.Description,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		CreatedBy:       m.CreatedBy,
	}
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(t *finance.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              t.ID,
		TransactionDate: t.TransactionDate,
		Type:            t.Type,
		Category:        t.Category,
		Amount:          t.Amount,
		Description:     t.Description,
		ReferenceType:   t.ReferenceType,
		ReferenceID:     t.ReferenceID,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.TransactionDate,
	}
}
