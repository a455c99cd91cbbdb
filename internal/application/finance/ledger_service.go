// Package finance exposes the read side of the transaction ledger. Rows are
// appended by the order workflows only.
package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/finance"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionListFilter represents filter options for ledger listings
type TransactionListFilter struct {
	Search        string     `form:"search"`
	Type          string     `form:"type" binding:"omitempty,oneof=income expense"`
	ReferenceType string     `form:"reference_type" binding:"omitempty,oneof=sales_order purchase_order"`
	ReferenceID   string     `form:"reference_id" binding:"omitempty,uuid"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f TransactionListFilter) toDomain() (finance.TransactionFilter, error) {
	referenceID, err := shared.ParseFilterID("reference_id", f.ReferenceID)
	if err != nil {
		return finance.TransactionFilter{}, err
	}
	filter := finance.TransactionFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
		},
		ReferenceType: f.ReferenceType,
		ReferenceID:   referenceID,
		From:          f.From,
		To:            f.To,
	}
	if f.Type != "" {
		txType := finance.TransactionType(strings.ToLower(f.Type))
		filter.Type = &txType
	}
	return filter, nil
}

// TransactionResponse represents a ledger row in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty"`
	CreatedBy       *uuid.UUID      `json:"created_by,omitempty"`
}

// SummaryResponse totals the ledger
type SummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
	Count        int64           `json:"count"`
}

// ToTransactionResponse converts a domain Transaction to TransactionResponse
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		TransactionDate: t.TransactionDate,
		Type:            string(t.Type),
		Category:        t.Category,
		Amount:          t.Amount,
		Description:     t.Description,
		ReferenceType:   t.ReferenceType,
		ReferenceID:     t.ReferenceID,
		CreatedBy:       t.CreatedBy,
	}
}

// LedgerService reads the append-only transaction ledger
type LedgerService struct {
	repo finance.TransactionRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(repo finance.TransactionRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// List retrieves ledger rows, newest first
func (s *LedgerService) List(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}
	rows, total, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransactionResponse, len(rows))
	for i := range rows {
		out[i] = ToTransactionResponse(&rows[i])
	}
	return out, total, nil
}

// Summary totals income and expense over the filtered rows. Paging is ignored.
func (s *LedgerService) Summary(ctx context.Context, filter TransactionListFilter) (*SummaryResponse, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, err
	}
	domainFilter.Page, domainFilter.PageSize = 0, 0
	summary, err := s.repo.Summarize(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Net:          summary.Net(),
		Count:        summary.Count,
	}, nil
}
