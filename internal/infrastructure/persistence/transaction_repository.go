package persistence

import (
	"context"

	"github.com/moldshop/erp/internal/domain/finance"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository is the append-only ledger store
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append inserts one ledger row
func (r *GormTransactionRepository) Append(ctx context.Context, tx *finance.Transaction) error {
	return translate(conn(ctx, r.db).Create(models.TransactionModelFromDomain(tx)).Error, "transaction", tx.ID)
}

func (r *GormTransactionRepository) filtered(ctx context.Context, filter finance.TransactionFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&models.TransactionModel{})
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.ReferenceType != "" {
		query = query.Where("reference_type = ?", filter.ReferenceType)
	}
	if filter.ReferenceID != nil {
		query = query.Where("reference_id = ?", *filter.ReferenceID)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date < ?", *filter.To)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(description) LIKE ? OR LOWER(category) LIKE ?", p, p)
	}
	return query
}

// FindAll returns ledger rows newest first
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter finance.TransactionFilter) ([]finance.Transaction, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("transaction_date DESC").Order("id")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	var rows []models.TransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]finance.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// Summarize totals income and expense over the filtered rows
func (r *GormTransactionRepository) Summarize(ctx context.Context, filter finance.TransactionFilter) (finance.Summary, error) {
	var rows []struct {
		Type  finance.TransactionType
		Total decimal.NullDecimal
		Count int64
	}
	if err := r.filtered(ctx, filter).
		Select("type, SUM(amount) AS total, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error; err != nil {
		return finance.Summary{}, err
	}

	summary := finance.Summary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, row := range rows {
		total := decimal.Zero
		if row.Total.Valid {
			total = row.Total.Decimal
		}
		switch row.Type {
		case finance.TransactionTypeIncome:
			summary.TotalIncome = total
		case finance.TransactionTypeExpense:
			summary.TotalExpense = total
		}
		summary.Count += row.Count
	}
	return summary, nil
}

var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)
