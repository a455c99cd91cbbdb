package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderTables maps each order kind to the table it numbers
var orderTables = map[shared.OrderKind]string{
	shared.OrderKindSales:      "sales_orders",
	shared.OrderKindProduction: "production_orders",
	shared.OrderKindPurchase:   "purchase_orders",
}

// GormOrderSequenceRepository allocates order numbers from the
// order_sequences table. The increment takes a row lock that is held until
// the surrounding transaction ends, so concurrent creations are serialized.
type GormOrderSequenceRepository struct {
	db *gorm.DB
}

// NewGormOrderSequenceRepository creates a new GormOrderSequenceRepository
func NewGormOrderSequenceRepository(db *gorm.DB) *GormOrderSequenceRepository {
	return &GormOrderSequenceRepository{db: db}
}

// NextCount returns the count of orders of this kind issued so far and
// reserves the next one. Call it inside the transaction that inserts the order.
func (r *GormOrderSequenceRepository) NextCount(ctx context.Context, kind shared.OrderKind) (int64, error) {
	table, ok := orderTables[kind]
	if !ok {
		return 0, shared.NewValidationError("kind", fmt.Sprintf("unknown order kind %q", kind))
	}
	db := conn(ctx, r.db)

	for attempt := 0; attempt < 2; attempt++ {
		next, err := r.increment(db, kind)
		if err != nil {
			return 0, err
		}
		if next > 0 {
			return next - 1, nil
		}

		// First allocation for this kind: seed from the rows already present.
		var existing int64
		if err := db.Table(table).Count(&existing).Error; err != nil {
			return 0, err
		}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.OrderSequenceModel{
			Kind:      string(kind),
			Value:     existing + 1,
			UpdatedAt: time.Now().UTC(),
		})
		if result.Error != nil {
			return 0, result.Error
		}
		if result.RowsAffected == 1 {
			return existing, nil
		}
		// Another writer seeded the row first; take the increment path again.
	}
	return 0, shared.NewConflictError("could not allocate order number", nil)
}

// increment bumps the counter and returns the new value, or 0 when the row is missing
func (r *GormOrderSequenceRepository) increment(db *gorm.DB, kind shared.OrderKind) (int64, error) {
	result := db.Model(&models.OrderSequenceModel{}).
		Where("kind = ?", string(kind)).
		Updates(map[string]any{
			"value":      gorm.Expr("value + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, nil
	}
	var seq models.OrderSequenceModel
	if err := db.First(&seq, "kind = ?", string(kind)).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

var _ shared.OrderSequenceRepository = (*GormOrderSequenceRepository)(nil)
