package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/domain/trade"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const salesOrderEntity = "sales order"

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order with its items
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, salesOrderEntity, id)
	}
	return model.ToDomain(), nil
}

// FindAll finds sales order headers, newest first by default
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter trade.SalesOrderFilter) ([]trade.SalesOrder, int64, error) {
	query := conn(ctx, r.db).Model(&models.SalesOrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(order_number) LIKE ?", likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SalesOrderModel
	if err := applyFilter(query, filter.Filter, sortSpec{allowed: OrderSortFields, field: "order_date", dir: "DESC", tiebreak: "order_number DESC"}).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]trade.SalesOrder, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// Create inserts the header and its items. The header carries the final
// total; inside the caller's transaction this is indistinguishable from
// inserting zero and writing the total afterwards.
func (r *GormSalesOrderRepository) Create(ctx context.Context, order *trade.SalesOrder) error {
	model := &models.SalesOrderModel{}
	model.FromDomain(order)
	return translate(conn(ctx, r.db).Create(model).Error, salesOrderEntity, order.ID)
}

// UpdateStatus writes the status when the stored version still matches
func (r *GormSalesOrderRepository) UpdateStatus(ctx context.Context, order *trade.SalesOrder) error {
	result := conn(ctx, r.db).Model(&models.SalesOrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
			"version":    order.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("sales order was modified by another request", nil)
	}
	order.Version++
	return nil
}

var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
