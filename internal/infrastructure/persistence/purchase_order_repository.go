package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/domain/trade"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const purchaseOrderEntity = "purchase order"

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, purchaseOrderEntity, id)
	}
	return model.ToDomain(), nil
}

// FindAll finds purchase order headers, newest first by default
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter trade.PurchaseOrderFilter) ([]trade.PurchaseOrder, int64, error) {
	query := conn(ctx, r.db).Model(&models.PurchaseOrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(po_number) LIKE ?", likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PurchaseOrderModel
	if err := applyFilter(query, filter.Filter, sortSpec{allowed: OrderSortFields, field: "order_date", dir: "DESC", tiebreak: "po_number DESC"}).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]trade.PurchaseOrder, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// Create inserts the header and its items
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, order *trade.PurchaseOrder) error {
	model := &models.PurchaseOrderModel{}
	model.FromDomain(order)
	return translate(conn(ctx, r.db).Create(model).Error, purchaseOrderEntity, order.ID)
}

// UpdateStatus writes status and receipt time when the stored version still matches
func (r *GormPurchaseOrderRepository) UpdateStatus(ctx context.Context, order *trade.PurchaseOrder) error {
	result := conn(ctx, r.db).Model(&models.PurchaseOrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"status":      order.Status,
			"received_at": order.ReceivedAt,
			"updated_at":  order.UpdatedAt,
			"version":     order.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("purchase order was modified by another request", nil)
	}
	order.Version++
	return nil
}

var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
