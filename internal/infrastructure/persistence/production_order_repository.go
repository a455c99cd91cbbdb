package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const productionOrderEntity = "production order"

// GormProductionOrderRepository implements ProductionOrderRepository using GORM
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

// FindByID finds a production order by its ID
func (r *GormProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	var model models.ProductionOrderModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, productionOrderEntity, id)
	}
	return model.ToDomain(), nil
}

// FindAll finds production orders, newest first by default
func (r *GormProductionOrderRepository) FindAll(ctx context.Context, filter production.ProductionOrderFilter) ([]production.ProductionOrder, int64, error) {
	query := conn(ctx, r.db).Model(&models.ProductionOrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.MoldID != nil {
		query = query.Where("mold_id = ?", *filter.MoldID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(order_number) LIKE ?", likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductionOrderModel
	if err := applyFilter(query, filter.Filter, sortSpec{allowed: OrderSortFields, field: "created_at", dir: "DESC", tiebreak: "order_number DESC"}).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]production.ProductionOrder, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// Create inserts a new production order
func (r *GormProductionOrderRepository) Create(ctx context.Context, order *production.ProductionOrder) error {
	model := &models.ProductionOrderModel{}
	model.FromDomain(order)
	return translate(conn(ctx, r.db).Create(model).Error, productionOrderEntity, order.ID)
}

// Update writes the lifecycle fields when the stored version still matches,
// then bumps the version. A stale version yields a concurrency conflict.
func (r *GormProductionOrderRepository) Update(ctx context.Context, order *production.ProductionOrder) error {
	result := conn(ctx, r.db).Model(&models.ProductionOrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"machine_id":        order.MachineID,
			"produced_quantity": order.ProducedQuantity,
			"scrap_quantity":    order.ScrapQuantity,
			"raw_material_used": order.RawMaterialUsed,
			"status":            order.Status,
			"quality_status":    order.QualityStatus,
			"actual_start_date": order.ActualStartDate,
			"actual_end_date":   order.ActualEndDate,
			"quality_inspector": order.QualityInspector,
			"quality_notes":     order.QualityNotes,
			"inspected_at":      order.InspectedAt,
			"notes":             order.Notes,
			"updated_at":        order.UpdatedAt,
			"version":           order.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("production order was modified by another request", nil)
	}
	order.Version++
	return nil
}

var _ production.ProductionOrderRepository = (*GormProductionOrderRepository)(nil)
