package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const moldEntity = "mold"

// moldUpdateColumns leave the shot counters alone; IncrementShots owns them.
var moldUpdateColumns = []string{
	"name", "product_id", "cavity_count", "maintenance_interval", "status", "notes", "updated_at",
}

// GormMoldRepository implements MoldRepository using GORM
type GormMoldRepository struct {
	db *gorm.DB
}

// NewGormMoldRepository creates a new GormMoldRepository
func NewGormMoldRepository(db *gorm.DB) *GormMoldRepository {
	return &GormMoldRepository{db: db}
}

// FindByID finds a mold by its ID
func (r *GormMoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Mold, error) {
	var model models.MoldModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, moldEntity, id)
	}
	return model.ToDomain(), nil
}

// FindAll finds molds ordered by code
func (r *GormMoldRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Mold, int64, error) {
	query := conn(ctx, r.db).Model(&models.MoldModel{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", p, p)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if productID, ok := filter.Filters["product_id"].(uuid.UUID); ok {
		query = query.Where("product_id = ?", productID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MoldModel
	if err := applyFilter(query, filter, sortSpec{allowed: EquipmentSortFields, field: "code", dir: "ASC"}).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]production.Mold, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// ExistsByCode checks if a mold code is taken, optionally ignoring one mold
func (r *GormMoldRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&models.MoldModel{}).Where("code = ?", strings.ToUpper(code))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts a new mold or updates its descriptive fields
func (r *GormMoldRepository) Save(ctx context.Context, mold *production.Mold) error {
	model := &models.MoldModel{}
	model.FromDomain(mold)
	db := conn(ctx, r.db)
	result := db.Model(&models.MoldModel{}).
		Where("id = ?", mold.ID).
		Select(moldUpdateColumns).
		Updates(model)
	if result.Error != nil {
		return translate(result.Error, moldEntity, mold.ID)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return translate(db.Create(model).Error, moldEntity, mold.ID)
}

// IncrementShots adds shots to both wear counters in one UPDATE
func (r *GormMoldRepository) IncrementShots(ctx context.Context, id uuid.UUID, shots int64) error {
	if shots < 0 {
		return shared.NewValidationError("shots", "cannot be negative")
	}
	result := conn(ctx, r.db).Model(&models.MoldModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_shots":             gorm.Expr("total_shots + ?", shots),
			"shots_since_maintenance": gorm.Expr("shots_since_maintenance + ?", shots),
			"updated_at":              time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(moldEntity, id)
	}
	return nil
}

var _ production.MoldRepository = (*GormMoldRepository)(nil)
