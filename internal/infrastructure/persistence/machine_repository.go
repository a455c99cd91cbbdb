package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const machineEntity = "machine"

// GormMachineRepository implements MachineRepository using GORM
type GormMachineRepository struct {
	db *gorm.DB
}

// NewGormMachineRepository creates a new GormMachineRepository
func NewGormMachineRepository(db *gorm.DB) *GormMachineRepository {
	return &GormMachineRepository{db: db}
}

// FindByID finds a machine by its ID
func (r *GormMachineRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Machine, error) {
	var model models.MachineModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, machineEntity, id)
	}
	return model.ToDomain(), nil
}

// FindAll finds machines ordered by code
func (r *GormMachineRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Machine, int64, error) {
	query := conn(ctx, r.db).Model(&models.MachineModel{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", p, p)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MachineModel
	if err := applyFilter(query, filter, sortSpec{allowed: EquipmentSortFields, field: "code", dir: "ASC"}).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]production.Machine, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// ExistsByCode checks if a machine code is taken, optionally ignoring one machine
func (r *GormMachineRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&models.MachineModel{}).Where("code = ?", strings.ToUpper(code))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a machine
func (r *GormMachineRepository) Save(ctx context.Context, machine *production.Machine) error {
	model := &models.MachineModel{}
	model.FromDomain(machine)
	return translate(conn(ctx, r.db).Save(model).Error, machineEntity, machine.ID)
}

var _ production.MachineRepository = (*GormMachineRepository)(nil)
