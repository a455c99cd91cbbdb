package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const productEntity = "product"

// productUpdateColumns are written on update. Quantity is absent: it only
// moves through AdjustQuantity.
var productUpdateColumns = []string{
	"name", "sku", "description", "category", "unit_price", "reorder_level", "supplier_id", "updated_at",
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, productEntity, id)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// FindAll finds products matching the filter, ordered by name by default
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	query := conn(ctx, r.db).Model(&models.ProductModel{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(category) LIKE ?", p, p, p)
	}
	if category, ok := filter.Filters["category"].(string); ok && category != "" {
		query = query.Where("category = ?", catalog.NormalizeCategory(category))
	}
	if supplierID, ok := filter.Filters["supplier_id"].(uuid.UUID); ok {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := applyFilter(query, filter, sortSpec{allowed: ProductSortFields, field: "name", dir: "ASC", tiebreak: "sku"}).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return productsToDomain(rows), total, nil
}

// FindLowStock finds products at or below their reorder level
func (r *GormProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := conn(ctx, r.db).
		Where("quantity <= reorder_level").
		Order("quantity ASC").Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// ExistsBySKU checks if a SKU is taken, optionally ignoring one product
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&models.ProductModel{}).Where("sku = ?", sku)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts a new product or updates an existing one without touching quantity
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	db := conn(ctx, r.db)
	result := db.Model(&models.ProductModel{}).
		Where("id = ?", product.ID).
		Select(productUpdateColumns).
		Updates(model)
	if result.Error != nil {
		return translate(result.Error, productEntity, product.ID)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return translate(db.Create(model).Error, productEntity, product.ID)
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(productEntity, id)
	}
	return nil
}

// AdjustQuantity adds delta to the on-hand quantity in a single UPDATE.
// There is no floor: stock may go negative.
func (r *GormProductRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int64) error {
	result := conn(ctx, r.db).Model(&models.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(productEntity, id)
	}
	return nil
}

func productsToDomain(rows []models.ProductModel) []catalog.Product {
	out := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
