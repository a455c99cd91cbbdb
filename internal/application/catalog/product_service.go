// Package catalog provides the product use cases.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/domain/shared"
)

// ProductService handles product-related business operations. On-hand
// quantity is never written here; only the order workflows adjust it.
type ProductService struct {
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, supplierRepo partner.SupplierRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// Create creates a new product with an opening quantity
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, strings.TrimSpace(req.SKU), nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Product with this SKU already exists")
	}

	supplierName, err := s.resolveSupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.details(), req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	response.SupplierName = supplierName
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	supplierName, err := s.resolveSupplier(ctx, product.SupplierID)
	if err != nil && !errors.Is(err, shared.ErrInvalidInput) {
		return nil, err
	}

	response := ToProductResponse(product)
	response.SupplierName = supplierName
	return &response, nil
}

// List retrieves products ordered by name, with their supplier names
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	supplierID, err := shared.ParseFilterID("supplier_id", filter.SupplierID)
	if err != nil {
		return nil, 0, err
	}
	if supplierID != nil {
		domainFilter.Filters["supplier_id"] = *supplierID
	}

	products, total, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := ToProductResponses(products)
	if err := s.attachSupplierNames(ctx, responses); err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListForAPI returns every product as a public listing row, ordered by name
func (s *ProductService) ListForAPI(ctx context.Context) ([]ProductAPIItem, error) {
	products, _, err := s.productRepo.FindAll(ctx, shared.Filter{OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	items := make([]ProductAPIItem, len(products))
	for i := range products {
		items[i] = ToProductAPIItem(&products[i])
	}
	return items, nil
}

// LowStock retrieves products at or below their reorder level
func (s *ProductService) LowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update replaces a product's attributes. Quantity is left as it is.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(req.SKU)
	if sku != product.SKU {
		exists, err := s.productRepo.ExistsBySKU(ctx, sku, &productID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Product with this SKU already exists")
		}
	}

	supplierName, err := s.resolveSupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	response.SupplierName = supplierName
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	return s.productRepo.Delete(ctx, productID)
}

// resolveSupplier checks that a referenced supplier exists and returns its name
func (s *ProductService) resolveSupplier(ctx context.Context, supplierID *uuid.UUID) (string, error) {
	if supplierID == nil {
		return "", nil
	}
	supplier, err := s.supplierRepo.FindByID(ctx, *supplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", shared.NewValidationError("supplier_id", "supplier not found")
		}
		return "", err
	}
	return supplier.Name, nil
}

func (s *ProductService) attachSupplierNames(ctx context.Context, responses []ProductResponse) error {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, r := range responses {
		if r.SupplierID != nil && !seen[*r.SupplierID] {
			seen[*r.SupplierID] = true
			ids = append(ids, *r.SupplierID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	suppliers, err := s.supplierRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	names := make(map[uuid.UUID]string, len(suppliers))
	for _, sup := range suppliers {
		names[sup.ID] = sup.Name
	}
	for i := range responses {
		if responses[i].SupplierID != nil {
			responses[i].SupplierName = names[*responses[i].SupplierID]
		}
	}
	return nil
}
