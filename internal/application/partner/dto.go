package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/domain/shared"
)

// CustomerRequest creates or fully updates a customer
type CustomerRequest struct {
	Name    string `json:"name" form:"name" binding:"required,min=1,max=200"`
	Company string `json:"company" form:"company" binding:"max=200"`
	Email   string `json:"email" form:"email" binding:"omitempty,email,max=200"`
	Phone   string `json:"phone" form:"phone" binding:"max=50"`
	Address string `json:"address" form:"address" binding:"max=500"`
}

// SupplierRequest creates or fully updates a supplier
type SupplierRequest struct {
	Name          string `json:"name" form:"name" binding:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" form:"contact_person" binding:"max=200"`
	Email         string `json:"email" form:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" form:"phone" binding:"max=50"`
	Address       string `json:"address" form:"address" binding:"max=500"`
}

// ListFilter represents filter options for customer and supplier listings
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ListFilter) toDomain() shared.Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	return shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
		Filters:  make(map[string]any),
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
