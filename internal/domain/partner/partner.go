// Package partner holds customers and suppliers. They are plain reference
// records for orders and carry no derived behavior.
package partner

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
)

// Contact is the contact block shared by customers and suppliers
type Contact struct {
	Email   string
	Phone   string
	Address string
}

func (c Contact) normalized() (Contact, error) {
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return c, shared.NewValidationError("email", "is not a valid address")
		}
	}
	return c, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewValidationError("name", "is required")
	}
	if len(name) > 200 {
		return "", shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	return name, nil
}

// Customer buys finished goods
type Customer struct {
	shared.BaseAggregateRoot
	Name    string
	Company string
	Contact
}

// NewCustomer creates a customer
func NewCustomer(name, company string, contact Contact) (*Customer, error) {
	c := &Customer{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := c.Update(name, company, contact); err != nil {
		return nil, err
	}
	c.UpdatedAt = c.CreatedAt
	return c, nil
}

// Update replaces the customer's attributes
func (c *Customer) Update(name, company string, contact Contact) error {
	n, err := validateName(name)
	if err != nil {
		return err
	}
	ct, err := contact.normalized()
	if err != nil {
		return err
	}
	c.Name = n
	c.Company = strings.TrimSpace(company)
	c.Contact = ct
	c.Touch()
	return nil
}

// Supplier sells raw material and bought-in goods
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string
	ContactPerson string
	Contact
}

// NewSupplier creates a supplier
func NewSupplier(name, contactPerson string, contact Contact) (*Supplier, error) {
	s := &Supplier{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := s.Update(name, contactPerson, contact); err != nil {
		return nil, err
	}
	s.UpdatedAt = s.CreatedAt
	return s, nil
}

// Update replaces the supplier's attributes
func (s *Supplier) Update(name, contactPerson string, contact Contact) error {
	n, err := validateName(name)
	if err != nil {
		return err
	}
	ct, err := contact.normalized()
	if err != nil {
		return err
	}
	s.Name = n
	s.ContactPerson = strings.TrimSpace(contactPerson)
	s.Contact = ct
	s.Touch()
	return nil
}

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)
	// FindAll returns customers ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, int64, error)
	Save(ctx context.Context, customer *Customer) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Supplier, error)
	// FindAll returns suppliers ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, int64, error)
	Save(ctx context.Context, supplier *Supplier) error
}
