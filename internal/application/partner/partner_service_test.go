package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Supplier, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func TestCustomerService_Create_Success(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)
	ctx := context.Background()

	repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	result, err := service.Create(ctx, CustomerRequest{
		Name:    "  Acme Packaging ",
		Company: "Acme Ltd",
		Email:   "buyer@acme.example",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Packaging", result.Name)
	assert.Equal(t, "Acme Ltd", result.Company)
	assert.Equal(t, "buyer@acme.example", result.Email)
	repo.AssertExpectations(t)
}

func TestCustomerService_Create_InvalidEmail(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	_, err := service.Create(context.Background(), CustomerRequest{Name: "Acme", Email: "not-an-email"})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Update(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)
	ctx := context.Background()
	customer, err := partner.NewCustomer("Acme", "", partner.Contact{})
	require.NoError(t, err)

	repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	repo.On("Save", ctx, customer).Return(nil)

	result, err := service.Update(ctx, customer.ID, CustomerRequest{Name: "Acme Packaging", Phone: "555-0100"})

	require.NoError(t, err)
	assert.Equal(t, "Acme Packaging", result.Name)
	assert.Equal(t, "555-0100", result.Phone)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("customer", id))

	_, err := service.GetByID(ctx, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerService_List_AppliesDefaults(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)
	ctx := context.Background()
	customer, err := partner.NewCustomer("Acme", "", partner.Contact{})
	require.NoError(t, err)

	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Search == "acme"
	})).Return([]partner.Customer{*customer}, int64(1), nil)

	result, total, err := service.List(ctx, ListFilter{Search: "acme"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, customer.ID, result[0].ID)
}

func TestSupplierService_CreateAndUpdate(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo)
	ctx := context.Background()

	var saved *partner.Supplier
	repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*partner.Supplier) }).
		Return(nil)

	created, err := service.Create(ctx, SupplierRequest{Name: "Polymer Supply", ContactPerson: "J. Chen"})
	require.NoError(t, err)
	assert.Equal(t, "J. Chen", created.ContactPerson)
	require.NotNil(t, saved)

	repo.On("FindByID", ctx, saved.ID).Return(saved, nil)

	updated, err := service.Update(ctx, saved.ID, SupplierRequest{Name: "Polymer Supply Co", Address: "12 Resin Way"})
	require.NoError(t, err)
	assert.Equal(t, "Polymer Supply Co", updated.Name)
	assert.Equal(t, "12 Resin Way", updated.Address)
	assert.Empty(t, updated.ContactPerson)
}

func TestSupplierService_Create_MissingName(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo)

	_, err := service.Create(context.Background(), SupplierRequest{Name: "   "})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestSupplierService_List(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo)
	ctx := context.Background()

	repo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]partner.Supplier{}, int64(0), nil)

	result, total, err := service.List(ctx, ListFilter{Page: 2, PageSize: 10})

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Zero(t, total)
}
