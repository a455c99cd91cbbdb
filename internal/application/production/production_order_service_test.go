package production

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductionOrderRepository is a mock implementation of ProductionOrderRepository
type MockProductionOrderRepository struct {
	mock.Mock
}

func (m *MockProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.ProductionOrder), args.Error(1)
}

func (m *MockProductionOrderRepository) FindAll(ctx context.Context, filter production.ProductionOrderFilter) ([]production.ProductionOrder, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]production.ProductionOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductionOrderRepository) Create(ctx context.Context, order *production.ProductionOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockProductionOrderRepository) Update(ctx context.Context, order *production.ProductionOrder) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.Version++
	}
	return args.Error(0)
}

// MockMoldRepository is a mock implementation of MoldRepository
type MockMoldRepository struct {
	mock.Mock
}

func (m *MockMoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Mold, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Mold), args.Error(1)
}

func (m *MockMoldRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Mold, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]production.Mold), args.Get(1).(int64), args.Error(2)
}

func (m *MockMoldRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMoldRepository) Save(ctx context.Context, mold *production.Mold) error {
	args := m.Called(ctx, mold)
	return args.Error(0)
}

func (m *MockMoldRepository) IncrementShots(ctx context.Context, id uuid.UUID, shots int64) error {
	args := m.Called(ctx, id, shots)
	return args.Error(0)
}

// MockMachineRepository is a mock implementation of MachineRepository
type MockMachineRepository struct {
	mock.Mock
}

func (m *MockMachineRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Machine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Machine), args.Error(1)
}

func (m *MockMachineRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Machine, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]production.Machine), args.Get(1).(int64), args.Error(2)
}

func (m *MockMachineRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMachineRepository) Save(ctx context.Context, machine *production.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockSequence is a mock implementation of OrderSequenceRepository
type MockSequence struct {
	mock.Mock
}

func (m *MockSequence) NextCount(ctx context.Context, kind shared.OrderKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

// inlineTx runs the unit of work directly
type inlineTx struct{}

func (inlineTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type orderServiceFixture struct {
	orders    *MockProductionOrderRepository
	molds     *MockMoldRepository
	machines  *MockMachineRepository
	products  *MockProductRepository
	sequence  *MockSequence
	publisher *recordingPublisher
	service   *ProductionOrderService
	now       time.Time
}

func newOrderServiceFixture() *orderServiceFixture {
	f := &orderServiceFixture{
		orders:    new(MockProductionOrderRepository),
		molds:     new(MockMoldRepository),
		machines:  new(MockMachineRepository),
		products:  new(MockProductRepository),
		sequence:  new(MockSequence),
		publisher: &recordingPublisher{},
		now:       time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	f.service = NewProductionOrderService(f.orders, f.molds, f.machines, f.products, f.sequence, inlineTx{}, zap.NewNop())
	f.service.SetEventPublisher(f.publisher)
	f.service.now = func() time.Time { return f.now }
	return f
}

// expectProductName answers the product lookup behind response names
func (f *orderServiceFixture) expectProductName(t *testing.T, order *production.ProductionOrder, name string) {
	t.Helper()
	product, err := catalog.NewProduct(catalog.ProductDetails{Name: name, SKU: "CAP-28"}, 0)
	require.NoError(t, err)
	f.products.On("FindByID", mock.Anything, order.ProductID).Return(product, nil)
}

func newPlannedOrder(t *testing.T) *production.ProductionOrder {
	t.Helper()
	order, err := production.NewProductionOrder("PO-00001", production.PlanInput{
		ProductID:       uuid.New(),
		MoldID:          uuid.New(),
		PlannedQuantity: 100,
	})
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestProductionOrderService_Create(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()

	product, err := catalog.NewProduct(catalog.ProductDetails{Name: "Cap", SKU: "CAP-28"}, 0)
	require.NoError(t, err)
	mold, err := production.NewMold("m-01", production.MoldDetails{Name: "Cap mold", CavityCount: 4})
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.molds.On("FindByID", mock.Anything, mold.ID).Return(mold, nil)
	f.sequence.On("NextCount", mock.Anything, shared.OrderKindProduction).Return(int64(6), nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*production.ProductionOrder")).Return(nil)

	result, err := f.service.Create(ctx, CreateProductionOrderRequest{
		ProductID:       product.ID,
		MoldID:          mold.ID,
		PlannedQuantity: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, "PO-00007", result.OrderNumber)
	assert.Equal(t, "planned", result.Status)
	assert.Equal(t, "pending", result.QualityStatus)
	assert.Equal(t, "Cap", result.ProductName)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, production.EventTypeProductionOrderPlanned, f.publisher.events[0].EventType())
}

func TestProductionOrderService_Create_ValidatesBeforeNumbering(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.Create(context.Background(), CreateProductionOrderRequest{
		ProductID: uuid.New(),
		MoldID:    uuid.New(),
	})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	f.sequence.AssertNotCalled(t, "NextCount", mock.Anything, mock.Anything)
}

func TestProductionOrderService_Create_InactiveMold(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()

	product, err := catalog.NewProduct(catalog.ProductDetails{Name: "Cap", SKU: "CAP-28"}, 0)
	require.NoError(t, err)
	mold, err := production.NewMold("M-01", production.MoldDetails{Name: "Cap mold", Status: production.MoldStatusInactive})
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.molds.On("FindByID", mock.Anything, mold.ID).Return(mold, nil)

	_, err = f.service.Create(ctx, CreateProductionOrderRequest{ProductID: product.ID, MoldID: mold.ID, PlannedQuantity: 10})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	f.sequence.AssertNotCalled(t, "NextCount", mock.Anything, mock.Anything)
}

func TestProductionOrderService_Create_MissingMold(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	product, err := catalog.NewProduct(catalog.ProductDetails{Name: "Cap", SKU: "CAP-28"}, 0)
	require.NoError(t, err)
	moldID := uuid.New()

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.molds.On("FindByID", mock.Anything, moldID).Return(nil, shared.NewNotFoundError("mold", moldID))

	_, err = f.service.Create(ctx, CreateProductionOrderRequest{ProductID: product.ID, MoldID: moldID, PlannedQuantity: 10})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductionOrderService_Start(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := newPlannedOrder(t)

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.expectProductName(t, order, "Cap")

	result, err := f.service.Start(ctx, order.ID)

	require.NoError(t, err)
	assert.Equal(t, "in_progress", result.Status)
	assert.Equal(t, "Cap", result.ProductName)
	require.NotNil(t, result.ActualStartDate)
	assert.Equal(t, f.now, *result.ActualStartDate)
	f.orders.AssertNumberOfCalls(t, "Update", 1)
}

func TestProductionOrderService_Start_RejectsWrongState(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := newPlannedOrder(t)
	require.NoError(t, order.Start(f.now))
	order.ClearDomainEvents()

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.service.Start(ctx, order.ID)

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestProductionOrderService_Complete_ChargesMold(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := newPlannedOrder(t)
	require.NoError(t, order.Start(f.now))
	order.ClearDomainEvents()

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.molds.On("IncrementShots", mock.Anything, order.MoldID, int64(105)).Return(nil)
	f.expectProductName(t, order, "Cap")

	result, err := f.service.Complete(ctx, order.ID, completion(100, 5, "12.5"))

	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, "pending", result.QualityStatus)
	assert.Equal(t, int64(100), result.ProducedQuantity)
	assert.Equal(t, "Cap", result.ProductName)
	f.molds.AssertExpectations(t)
	f.orders.AssertNumberOfCalls(t, "Update", 1)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, production.EventTypeProductionOrderCompleted, f.publisher.events[0].EventType())
}

func TestProductionOrderService_Complete_RejectsPlanned(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := newPlannedOrder(t)

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.service.Complete(ctx, order.ID, completion(1, 0, "0"))

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	f.molds.AssertNotCalled(t, "IncrementShots", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductionOrderService_Complete_RequiresEveryFigure(t *testing.T) {
	produced, scrap := int64(100), int64(5)
	material := decimal.RequireFromString("12.5")

	tests := []struct {
		name  string
		req   CompleteProductionOrderRequest
		field string
	}{
		{"produced", CompleteProductionOrderRequest{ScrapQuantity: &scrap, RawMaterialUsed: &material}, "produced_quantity"},
		{"scrap", CompleteProductionOrderRequest{ProducedQuantity: &produced, RawMaterialUsed: &material}, "scrap_quantity"},
		{"material", CompleteProductionOrderRequest{ProducedQuantity: &produced, ScrapQuantity: &scrap}, "raw_material_used"},
		{"empty", CompleteProductionOrderRequest{}, "produced_quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderServiceFixture()

			_, err := f.service.Complete(context.Background(), uuid.New(), tt.req)

			require.ErrorIs(t, err, shared.ErrInvalidInput)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.field, domainErr.Field)
			f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestProductionOrderService_Complete_NegativeQuantity(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.Complete(context.Background(), uuid.New(), completion(-1, 0, "0"))

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func completedOrder(t *testing.T, now time.Time) *production.ProductionOrder {
	t.Helper()
	order := newPlannedOrder(t)
	require.NoError(t, order.Start(now))
	_, err := order.Complete(production.CompletionInput{ProducedQuantity: 100, ScrapQuantity: 5}, now)
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestProductionOrderService_InspectQuality_PassAddsStock(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := completedOrder(t, f.now)

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.products.On("AdjustQuantity", mock.Anything, order.ProductID, int64(100)).Return(nil)
	f.expectProductName(t, order, "Cap")

	result, err := f.service.InspectQuality(ctx, order.ID, InspectProductionOrderRequest{Result: "passed", Inspector: "Lee"})

	require.NoError(t, err)
	assert.Equal(t, "passed", result.QualityStatus)
	assert.Equal(t, "Lee", result.QualityInspector)
	f.products.AssertExpectations(t)
}

func TestProductionOrderService_InspectQuality_FailLeavesStock(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := completedOrder(t, f.now)

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.expectProductName(t, order, "Cap")

	result, err := f.service.InspectQuality(ctx, order.ID, InspectProductionOrderRequest{Result: "failed", Inspector: "Lee", Notes: "short shots"})

	require.NoError(t, err)
	assert.Equal(t, "failed", result.QualityStatus)
	f.products.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductionOrderService_InspectQuality_RejectsReinspection(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := completedOrder(t, f.now)
	_, err := order.Inspect(production.InspectionInput{Result: production.QualityStatusPassed, Inspector: "Lee"}, f.now)
	require.NoError(t, err)

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err = f.service.InspectQuality(ctx, order.ID, InspectProductionOrderRequest{Result: "passed", Inspector: "Lee"})

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	f.products.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductionOrderService_List_FiltersByStatus(t *testing.T) {
	f := newOrderServiceFixture()
	ctx := context.Background()
	order := newPlannedOrder(t)
	product, err := catalog.NewProduct(catalog.ProductDetails{Name: "Cap", SKU: "CAP-28"}, 0)
	require.NoError(t, err)
	product.ID = order.ProductID

	f.orders.On("FindAll", mock.Anything, mock.MatchedBy(func(filter production.ProductionOrderFilter) bool {
		return filter.Status != nil && *filter.Status == production.OrderStatusPlanned && filter.PageSize == 20
	})).Return([]production.ProductionOrder{*order}, int64(1), nil)
	f.products.On("FindByIDs", mock.Anything, []uuid.UUID{order.ProductID}).Return([]catalog.Product{*product}, nil)

	result, total, err := f.service.List(ctx, ProductionOrderListFilter{Status: "planned"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, "Cap", result[0].ProductName)
}

func completion(produced, scrap int64, material string) CompleteProductionOrderRequest {
	used := decimal.RequireFromString(material)
	return CompleteProductionOrderRequest{
		ProducedQuantity: &produced,
		ScrapQuantity:    &scrap,
		RawMaterialUsed:  &used,
	}
}
