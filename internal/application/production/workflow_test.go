package production

import (
	"context"
	"testing"

	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/config"
	"github.com/moldshop/erp/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type workflowFixture struct {
	db       *gorm.DB
	products *persistence.GormProductRepository
	molds    *persistence.GormMoldRepository
	orders   *ProductionOrderService
	moldSvc  *MoldService
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate())

	db := database.DB
	products := persistence.NewGormProductRepository(db)
	molds := persistence.NewGormMoldRepository(db)
	machines := persistence.NewGormMachineRepository(db)

	return &workflowFixture{
		db:       db,
		products: products,
		molds:    molds,
		orders: NewProductionOrderService(
			persistence.NewGormProductionOrderRepository(db),
			molds,
			machines,
			products,
			persistence.NewGormOrderSequenceRepository(db),
			persistence.NewGormTxManager(db),
			zap.NewNop(),
		),
		moldSvc: NewMoldService(molds, products),
	}
}

func (f *workflowFixture) seed(t *testing.T) (*catalog.Product, *MoldResponse) {
	t.Helper()
	ctx := context.Background()
	product, err := catalog.NewProduct(catalog.ProductDetails{
		Name:      "Bottle cap 28mm",
		SKU:       "CAP-28",
		UnitPrice: decimal.RequireFromString("0.12"),
	}, 10)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(ctx, product))

	mold, err := f.moldSvc.Create(ctx, MoldRequest{Code: "m-28", Name: "Cap mold", ProductID: &product.ID, CavityCount: 8})
	require.NoError(t, err)
	return product, mold
}

func (f *workflowFixture) plan(t *testing.T, product *catalog.Product, mold *MoldResponse) *ProductionOrderResponse {
	t.Helper()
	order, err := f.orders.Create(context.Background(), CreateProductionOrderRequest{
		ProductID:       product.ID,
		MoldID:          mold.ID,
		PlannedQuantity: 100,
	})
	require.NoError(t, err)
	return order
}

func TestProductionWorkflow_Numbering(t *testing.T) {
	f := newWorkflowFixture(t)
	product, mold := f.seed(t)

	first := f.plan(t, product, mold)
	second := f.plan(t, product, mold)

	assert.Equal(t, "PO-00001", first.OrderNumber)
	assert.Equal(t, "PO-00002", second.OrderNumber)
}

func TestProductionWorkflow_CompleteChargesMoldOnce(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	product, mold := f.seed(t)
	order := f.plan(t, product, mold)

	_, err := f.orders.Start(ctx, order.ID)
	require.NoError(t, err)

	completed, err := f.orders.Complete(ctx, order.ID, completion(100, 5, "0"))
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.Equal(t, "pending", completed.QualityStatus)

	charged, err := f.molds.FindByID(ctx, mold.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(105), charged.TotalShots)
	assert.Equal(t, int64(105), charged.ShotsSinceMaintenance)

	_, err = f.orders.Complete(ctx, order.ID, completion(100, 5, "0"))
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	unchanged, err := f.molds.FindByID(ctx, mold.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(105), unchanged.TotalShots)
}

func TestProductionWorkflow_IncompleteReportKeepsOrderOpen(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	product, mold := f.seed(t)
	order := f.plan(t, product, mold)

	_, err := f.orders.Start(ctx, order.ID)
	require.NoError(t, err)

	report := completion(100, 5, "0")
	report.ScrapQuantity = nil
	_, err = f.orders.Complete(ctx, order.ID, report)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	current, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", current.Status)
	assert.Zero(t, current.ProducedQuantity)

	unchanged, err := f.molds.FindByID(ctx, mold.ID)
	require.NoError(t, err)
	assert.Zero(t, unchanged.TotalShots)

	_, err = f.orders.Complete(ctx, order.ID, completion(100, 5, "0"))
	require.NoError(t, err)
}

func TestProductionWorkflow_QualityGatesStock(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	product, mold := f.seed(t)

	run := func(result string) *ProductionOrderResponse {
		order := f.plan(t, product, mold)
		_, err := f.orders.Start(ctx, order.ID)
		require.NoError(t, err)
		_, err = f.orders.Complete(ctx, order.ID, completion(100, 5, "0"))
		require.NoError(t, err)
		inspected, err := f.orders.InspectQuality(ctx, order.ID, InspectProductionOrderRequest{Result: result, Inspector: "Lee"})
		require.NoError(t, err)
		return inspected
	}

	passed := run("passed")
	assert.Equal(t, "passed", passed.QualityStatus)
	stocked, err := f.products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), stocked.Quantity)

	failed := run("failed")
	assert.Equal(t, "failed", failed.QualityStatus)
	afterFail, err := f.products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), afterFail.Quantity)

	_, err = f.orders.InspectQuality(ctx, passed.ID, InspectProductionOrderRequest{Result: "passed", Inspector: "Lee"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	again, err := f.products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), again.Quantity)
}

func TestProductionWorkflow_StartFromWrongStateKeepsOrder(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	product, mold := f.seed(t)
	order := f.plan(t, product, mold)

	started, err := f.orders.Start(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.orders.Start(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	current, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", current.Status)
	require.NotNil(t, current.ActualStartDate)
	assert.True(t, started.ActualStartDate.Equal(*current.ActualStartDate))
	assert.Equal(t, started.Version, current.Version)
}

func TestProductionWorkflow_CompletionRollsBackWithoutMold(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	product, mold := f.seed(t)
	order := f.plan(t, product, mold)
	_, err := f.orders.Start(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Exec("DELETE FROM molds WHERE id = ?", mold.ID).Error)

	_, err = f.orders.Complete(ctx, order.ID, completion(100, 5, "0"))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	current, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", current.Status)
	assert.Zero(t, current.ProducedQuantity)
}
