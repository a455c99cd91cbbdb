package production

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannedOrder(t *testing.T) *ProductionOrder {
	t.Helper()
	o, err := NewProductionOrder("PO-00001", PlanInput{
		ProductID:       uuid.New(),
		MoldID:          uuid.New(),
		PlannedQuantity: 100,
	})
	require.NoError(t, err)
	return o
}

func newCompletedOrder(t *testing.T, produced, scrap int64) *ProductionOrder {
	t.Helper()
	o := newPlannedOrder(t)
	require.NoError(t, o.Start(time.Now()))
	_, err := o.Complete(CompletionInput{ProducedQuantity: produced, ScrapQuantity: scrap, RawMaterialUsed: decimal.NewFromFloat(12.5)}, time.Now())
	require.NoError(t, err)
	return o
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPlanned, OrderStatusInProgress, true},
		{OrderStatusPlanned, OrderStatusCompleted, false},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusPlanned, false},
		{OrderStatusCompleted, OrderStatusInProgress, false},
		{OrderStatusCompleted, OrderStatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewProductionOrder(t *testing.T) {
	o := newPlannedOrder(t)
	assert.Equal(t, OrderStatusPlanned, o.Status)
	assert.Equal(t, QualityStatusPending, o.QualityStatus)
	assert.Nil(t, o.ActualStartDate)
	require.Len(t, o.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeProductionOrderPlanned, o.GetDomainEvents()[0].EventType())
}

func TestNewProductionOrder_Validation(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	tests := []struct {
		name  string
		in    PlanInput
		field string
	}{
		{"missing product", PlanInput{MoldID: uuid.New(), PlannedQuantity: 1}, "product_id"},
		{"missing mold", PlanInput{ProductID: uuid.New(), PlannedQuantity: 1}, "mold_id"},
		{"zero quantity", PlanInput{ProductID: uuid.New(), MoldID: uuid.New()}, "planned_quantity"},
		{"end before start", PlanInput{ProductID: uuid.New(), MoldID: uuid.New(), PlannedQuantity: 1, PlannedStartDate: &start, PlannedEndDate: &end}, "planned_end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProductionOrder("PO-00001", tt.in)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestProductionOrder_Start(t *testing.T) {
	o := newPlannedOrder(t)
	now := time.Now()
	require.NoError(t, o.Start(now))
	assert.Equal(t, OrderStatusInProgress, o.Status)
	require.NotNil(t, o.ActualStartDate)
	assert.Equal(t, now, *o.ActualStartDate)

	err := o.Start(now.Add(time.Minute))
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, now, *o.ActualStartDate)
}

func TestProductionOrder_CompleteFromPlannedRejected(t *testing.T) {
	o := newPlannedOrder(t)
	before := *o

	shots, err := o.Complete(CompletionInput{ProducedQuantity: 100, ScrapQuantity: 5}, time.Now())
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Zero(t, shots)
	assert.Equal(t, before.Status, o.Status)
	assert.Zero(t, o.ProducedQuantity)
	assert.Nil(t, o.ActualEndDate)
}

func TestProductionOrder_Complete(t *testing.T) {
	o := newPlannedOrder(t)
	require.NoError(t, o.Start(time.Now()))

	shots, err := o.Complete(CompletionInput{
		ProducedQuantity: 100,
		ScrapQuantity:    5,
		RawMaterialUsed:  decimal.RequireFromString("31.25"),
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(105), shots)
	assert.Equal(t, OrderStatusCompleted, o.Status)
	assert.Equal(t, QualityStatusPending, o.QualityStatus)
	assert.Equal(t, int64(100), o.ProducedQuantity)
	assert.Equal(t, int64(5), o.ScrapQuantity)
	assert.Equal(t, "31.25", o.RawMaterialUsed.String())
	assert.NotNil(t, o.ActualEndDate)
	assert.Equal(t, "0.9524", o.YieldRate().String())

	t.Run("re-completion rejected", func(t *testing.T) {
		shots, err := o.Complete(CompletionInput{ProducedQuantity: 1}, time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Zero(t, shots)
		assert.Equal(t, int64(100), o.ProducedQuantity)
	})
}

func TestProductionOrder_CompleteValidation(t *testing.T) {
	o := newPlannedOrder(t)
	require.NoError(t, o.Start(time.Now()))

	_, err := o.Complete(CompletionInput{ProducedQuantity: -1}, time.Now())
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Equal(t, OrderStatusInProgress, o.Status)

	_, err = o.Complete(CompletionInput{RawMaterialUsed: decimal.NewFromInt(-2)}, time.Now())
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProductionOrder_Inspect(t *testing.T) {
	t.Run("pass releases produced quantity", func(t *testing.T) {
		o := newCompletedOrder(t, 100, 5)
		qty, err := o.Inspect(InspectionInput{Result: QualityStatusPassed, Inspector: "Kim", Notes: "ok"}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(100), qty)
		assert.Equal(t, QualityStatusPassed, o.QualityStatus)
		assert.Equal(t, "Kim", o.QualityInspector)
		assert.NotNil(t, o.InspectedAt)
	})

	t.Run("fail releases nothing", func(t *testing.T) {
		o := newCompletedOrder(t, 100, 5)
		qty, err := o.Inspect(InspectionInput{Result: QualityStatusFailed, Inspector: "Kim"}, time.Now())
		require.NoError(t, err)
		assert.Zero(t, qty)
		assert.Equal(t, QualityStatusFailed, o.QualityStatus)
	})

	t.Run("second inspection rejected", func(t *testing.T) {
		o := newCompletedOrder(t, 100, 0)
		_, err := o.Inspect(InspectionInput{Result: QualityStatusPassed, Inspector: "Kim"}, time.Now())
		require.NoError(t, err)

		qty, err := o.Inspect(InspectionInput{Result: QualityStatusPassed, Inspector: "Kim"}, time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Zero(t, qty)
	})

	t.Run("not completed rejected", func(t *testing.T) {
		o := newPlannedOrder(t)
		_, err := o.Inspect(InspectionInput{Result: QualityStatusPassed, Inspector: "Kim"}, time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, QualityStatusPending, o.QualityStatus)
	})

	t.Run("pending is not a result", func(t *testing.T) {
		o := newCompletedOrder(t, 1, 0)
		_, err := o.Inspect(InspectionInput{Result: QualityStatusPending, Inspector: "Kim"}, time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("inspector required", func(t *testing.T) {
		o := newCompletedOrder(t, 1, 0)
		_, err := o.Inspect(InspectionInput{Result: QualityStatusPassed}, time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, QualityStatusPending, o.QualityStatus)
	})
}

func TestProductionOrder_YieldRateEmpty(t *testing.T) {
	o := newCompletedOrder(t, 0, 0)
	assert.True(t, o.YieldRate().IsZero())
}
