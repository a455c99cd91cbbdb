package production

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of a production order
type OrderStatus string

const (
	OrderStatusPlanned    OrderStatus = "planned"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
)

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlanned, OrderStatusInProgress, OrderStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can move to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPlanned:
		return target == OrderStatusInProgress
	case OrderStatusInProgress:
		return target == OrderStatusCompleted
	default:
		return false
	}
}

// QualityStatus is the inspection outcome of a completed production order
type QualityStatus string

const (
	QualityStatusPending QualityStatus = "pending"
	QualityStatusPassed  QualityStatus = "passed"
	QualityStatusFailed  QualityStatus = "failed"
)

// IsValid checks if the quality status is a known value
func (s QualityStatus) IsValid() bool {
	switch s {
	case QualityStatusPending, QualityStatusPassed, QualityStatusFailed:
		return true
	}
	return false
}

const productionOrderEntity = "production order"

// ProductionOrder is a run of one product on one mold.
//
//	planned --Start--> in_progress --Complete--> completed
//
// Once completed, quality moves pending --Inspect--> passed|failed exactly once.
type ProductionOrder struct {
	shared.BaseAggregateRoot
	OrderNumber      string
	ProductID        uuid.UUID
	MoldID           uuid.UUID
	MachineID        *uuid.UUID
	PlannedQuantity  int64
	ProducedQuantity int64
	ScrapQuantity    int64
	RawMaterialUsed  decimal.Decimal
	Status           OrderStatus
	QualityStatus    QualityStatus
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	ActualStartDate  *time.Time
	ActualEndDate    *time.Time
	QualityInspector string
	QualityNotes     string
	InspectedAt      *time.Time
	Notes            string
	CreatedBy        *uuid.UUID
}

// PlanInput carries what is needed to plan a production order
type PlanInput struct {
	ProductID        uuid.UUID
	MoldID           uuid.UUID
	MachineID        *uuid.UUID
	PlannedQuantity  int64
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	Notes            string
	CreatedBy        *uuid.UUID
}

// Validate checks the plan before any number is allocated
func (in PlanInput) Validate() error {
	if in.ProductID == uuid.Nil {
		return shared.NewValidationError("product_id", "is required")
	}
	if in.MoldID == uuid.Nil {
		return shared.NewValidationError("mold_id", "is required")
	}
	if in.PlannedQuantity <= 0 {
		return shared.NewValidationError("planned_quantity", "must be positive")
	}
	if in.PlannedStartDate != nil && in.PlannedEndDate != nil && in.PlannedEndDate.Before(*in.PlannedStartDate) {
		return shared.NewValidationError("planned_end_date", "cannot be before planned_start_date")
	}
	return nil
}

// NewProductionOrder creates a planned production order
func NewProductionOrder(orderNumber string, in PlanInput) (*ProductionOrder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewValidationError("order_number", "is required")
	}
	o := &ProductionOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		ProductID:         in.ProductID,
		MoldID:            in.MoldID,
		MachineID:         in.MachineID,
		PlannedQuantity:   in.PlannedQuantity,
		RawMaterialUsed:   decimal.Zero,
		Status:            OrderStatusPlanned,
		QualityStatus:     QualityStatusPending,
		PlannedStartDate:  in.PlannedStartDate,
		PlannedEndDate:    in.PlannedEndDate,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedBy:         in.CreatedBy,
	}
	o.AddDomainEvent(NewProductionOrderPlannedEvent(o))
	return o, nil
}

// Start moves a planned order into production
func (o *ProductionOrder) Start(now time.Time) error {
	if !o.Status.CanTransitionTo(OrderStatusInProgress) {
		return shared.NewInvalidTransitionError(productionOrderEntity, string(o.Status), "start")
	}
	o.Status = OrderStatusInProgress
	o.ActualStartDate = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewProductionOrderStartedEvent(o))
	return nil
}

// CompletionInput is the shop-floor report for a finished run
type CompletionInput struct {
	ProducedQuantity int64
	ScrapQuantity    int64
	RawMaterialUsed  decimal.Decimal
}

// Validate checks the reported quantities
func (in CompletionInput) Validate() error {
	if in.ProducedQuantity < 0 {
		return shared.NewValidationError("produced_quantity", "cannot be negative")
	}
	if in.ScrapQuantity < 0 {
		return shared.NewValidationError("scrap_quantity", "cannot be negative")
	}
	if in.RawMaterialUsed.IsNegative() {
		return shared.NewValidationError("raw_material_used", "cannot be negative")
	}
	return nil
}

// Complete closes an in-progress order with its reported output and
// returns the number of shots the mold must be charged with.
func (o *ProductionOrder) Complete(in CompletionInput, now time.Time) (int64, error) {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return 0, shared.NewInvalidTransitionError(productionOrderEntity, string(o.Status), "complete")
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}
	o.Status = OrderStatusCompleted
	o.ActualEndDate = &now
	o.ProducedQuantity = in.ProducedQuantity
	o.ScrapQuantity = in.ScrapQuantity
	o.RawMaterialUsed = in.RawMaterialUsed
	o.QualityStatus = QualityStatusPending
	o.UpdatedAt = now
	o.AddDomainEvent(NewProductionOrderCompletedEvent(o))
	return o.ShotsConsumed(), nil
}

// ShotsConsumed is the mold wear caused by this order
func (o *ProductionOrder) ShotsConsumed() int64 {
	return o.ProducedQuantity + o.ScrapQuantity
}

// InspectionInput is the result of a manual quality inspection
type InspectionInput struct {
	Result    QualityStatus
	Inspector string
	Notes     string
}

// Inspect records the quality outcome and returns the quantity that enters
// sellable stock: the produced quantity on a pass, zero on a fail.
func (o *ProductionOrder) Inspect(in InspectionInput, now time.Time) (int64, error) {
	if o.Status != OrderStatusCompleted || o.QualityStatus != QualityStatusPending {
		from := string(o.Status)
		if o.Status == OrderStatusCompleted {
			from = "quality " + string(o.QualityStatus)
		}
		return 0, shared.NewInvalidTransitionError(productionOrderEntity, from, "inspect")
	}
	if in.Result != QualityStatusPassed && in.Result != QualityStatusFailed {
		return 0, shared.NewValidationError("result", "must be passed or failed")
	}
	inspector := strings.TrimSpace(in.Inspector)
	if inspector == "" {
		return 0, shared.NewValidationError("inspector", "is required")
	}

	o.QualityStatus = in.Result
	o.QualityInspector = inspector
	o.QualityNotes = strings.TrimSpace(in.Notes)
	o.InspectedAt = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewQualityInspectedEvent(o))

	if in.Result == QualityStatusPassed {
		return o.ProducedQuantity, nil
	}
	return 0, nil
}

// YieldRate is produced / (produced + scrap), zero when nothing ran
func (o *ProductionOrder) YieldRate() decimal.Decimal {
	shots := o.ShotsConsumed()
	if shots == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(o.ProducedQuantity).Div(decimal.NewFromInt(shots)).Round(4)
}
