package production

import (
	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
)

// AggregateTypeProductionOrder is the aggregate type for production order events
const AggregateTypeProductionOrder = "ProductionOrder"

// Event types
const (
	EventTypeProductionOrderPlanned   = "ProductionOrderPlanned"
	EventTypeProductionOrderStarted   = "ProductionOrderStarted"
	EventTypeProductionOrderCompleted = "ProductionOrderCompleted"
	EventTypeQualityInspected         = "ProductionQualityInspected"
)

// ProductionOrderEvent is published for every production order transition
type ProductionOrderEvent struct {
	shared.BaseDomainEvent
	OrderNumber      string        `json:"order_number"`
	ProductID        uuid.UUID     `json:"product_id"`
	MoldID           uuid.UUID     `json:"mold_id"`
	Status           OrderStatus   `json:"status"`
	QualityStatus    QualityStatus `json:"quality_status"`
	ProducedQuantity int64         `json:"produced_quantity"`
	ScrapQuantity    int64         `json:"scrap_quantity"`
}

func newProductionOrderEvent(eventType string, o *ProductionOrder) *ProductionOrderEvent {
	return &ProductionOrderEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(eventType, AggregateTypeProductionOrder, o.ID),
		OrderNumber:      o.OrderNumber,
		ProductID:        o.ProductID,
		MoldID:           o.MoldID,
		Status:           o.Status,
		QualityStatus:    o.QualityStatus,
		ProducedQuantity: o.ProducedQuantity,
		ScrapQuantity:    o.ScrapQuantity,
	}
}

// NewProductionOrderPlannedEvent creates the planned event
func NewProductionOrderPlannedEvent(o *ProductionOrder) *ProductionOrderEvent {
	return newProductionOrderEvent(EventTypeProductionOrderPlanned, o)
}

// NewProductionOrderStartedEvent creates the started event
func NewProductionOrderStartedEvent(o *ProductionOrder) *ProductionOrderEvent {
	return newProductionOrderEvent(EventTypeProductionOrderStarted, o)
}

// NewProductionOrderCompletedEvent creates the completed event
func NewProductionOrderCompletedEvent(o *ProductionOrder) *ProductionOrderEvent {
	return newProductionOrderEvent(EventTypeProductionOrderCompleted, o)
}

// NewQualityInspectedEvent creates the inspection event
func NewQualityInspectedEvent(o *ProductionOrder) *ProductionOrderEvent {
	return newProductionOrderEvent(EventTypeQualityInspected, o)
}
