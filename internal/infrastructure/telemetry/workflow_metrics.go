package telemetry

import (
	"context"
	"fmt"

	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
var (
	AttrEventType     = attribute.Key("event_type")
	AttrQualityResult = attribute.Key("quality_result")
)

// WorkflowMetrics counts order lifecycle events. It subscribes to the event bus
// so the services stay free of metric calls.
type WorkflowMetrics struct {
	salesOrders    metric.Int64Counter
	salesAmount    metric.Float64Counter
	purchaseAmount metric.Float64Counter
	productionRuns metric.Int64Counter
	producedParts  metric.Int64Counter
	scrapParts     metric.Int64Counter
	inspections    metric.Int64Counter
}

// NewWorkflowMetrics registers the instruments on meter.
func NewWorkflowMetrics(meter metric.Meter) (*WorkflowMetrics, error) {
	wm := &WorkflowMetrics{}
	var err error
	if wm.salesOrders, err = meter.Int64Counter("erp.sales_orders.events",
		metric.WithDescription("Sales order lifecycle events"), metric.WithUnit("{event}")); err != nil {
		return nil, fmt.Errorf("failed to create counter erp.sales_orders.events: %w", err)
	}
	if wm.salesAmount, err = meter.Float64Counter("erp.sales_orders.completed_amount",
		metric.WithDescription("Total amount of completed sales orders")); err != nil {
		return nil, fmt.Errorf("failed to create counter erp.sales_orders.completed_amount: %w", err)
	}
	if wm.purchaseAmount, err = meter.Float64Counter("erp.purchase_orders.received_amount",
		metric.WithDescription("Total amount of received purchase orders")); err != nil {
		return nil, fmt.Errorf("failed to create counter erp.purchase_orders.received_amount: %w", err)
	}
	if wm.productionRuns, err = meter.Int64Counter("erp.production_orders.events",
		metric.WithDescription("Production order lifecycle events"), metric.WithUnit("{event}")); err != nil {
		return nil, fmt.Errorf("failed to create counter erp.production_orders.events: %w", err)
	}
	if wm.producedParts, err = meter.Int64Counter("erp.production.produced",
		metric.WithDescription("Parts produced by completed runs"), metric.WithUnit("{part}")); err != nil {
		return nil, fmt.Errorf("failed to create counter erp.production.produced: %w", err)
	}
	if wm.scrapParts, err = meter.Int64Counter("erp.production.scrap",
		metric.WithDescription("Parts scrapped by completed runs"), metric.WithUnit("{part}")); err != nil {
		return nil, fmt.Errorf("failed to create counter erp.production.scrap: %w", err)
	}
	if wm.inspections, err = meter.Int64Counter("erp.production.inspections",
		metric.WithDescription("Quality inspections by result"), metric.WithUnit("{inspection}")); err != nil {
		return nil, fmt.Errorf("failed to create counter erp.production.inspections: %w", err)
	}
	return wm, nil
}

// EventTypes implements shared.EventHandler.
func (wm *WorkflowMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeSalesOrderCreated,
		trade.EventTypeSalesOrderCompleted,
		trade.EventTypeSalesOrderCancelled,
		trade.EventTypePurchaseOrderReceived,
		production.EventTypeProductionOrderPlanned,
		production.EventTypeProductionOrderStarted,
		production.EventTypeProductionOrderCompleted,
		production.EventTypeQualityInspected,
	}
}

// Handle implements shared.EventHandler.
func (wm *WorkflowMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	typeAttr := metric.WithAttributes(AttrEventType.String(event.EventType()))

	switch e := event.(type) {
	case *trade.SalesOrderEvent:
		wm.salesOrders.Add(ctx, 1, typeAttr)
		if e.Status == trade.SalesOrderStatusCompleted {
			wm.salesAmount.Add(ctx, e.TotalAmount.InexactFloat64())
		}
	case *trade.PurchaseOrderReceivedEvent:
		wm.purchaseAmount.Add(ctx, e.TotalAmount.InexactFloat64())
	case *production.ProductionOrderEvent:
		wm.productionRuns.Add(ctx, 1, typeAttr)
		switch e.EventType() {
		case production.EventTypeProductionOrderCompleted:
			wm.producedParts.Add(ctx, e.ProducedQuantity)
			wm.scrapParts.Add(ctx, e.ScrapQuantity)
		case production.EventTypeQualityInspected:
			wm.inspections.Add(ctx, 1, metric.WithAttributes(AttrQualityResult.String(string(e.QualityStatus))))
		}
	}
	return nil
}

var _ shared.EventHandler = (*WorkflowMetrics)(nil)
