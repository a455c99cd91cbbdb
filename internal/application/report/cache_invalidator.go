package report

import (
	"context"

	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/domain/trade"
	"go.uber.org/zap"
)

// CacheInvalidator drops cached reports whenever an order changes state
type CacheInvalidator struct {
	cache  ResultCache
	logger *zap.Logger
}

// NewCacheInvalidator creates the handler
func NewCacheInvalidator(cache ResultCache, logger *zap.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *CacheInvalidator) EventTypes() []string {
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

// Handle implements shared.EventHandler
func (h *CacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.Warn("failed to invalidate report cache",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*CacheInvalidator)(nil)
