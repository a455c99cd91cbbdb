package event

import (
	"context"
	"testing"

	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

type noopHandler struct {
	name string
}

func (h *noopHandler) Handle(context.Context, shared.DomainEvent) error { return nil }

func (h *noopHandler) EventTypes() []string { return nil }

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &noopHandler{name: "ledger"}

	registry.Register(handler, "SalesOrderCreated", "SalesOrderCompleted")

	assert.Equal(t, []shared.EventHandler{handler}, registry.Handlers("SalesOrderCreated"))
	assert.Equal(t, []shared.EventHandler{handler}, registry.Handlers("SalesOrderCompleted"))
	assert.Empty(t, registry.Handlers("SalesOrderCancelled"))
}

func TestHandlerRegistry_WildcardAfterTyped(t *testing.T) {
	registry := NewHandlerRegistry()
	typed := &noopHandler{name: "typed"}
	wildcard := &noopHandler{name: "wildcard"}

	registry.Register(wildcard)
	registry.Register(typed, "ProductionOrderCompleted")

	assert.Equal(t, []shared.EventHandler{typed, wildcard}, registry.Handlers("ProductionOrderCompleted"))
	assert.Equal(t, []shared.EventHandler{wildcard}, registry.Handlers("PurchaseOrderReceived"))
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	first := &noopHandler{name: "first"}
	second := &noopHandler{name: "second"}

	registry.Register(first, "ProductionQualityInspected")
	registry.Register(second, "ProductionQualityInspected")
	registry.Register(first)

	registry.Unregister(first)

	assert.Equal(t, []shared.EventHandler{second}, registry.Handlers("ProductionQualityInspected"))
	assert.Empty(t, registry.Handlers("SalesOrderCreated"))
}

func TestHandlerRegistry_Unregister_DropsEmptyTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &noopHandler{name: "only"}

	registry.Register(handler, "SalesOrderCreated")
	registry.Unregister(handler)

	registry.mu.RLock()
	_, ok := registry.handlers["SalesOrderCreated"]
	registry.mu.RUnlock()
	assert.False(t, ok)
}
