package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/finance"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/domain/trade"
	"github.com/moldshop/erp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase order business operations.
// Receiving goods credits stock and appends one expense entry atomically.
type PurchaseOrderService struct {
	orderRepo      trade.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	productRepo    catalog.ProductRepository
	ledger         finance.TransactionRepository
	sequence       shared.OrderSequenceRepository
	txManager      shared.TxManager
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	ledger finance.TransactionRepository,
	sequence shared.OrderSequenceRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		ledger:       ledger,
		sequence:     sequence,
		txManager:    txManager,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places a pending purchase order with the next PUR number
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "create")
	defer span.End()

	input := trade.PurchaseOrderInput{
		SupplierID: req.SupplierID,
		Notes:      req.Notes,
		CreatedBy:  shared.ActorPtr(ctx),
	}
	var err error
	if input.Lines, err = toLineInputs(req.Items); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := input.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	supplier, err := s.supplierRepo.FindByID(ctx, input.SupplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			err = shared.NewValidationError("supplier_id", "supplier not found")
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	names, err := requireProducts(ctx, s.productRepo, input.Lines)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var order *trade.PurchaseOrder
	err = s.txManager.Transaction(ctx, func(ctx context.Context) error {
		count, err := s.sequence.NextCount(ctx, shared.OrderKindPurchase)
		if err != nil {
			return err
		}
		order, err = trade.NewPurchaseOrder(shared.FormatOrderNumber(shared.OrderKindPurchase, count), input)
		if err != nil {
			return err
		}
		return s.orderRepo.Create(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, order.PONumber,
		telemetry.SpanAttrAmount, order.TotalAmount.String(),
	)
	s.publish(ctx, order)

	response := ToPurchaseOrderResponse(order)
	response.SupplierName = supplier.Name
	response.Items = ToOrderLineResponses(order.Items, names)
	return &response, nil
}

// GetByID retrieves a purchase order with its items
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, order)
}

// List retrieves purchase orders, newest first, with supplier names
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	supplierID, err := shared.ParseFilterID("supplier_id", filter.SupplierID)
	if err != nil {
		return nil, 0, err
	}
	domainFilter := trade.PurchaseOrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		SupplierID: supplierID,
	}
	if filter.Status != "" {
		status := trade.PurchaseOrderStatus(strings.ToLower(filter.Status))
		domainFilter.Status = &status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.SupplierID)
	}
	suppliers, err := s.supplierRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	names := make(map[uuid.UUID]string, len(suppliers))
	for _, sp := range suppliers {
		names[sp.ID] = sp.Name
	}

	out := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToPurchaseOrderResponse(&orders[i])
		out[i].SupplierName = names[orders[i].SupplierID]
	}
	return out, total, nil
}

// Receive books the delivered goods into stock and appends one
// expense/purchases entry for the order total.
func (s *PurchaseOrderService) Receive(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, "receive", func(ctx context.Context, order *trade.PurchaseOrder) error {
		if err := order.Receive(s.now()); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
			return err
		}
		for _, it := range order.Items {
			if err := s.productRepo.AdjustQuantity(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		entry, err := finance.NewTransaction(
			finance.TransactionTypeExpense,
			finance.CategoryPurchases,
			order.TotalAmount,
			fmt.Sprintf("Purchase order %s", order.PONumber),
			&finance.Reference{Type: finance.ReferencePurchaseOrder, ID: order.ID},
			shared.ActorPtr(ctx),
		)
		if err != nil {
			return err
		}
		return s.ledger.Append(ctx, entry)
	})
}

// Cancel cancels a pending purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, "cancel", func(ctx context.Context, order *trade.PurchaseOrder) error {
		if err := order.Cancel(); err != nil {
			return err
		}
		return s.orderRepo.UpdateStatus(ctx, order)
	})
}

func (s *PurchaseOrderService) transition(
	ctx context.Context,
	id uuid.UUID,
	action string,
	fn func(ctx context.Context, order *trade.PurchaseOrder) error,
) (*PurchaseOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", action, telemetry.SpanAttrOrderID, id.String())
	defer span.End()

	var order *trade.PurchaseOrder
	err := s.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return fn(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, order.PONumber,
		telemetry.SpanAttrOrderStatus, string(order.Status),
	)
	s.logger.Info("purchase order transition",
		zap.String("action", action),
		zap.String("po_number", order.PONumber),
		zap.String("status", string(order.Status)),
	)
	s.publish(ctx, order)
	return s.detail(ctx, order)
}

func (s *PurchaseOrderService) detail(ctx context.Context, order *trade.PurchaseOrder) (*PurchaseOrderResponse, error) {
	response := ToPurchaseOrderResponse(order)
	supplier, err := s.supplierRepo.FindByID(ctx, order.SupplierID)
	switch {
	case err == nil:
		response.SupplierName = supplier.Name
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}
	names, err := productNames(ctx, s.productRepo, order.Items)
	if err != nil {
		return nil, err
	}
	response.Items = ToOrderLineResponses(order.Items, names)
	return &response, nil
}

func (s *PurchaseOrderService) publish(ctx context.Context, order *trade.PurchaseOrder) {
	if s.eventPublisher != nil {
		for _, event := range order.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish purchase order event",
					zap.String("event_type", event.EventType()),
					zap.String("po_number", order.PONumber),
					zap.Error(err),
				)
			}
		}
	}
	order.ClearDomainEvents()
}
