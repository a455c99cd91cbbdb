// Package trade provides the sales and purchase order use cases.
package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/finance"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/domain/trade"
	"github.com/moldshop/erp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SalesOrderService handles sales order business operations. Creation,
// stock debits and the ledger entry commit as one unit.
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	customerRepo   partner.CustomerRepository
	productRepo    catalog.ProductRepository
	ledger         finance.TransactionRepository
	sequence       shared.OrderSequenceRepository
	txManager      shared.TxManager
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	ledger finance.TransactionRepository,
	sequence shared.OrderSequenceRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		ledger:       ledger,
		sequence:     sequence,
		txManager:    txManager,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create validates every line, then numbers the order, inserts it with its
// items, debits stock when it is created completed and appends one income
// entry to the ledger.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "create")
	defer span.End()

	input := trade.SalesOrderInput{
		CustomerID: req.CustomerID,
		Status:     trade.SalesOrderStatus(strings.ToLower(strings.TrimSpace(req.Status))),
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
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			err = shared.NewValidationError("customer_id", "customer not found")
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	names, err := requireProducts(ctx, s.productRepo, input.Lines)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var order *trade.SalesOrder
	err = s.txManager.Transaction(ctx, func(ctx context.Context) error {
		count, err := s.sequence.NextCount(ctx, shared.OrderKindSales)
		if err != nil {
			return err
		}
		order, err = trade.NewSalesOrder(shared.FormatOrderNumber(shared.OrderKindSales, count), input)
		if err != nil {
			return err
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		if order.IsCompleted() {
			if err := debitStock(ctx, s.productRepo, order.Items); err != nil {
				return err
			}
		}
		entry, err := finance.NewTransaction(
			finance.TransactionTypeIncome,
			finance.CategorySales,
			order.TotalAmount,
			fmt.Sprintf("Sales order %s", order.OrderNumber),
			&finance.Reference{Type: finance.ReferenceSalesOrder, ID: order.ID},
			order.CreatedBy,
		)
		if err != nil {
			return err
		}
		return s.ledger.Append(ctx, entry)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, order.OrderNumber,
		telemetry.SpanAttrOrderStatus, string(order.Status),
		telemetry.SpanAttrAmount, order.TotalAmount.String(),
	)
	s.logger.Info("sales order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int("items", len(order.Items)),
	)
	s.publish(ctx, order)

	response := ToSalesOrderResponse(order)
	response.CustomerName = customer.Name
	response.Items = ToOrderLineResponses(order.Items, names)
	return &response, nil
}

// GetByID retrieves a sales order with its items
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, order)
}

// List retrieves sales orders, newest first, with customer names
func (s *SalesOrderService) List(ctx context.Context, filter SalesOrderListFilter) ([]SalesOrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	customerID, err := shared.ParseFilterID("customer_id", filter.CustomerID)
	if err != nil {
		return nil, 0, err
	}
	domainFilter := trade.SalesOrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		CustomerID: customerID,
	}
	if filter.Status != "" {
		status := trade.SalesOrderStatus(strings.ToLower(filter.Status))
		domainFilter.Status = &status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.CustomerID)
	}
	customers, err := s.customerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	names := make(map[uuid.UUID]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	out := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToSalesOrderResponse(&orders[i])
		out[i].CustomerName = names[orders[i].CustomerID]
	}
	return out, total, nil
}

// Complete marks a pending order completed and debits stock for every item.
// The ledger entry written at creation is left as is.
func (s *SalesOrderService) Complete(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, "complete", func(ctx context.Context, order *trade.SalesOrder) error {
		if err := order.Complete(); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
			return err
		}
		return debitStock(ctx, s.productRepo, order.Items)
	})
}

// Cancel cancels a pending order. Stock and ledger are untouched.
func (s *SalesOrderService) Cancel(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, "cancel", func(ctx context.Context, order *trade.SalesOrder) error {
		if err := order.Cancel(); err != nil {
			return err
		}
		return s.orderRepo.UpdateStatus(ctx, order)
	})
}

func (s *SalesOrderService) transition(
	ctx context.Context,
	id uuid.UUID,
	action string,
	fn func(ctx context.Context, order *trade.SalesOrder) error,
) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", action, telemetry.SpanAttrOrderID, id.String())
	defer span.End()

	var order *trade.SalesOrder
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
		telemetry.SpanAttrOrderNumber, order.OrderNumber,
		telemetry.SpanAttrOrderStatus, string(order.Status),
	)
	s.logger.Info("sales order transition",
		zap.String("action", action),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)),
	)
	s.publish(ctx, order)
	return s.detail(ctx, order)
}

func (s *SalesOrderService) detail(ctx context.Context, order *trade.SalesOrder) (*SalesOrderResponse, error) {
	response := ToSalesOrderResponse(order)
	customer, err := s.customerRepo.FindByID(ctx, order.CustomerID)
	switch {
	case err == nil:
		response.CustomerName = customer.Name
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

func (s *SalesOrderService) publish(ctx context.Context, order *trade.SalesOrder) {
	if s.eventPublisher != nil {
		for _, event := range order.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish sales order event",
					zap.String("event_type", event.EventType()),
					zap.String("order_number", order.OrderNumber),
					zap.Error(err),
				)
			}
		}
	}
	order.ClearDomainEvents()
}

// requireProducts checks that every line references an existing product and
// returns the product names by id.
func requireProducts(ctx context.Context, repo catalog.ProductRepository, lines []trade.LineInput) (map[uuid.UUID]string, error) {
	if len(lines) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	for i, l := range lines {
		if _, ok := names[l.ProductID]; !ok {
			return nil, shared.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "product not found")
		}
	}
	return names, nil
}

func productNames(ctx context.Context, repo catalog.ProductRepository, items []trade.OrderLine) (map[uuid.UUID]string, error) {
	if len(items) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

// debitStock removes each line's quantity from stock. There is no floor:
// stock may go negative.
func debitStock(ctx context.Context, repo catalog.ProductRepository, items []trade.OrderLine) error {
	for _, it := range items {
		if err := repo.AdjustQuantity(ctx, it.ProductID, -it.Quantity); err != nil {
			return err
		}
	}
	return nil
}
