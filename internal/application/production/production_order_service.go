package production

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductionOrderService runs the production order lifecycle. Every
// transition is state-guarded and commits together with its side effect:
// completion charges the mold with shots, a passed inspection adds the
// produced quantity to stock.
type ProductionOrderService struct {
	orderRepo      production.ProductionOrderRepository
	moldRepo       production.MoldRepository
	machineRepo    production.MachineRepository
	productRepo    catalog.ProductRepository
	sequence       shared.OrderSequenceRepository
	txManager      shared.TxManager
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewProductionOrderService creates a new ProductionOrderService
func NewProductionOrderService(
	orderRepo production.ProductionOrderRepository,
	moldRepo production.MoldRepository,
	machineRepo production.MachineRepository,
	productRepo catalog.ProductRepository,
	sequence shared.OrderSequenceRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *ProductionOrderService {
	return &ProductionOrderService{
		orderRepo:   orderRepo,
		moldRepo:    moldRepo,
		machineRepo: machineRepo,
		productRepo: productRepo,
		sequence:    sequence,
		txManager:   txManager,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetEventPublisher sets the event publisher for lifecycle events
func (s *ProductionOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create plans a new production order and assigns the next PO number
func (s *ProductionOrderService) Create(ctx context.Context, req CreateProductionOrderRequest) (*ProductionOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", "create",
		telemetry.SpanAttrProductID, req.ProductID.String(),
		telemetry.SpanAttrMoldID, req.MoldID.String(),
		telemetry.SpanAttrQuantity, req.PlannedQuantity,
	)
	defer span.End()

	input := production.PlanInput{
		ProductID:        req.ProductID,
		MoldID:           req.MoldID,
		MachineID:        req.MachineID,
		PlannedQuantity:  req.PlannedQuantity,
		PlannedStartDate: req.PlannedStartDate,
		PlannedEndDate:   req.PlannedEndDate,
		Notes:            req.Notes,
		CreatedBy:        shared.ActorPtr(ctx),
	}
	if err := input.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	mold, err := s.moldRepo.FindByID(ctx, req.MoldID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if mold.Status != production.MoldStatusActive {
		err := shared.NewValidationError("mold_id", "mold is inactive")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.MachineID != nil {
		if _, err := s.machineRepo.FindByID(ctx, *req.MachineID); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	var order *production.ProductionOrder
	err = s.txManager.Transaction(ctx, func(ctx context.Context) error {
		count, err := s.sequence.NextCount(ctx, shared.OrderKindProduction)
		if err != nil {
			return err
		}
		order, err = production.NewProductionOrder(shared.FormatOrderNumber(shared.OrderKindProduction, count), input)
		if err != nil {
			return err
		}
		return s.orderRepo.Create(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrOrderNumber, order.OrderNumber)
	s.publish(ctx, order)

	response := ToProductionOrderResponse(order)
	response.ProductName = product.Name
	return &response, nil
}

// GetByID retrieves a production order by ID
func (s *ProductionOrderService) GetByID(ctx context.Context, id uuid.UUID) (*ProductionOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductionOrderResponse(order)
	if response.ProductName, err = s.productName(ctx, order.ProductID); err != nil {
		return nil, err
	}
	return &response, nil
}

// productName resolves the name shown on responses; a deleted product leaves it blank
func (s *ProductionOrderService) productName(ctx context.Context, productID uuid.UUID) (string, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	switch {
	case err == nil:
		return product.Name, nil
	case errors.Is(err, shared.ErrNotFound):
		return "", nil
	default:
		return "", err
	}
}

// List retrieves production orders, newest first
func (s *ProductionOrderService) List(ctx context.Context, filter ProductionOrderListFilter) ([]ProductionOrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	productID, err := shared.ParseFilterID("product_id", filter.ProductID)
	if err != nil {
		return nil, 0, err
	}
	moldID, err := shared.ParseFilterID("mold_id", filter.MoldID)
	if err != nil {
		return nil, 0, err
	}
	domainFilter := production.ProductionOrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		ProductID: productID,
		MoldID:    moldID,
	}
	if filter.Status != "" {
		status := production.OrderStatus(filter.Status)
		domainFilter.Status = &status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	out := make([]ProductionOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToProductionOrderResponse(&orders[i])
		out[i].ProductName = names[orders[i].ProductID]
	}
	return out, total, nil
}

// Start moves a planned order into production
func (s *ProductionOrderService) Start(ctx context.Context, id uuid.UUID) (*ProductionOrderResponse, error) {
	return s.transition(ctx, id, "start", func(ctx context.Context, order *production.ProductionOrder) error {
		return order.Start(s.now())
	})
}

// Complete closes an in-progress order with its output and adds
// produced + scrap shots to the mold's wear counters.
func (s *ProductionOrderService) Complete(ctx context.Context, id uuid.UUID, req CompleteProductionOrderRequest) (*ProductionOrderResponse, error) {
	input, err := req.toInput()
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, id, "complete", func(ctx context.Context, order *production.ProductionOrder) error {
		shots, err := order.Complete(input, s.now())
		if err != nil {
			return err
		}
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		return s.moldRepo.IncrementShots(ctx, order.MoldID, shots)
	})
}

// InspectQuality records the inspection result. A pass adds the produced
// quantity to the product's stock; a fail leaves stock untouched.
func (s *ProductionOrderService) InspectQuality(ctx context.Context, id uuid.UUID, req InspectProductionOrderRequest) (*ProductionOrderResponse, error) {
	input := production.InspectionInput{
		Result:    production.QualityStatus(req.Result),
		Inspector: req.Inspector,
		Notes:     req.Notes,
	}
	return s.transition(ctx, id, "inspect", func(ctx context.Context, order *production.ProductionOrder) error {
		increase, err := order.Inspect(input, s.now())
		if err != nil {
			return err
		}
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		if increase == 0 {
			return nil
		}
		return s.productRepo.AdjustQuantity(ctx, order.ProductID, increase)
	})
}

// transition loads the order, applies fn and persists everything in one
// transaction. fn may write the order itself; otherwise it is updated here.
func (s *ProductionOrderService) transition(
	ctx context.Context,
	id uuid.UUID,
	action string,
	fn func(ctx context.Context, order *production.ProductionOrder) error,
) (*ProductionOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", action, telemetry.SpanAttrOrderID, id.String())
	defer span.End()

	var order *production.ProductionOrder
	err := s.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		version := order.Version
		if err := fn(ctx, order); err != nil {
			return err
		}
		if order.Version == version {
			return s.orderRepo.Update(ctx, order)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, order.OrderNumber,
		telemetry.SpanAttrOrderStatus, string(order.Status),
	)
	s.logger.Info("production order transition",
		zap.String("action", action),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)),
		zap.String("quality_status", string(order.QualityStatus)),
	)
	s.publish(ctx, order)

	response := ToProductionOrderResponse(order)
	name, err := s.productName(ctx, order.ProductID)
	if err != nil {
		s.logger.Warn("failed to resolve product name", zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
	response.ProductName = name
	return &response, nil
}

// publish sends the aggregate's pending events after commit. Delivery
// failures are logged; the committed transition stands.
func (s *ProductionOrderService) publish(ctx context.Context, order *production.ProductionOrder) {
	if s.eventPublisher != nil {
		for _, event := range order.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish production order event",
					zap.String("event_type", event.EventType()),
					zap.String("order_number", order.OrderNumber),
					zap.Error(err),
				)
			}
		}
	}
	order.ClearDomainEvents()
}
