package production

import (
	"context"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
)

// MoldRepository persists molds
type MoldRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Mold, error)
	// FindAll returns molds ordered by code
	FindAll(ctx context.Context, filter shared.Filter) ([]Mold, int64, error)
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, mold *Mold) error
	// IncrementShots adds shots to both wear counters in a single statement
	IncrementShots(ctx context.Context, id uuid.UUID, shots int64) error
}

// MachineRepository persists machines
type MachineRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Machine, error)
	// FindAll returns machines ordered by code
	FindAll(ctx context.Context, filter shared.Filter) ([]Machine, int64, error)
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, machine *Machine) error
}

// ProductionOrderFilter narrows production order listings
type ProductionOrderFilter struct {
	shared.Filter
	Status    *OrderStatus
	ProductID *uuid.UUID
	MoldID    *uuid.UUID
}

// ProductionOrderRepository persists production orders
type ProductionOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)
	// FindAll returns orders newest first
	FindAll(ctx context.Context, filter ProductionOrderFilter) ([]ProductionOrder, int64, error)
	// Create inserts a new order
	Create(ctx context.Context, order *ProductionOrder) error
	// Update writes the order back if its version is unchanged since it was
	// loaded and bumps the version; otherwise it fails with a conflict.
	Update(ctx context.Context, order *ProductionOrder) error
}
