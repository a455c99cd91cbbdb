// Package production provides the mold, machine and production order use cases.
package production

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
)

func (f EquipmentListFilter) toDomain() (shared.Filter, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
		Filters:  make(map[string]any),
	}
	if f.Status != "" {
		filter.Filters["status"] = strings.ToLower(f.Status)
	}
	productID, err := shared.ParseFilterID("product_id", f.ProductID)
	if err != nil {
		return filter, err
	}
	if productID != nil {
		filter.Filters["product_id"] = *productID
	}
	return filter, nil
}

// MoldService handles mold master data. Wear counters are never written
// here; only completed production orders add shots.
type MoldService struct {
	moldRepo    production.MoldRepository
	productRepo catalog.ProductRepository
}

// NewMoldService creates a new MoldService
func NewMoldService(moldRepo production.MoldRepository, productRepo catalog.ProductRepository) *MoldService {
	return &MoldService{
		moldRepo:    moldRepo,
		productRepo: productRepo,
	}
}

// Create creates a new mold with zeroed counters
func (s *MoldService) Create(ctx context.Context, req MoldRequest) (*MoldResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := s.moldRepo.ExistsByCode(ctx, code, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Mold with this code already exists")
	}
	if err := s.checkProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	mold, err := production.NewMold(code, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.moldRepo.Save(ctx, mold); err != nil {
		return nil, err
	}
	response := ToMoldResponse(mold)
	return &response, nil
}

// GetByID retrieves a mold by ID
func (s *MoldService) GetByID(ctx context.Context, id uuid.UUID) (*MoldResponse, error) {
	mold, err := s.moldRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMoldResponse(mold)
	return &response, nil
}

// List retrieves molds ordered by code
func (s *MoldService) List(ctx context.Context, filter EquipmentListFilter) ([]MoldResponse, int64, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}
	molds, total, err := s.moldRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]MoldResponse, len(molds))
	for i := range molds {
		out[i] = ToMoldResponse(&molds[i])
	}
	return out, total, nil
}

// Update replaces a mold's editable attributes. The code is fixed at creation.
func (s *MoldService) Update(ctx context.Context, id uuid.UUID, req MoldRequest) (*MoldResponse, error) {
	mold, err := s.moldRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if code := strings.ToUpper(strings.TrimSpace(req.Code)); code != "" && code != mold.Code {
		return nil, shared.NewValidationError("code", "cannot be changed")
	}
	if err := s.checkProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if err := mold.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.moldRepo.Save(ctx, mold); err != nil {
		return nil, err
	}
	response := ToMoldResponse(mold)
	return &response, nil
}

func (s *MoldService) checkProduct(ctx context.Context, productID *uuid.UUID) error {
	if productID == nil {
		return nil
	}
	if _, err := s.productRepo.FindByID(ctx, *productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("product_id", "product not found")
		}
		return err
	}
	return nil
}

// MachineService handles molding machine master data
type MachineService struct {
	machineRepo production.MachineRepository
}

// NewMachineService creates a new MachineService
func NewMachineService(machineRepo production.MachineRepository) *MachineService {
	return &MachineService{machineRepo: machineRepo}
}

// Create creates a new machine
func (s *MachineService) Create(ctx context.Context, req MachineRequest) (*MachineResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := s.machineRepo.ExistsByCode(ctx, code, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Machine with this code already exists")
	}

	machine, err := production.NewMachine(code, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.machineRepo.Save(ctx, machine); err != nil {
		return nil, err
	}
	response := ToMachineResponse(machine)
	return &response, nil
}

// GetByID retrieves a machine by ID
func (s *MachineService) GetByID(ctx context.Context, id uuid.UUID) (*MachineResponse, error) {
	machine, err := s.machineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMachineResponse(machine)
	return &response, nil
}

// List retrieves machines ordered by code
func (s *MachineService) List(ctx context.Context, filter EquipmentListFilter) ([]MachineResponse, int64, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}
	machines, total, err := s.machineRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]MachineResponse, len(machines))
	for i := range machines {
		out[i] = ToMachineResponse(&machines[i])
	}
	return out, total, nil
}

// Update replaces a machine's editable attributes. The code is fixed at creation.
func (s *MachineService) Update(ctx context.Context, id uuid.UUID, req MachineRequest) (*MachineResponse, error) {
	machine, err := s.machineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if code := strings.ToUpper(strings.TrimSpace(req.Code)); code != "" && code != machine.Code {
		return nil, shared.NewValidationError("code", "cannot be changed")
	}
	if err := machine.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.machineRepo.Save(ctx, machine); err != nil {
		return nil, err
	}
	response := ToMachineResponse(machine)
	return &response, nil
}
