package production

import (
	"strings"

	"github.com/moldshop/erp/internal/domain/shared"
)

// MachineStatus represents the state of a molding machine
type MachineStatus string

const (
	MachineStatusIdle        MachineStatus = "idle"
	MachineStatusRunning     MachineStatus = "running"
	MachineStatusMaintenance MachineStatus = "maintenance"
)

// IsValid checks if the status is a known value
func (s MachineStatus) IsValid() bool {
	switch s {
	case MachineStatusIdle, MachineStatusRunning, MachineStatusMaintenance:
		return true
	}
	return false
}

// Machine is an injection molding press
type Machine struct {
	shared.BaseAggregateRoot
	Code    string
	Name    string
	Tonnage int
	Status  MachineStatus
	Notes   string
}

// MachineDetails carries the editable attributes of a machine
type MachineDetails struct {
	Name    string
	Tonnage int
	Status  MachineStatus
	Notes   string
}

// NewMachine creates an idle machine
func NewMachine(code string, d MachineDetails) (*Machine, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("code", "is required")
	}
	m := &Machine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Status:            MachineStatusIdle,
	}
	if err := m.Update(d); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable attributes
func (m *Machine) Update(d MachineDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("name", "is required")
	}
	if d.Tonnage < 0 {
		return shared.NewValidationError("tonnage", "cannot be negative")
	}
	if d.Status != "" {
		if !d.Status.IsValid() {
			return shared.NewValidationError("status", "must be idle, running or maintenance")
		}
		m.Status = d.Status
	}
	m.Name = name
	m.Tonnage = d.Tonnage
	m.Notes = strings.TrimSpace(d.Notes)
	m.Touch()
	return nil
}
