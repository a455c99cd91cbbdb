// Package production models the molding floor: molds, machines and the
// production orders that run them.
package production

import (
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
)

// MoldStatus represents the availability of a mold
type MoldStatus string

const (
	MoldStatusActive   MoldStatus = "active"
	MoldStatusInactive MoldStatus = "inactive"
)

// IsValid checks if the status is a known value
func (s MoldStatus) IsValid() bool {
	return s == MoldStatusActive || s == MoldStatusInactive
}

// Mold is an injection mold. TotalShots and ShotsSinceMaintenance only grow,
// and only through RecordShots when a production order completes.
type Mold struct {
	shared.BaseAggregateRoot
	Code                  string
	Name                  string
	ProductID             *uuid.UUID
	CavityCount           int
	TotalShots            int64
	ShotsSinceMaintenance int64
	// MaintenanceInterval is the shot count after which maintenance is due; 0 disables the check.
	MaintenanceInterval   int64
	Status                MoldStatus
	Notes                 string
}

// MoldDetails carries the editable attributes of a mold
type MoldDetails struct {
	Name                string
	ProductID           *uuid.UUID
	CavityCount         int
	MaintenanceInterval int64
	Status              MoldStatus
	Notes               string
}

// NewMold creates a mold with zeroed wear counters
func NewMold(code string, d MoldDetails) (*Mold, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("code", "is required")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("code", "cannot exceed 50 characters")
	}
	m := &Mold{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Status:            MoldStatusActive,
	}
	if err := m.Update(d); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable attributes; wear counters are untouched
func (m *Mold) Update(d MoldDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("name", "is required")
	}
	cavities := d.CavityCount
	if cavities == 0 {
		cavities = 1
	}
	if cavities < 0 {
		return shared.NewValidationError("cavity_count", "must be at least 1")
	}
	if d.MaintenanceInterval < 0 {
		return shared.NewValidationError("maintenance_interval", "cannot be negative")
	}
	status := m.Status
	if d.Status != "" {
		if !d.Status.IsValid() {
			return shared.NewValidationError("status", "must be active or inactive")
		}
		status = d.Status
	}

	m.Name = name
	m.ProductID = d.ProductID
	m.CavityCount = cavities
	m.MaintenanceInterval = d.MaintenanceInterval
	m.Status = status
	m.Notes = strings.TrimSpace(d.Notes)
	m.Touch()
	return nil
}

// RecordShots adds molding cycles to both wear counters
func (m *Mold) RecordShots(shots int64) error {
	if shots < 0 {
		return shared.NewValidationError("shots", "cannot be negative")
	}
	m.TotalShots += shots
	m.ShotsSinceMaintenance += shots
	m.Touch()
	return nil
}

// NeedsMaintenance reports whether the maintenance interval has been reached
func (m *Mold) NeedsMaintenance() bool {
	return m.MaintenanceInterval > 0 && m.ShotsSinceMaintenance >= m.MaintenanceInterval
}
