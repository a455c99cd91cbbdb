package persistence

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps gorm errors onto domain errors for the given entity
func translate(err error, entity string, id uuid.UUID) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity, id.String())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		de := shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("%s already exists", entity))
		de.Err = err
		return de
	default:
		return err
	}
}
