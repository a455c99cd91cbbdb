package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// formDateLayout is the layout of <input type="date"> values
const formDateLayout = "2006-01-02"

// parseDecimal reads a required form amount
func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, shared.NewValidationError(field, "Is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, shared.NewValidationError(field, "Must be a number")
	}
	return d, nil
}

func parseOptionalDecimal(field, s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parseDecimal(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseInt64 reads a required whole number
func parseInt64(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, shared.NewValidationError(field, "Is required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, shared.NewValidationError(field, "Must be a whole number")
	}
	return n, nil
}

func parseOptionalInt64(field, s string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := parseInt64(field, s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseUUID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, shared.NewValidationError(field, "Invalid UUID format")
	}
	return id, nil
}

func parseOptionalUUID(field, s string) (*uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := parseUUID(field, s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseOptionalDate accepts a plain date or an RFC 3339 timestamp
func parseOptionalDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{formDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, shared.NewValidationError(field, "Must be a date (YYYY-MM-DD)")
}

// pagination mirrors the defaults the services apply to list filters
func pagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}
