package persistence

import (
	"strings"

	"github.com/moldshop/erp/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"name":       true,
	"sku":        true,
	"category":   true,
	"quantity":   true,
	"unit_price": true,
	"created_at": true,
}

// PartnerSortFields contains allowed sort fields for customers and suppliers
var PartnerSortFields = map[string]bool{
	"name":       true,
	"email":      true,
	"created_at": true,
}

// EquipmentSortFields contains allowed sort fields for molds and machines
var EquipmentSortFields = map[string]bool{
	"code":       true,
	"name":       true,
	"status":     true,
	"created_at": true,
}

// OrderSortFields contains allowed sort fields for sales, purchase and production orders
var OrderSortFields = map[string]bool{
	"created_at":   true,
	"order_date":   true,
	"order_number": true,
	"po_number":    true,
	"status":       true,
	"total_amount": true,
}

// sortSpec is the fallback ordering for a listing
type sortSpec struct {
	allowed  map[string]bool
	field    string
	dir      string
	tiebreak string
}

// applyFilter adds ordering and pagination. A zero PageSize returns all rows.
func applyFilter(query *gorm.DB, filter shared.Filter, spec sortSpec) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, spec.allowed, spec.field)
	dir := spec.dir
	if filter.OrderBy != "" || filter.OrderDir != "" {
		dir = ValidateSortOrder(filter.OrderDir)
	}
	query = query.Order(field + " " + dir)
	if spec.tiebreak != "" && spec.tiebreak != field {
		query = query.Order(spec.tiebreak)
	}
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// likePattern builds a case-insensitive LIKE pattern for search input
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
