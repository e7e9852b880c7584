package persistence

import (
	"strings"

	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// validateSortOrder normalizes the sort order to ASC or DESC,
// defaulting to DESC.
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist, falling
// back to created_at. Order-by columns cannot be bound as parameters so
// anything outside the whitelist never reaches the query.
func validateSortField(field string, allowed map[string]bool) string {
	trimmed := strings.TrimSpace(field)
	if trimmed != "" && allowed[trimmed] {
		return trimmed
	}
	return "created_at"
}

// commonSortFields are sortable columns shared by every aggregate table
var commonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// withSortFields extends commonSortFields with table-specific columns
func withSortFields(extra ...string) map[string]bool {
	fields := make(map[string]bool, len(commonSortFields)+len(extra))
	for f := range commonSortFields {
		fields[f] = true
	}
	for _, f := range extra {
		fields[f] = true
	}
	return fields
}

// applySearch applies an optional ILIKE search over the given columns
func applySearch(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search == "" || len(searchColumns) == 0 {
		return query
	}
	pattern := "%" + filter.Search + "%"
	clause := strings.Join(searchColumns, " ILIKE ? OR ") + " ILIKE ?"
	args := make([]any, len(searchColumns))
	for i := range searchColumns {
		args[i] = pattern
	}
	return query.Where(clause, args...)
}

// applyFilter applies search, ordering, and pagination
func applyFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool, searchColumns ...string) *gorm.DB {
	query = applySearch(query, filter, searchColumns...)

	orderBy := validateSortField(filter.OrderBy, sortFields)
	orderDir := validateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}
