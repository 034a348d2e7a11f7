package repository

import "strings"

const (
	defaultPageSize = 10
	maxPageSize     = 100

	// DefaultSortField is the fallback used when a requested sort field is
	// not on an endpoint's allow-list.
	DefaultSortField = "created_at"
)

// Pageable translates a 0-based page and a page size into LIMIT/OFFSET values
// with bounded sizes.
type Pageable struct {
	Page int
	Size int
}

// NewPageable normalizes page/size query values. Negative pages clamp to 0,
// sizes clamp into [1, 100] with a default of 10.
func NewPageable(page, size int) Pageable {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return Pageable{Page: page, Size: size}
}

// Limit returns the LIMIT value for SQL queries.
func (p Pageable) Limit() int {
	return p.Size
}

// Offset returns the OFFSET value for SQL queries.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Sort is a sanitized ORDER BY clause: Field is guaranteed to come from an
// allow-list and Order is either "ASC" or "DESC", so both are safe to
// interpolate into SQL.
type Sort struct {
	Field string
	Order string
}

// SanitizeSort parses a "<field>:<ASC|DESC>" query token against an
// allow-list of sortable columns. Unrecognized fields fall back to
// created_at; any order token other than ASC becomes DESC.
func SanitizeSort(raw string, allowed []string) Sort {
	sort := Sort{Field: DefaultSortField, Order: "DESC"}
	if raw == "" {
		return sort
	}

	field, order, _ := strings.Cut(raw, ":")
	for _, a := range allowed {
		if a == field {
			sort.Field = field

			break
		}
	}
	if strings.EqualFold(order, "ASC") {
		sort.Order = "ASC"
	}

	return sort
}
