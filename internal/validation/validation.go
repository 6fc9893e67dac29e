// Package validation normalizes request input before it reaches the
// store layer: list query parameters and required text fields.
package validation

import "strings"

// DefaultPageSize is the vocabulary page size when the client does not
// supply a limit.
const DefaultPageSize = 6

// Whitelisted sort columns and directions for vocabulary listing.
const (
	SortCreatedAt = "created_at"
	SortWord      = "word"

	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// ListParams is a normalized pagination/search/sort request. Build one
// with NormalizeListParams; the zero value is not safe for queries.
type ListParams struct {
	Page   int
	Limit  int
	Search string // empty means no search filter
	SortBy string // one of the Sort* constants
	Order  string // ASC or DESC
}

// NormalizeListParams clamps paging values and whitelists sort inputs.
// Out-of-range or unknown values fall back to defaults rather than
// erroring: page 1, DefaultPageSize, created_at DESC.
func NormalizeListParams(page, limit int, search, sortBy, order string) ListParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	var sortCol string
	switch sortBy {
	case "word":
		sortCol = SortWord
	case "createdAt", "created_at", "":
		sortCol = SortCreatedAt
	default:
		sortCol = SortCreatedAt
	}

	dir := OrderDesc
	if strings.EqualFold(order, "asc") {
		dir = OrderAsc
	}

	return ListParams{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(search),
		SortBy: sortCol,
		Order:  dir,
	}
}

// Offset returns the row offset for the normalized page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasText reports whether a required text field is non-blank.
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
