// Package listing holds the search and paging rules shared by every list view.
package listing

import "strings"

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 5

// Searchable exposes the text fields matched by Filter.
type Searchable interface {
	SearchFields() []string
}

// Matches reports whether any field contains term, ignoring case.
func Matches(term string, fields []string) bool {
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Filter keeps the items whose search fields contain term. An empty term
// returns items unchanged. The input slice is never modified.
func Filter[T Searchable](items []T, term string) []T {
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(term, it.SearchFields()) {
			out = append(out, it)
		}
	}
	return out
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// Paginate returns items[(page-1)*size : page*size]. page is clamped to
// [1, TotalPages]; an empty collection yields page 1 with no items.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items:      out,
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		TotalItems: len(items),
	}
}
