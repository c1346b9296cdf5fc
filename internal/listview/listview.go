// Package listview derives the filtered, paginated page the entity tables
// render: case-insensitive substring search over an entity's designated text
// fields plus fixed-size pagination with clamped prev/next.
package listview

import "strings"

// DefaultPageSize is the fixed number of rows per page.
const DefaultPageSize = 5

// Query carries the user's current search text and requested page index.
type Query struct {
	Search string
	Page   int
}

// Page is the derived view over one entity list.
type Page[T any] struct {
	Items      []T
	Search     string
	Number     int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
	Empty      bool
}

// Build filters items by q.Search over the fields the extractor designates,
// then slices out the requested page. The page index is clamped to
// [1, ceil(n/pageSize)]; zero matches yield a single empty page so the view
// can render its explicit empty state.
func Build[T any](items []T, q Query, fields func(T) []string) Page[T] {
	return BuildWithPageSize(items, q, fields, DefaultPageSize)
}

// BuildWithPageSize is Build with a caller-chosen page size.
func BuildWithPageSize[T any](items []T, q Query, fields func(T) []string, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(items, q.Search, fields)

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	number := q.Page
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page[T]{
		Items:      filtered[start:end],
		Search:     q.Search,
		Number:     number,
		TotalPages: totalPages,
		Total:      len(filtered),
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
		Empty:      len(filtered) == 0,
	}
}

// Filter returns the items whose designated fields contain the search text,
// ignoring case. An empty search matches everything.
func Filter[T any](items []T, search string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
