package query

import "fmt"

// Page is the result of pagination arithmetic over a raw record count. It is
// independent of what is being paginated.
type Page struct {
	Requested    int
	Size         int
	TotalRecords int
	TotalPages   int
	Current      int
	Skip         int
}

// Paginate computes the effective page and skip for a 1-based requested page.
// A requested page past the end clamps to the last page, and skip is
// recomputed from the clamped page, so an overshooting caller receives the
// final page rather than an empty one. With zero records the caller gets
// page 1 of 0 with an empty slice.
func Paginate(requested, size, totalRecords int) Page {
	if size < 1 {
		size = 1
	}
	if requested < 1 {
		requested = 1
	}
	if totalRecords < 0 {
		totalRecords = 0
	}

	totalPages := (totalRecords + size - 1) / size

	current := requested
	if totalPages > 0 && current > totalPages {
		current = totalPages
	}
	if totalPages == 0 {
		current = 1
	}

	return Page{
		Requested:    requested,
		Size:         size,
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
		Current:      current,
		Skip:         (current - 1) * size,
	}
}

// Label renders the human-readable "Page X of Y" envelope string.
func (p Page) Label() string {
	return fmt.Sprintf("Page %d of %d", p.Current, p.TotalPages)
}
