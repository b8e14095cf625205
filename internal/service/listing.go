package service

import (
	"context"

	"github.com/rpattn/agenthub/internal/query"
)

// ListParams carries the raw query surface of a list endpoint: $filter,
// $orderBy and, when both are present, $page and $rpp.
type ListParams struct {
	Filter  string
	OrderBy string
	Page    *int
	RPP     *int
}

// Paged reports whether the caller asked for paginated mode.
func (p ListParams) Paged() bool {
	return p.Page != nil && p.RPP != nil
}

// ListResult is a filtered, sorted and possibly paginated slice of items.
type ListResult[T any] struct {
	Paginated bool
	Page      query.Page
	Items     []T
}

// runList drives every list endpoint: parse, compile, scope, then either a
// count round trip followed by a clamped page fetch, or one unpaginated
// fetch. The count and the page are separate reads; concurrent writers can
// skew them and pagination stays advisory.
func runList[T any](
	ctx context.Context,
	params ListParams,
	scope []query.Condition,
	count func(context.Context, query.CompiledFilter) (int64, error),
	find func(context.Context, query.CompiledFilter, query.SortSpec, int, int) ([]T, error),
) (ListResult[T], error) {
	expr, err := query.ParseFilter(params.Filter)
	if err != nil {
		return ListResult[T]{}, err
	}
	filter := query.Compile(expr).WithScope(scope...)
	sort := query.ParseSort(params.OrderBy)

	if !params.Paged() {
		items, err := find(ctx, filter, sort, 0, 0)
		if err != nil {
			return ListResult[T]{}, err
		}
		return ListResult[T]{Items: items}, nil
	}

	total, err := count(ctx, filter)
	if err != nil {
		return ListResult[T]{}, err
	}

	page := query.Paginate(*params.Page, *params.RPP, int(total))
	items, err := find(ctx, filter, sort, page.Size, page.Skip)
	if err != nil {
		return ListResult[T]{}, err
	}

	return ListResult[T]{Paginated: true, Page: page, Items: items}, nil
}

// withItems swaps a result's rows for their hydrated counterparts without
// touching the pagination envelope.
func withItems[T, V any](r ListResult[T], items []V) ListResult[V] {
	return ListResult[V]{Paginated: r.Paginated, Page: r.Page, Items: items}
}
