package pagination

import (
	"context"
	"fmt"
)

const (
	// DefaultPageSize is used when Options.PageSize is zero.
	DefaultPageSize = 50
	// MaxPageSize is the remote API's hard per-page limit; larger requests
	// are clamped rather than forwarded.
	MaxPageSize = 250
)

// QueryFunc fetches one page of a remote collection. The variables map
// already contains the "first" and "after" pagination arguments.
type QueryFunc[R any] func(ctx context.Context, variables map[string]interface{}) (R, error)

// ItemsFunc extracts the items of a raw page response.
type ItemsFunc[R, T any] func(R) []T

// PageInfoFunc extracts the continuation state of a raw page response.
type PageInfoFunc[R any] func(R) PageInfo

// PageInfo is the continuation state of a page. EndCursor is opaque; the
// engine never parses it.
type PageInfo struct {
	HasNextPage bool
	EndCursor   string
}

// Options bound a pagination run. MaxPages zero means unbounded, which is only
// safe against sources trusted to terminate.
type Options struct {
	PageSize int
	MaxPages int
}

func (o Options) pageSize() int {
	size := o.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return size
}

// Page is a single fetched page with its continuation state, for callers that
// drive the cursor themselves.
type Page[T any] struct {
	Items    []T
	PageInfo PageInfo
}

// FetchPage fetches exactly one page starting at the given cursor. An empty
// cursor means the first page.
func FetchPage[T, R any](
	ctx context.Context,
	query QueryFunc[R],
	items ItemsFunc[R, T],
	pageInfo PageInfoFunc[R],
	variables map[string]interface{},
	after string,
	opts Options,
) (*Page[T], error) {
	raw, err := fetch(ctx, query, variables, after, opts.pageSize())
	if err != nil {
		return nil, err
	}
	return &Page[T]{
		Items:    items(raw),
		PageInfo: pageInfo(raw),
	}, nil
}

// FetchAllPages follows the cursor chain until the source reports no next
// page or MaxPages is reached, returning all items in cursor order. Pages are
// fetched strictly sequentially: the cursor for page N+1 only exists once
// page N has been parsed.
func FetchAllPages[T, R any](
	ctx context.Context,
	query QueryFunc[R],
	items ItemsFunc[R, T],
	pageInfo PageInfoFunc[R],
	variables map[string]interface{},
	opts Options,
) ([]T, error) {
	var all []T
	cursor := ""
	pages := 0

	for {
		raw, err := fetch(ctx, query, variables, cursor, opts.pageSize())
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", pages+1, err)
		}
		pages++

		all = append(all, items(raw)...)

		info := pageInfo(raw)
		if !info.HasNextPage {
			break
		}
		if opts.MaxPages > 0 && pages >= opts.MaxPages {
			break
		}
		cursor = info.EndCursor
	}

	return all, nil
}

func fetch[R any](ctx context.Context, query QueryFunc[R], variables map[string]interface{}, after string, pageSize int) (R, error) {
	vars := make(map[string]interface{}, len(variables)+2)
	for k, v := range variables {
		vars[k] = v
	}
	vars["first"] = pageSize
	if after != "" {
		vars["after"] = after
	}
	return query(ctx, vars)
}
