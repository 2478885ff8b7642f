package pagination_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerbridge/internal/pagination"
)

// pagedSource serves canned pages and records the variables of every call.
type pagedSource struct {
	pages []sourcePage
	calls []map[string]interface{}
}

type sourcePage struct {
	items []int
	info  pagination.PageInfo
}

func (s *pagedSource) query(ctx context.Context, variables map[string]interface{}) (sourcePage, error) {
	s.calls = append(s.calls, variables)
	idx := len(s.calls) - 1
	if idx >= len(s.pages) {
		return sourcePage{}, errors.New("queried past the last page")
	}
	return s.pages[idx], nil
}

func items(p sourcePage) []int                 { return p.items }
func pageInfo(p sourcePage) pagination.PageInfo { return p.info }

func makePages(sizes []int) []sourcePage {
	pages := make([]sourcePage, len(sizes))
	next := 0
	for i, size := range sizes {
		page := sourcePage{info: pagination.PageInfo{
			HasNextPage: i < len(sizes)-1,
			EndCursor:   fmt.Sprintf("cursor-%d", i),
		}}
		for j := 0; j < size; j++ {
			page.items = append(page.items, next)
			next++
		}
		pages[i] = page
	}
	return pages
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	src := &pagedSource{pages: makePages([]int{50, 50, 20})}

	all, err := pagination.FetchAllPages(context.Background(), src.query, items, pageInfo, nil, pagination.Options{PageSize: 50})
	require.NoError(t, err)

	require.Len(t, all, 120)
	assert.Len(t, src.calls, 3)

	// Items come back in cursor order
	for i, v := range all {
		assert.Equal(t, i, v)
	}

	// First call has no cursor; later calls carry the prior end cursor
	_, hasAfter := src.calls[0]["after"]
	assert.False(t, hasAfter)
	assert.Equal(t, "cursor-0", src.calls[1]["after"])
	assert.Equal(t, "cursor-1", src.calls[2]["after"])

	for _, call := range src.calls {
		assert.Equal(t, 50, call["first"])
	}
}

func TestFetchAllPagesMaxPages(t *testing.T) {
	t.Parallel()

	src := &pagedSource{pages: makePages([]int{50, 50, 20})}

	all, err := pagination.FetchAllPages(context.Background(), src.query, items, pageInfo, nil, pagination.Options{PageSize: 50, MaxPages: 2})
	require.NoError(t, err)

	assert.Len(t, all, 100)
	assert.Len(t, src.calls, 2)
}

func TestFetchAllPagesEmptySource(t *testing.T) {
	t.Parallel()

	src := &pagedSource{pages: []sourcePage{{info: pagination.PageInfo{HasNextPage: false}}}}

	all, err := pagination.FetchAllPages(context.Background(), src.query, items, pageInfo, nil, pagination.Options{})
	require.NoError(t, err)

	assert.Empty(t, all)
	assert.Len(t, src.calls, 1)
}

func TestFetchAllPagesPropagatesError(t *testing.T) {
	t.Parallel()

	src := &pagedSource{pages: makePages([]int{10})}
	// Claim a next page that the source cannot serve
	src.pages[0].info.HasNextPage = true

	_, err := pagination.FetchAllPages(context.Background(), src.query, items, pageInfo, nil, pagination.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching page 2")
}

func TestFetchAllPagesMergesVariables(t *testing.T) {
	t.Parallel()

	src := &pagedSource{pages: makePages([]int{1})}

	vars := map[string]interface{}{"query": "status:active"}
	_, err := pagination.FetchAllPages(context.Background(), src.query, items, pageInfo, vars, pagination.Options{})
	require.NoError(t, err)

	assert.Equal(t, "status:active", src.calls[0]["query"])
	// The caller's map is not mutated
	_, polluted := vars["first"]
	assert.False(t, polluted)
}

func TestPageSizeDefaultsAndCap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pageSize int
		want     int
	}{
		{name: "zero uses default", pageSize: 0, want: pagination.DefaultPageSize},
		{name: "negative uses default", pageSize: -5, want: pagination.DefaultPageSize},
		{name: "explicit kept", pageSize: 100, want: 100},
		{name: "over the cap is clamped", pageSize: 1000, want: pagination.MaxPageSize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &pagedSource{pages: makePages([]int{1})}
			_, err := pagination.FetchAllPages(context.Background(), src.query, items, pageInfo, nil, pagination.Options{PageSize: tt.pageSize})
			require.NoError(t, err)
			assert.Equal(t, tt.want, src.calls[0]["first"])
		})
	}
}

func TestFetchPage(t *testing.T) {
	t.Parallel()

	src := &pagedSource{pages: makePages([]int{3, 2})}

	page, err := pagination.FetchPage(context.Background(), src.query, items, pageInfo, nil, "", pagination.Options{PageSize: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, page.Items)
	assert.True(t, page.PageInfo.HasNextPage)
	assert.Equal(t, "cursor-0", page.PageInfo.EndCursor)

	next, err := pagination.FetchPage(context.Background(), src.query, items, pageInfo, nil, page.PageInfo.EndCursor, pagination.Options{PageSize: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4}, next.Items)
	assert.False(t, next.PageInfo.HasNextPage)
	assert.Equal(t, "cursor-0", src.calls[1]["after"])
}
