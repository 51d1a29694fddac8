package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/stretchr/testify/require"
)

// sliceFetch serves items in pages and records the page numbers requested.
func sliceFetch(items []int, calls *[]int) store.FetchFunc[int] {
	return func(_ context.Context, req store.PageRequest) (store.Page[int], error) {
		*calls = append(*calls, req.Number)
		start := min(req.Offset(), len(items))
		end := min(start+req.Size, len(items))
		return store.Page[int]{Items: items[start:end], Last: end >= len(items)}, nil
	}
}

func TestAllDrainsEveryPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		size      int
		wantPages []int
	}{
		{3, []int{0, 1, 2}},
		{7, []int{0}},
		{1, []int{0, 1, 2, 3, 4, 5, 6}},
		{100, []int{0}},
	}
	for _, tt := range tests {
		var calls []int
		got, err := store.Collect(store.All(context.Background(), tt.size, sliceFetch(items, &calls)))
		require.NoError(t, err)
		require.Equal(t, items, got)
		require.Equal(t, tt.wantPages, calls)
	}
}

func TestAllIsRestartable(t *testing.T) {
	var calls []int
	seq := store.All(context.Background(), 2, sliceFetch([]int{1, 2, 3}, &calls))

	first, err := store.Collect(seq)
	require.NoError(t, err)
	second, err := store.Collect(seq)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []int{0, 1, 0, 1}, calls)
}

func TestAllStopsEarly(t *testing.T) {
	var calls []int
	for v, err := range store.All(context.Background(), 2, sliceFetch([]int{1, 2, 3, 4, 5}, &calls)) {
		require.NoError(t, err)
		if v == 1 {
			break
		}
	}
	require.Equal(t, []int{0}, calls)
}

func TestAllPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(_ context.Context, req store.PageRequest) (store.Page[int], error) {
		if req.Number == 1 {
			return store.Page[int]{}, boom
		}
		return store.Page[int]{Items: []int{1, 2}}, nil
	}

	_, err := store.Collect(store.All(context.Background(), 2, fetch))
	require.ErrorIs(t, err, boom)
}

func TestEmptyListing(t *testing.T) {
	var calls []int
	got, err := store.Collect(store.All(context.Background(), 5, sliceFetch(nil, &calls)))
	require.NoError(t, err)
	require.Empty(t, got)
}
