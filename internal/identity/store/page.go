package store

import (
	"context"
	"iter"
)

// PageRequest addresses one page. Number is zero based.
type PageRequest struct {
	Number int
	Size   int
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int { return p.Number * p.Size }

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Items []T
	// Last is true when no further page exists.
	Last bool
}

// FetchFunc loads one page.
type FetchFunc[T any] func(ctx context.Context, req PageRequest) (Page[T], error)

// All drains fetch page by page as a lazy sequence. The sequence is
// restartable: each range over it starts again from page zero. Iteration
// stops at the first error, which is yielded with a zero value.
func All[T any](ctx context.Context, size int, fetch FetchFunc[T]) iter.Seq2[T, error] {
	if size <= 0 {
		size = 50
	}
	return func(yield func(T, error) bool) {
		for n := 0; ; n++ {
			page, err := fetch(ctx, PageRequest{Number: n, Size: size})
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
			if page.Last || len(page.Items) == 0 {
				return
			}
		}
	}
}

// Collect materialises a sequence, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
