package xmoney

import (
	"context"
	"errors"
	"iter"
	"net/url"
	"strconv"
)

// IteratorState is the state of an Iterator.
type IteratorState int

const (
	// StateDraining serves items from the buffer.
	StateDraining IteratorState = iota
	// StateFetching has a page request in flight.
	StateFetching
	// StateExhausted has signalled end of sequence.
	StateExhausted
)

// String returns the state name.
func (s IteratorState) String() string {
	switch s {
	case StateDraining:
		return "Draining"
	case StateFetching:
		return "Fetching"
	case StateExhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// PageFunc fetches one page of a list endpoint with the given query.
type PageFunc[T any] func(ctx context.Context, query url.Values) (*ListResponse[T], error)

// Iterator lazily walks a paged list endpoint one page at a time. It is
// single-pass and not safe for concurrent use; construct a new Iterator to
// iterate again.
type Iterator[T any] struct {
	ctx       context.Context
	fetchPage PageFunc[T]
	query     url.Values

	page    int
	buffer  []T
	hasMore bool
	state   IteratorState
	fetches int
}

// NewIterator creates an iterator starting at the page carried by query, or 1.
// No request is made until the first pull.
func NewIterator[T any](ctx context.Context, fetchPage PageFunc[T], query url.Values) *Iterator[T] {
	params := cloneValues(query)

	page := 1
	if p, err := strconv.Atoi(params.Get("page")); err == nil && p > 0 {
		page = p
	}

	return &Iterator[T]{
		ctx:       ctx,
		fetchPage: fetchPage,
		query:     params,
		page:      page,
		hasMore:   true,
		state:     StateDraining,
	}
}

// Next returns the next item, ErrNoMoreItems at end of sequence, or the error
// of a failed page fetch. After a fetch error the same page is requested
// again on the next pull.
func (it *Iterator[T]) Next() (T, error) {
	var zero T

	if item, ok := it.pop(); ok {
		return item, nil
	}

	if !it.hasMore {
		it.state = StateExhausted

		return zero, ErrNoMoreItems
	}

	err := it.fetch()
	if err != nil {
		return zero, err
	}

	if item, ok := it.pop(); ok {
		return item, nil
	}

	// An empty page ends the sequence even if the server reported more.
	it.hasMore = false
	it.state = StateExhausted

	return zero, ErrNoMoreItems
}

// HasNext reports whether a pull may still yield an item.
func (it *Iterator[T]) HasNext() bool {
	return len(it.buffer) > 0 || it.hasMore
}

// All drains the iterator into a slice.
func (it *Iterator[T]) All() ([]T, error) {
	var all []T

	err := it.ForEach(func(item T) error {
		all = append(all, item)

		return nil
	})
	if err != nil {
		return all, err
	}

	return all, nil
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (it *Iterator[T]) ForEach(fn func(T) error) error {
	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}
}

// Seq adapts the iterator to a range-over-func sequence. A fetch error is
// yielded once and ends the sequence.
func (it *Iterator[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := it.Next()
			if errors.Is(err, ErrNoMoreItems) {
				return
			}

			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			if !yield(item, nil) {
				return
			}
		}
	}
}

// State returns the current state.
func (it *Iterator[T]) State() IteratorState {
	return it.state
}

// Page returns the page the next fetch will request.
func (it *Iterator[T]) Page() int {
	return it.page
}

// Fetches returns the number of page requests issued so far.
func (it *Iterator[T]) Fetches() int {
	return it.fetches
}

func (it *Iterator[T]) pop() (T, bool) {
	var zero T

	if len(it.buffer) == 0 {
		return zero, false
	}

	item := it.buffer[0]
	it.buffer[0] = zero
	it.buffer = it.buffer[1:]

	return item, true
}

func (it *Iterator[T]) fetch() error {
	it.state = StateFetching

	query := cloneValues(it.query)
	query.Set("page", strconv.Itoa(it.page))

	it.fetches++

	resp, err := it.fetchPage(it.ctx, query)
	if err != nil {
		it.state = StateDraining

		return err
	}

	it.buffer = resp.Data

	if resp.Pagination.IsLastPage() {
		it.hasMore = false
	} else {
		it.page++
	}

	it.state = StateDraining

	return nil
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for key, v := range values {
		clone[key] = append([]string(nil), v...)
	}

	return clone
}
