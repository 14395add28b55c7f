package xmoney_test

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

var errPageFailed = errors.New("page failed")

// fakePages serves pages[n-1] for page n and records the requested pages.
type fakePages struct {
	pages     [][]int
	pageCount int
	failOn    map[int]int
	requested []string
}

func (f *fakePages) fetch(_ context.Context, query url.Values) (*xmoney.ListResponse[int], error) {
	f.requested = append(f.requested, query.Get("page"))

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		return nil, err
	}

	if f.failOn[page] > 0 {
		f.failOn[page]--

		return nil, errPageFailed
	}

	var items []int
	if page-1 < len(f.pages) {
		items = f.pages[page-1]
	}

	count := f.pageCount
	if count == 0 {
		count = len(f.pages)
	}

	return &xmoney.ListResponse[int]{
		Data: items,
		Pagination: xmoney.Pagination{
			CurrentPageNumber: page,
			PageCount:         count,
			CurrentItemCount:  len(items),
		},
	}, nil
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestIterator(t *testing.T) {
	t.Parallel()

	t.Run("walks every page lazily", func(t *testing.T) {
		t.Parallel()

		pages := &fakePages{pages: [][]int{{1, 2}, {3, 4}, {5}}}
		it := xmoney.NewIterator(context.Background(), pages.fetch, nil)

		assert.Equal(t, 0, it.Fetches())
		assert.Equal(t, xmoney.StateDraining, it.State())
		assert.True(t, it.HasNext())

		first, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, 1, first)
		assert.Equal(t, 1, it.Fetches())

		rest, err := it.All()
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 4, 5}, rest)
		assert.Equal(t, []string{"1", "2", "3"}, pages.requested)
		assert.Equal(t, xmoney.StateExhausted, it.State())
		assert.False(t, it.HasNext())

		_, err = it.Next()
		require.ErrorIs(t, err, xmoney.ErrNoMoreItems)
		assert.Equal(t, 3, it.Fetches())
	})

	t.Run("empty page ends iteration", func(t *testing.T) {
		t.Parallel()

		pages := &fakePages{pages: [][]int{{1}, {}}, pageCount: 5}
		it := xmoney.NewIterator(context.Background(), pages.fetch, nil)

		items, err := it.All()
		require.NoError(t, err)
		assert.Equal(t, []int{1}, items)
		assert.Equal(t, 2, it.Fetches())
		assert.Equal(t, xmoney.StateExhausted, it.State())
	})

	t.Run("fetch error keeps the page", func(t *testing.T) {
		t.Parallel()

		pages := &fakePages{pages: [][]int{{1}, {2}}, failOn: map[int]int{2: 1}}
		it := xmoney.NewIterator(context.Background(), pages.fetch, nil)

		item, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, 1, item)

		_, err = it.Next()
		require.ErrorIs(t, err, errPageFailed)
		assert.Equal(t, xmoney.StateDraining, it.State())
		assert.Equal(t, 2, it.Page())

		item, err = it.Next()
		require.NoError(t, err)
		assert.Equal(t, 2, item)
		assert.Equal(t, []string{"1", "2", "2"}, pages.requested)
	})

	t.Run("starts at the requested page", func(t *testing.T) {
		t.Parallel()

		pages := &fakePages{pages: [][]int{{1}, {2}, {3}}}
		query := url.Values{"page": {"2"}, "perPage": {"1"}}

		it := xmoney.NewIterator(context.Background(), pages.fetch, query)
		assert.Equal(t, 2, it.Page())

		items, err := it.All()
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, items)
		assert.Equal(t, "2", query.Get("page"))
	})

	t.Run("seq stops early", func(t *testing.T) {
		t.Parallel()

		pages := &fakePages{pages: [][]int{{1, 2}, {3}}}
		it := xmoney.NewIterator(context.Background(), pages.fetch, nil)

		var got []int

		for item, err := range it.Seq() {
			require.NoError(t, err)

			got = append(got, item)
			if item == 2 {
				break
			}
		}

		assert.Equal(t, []int{1, 2}, got)
		assert.Equal(t, 1, it.Fetches())
	})

	t.Run("seq yields fetch error once", func(t *testing.T) {
		t.Parallel()

		pages := &fakePages{pages: [][]int{{1}}, failOn: map[int]int{1: 1}}
		it := xmoney.NewIterator(context.Background(), pages.fetch, nil)

		var errs []error

		for _, err := range it.Seq() {
			errs = append(errs, err)
		}

		require.Len(t, errs, 1)
		require.ErrorIs(t, errs[0], errPageFailed)
	})

	t.Run("for each stops on callback error", func(t *testing.T) {
		t.Parallel()

		pages := &fakePages{pages: [][]int{{1, 2, 3}}}
		it := xmoney.NewIterator(context.Background(), pages.fetch, nil)
		stop := errors.New("stop")

		var seen []int

		err := it.ForEach(func(item int) error {
			seen = append(seen, item)
			if item == 2 {
				return stop
			}

			return nil
		})
		require.ErrorIs(t, err, stop)
		assert.Equal(t, []int{1, 2}, seen)
	})
}

func TestIteratorState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Draining", xmoney.StateDraining.String())
	assert.Equal(t, "Fetching", xmoney.StateFetching.String())
	assert.Equal(t, "Exhausted", xmoney.StateExhausted.String())
	assert.Equal(t, "Unknown", xmoney.IteratorState(9).String())
}
