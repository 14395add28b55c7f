package xmoney_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// stubRequester returns canned data for every call.
type stubRequester struct {
	data       json.RawMessage
	pagination *xmoney.Pagination
	err        error
	queries    []url.Values
}

func (s *stubRequester) Do(_ context.Context, _, _ string, _ any, query url.Values) (json.RawMessage, error) {
	s.queries = append(s.queries, query)

	return s.data, s.err
}

func (s *stubRequester) DoPaginated(_ context.Context, _, _ string, _ any, query url.Values) (json.RawMessage, *xmoney.Pagination, error) {
	s.queries = append(s.queries, query)

	return s.data, s.pagination, s.err
}

func TestRequest(t *testing.T) {
	t.Parallel()

	t.Run("decodes data", func(t *testing.T) {
		t.Parallel()

		requester := &stubRequester{data: json.RawMessage(`{"id":7,"orderType":"purchase","amount":1.5,"currency":"EUR","siteId":1}`)}

		order, err := xmoney.Request[xmoney.Order](context.Background(), requester, http.MethodGet, "/order/7", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(7), order.ID)
		assert.Equal(t, xmoney.OrderTypePurchase, order.OrderType)
	})

	t.Run("null data gives zero value", func(t *testing.T) {
		t.Parallel()

		requester := &stubRequester{data: json.RawMessage(`null`)}

		order, err := xmoney.Request[xmoney.Order](context.Background(), requester, http.MethodGet, "/order/7", nil, nil)
		require.NoError(t, err)
		assert.Zero(t, order.ID)
	})

	t.Run("malformed data", func(t *testing.T) {
		t.Parallel()

		requester := &stubRequester{data: json.RawMessage(`"not an order"`)}

		_, err := xmoney.Request[xmoney.Order](context.Background(), requester, http.MethodGet, "/order/7", nil, nil)
		require.Error(t, err)
		assert.True(t, xmoney.IsAPI(err))
	})

	t.Run("propagates requester error", func(t *testing.T) {
		t.Parallel()

		requester := &stubRequester{err: xmoney.NewError(xmoney.KindConnection, "refused")}

		_, err := xmoney.Request[xmoney.Order](context.Background(), requester, http.MethodGet, "/order/7", nil, nil)
		assert.True(t, xmoney.IsConnection(err))
	})
}

func TestRequestPaginated(t *testing.T) {
	t.Parallel()

	requester := &stubRequester{
		data:       json.RawMessage(`[{"id":1,"customerId":2}]`),
		pagination: &xmoney.Pagination{CurrentPageNumber: 1, PageCount: 1, CurrentItemCount: 1},
	}

	result, err := xmoney.RequestPaginated[xmoney.Card](context.Background(), requester, http.MethodGet, "/card", nil, url.Values{"customerId": {"2"}})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, int64(2), result.Data[0].CustomerID)
	assert.True(t, result.Pagination.IsLastPage())

	requester.data = nil

	result, err = xmoney.RequestPaginated[xmoney.Card](context.Background(), requester, http.MethodGet, "/card", nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func TestRequestAutoPaginated(t *testing.T) {
	t.Parallel()

	requester := &stubRequester{
		data:       json.RawMessage(`[{"id":1},{"id":2}]`),
		pagination: &xmoney.Pagination{CurrentPageNumber: 1, PageCount: 1},
	}
	query := url.Values{"customerId": {"3"}}

	it := xmoney.RequestAutoPaginated[xmoney.Customer](context.Background(), requester, http.MethodGet, "/customer", query)

	customers, err := it.All()
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	require.Len(t, requester.queries, 1)
	assert.Equal(t, "1", requester.queries[0].Get("page"))
	assert.Equal(t, "3", requester.queries[0].Get("customerId"))
	assert.Empty(t, query.Get("page"))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *xmoney.Config
		wantErr error
	}{
		{name: "valid", config: &xmoney.Config{SecretKey: "sk_test_abc"}},
		{name: "nil", config: nil, wantErr: xmoney.ErrConfigRequired},
		{name: "missing key", config: &xmoney.Config{}, wantErr: xmoney.ErrSecretKeyRequired},
		{name: "bad key", config: &xmoney.Config{SecretKey: "abc"}, wantErr: xmoney.ErrInvalidSecretKey},
		{
			name:    "unknown key material",
			config:  &xmoney.Config{SecretKey: "sk_test_abc", WebhookKeyMaterial: "other"},
			wantErr: xmoney.ErrUnknownKeyMaterial,
		},
		{
			name:    "negative timeout",
			config:  &xmoney.Config{SecretKey: "sk_test_abc", Timeout: -time.Second},
			wantErr: xmoney.ErrNegativeTimeout,
		},
		{
			name:    "relative base URL",
			config:  &xmoney.Config{SecretKey: "sk_test_abc", BaseURL: "/v1"},
			wantErr: xmoney.ErrInvalidBaseURL,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.config.Validate()
			if testCase.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, testCase.wantErr)
			assert.True(t, xmoney.IsConfiguration(err))
		})
	}
}

func TestConfig_EnvironmentTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, xmoney.DefaultEnvironmentTable(), (&xmoney.Config{}).EnvironmentTable())

	custom := xmoney.EnvironmentTable{xmoney.EnvironmentTest: {API: "http://api.local"}}
	assert.Equal(t, custom, (&xmoney.Config{Environments: custom}).EnvironmentTable())
}
