package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

//nolint:funlen // Table-driven test
func TestOrdersClient_Create(t *testing.T) {
	t.Parallel()

	valid := &xmoney.OrderCreateRequest{
		Amount:     25,
		Currency:   "EUR",
		OrderType:  xmoney.OrderTypePurchase,
		CustomerID: 7,
	}

	tests := []TestCreateOperation[xmoney.OrderCreateRequest, xmoney.Order]{
		{
			Name:         "successful create",
			Request:      valid,
			ExpectedPath: "/order",
			StatusCode:   http.StatusCreated,
			Response:     ok(xmoney.Order{ID: 100, Amount: 25, Currency: "EUR"}),
			Check: func(t *testing.T, order *xmoney.Order) {
				t.Helper()
				assert.Equal(t, int64(100), order.ID)
			},
		},
		{
			Name:       "validation failure is local",
			Request:    &xmoney.OrderCreateRequest{Currency: "EUR", OrderType: xmoney.OrderTypePurchase, CustomerID: 7},
			WantErr:    true,
			WantKind:   xmoney.KindInvalidRequest,
			ErrMessage: "amount must be greater than 0",
		},
		{
			Name:         "envelope error",
			Request:      valid,
			ExpectedPath: "/order",
			StatusCode:   http.StatusOK,
			Response:     failure(422, "Invalid", xmoney.ErrorDetail{Message: "Customer not found", Field: "customerId"}),
			WantErr:      true,
			WantKind:     xmoney.KindInvalidRequest,
			ErrMessage:   "Customer not found",
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *xmoney.OrderCreateRequest) (*xmoney.Order, error) {
		return c.Orders().Create
	})
}

func TestOrdersClient_Retrieve(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[xmoney.Order]{
		{
			Name:         "found",
			ID:           12,
			ExpectedPath: "/order/12",
			StatusCode:   http.StatusOK,
			Response:     ok(xmoney.Order{ID: 12, OrderType: xmoney.OrderTypeRecurring}),
			Check: func(t *testing.T, order *xmoney.Order) {
				t.Helper()
				assert.Equal(t, xmoney.OrderTypeRecurring, order.OrderType)
			},
		},
		{
			Name:         "not found",
			ID:           13,
			ExpectedPath: "/order/13",
			StatusCode:   http.StatusNotFound,
			Response:     failure(404, "Not found"),
			WantErr:      true,
			WantKind:     xmoney.KindInvalidRequest,
			ErrMessage:   "Not found",
		},
		{
			Name:       "invalid id",
			ID:         0,
			WantErr:    true,
			WantKind:   xmoney.KindInvalidRequest,
			ErrMessage: "id must be a positive integer: 0",
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, int64) (*xmoney.Order, error) {
		return c.Orders().Retrieve
	})
}

func TestOrdersClient_List(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/order", request.URL.Path)
		assert.Equal(t, "7", request.URL.Query().Get("customerId"))
		assert.Equal(t, "recurring", request.URL.Query().Get("orderType"))
		assert.Equal(t, "true", request.URL.Query().Get("reverseSorting"))

		writeJSON(writer, http.StatusOK, page([]xmoney.Order{{ID: 1}}, 1, 4))
	})

	result, err := client.Orders().List(context.Background(), &xmoney.OrderListParams{
		ListOptions: xmoney.ListOptions{ReverseSorting: true},
		CustomerID:  7,
		OrderType:   "recurring",
	})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 4, result.Pagination.PageCount)
	assert.False(t, result.Pagination.IsLastPage())

	_, err = client.Orders().List(context.Background(), &xmoney.OrderListParams{OrderType: "gift"})
	assert.True(t, xmoney.IsInvalidRequest(err))
}

func TestOrdersClient_Rebill(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/order-rebill/44", request.URL.Path)

		var body xmoney.OrderRebillRequest
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, int64(7), body.CustomerID)
		assert.InDelta(t, 9.99, body.Amount, 0.0001)

		writeJSON(writer, http.StatusOK, ok(xmoney.Order{ID: 44}))
	})

	order, err := client.Orders().Rebill(context.Background(), 44, &xmoney.OrderRebillRequest{CustomerID: 7, Amount: 9.99})
	require.NoError(t, err)
	assert.Equal(t, int64(44), order.ID)

	_, err = client.Orders().Rebill(context.Background(), 44, nil)
	require.ErrorIs(t, err, xmoney.ErrNilRequest)
}

func TestOrdersClient_Cancel(t *testing.T) {
	t.Parallel()

	tests := []TestDeleteOperation{
		{
			Name:         "canceled",
			ID:           5,
			ExpectedPath: "/order/5",
			StatusCode:   http.StatusOK,
			Response:     ok[any](nil),
		},
		{
			Name:         "forbidden",
			ID:           6,
			ExpectedPath: "/order/6",
			StatusCode:   http.StatusForbidden,
			Response:     failure(403, "Forbidden"),
			WantErr:      true,
			WantKind:     xmoney.KindAuthentication,
		},
	}

	RunDeleteTests(t, tests, func(c *Client) func(context.Context, int64) error {
		return c.Orders().Cancel
	})
}
